package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/trivima/assetstore/internal/server/http/dto"
	"github.com/trivima/assetstore/internal/server/http/handlers"
	"github.com/trivima/assetstore/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	dto.RegisterValidators()
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Tracing())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	couponHandler := handlers.NewCouponHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	authRequired := middleware.AuthRequired(facade)
	customer := []gin.HandlerFunc{authRequired, middleware.CustomerRequired()}
	admin := []gin.HandlerFunc{authRequired, middleware.AdminRequired()}

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/admin", authHandler.AdminLogin)

	coupon := api.Group("/coupon")
	coupon.GET("/active", couponHandler.Active)
	coupon.POST("/apply", authRequired, middleware.CustomerRequired(), couponHandler.Apply)
	couponAdmin := coupon.Group("", admin...)
	couponAdmin.POST("/add", couponHandler.Add)
	couponAdmin.GET("/list", couponHandler.List)
	couponAdmin.POST("/remove", couponHandler.Remove)
	couponAdmin.POST("/update-status", couponHandler.UpdateStatus)

	product := api.Group("/product")
	product.GET("/list", productHandler.List)
	product.POST("/single", productHandler.Single)
	productAdmin := product.Group("", admin...)
	productAdmin.POST("/add", productHandler.Add)
	productAdmin.POST("/remove", productHandler.Remove)
	productAdmin.POST("/add-stock", productHandler.AddStock)
	productAdmin.POST("/remove-stock", productHandler.RemoveStock)

	order := api.Group("/order")
	orderUser := order.Group("", customer...)
	orderUser.POST("/paypal", orderHandler.PlacePayPal)
	orderUser.POST("/verifyPayPal", orderHandler.VerifyPayPal)
	orderUser.POST("/userorders", orderHandler.UserOrders)
	orderUser.POST("/remove-userOrder", orderHandler.CancelUserOrder)
	orderAdmin := order.Group("", admin...)
	orderAdmin.POST("/list", orderHandler.List)
	orderAdmin.POST("/status", orderHandler.UpdateStatus)
	orderAdmin.POST("/remove", orderHandler.Remove)

	review := api.Group("/review")
	review.POST("/product-reviews", reviewHandler.ProductReviews)
	reviewUser := review.Group("", authRequired, middleware.CustomerRequired())
	reviewUser.POST("/add", reviewHandler.Add)
	reviewUser.POST("/user-reviews", reviewHandler.UserReviews)
	reviewUser.POST("/reviewable-products", reviewHandler.ReviewableProducts)

	return engine
}
