package handlers

import (
	"context"

	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/server/http/middleware"
	"github.com/trivima/assetstore/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	AdminLogin(email, password string) (string, error)
}

// CouponFacade covers coupon administration and quoting.
type CouponFacade interface {
	ApplyCoupon(ctx context.Context, code string, cart map[string]int64) (*usecase.CouponQuote, error)
	ActiveCoupons(ctx context.Context) ([]model.PublicCoupon, error)
	AddCoupon(ctx context.Context, in usecase.CouponInput) (*model.Coupon, error)
	Coupons(ctx context.Context) ([]model.Coupon, error)
	RemoveCoupon(ctx context.Context, id string) error
	SetCouponActive(ctx context.Context, id string, active bool) error
}

// CatalogFacade covers the product catalog.
type CatalogFacade interface {
	AddProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	RemoveProduct(ctx context.Context, id string) error
	AddStock(ctx context.Context, id string, quantity int64) (int64, error)
	RemoveStock(ctx context.Context, id string, quantity int64) (int64, error)
}

// OrderFacade encapsulates checkout and order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error)
	VerifyPayment(ctx context.Context, paypalOrderID string) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	UserOrders(ctx context.Context, userID string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	RemoveOrder(ctx context.Context, orderID string) error
}

// ReviewFacade covers product reviews.
type ReviewFacade interface {
	AddReview(ctx context.Context, userID string, in usecase.ReviewInput) (*model.Review, error)
	ProductReviews(ctx context.Context, productID string) (*model.ReviewSummary, error)
	UserReviews(ctx context.Context, userID string) ([]model.Review, error)
	ReviewableProducts(ctx context.Context, userID string) ([]model.ReviewableItem, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	middleware.TokenParser
	AuthFacade
	CouponFacade
	CatalogFacade
	OrderFacade
	ReviewFacade
	HealthFacade
}
