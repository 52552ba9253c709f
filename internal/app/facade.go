package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/trivima/assetstore/internal/domain/model"
	pkgAuth "github.com/trivima/assetstore/internal/pkg/auth"
	"github.com/trivima/assetstore/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade is the single entry point the HTTP layer and the delivery
// worker use to reach the use cases.
type StoreFacade struct {
	auth        *usecase.AuthUseCase
	coupons     *usecase.CouponService
	catalog     *usecase.CatalogService
	checkout    *usecase.CheckoutService
	orders      *usecase.OrderService
	reviews     *usecase.ReviewService
	fulfillment *usecase.FulfillmentService
	health      HealthChecker
}

// FacadeParams groups the use cases composed by StoreFacade.
type FacadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Coupons     *usecase.CouponService
	Catalog     *usecase.CatalogService
	Checkout    *usecase.CheckoutService
	Orders      *usecase.OrderService
	Reviews     *usecase.ReviewService
	Fulfillment *usecase.FulfillmentService
	Health      HealthChecker
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(p FacadeParams) *StoreFacade {
	return &StoreFacade{
		auth:        p.Auth,
		coupons:     p.Coupons,
		catalog:     p.Catalog,
		checkout:    p.Checkout,
		orders:      p.Orders,
		reviews:     p.Reviews,
		fulfillment: p.Fulfillment,
		health:      p.Health,
	}
}

func (f *StoreFacade) Register(ctx context.Context, name, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, password)
	return token, err
}

func (f *StoreFacade) Login(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) AdminLogin(email, password string) (string, error) {
	return f.auth.AuthenticateAdmin(email, password)
}

func (f *StoreFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) ApplyCoupon(ctx context.Context, code string, cart map[string]int64) (*usecase.CouponQuote, error) {
	return f.coupons.Apply(ctx, code, cart)
}

func (f *StoreFacade) ActiveCoupons(ctx context.Context) ([]model.PublicCoupon, error) {
	return f.coupons.Active(ctx)
}

func (f *StoreFacade) AddCoupon(ctx context.Context, in usecase.CouponInput) (*model.Coupon, error) {
	return f.coupons.Create(ctx, in)
}

func (f *StoreFacade) Coupons(ctx context.Context) ([]model.Coupon, error) {
	return f.coupons.List(ctx)
}

func (f *StoreFacade) RemoveCoupon(ctx context.Context, id string) error {
	return f.coupons.Remove(ctx, id)
}

func (f *StoreFacade) SetCouponActive(ctx context.Context, id string, active bool) error {
	return f.coupons.SetActive(ctx, id, active)
}

func (f *StoreFacade) AddProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error) {
	return f.catalog.Add(ctx, in)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StoreFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) RemoveProduct(ctx context.Context, id string) error {
	return f.catalog.Remove(ctx, id)
}

func (f *StoreFacade) AddStock(ctx context.Context, id string, quantity int64) (int64, error) {
	return f.catalog.AddStock(ctx, id, quantity)
}

func (f *StoreFacade) RemoveStock(ctx context.Context, id string, quantity int64) (int64, error) {
	return f.catalog.RemoveStock(ctx, id, quantity)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error) {
	return f.checkout.PlaceOrder(ctx, req)
}

func (f *StoreFacade) VerifyPayment(ctx context.Context, paypalOrderID string) (*model.Order, error) {
	return f.checkout.VerifyPayment(ctx, paypalOrderID)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.checkout.CancelOrder(ctx, userID, orderID)
}

func (f *StoreFacade) UserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.UserOrders(ctx, userID)
}

func (f *StoreFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.AllOrders(ctx)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StoreFacade) RemoveOrder(ctx context.Context, orderID string) error {
	return f.orders.Remove(ctx, orderID)
}

func (f *StoreFacade) AddReview(ctx context.Context, userID string, in usecase.ReviewInput) (*model.Review, error) {
	return f.reviews.Add(ctx, userID, in)
}

func (f *StoreFacade) ProductReviews(ctx context.Context, productID string) (*model.ReviewSummary, error) {
	return f.reviews.ProductReviews(ctx, productID)
}

func (f *StoreFacade) UserReviews(ctx context.Context, userID string) ([]model.Review, error) {
	return f.reviews.UserReviews(ctx, userID)
}

func (f *StoreFacade) ReviewableProducts(ctx context.Context, userID string) ([]model.ReviewableItem, error) {
	return f.reviews.Reviewable(ctx, userID)
}

func (f *StoreFacade) ClaimDeliveries(ctx context.Context, lease time.Duration, limit int) ([]model.DeliveryTask, error) {
	return f.fulfillment.ClaimDeliveries(ctx, lease, limit)
}

func (f *StoreFacade) Deliver(ctx context.Context, orderID string) error {
	return f.fulfillment.Deliver(ctx, orderID)
}

func (f *StoreFacade) CompleteDelivery(ctx context.Context, id string) error {
	return f.fulfillment.CompleteDelivery(ctx, id)
}

func (f *StoreFacade) RetryDelivery(ctx context.Context, task model.DeliveryTask, cause error, next time.Time, final bool) error {
	return f.fulfillment.RetryDelivery(ctx, task, cause, next, final)
}

func (f *StoreFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
