package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	testhelpers "github.com/trivima/assetstore/internal/test"
	"github.com/trivima/assetstore/internal/usecase"
)

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

type facadeDeps struct {
	users      *testhelpers.UserRepositoryStub
	products   *testhelpers.ProductRepositoryStub
	coupons    *testhelpers.CouponRepositoryStub
	orders     *testhelpers.OrderRepositoryStub
	reviews    *testhelpers.ReviewRepositoryStub
	deliveries *testhelpers.DeliveryRepositoryStub
	gateway    *testhelpers.GatewayStub
	notifier   *testhelpers.NotifierStub
}

func newFacade(health HealthChecker) (*StoreFacade, facadeDeps) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	deps := facadeDeps{
		users: testhelpers.NewUserRepositoryStub(),
		products: testhelpers.NewProductRepositoryStub(
			model.Product{ID: "chair", Name: "Oak Chair", Price: 500, Category: "furniture", Stock: 5, AssetURL: "https://cdn.example.com/chair.zip", AssetType: model.AssetTypeUpload},
		),
		coupons: testhelpers.NewCouponRepositoryStub(model.Coupon{
			ID:            "c1",
			Code:          "SAVE10",
			DiscountType:  model.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			ExpiryDate:    time.Now().Add(24 * time.Hour),
			IsActive:      true,
		}),
		orders:     testhelpers.NewOrderRepositoryStub(),
		reviews:    &testhelpers.ReviewRepositoryStub{},
		deliveries: &testhelpers.DeliveryRepositoryStub{},
		gateway:    &testhelpers.GatewayStub{},
		notifier:   &testhelpers.NotifierStub{},
	}

	facade := NewStoreFacade(FacadeParams{
		Auth:        usecase.NewAuthUseCase(deps.users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, usecase.AdminCredentials{Email: "admin@example.com", Password: "secret"}),
		Coupons:     usecase.NewCouponService(deps.coupons, deps.products),
		Catalog:     usecase.NewCatalogService(deps.products),
		Checkout:    usecase.NewCheckoutService(deps.orders, deps.products, deps.coupons, deps.gateway, testhelpers.ConverterStub{}, logger),
		Orders:      usecase.NewOrderService(deps.orders),
		Reviews:     usecase.NewReviewService(deps.reviews, deps.orders, deps.users, deps.products),
		Fulfillment: usecase.NewFulfillmentService(deps.orders, deps.users, deps.deliveries, deps.notifier),
		Health:      health,
	})
	return facade, deps
}

func TestStoreFacadeAuth(t *testing.T) {
	facade, _ := newFacade(healthStub{})
	ctx := context.Background()

	token, err := facade.Register(ctx, "Asha", "Asha@Example.com", "password1")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if !strings.HasPrefix(token, "token-") {
		t.Fatalf("unexpected token %q", token)
	}

	login, err := facade.Login(ctx, "asha@example.com", "password1")
	if err != nil || login != token {
		t.Fatalf("expected same token on login, got %q err=%v", login, err)
	}

	identity, err := facade.ParseToken(token)
	if err != nil || identity.UserID == "" || identity.Admin {
		t.Fatalf("unexpected identity %+v err=%v", identity, err)
	}

	admin, err := facade.AdminLogin("admin@example.com", "secret")
	if err != nil || admin != "admin-token" {
		t.Fatalf("unexpected admin login %q err=%v", admin, err)
	}
	if _, err := facade.AdminLogin("admin@example.com", "nope"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestStoreFacadeCoupons(t *testing.T) {
	facade, deps := newFacade(healthStub{})
	ctx := context.Background()

	quote, err := facade.ApplyCoupon(ctx, "save10", map[string]int64{"chair": 2})
	if err != nil {
		t.Fatalf("apply returned error: %v", err)
	}
	if quote.DiscountAmount != 100 || quote.CartAmount != 1000 {
		t.Fatalf("unexpected quote %+v", quote)
	}

	active, err := facade.ActiveCoupons(ctx)
	if err != nil || len(active) != 1 {
		t.Fatalf("expected one active coupon, got %v err=%v", active, err)
	}

	if err := facade.SetCouponActive(ctx, "c1", false); err != nil {
		t.Fatalf("set active returned error: %v", err)
	}
	if err := facade.RemoveCoupon(ctx, "c1"); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if len(deps.coupons.Deleted) != 1 {
		t.Fatalf("expected coupon deletion to be recorded")
	}
	if _, err := facade.Coupons(ctx); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
}

func TestStoreFacadeCheckoutAndDelivery(t *testing.T) {
	facade, deps := newFacade(healthStub{})
	ctx := context.Background()
	deps.users.Add(model.User{ID: "u1", Name: "Asha", Email: "asha@example.com"})

	original := int64(1000)
	result, err := facade.PlaceOrder(ctx, usecase.CheckoutRequest{
		UserID:         "u1",
		Items:          []usecase.CartLine{{ProductID: "chair", Quantity: 2}},
		Amount:         900,
		OriginalAmount: &original,
		Coupon:         &usecase.CouponClaim{Code: "SAVE10", Discount: 100, Type: model.DiscountPercentage},
	})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if result.PayPalOrderID != "PP-"+result.OrderID {
		t.Fatalf("unexpected result %+v", result)
	}

	order, err := facade.VerifyPayment(ctx, result.PayPalOrderID)
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if !order.Payment {
		t.Fatalf("expected order to be paid, got %+v", order)
	}

	orders, err := facade.UserOrders(ctx, "u1")
	if err != nil || len(orders) != 1 {
		t.Fatalf("expected one user order, got %v err=%v", orders, err)
	}
	all, err := facade.AllOrders(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one order overall, got %v err=%v", all, err)
	}

	if err := facade.Deliver(ctx, result.OrderID); err != nil {
		t.Fatalf("deliver returned error: %v", err)
	}
	if len(deps.notifier.Sent) != 1 || deps.notifier.Sent[0].To != "asha@example.com" {
		t.Fatalf("unexpected notifications %+v", deps.notifier.Sent)
	}
	if err := facade.CompleteDelivery(ctx, "d1"); err != nil {
		t.Fatalf("complete returned error: %v", err)
	}
	task := model.DeliveryTask{ID: "d2", OrderID: result.OrderID, Attempts: 1}
	if err := facade.RetryDelivery(ctx, task, errors.New("smtp"), time.Now(), false); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if len(deps.deliveries.Sent) != 1 || len(deps.deliveries.Failures) != 1 || deps.deliveries.Failures[0].Attempts != 2 {
		t.Fatalf("unexpected delivery transitions sent=%v failures=%+v", deps.deliveries.Sent, deps.deliveries.Failures)
	}
	if _, err := facade.ClaimDeliveries(ctx, time.Minute, 5); err != nil {
		t.Fatalf("claim returned error: %v", err)
	}

	if err := facade.UpdateOrderStatus(ctx, result.OrderID, model.OrderStatusCompleted); err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	reviewable, err := facade.ReviewableProducts(ctx, "u1")
	if err != nil || len(reviewable) != 1 || reviewable[0].Item.ProductID != "chair" {
		t.Fatalf("unexpected reviewable products %+v err=%v", reviewable, err)
	}
	review, err := facade.AddReview(ctx, "u1", usecase.ReviewInput{ProductID: "chair", OrderID: result.OrderID, Rating: 5, Comment: "Great chair"})
	if err != nil || !review.IsVerified {
		t.Fatalf("unexpected review %+v err=%v", review, err)
	}
	summary, err := facade.ProductReviews(ctx, "chair")
	if err != nil || summary.TotalReviews != 1 {
		t.Fatalf("unexpected review summary %+v err=%v", summary, err)
	}
	if reviewable, err = facade.ReviewableProducts(ctx, "u1"); err != nil || len(reviewable) != 0 {
		t.Fatalf("reviewed product still listed: %+v err=%v", reviewable, err)
	}
	if mine, err := facade.UserReviews(ctx, "u1"); err != nil || len(mine) != 1 {
		t.Fatalf("unexpected user reviews %+v err=%v", mine, err)
	}

	if err := facade.RemoveOrder(ctx, result.OrderID); err != nil {
		t.Fatalf("remove order returned error: %v", err)
	}
}

func TestStoreFacadeCancelOrder(t *testing.T) {
	facade, deps := newFacade(healthStub{})
	ctx := context.Background()

	result, err := facade.PlaceOrder(ctx, usecase.CheckoutRequest{
		UserID: "u1",
		Items:  []usecase.CartLine{{ProductID: "chair", Quantity: 1}},
		Amount: 500,
	})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}

	if _, err := facade.CancelOrder(ctx, "someone-else", result.OrderID); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found for foreign cancel, got %v", err)
	}
	if _, err := facade.CancelOrder(ctx, "u1", result.OrderID); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if _, ok := deps.orders.Orders[result.OrderID]; ok {
		t.Fatal("expected cancelled order to be removed")
	}
}

func TestStoreFacadeCatalog(t *testing.T) {
	facade, _ := newFacade(healthStub{})
	ctx := context.Background()

	product, err := facade.AddProduct(ctx, usecase.ProductInput{Name: "Lamp", Category: "lighting", Price: 250, Stock: 3})
	if err != nil {
		t.Fatalf("add product returned error: %v", err)
	}
	if _, err := facade.Product(ctx, product.ID); err != nil {
		t.Fatalf("get product returned error: %v", err)
	}
	stock, err := facade.AddStock(ctx, product.ID, 2)
	if err != nil || stock != 5 {
		t.Fatalf("expected stock 5, got %d err=%v", stock, err)
	}
	stock, err = facade.RemoveStock(ctx, product.ID, 10)
	if err != nil || stock != 0 {
		t.Fatalf("expected stock clamped to 0, got %d err=%v", stock, err)
	}
	list, err := facade.Products(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected two products, got %d err=%v", len(list), err)
	}
	if err := facade.RemoveProduct(ctx, product.ID); err != nil {
		t.Fatalf("remove product returned error: %v", err)
	}
}

func TestStoreFacadePing(t *testing.T) {
	facade, _ := newFacade(healthStub{})
	if err := facade.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	down := errors.New("down")
	facade, _ = newFacade(healthStub{err: down})
	if err := facade.Ping(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected ping error, got %v", err)
	}
}
