package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
)

const (
	tracerName         = "github.com/trivima/assetstore/internal/usecase"
	paymentDescription = "3D Digital Assets Purchase"
)

// PaymentGateway creates and captures remote payment intents.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, intent model.PaymentIntent) (string, error)
	CaptureIntent(ctx context.Context, remoteID string) (*model.PaymentCapture, error)
}

// CurrencyConverter turns store currency amounts into the gateway settlement currency.
type CurrencyConverter interface {
	Convert(amount int64) decimal.Decimal
	Currency() string
}

// CartLine is one product and quantity requested at checkout.
type CartLine struct {
	ProductID string
	Quantity  int64
}

// CouponClaim is the coupon the client priced its cart with.
type CouponClaim struct {
	Code     string
	Discount int64
	Type     model.DiscountType
}

// CheckoutRequest is a validated request to place a PayPal order.
type CheckoutRequest struct {
	UserID         string
	Items          []CartLine
	Amount         int64
	OriginalAmount *int64
	Address        model.Address
	Coupon         *CouponClaim
}

// CheckoutResult identifies the placed order and its remote payment intent.
type CheckoutResult struct {
	OrderID       string
	PayPalOrderID string
}

// CheckoutService sequences order placement, payment capture and cancellation.
type CheckoutService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	coupons   repository.CouponRepository
	gateway   PaymentGateway
	converter CurrencyConverter
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
	newID     func() string
}

// NewCheckoutService constructs CheckoutService.
func NewCheckoutService(orders repository.OrderRepository, products repository.ProductRepository, coupons repository.CouponRepository, gateway PaymentGateway, converter CurrencyConverter, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		products:  products,
		coupons:   coupons,
		gateway:   gateway,
		converter: converter,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		newID:     func() string { return ulid.Make().String() },
	}
}

// PlaceOrder persists an unpaid order, reserving stock and the coupon use, and opens a
// remote payment intent for it. When the gateway fails the reservation is undone.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (_ *CheckoutResult, err error) {
	ctx, span := s.tracer.Start(ctx, "checkout.PlaceOrder", trace.WithAttributes(attribute.String("user.id", req.UserID)))
	defer func() { endSpan(span, err) }()

	order, err := s.buildOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int64("order.amount", order.Amount))

	if err := s.orders.Place(ctx, order, order.Date); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	remoteID, err := s.gateway.CreateIntent(ctx, model.PaymentIntent{
		OrderID:     order.ID,
		Amount:      s.converter.Convert(order.Amount),
		Currency:    s.converter.Currency(),
		Description: paymentDescription,
	})
	if err != nil {
		s.discard(ctx, order.ID)
		return nil, classifyGatewayError(err)
	}

	if err := s.orders.AttachPayPalOrder(ctx, order.ID, remoteID); err != nil {
		s.discard(ctx, order.ID)
		return nil, fmt.Errorf("attach paypal order: %w", err)
	}

	s.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("paypal_order_id", remoteID),
		slog.Int64("amount", order.Amount),
	)
	return &CheckoutResult{OrderID: order.ID, PayPalOrderID: remoteID}, nil
}

func (s *CheckoutService) buildOrder(ctx context.Context, req CheckoutRequest) (*model.Order, error) {
	lines, err := mergeLines(req.Items)
	if err != nil {
		return nil, err
	}

	original := req.Amount
	if req.OriginalAmount != nil {
		original = *req.OriginalAmount
	}

	var applied *model.AppliedCoupon
	var discount int64
	if req.Coupon != nil {
		code := model.NormalizeCouponCode(req.Coupon.Code)
		if code != "" {
			if !req.Coupon.Type.Valid() {
				return nil, fmt.Errorf("%w: unknown coupon type %q", domainErrors.ErrValidation, req.Coupon.Type)
			}
			discount = req.Coupon.Discount
			applied = &model.AppliedCoupon{Code: code, Discount: discount, Type: req.Coupon.Type}
		}
	}

	if discount < 0 || req.Amount < 0 || req.Amount != original-discount {
		return nil, domainErrors.ErrAmountMismatch
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	catalog, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}

	items := make([]model.LineItem, 0, len(lines))
	for _, line := range lines {
		product, ok := catalog[line.ProductID]
		if !ok {
			return nil, &domainErrors.StockError{ProductID: line.ProductID, Err: domainErrors.ErrProductNotFound}
		}
		items = append(items, model.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Category:  product.Category,
			AssetURL:  product.AssetURL,
			AssetType: product.AssetType,
		})
	}

	if applied != nil {
		coupon, err := s.verifyDiscount(ctx, applied, lines, catalog)
		if err != nil {
			return nil, err
		}
		applied.Type = coupon.DiscountType
	}

	return &model.Order{
		ID:             s.newID(),
		UserID:         req.UserID,
		Items:          items,
		Amount:         req.Amount,
		OriginalAmount: original,
		Address:        req.Address,
		Status:         model.OrderStatusPlaced,
		PaymentMethod:  model.PaymentMethodPayPal,
		Coupon:         applied,
		Date:           s.now(),
	}, nil
}

// verifyDiscount prices the cart against the stored coupon and rejects a claimed
// discount that differs from the computed one.
func (s *CheckoutService) verifyDiscount(ctx context.Context, applied *model.AppliedCoupon, lines []CartLine, catalog map[string]model.Product) (*model.Coupon, error) {
	coupon, err := s.coupons.GetByCode(ctx, applied.Code)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil, domainErrors.ErrInvalidCoupon
	}
	if err != nil {
		return nil, fmt.Errorf("load coupon: %w", err)
	}

	cart := make(map[string]int64, len(lines))
	for _, line := range lines {
		cart[line.ProductID] = line.Quantity
	}
	quote, err := CalculateDiscount(coupon, cart, catalog, s.now())
	if err != nil {
		return nil, err
	}
	if quote.DiscountAmount != applied.Discount {
		s.logger.Warn("coupon discount mismatch",
			slog.String("coupon", applied.Code),
			slog.Int64("claimed", applied.Discount),
			slog.Int64("computed", quote.DiscountAmount),
		)
		return nil, domainErrors.ErrAmountMismatch
	}
	return coupon, nil
}

// mergeLines folds repeated products into one line, keeping first-seen order.
func mergeLines(items []CartLine) ([]CartLine, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	index := make(map[string]int, len(items))
	merged := make([]CartLine, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" || item.Quantity < 1 {
			return nil, fmt.Errorf("%w: every item needs a product id and a positive quantity", domainErrors.ErrValidation)
		}
		if i, ok := index[id]; ok {
			if merged[i].Quantity > math.MaxInt64-item.Quantity {
				return nil, fmt.Errorf("%w: quantity of %s is too large", domainErrors.ErrValidation, id)
			}
			merged[i].Quantity += item.Quantity
			continue
		}
		index[id] = len(merged)
		merged = append(merged, CartLine{ProductID: id, Quantity: item.Quantity})
	}
	return merged, nil
}

// discard reverses a placement. It runs even if the request context is already done.
func (s *CheckoutService) discard(ctx context.Context, orderID string) {
	if err := s.orders.Discard(context.WithoutCancel(ctx), orderID); err != nil {
		s.logger.Error("discard unpaid order failed",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
	}
}

// VerifyPayment captures the remote intent and marks its order paid. Verifying an
// order that is already paid returns it without contacting the gateway.
func (s *CheckoutService) VerifyPayment(ctx context.Context, remoteID string) (_ *model.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "checkout.VerifyPayment", trace.WithAttributes(attribute.String("paypal.order_id", remoteID)))
	defer func() { endSpan(span, err) }()

	remoteID = strings.TrimSpace(remoteID)
	if remoteID == "" {
		return nil, fmt.Errorf("%w: paypal order id is required", domainErrors.ErrValidation)
	}

	order, err := s.orders.GetByPayPalOrderID(ctx, remoteID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", order.ID))
	if order.Payment {
		return order, nil
	}

	capture, err := s.gateway.CaptureIntent(ctx, remoteID)
	if err != nil {
		return nil, classifyGatewayError(err)
	}
	if !capture.Completed() {
		s.logger.Warn("paypal capture not completed",
			slog.String("order_id", order.ID),
			slog.String("status", capture.Status),
		)
		return nil, domainErrors.ErrPaymentNotCompleted
	}

	updated, err := s.orders.MarkPaid(ctx, order.ID, capture.CaptureID, capture.PayerID, s.now())
	if err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	if updated {
		s.logger.Info("order paid", slog.String("order_id", order.ID), slog.String("capture_id", capture.CaptureID))
	}

	return s.orders.GetByID(ctx, order.ID)
}

// CancelOrder removes an unpaid order owned by userID and restores its stock.
// The coupon use stays consumed.
func (s *CheckoutService) CancelOrder(ctx context.Context, userID, orderID string) (_ *model.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "checkout.CancelOrder", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("order.id", orderID),
	))
	defer func() { endSpan(span, err) }()

	order, err := s.orders.CancelUnpaid(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("order cancelled", slog.String("order_id", orderID))
	return order, nil
}

func classifyGatewayError(err error) error {
	var gwErr *domainErrors.GatewayError
	if (errors.As(err, &gwErr) && gwErr.Retryable) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domainErrors.ErrGatewayUnavailable, err)
	}
	return fmt.Errorf("payment gateway: %w", err)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
