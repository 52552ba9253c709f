package paypal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	pp "github.com/plutov/paypal/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

const (
	tracerName     = "github.com/trivima/assetstore/internal/adapter/paypal"
	softDescriptor = "3D Assets Store"
	defaultTimeout = 10 * time.Second
)

var errNotConfigured = errors.New("paypal credentials are not configured")

// orderAPI is the subset of the PayPal Orders v2 client used by Gateway.
type orderAPI interface {
	CreateOrder(ctx context.Context, intent string, purchaseUnits []pp.PurchaseUnitRequest, payer *pp.CreateOrderPayer, appContext *pp.ApplicationContext) (*pp.Order, error)
	CaptureOrder(ctx context.Context, orderID string, request pp.CaptureOrderRequest) (*pp.CaptureOrderResponse, error)
}

// Options configures the checkout experience and call limits.
type Options struct {
	BrandName string
	ReturnURL string
	CancelURL string
	Timeout   time.Duration
}

// Gateway creates and captures PayPal orders.
type Gateway struct {
	api    orderAPI
	opts   Options
	logger *slog.Logger
	tracer trace.Tracer
}

// NewGateway wraps api. Every call is bounded by opts.Timeout.
func NewGateway(api orderAPI, opts Options, logger *slog.Logger) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Gateway{api: api, opts: opts, logger: logger, tracer: otel.Tracer(tracerName)}
}

// NewClient builds the PayPal REST client for the sandbox or live environment.
func NewClient(clientID, secret string, live bool, timeout time.Duration) (*pp.Client, error) {
	base := pp.APIBaseSandBox
	if live {
		base = pp.APIBaseLive
	}
	client, err := pp.NewClient(clientID, secret, base)
	if err != nil {
		return nil, err
	}
	client.SetHTTPClient(&http.Client{Timeout: timeout})
	return client, nil
}

// CreateIntent opens a PayPal order for the intent and returns its id.
func (g *Gateway) CreateIntent(ctx context.Context, intent model.PaymentIntent) (_ string, err error) {
	ctx, span := g.tracer.Start(ctx, "paypal.CreateOrder",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("order.id", intent.OrderID),
			attribute.String("paypal.amount", intent.Amount.StringFixed(2)),
			attribute.String("paypal.currency", intent.Currency),
		))
	defer func() { endSpan(span, err) }()

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	order, err := g.api.CreateOrder(ctx, pp.OrderIntentCapture,
		[]pp.PurchaseUnitRequest{{
			Amount: &pp.PurchaseUnitAmount{
				Currency: intent.Currency,
				Value:    intent.Amount.StringFixed(2),
			},
			Description:    intent.Description,
			CustomID:       intent.OrderID,
			SoftDescriptor: softDescriptor,
		}},
		nil,
		&pp.ApplicationContext{
			BrandName:  g.opts.BrandName,
			UserAction: pp.UserActionPayNow,
			ReturnURL:  g.opts.ReturnURL,
			CancelURL:  g.opts.CancelURL,
		},
	)
	if err != nil {
		return "", g.wrap("create order", err)
	}
	if order == nil || order.ID == "" {
		return "", &domainErrors.GatewayError{Op: "create order", Err: errors.New("response carried no order id")}
	}

	span.SetAttributes(attribute.String("paypal.order_id", order.ID))
	return order.ID, nil
}

// CaptureIntent captures the PayPal order remoteID.
func (g *Gateway) CaptureIntent(ctx context.Context, remoteID string) (_ *model.PaymentCapture, err error) {
	ctx, span := g.tracer.Start(ctx, "paypal.CaptureOrder",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("paypal.order_id", remoteID)))
	defer func() { endSpan(span, err) }()

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	resp, err := g.api.CaptureOrder(ctx, remoteID, pp.CaptureOrderRequest{})
	if err != nil {
		return nil, g.wrap("capture order", err)
	}
	if resp == nil {
		return nil, &domainErrors.GatewayError{Op: "capture order", Err: errors.New("empty capture response")}
	}

	capture := &model.PaymentCapture{
		Status:    strings.ToUpper(resp.Status),
		CaptureID: resp.ID,
	}
	if resp.Payer != nil {
		capture.PayerID = resp.Payer.PayerID
	}
	span.SetAttributes(attribute.String("paypal.status", capture.Status))
	return capture, nil
}

// wrap classifies err. Timeouts, transport failures, 429 and 5xx are retryable.
func (g *Gateway) wrap(op string, err error) error {
	gwErr := &domainErrors.GatewayError{Op: op, Err: err}

	var apiErr *pp.ErrorResponse
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		gwErr.Retryable = true
	case errors.As(err, &apiErr) && apiErr.Response != nil:
		status := apiErr.Response.StatusCode
		gwErr.Retryable = status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	case errors.As(err, &netErr):
		gwErr.Retryable = true
	}

	g.logger.Error("paypal request failed",
		slog.String("op", op),
		slog.Bool("retryable", gwErr.Retryable),
		slog.Any("error", err),
	)
	return gwErr
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// unconfiguredAPI rejects every call. It keeps the service bootable without credentials.
type unconfiguredAPI struct{}

func (unconfiguredAPI) CreateOrder(context.Context, string, []pp.PurchaseUnitRequest, *pp.CreateOrderPayer, *pp.ApplicationContext) (*pp.Order, error) {
	return nil, errNotConfigured
}

func (unconfiguredAPI) CaptureOrder(context.Context, string, pp.CaptureOrderRequest) (*pp.CaptureOrderResponse, error) {
	return nil, errNotConfigured
}
