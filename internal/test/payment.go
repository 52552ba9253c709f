package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/trivima/assetstore/internal/domain/model"
)

// GatewayStub records payment gateway calls.
type GatewayStub struct {
	mu sync.Mutex

	CreateFn  func(context.Context, model.PaymentIntent) (string, error)
	CaptureFn func(context.Context, string) (*model.PaymentCapture, error)
	Intents   []model.PaymentIntent
	Captures  []string
}

// CreateIntent returns a remote id derived from the order id unless overridden.
func (g *GatewayStub) CreateIntent(ctx context.Context, intent model.PaymentIntent) (string, error) {
	g.mu.Lock()
	g.Intents = append(g.Intents, intent)
	g.mu.Unlock()
	if g.CreateFn != nil {
		return g.CreateFn(ctx, intent)
	}
	return "PP-" + intent.OrderID, nil
}

// CaptureIntent reports a completed capture unless overridden.
func (g *GatewayStub) CaptureIntent(ctx context.Context, remoteID string) (*model.PaymentCapture, error) {
	g.mu.Lock()
	g.Captures = append(g.Captures, remoteID)
	g.mu.Unlock()
	if g.CaptureFn != nil {
		return g.CaptureFn(ctx, remoteID)
	}
	return &model.PaymentCapture{Status: model.PaymentCaptureCompleted, CaptureID: "CAP-" + remoteID, PayerID: "PAYER"}, nil
}

// ConverterStub multiplies by Rate, defaulting to one.
type ConverterStub struct {
	Rate decimal.Decimal
	Code string
}

// Convert applies the stub rate.
func (c ConverterStub) Convert(amount int64) decimal.Decimal {
	rate := c.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(amount).Mul(rate)
}

// Currency returns Code or USD.
func (c ConverterStub) Currency() string {
	if c.Code != "" {
		return c.Code
	}
	return "USD"
}

// Notification captures one download email request.
type Notification struct {
	To      string
	Name    string
	OrderID string
	Items   []model.LineItem
}

// NotifierStub records notifications.
type NotifierStub struct {
	mu sync.Mutex

	Err  error
	Sent []Notification
}

// Notify records the call and returns Err.
func (n *NotifierStub) Notify(ctx context.Context, to, name, orderID string, items []model.LineItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, Notification{To: to, Name: name, OrderID: orderID, Items: items})
	return n.Err
}
