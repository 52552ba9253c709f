package repository

import (
	"context"
	"time"

	"github.com/trivima/assetstore/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Place inserts an unpaid order, reserves stock for every line item and, when a coupon
	// is attached, redeems one use of it. Either all three happen or none does.
	Place(ctx context.Context, order *model.Order, now time.Time) error
	// Discard reverses Place for an unpaid order: stock and coupon use are released
	// and the order is deleted.
	Discard(ctx context.Context, orderID string) error
	// CancelUnpaid restores stock and deletes an unpaid order owned by userID.
	CancelUnpaid(ctx context.Context, orderID, userID string) (*model.Order, error)
	AttachPayPalOrder(ctx context.Context, orderID, paypalOrderID string) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetByPayPalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error)
	// MarkPaid flags the order paid, moves it to the asset-ready status and enqueues its
	// delivery task. It reports false when the order was already paid.
	MarkPaid(ctx context.Context, orderID, paymentID, payerID string, now time.Time) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
}
