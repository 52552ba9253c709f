package model

import "time"

// DeliveryStatus tracks an outbox entry for the download email.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
)

// DeliveryTask is an outbox row asking for the download email of a paid order.
// There is at most one task per order.
type DeliveryTask struct {
	ID            string
	OrderID       string
	Status        DeliveryStatus
	Attempts      int
	LastError     string
	NextAttemptAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
