package model

import "github.com/shopspring/decimal"

// PaymentCaptureCompleted is the capture status that confirms funds were taken.
const PaymentCaptureCompleted = "COMPLETED"

// PaymentIntent asks the gateway for a remote payment of Amount in the settlement Currency.
type PaymentIntent struct {
	OrderID     string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// PaymentCapture is the gateway's answer to capturing a remote intent.
type PaymentCapture struct {
	Status    string
	CaptureID string
	PayerID   string
}

// Completed reports whether the capture settled.
func (c *PaymentCapture) Completed() bool {
	return c != nil && c.Status == PaymentCaptureCompleted
}
