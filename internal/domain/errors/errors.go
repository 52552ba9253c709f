package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")

	ErrCouponCodeRequired   = errors.New("please enter a coupon code")
	ErrInvalidCoupon        = errors.New("invalid or expired coupon code")
	ErrUsageLimitExceeded   = errors.New("coupon usage limit exceeded")
	ErrMinimumOrderNotMet   = errors.New("minimum order amount not met")
	ErrPercentageExceeds100 = errors.New("percentage discount cannot exceed 100")
	ErrCouponExists         = errors.New("coupon code already exists")
	ErrCouponExpiryInPast   = errors.New("expiry date must be in the future")
	ErrCouponNotRedeemable  = errors.New("coupon is no longer redeemable")

	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyOrder          = errors.New("no items in order")
	ErrAmountMismatch      = errors.New("order amount does not match original amount minus discount")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderAlreadyPaid    = errors.New("order is already paid")
	ErrPaymentNotCompleted = errors.New("paypal payment was not completed")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")

	ErrReviewNotAllowed  = errors.New("you can only review delivered products")
	ErrProductNotInOrder = errors.New("product not found in this order")
	ErrAlreadyReviewed   = errors.New("you have already reviewed this product")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")

	ErrNothingToDeliver = errors.New("no downloadable items")
)

// StockError names the product whose stock could not be reserved.
type StockError struct {
	ProductID string
	Err       error
}

func (e *StockError) Error() string {
	return e.Err.Error() + ": " + e.ProductID
}

func (e *StockError) Unwrap() error {
	return e.Err
}

// MinimumOrderError reports the cart threshold a coupon requires.
type MinimumOrderError struct {
	Minimum int64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("minimum order amount of ₹%d required for this coupon", e.Minimum)
}

func (e *MinimumOrderError) Unwrap() error {
	return ErrMinimumOrderNotMet
}

// GatewayError wraps a payment processor failure. Retryable failures (timeouts,
// transport errors, 5xx) may succeed when repeated; the rest are definitive.
type GatewayError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *GatewayError) Error() string {
	return "paypal " + e.Op + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
