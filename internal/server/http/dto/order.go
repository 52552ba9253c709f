package dto

import (
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/usecase"
)

// OrderItemRequest is one cart line. Only the id and quantity are trusted;
// everything else about the product is read from the catalog.
type OrderItemRequest struct {
	ID       string `json:"_id"`
	Quantity int64  `json:"quantity"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items          []OrderItemRequest `json:"items"`
	Amount         int64              `json:"amount"`
	Address        model.Address      `json:"address"`
	CouponCode     string             `json:"couponCode"`
	CouponDiscount int64              `json:"couponDiscount"`
	OriginalAmount *int64             `json:"originalAmount"`
	CouponType     string             `json:"couponType" binding:"omitempty,discounttype"`
}

// ToCheckout converts the payload into a checkout request for userID.
func (r PlaceOrderRequest) ToCheckout(userID string) usecase.CheckoutRequest {
	lines := make([]usecase.CartLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, usecase.CartLine{ProductID: item.ID, Quantity: item.Quantity})
	}
	req := usecase.CheckoutRequest{
		UserID:         userID,
		Items:          lines,
		Amount:         r.Amount,
		OriginalAmount: r.OriginalAmount,
		Address:        r.Address,
	}
	if r.CouponCode != "" {
		req.Coupon = &usecase.CouponClaim{
			Code:     r.CouponCode,
			Discount: r.CouponDiscount,
			Type:     model.DiscountType(r.CouponType),
		}
	}
	return req
}

// PlaceOrderResponse identifies the stored order and its PayPal order.
type PlaceOrderResponse struct {
	Success       bool   `json:"success"`
	PayPalOrderID string `json:"paypalOrderId"`
	OrderID       string `json:"orderId"`
}

// VerifyPaymentRequest asks to capture a PayPal order.
type VerifyPaymentRequest struct {
	PayPalOrderID string `json:"paypalOrderId"`
}

// OrderIDRequest identifies an order.
type OrderIDRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// OrderStatusRequest is the admin status update.
type OrderStatusRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required,orderstatus"`
}

// OrderResponse is the client view of an order.
type OrderResponse struct {
	ID              string           `json:"_id"`
	UserID          string           `json:"userId"`
	Items           []model.LineItem `json:"items"`
	Amount          int64            `json:"amount"`
	OriginalAmount  int64            `json:"originalAmount"`
	Address         model.Address    `json:"address"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"paymentMethod"`
	Payment         bool             `json:"payment"`
	PayPalOrderID   string           `json:"paypalOrderId,omitempty"`
	PayPalPaymentID string           `json:"paypalPaymentId,omitempty"`
	PayPalPayerID   string           `json:"paypalPayerId,omitempty"`
	CouponCode      string           `json:"couponCode,omitempty"`
	CouponDiscount  int64            `json:"couponDiscount"`
	CouponType      string           `json:"couponType,omitempty"`
	Date            int64            `json:"date"`
}

// NewOrderResponse projects an order. Date is milliseconds since the epoch.
func NewOrderResponse(o model.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           o.Items,
		Amount:          o.Amount,
		OriginalAmount:  o.OriginalAmount,
		Address:         o.Address,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		Payment:         o.Payment,
		PayPalOrderID:   o.PayPalOrderID,
		PayPalPaymentID: o.PayPalPaymentID,
		PayPalPayerID:   o.PayPalPayerID,
		Date:            o.Date.UnixMilli(),
	}
	if resp.Items == nil {
		resp.Items = []model.LineItem{}
	}
	if o.Coupon != nil {
		resp.CouponCode = o.Coupon.Code
		resp.CouponDiscount = o.Coupon.Discount
		resp.CouponType = string(o.Coupon.Type)
	}
	return resp
}

// NewOrderResponses projects a list of orders.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
