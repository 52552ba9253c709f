package model

import (
	"encoding/json"
	"time"
)

// OrderStatus is the fulfilment progression shown to customers and administrators.
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "Order Placed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusAssetReady OrderStatus = "Digital Asset Ready"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// OrderStatuses lists every status in progression order.
var OrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusProcessing,
	OrderStatusAssetReady,
	OrderStatusCompleted,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentMethodPayPal is the only payment method the store accepts.
const PaymentMethodPayPal = "PayPal"

// LineItem is a frozen snapshot of a product at the time the order was placed.
// The product id is keyed "_id" to match the storefront's product objects.
type LineItem struct {
	ProductID string    `json:"_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int64     `json:"quantity"`
	Category  string    `json:"category"`
	AssetURL  string    `json:"zipFile,omitempty"`
	AssetType AssetType `json:"zipFileType,omitempty"`
}

// UnmarshalJSON also accepts items stored under the older "productId" key.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	var raw struct {
		plain
		LegacyProductID string `json:"productId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*li = LineItem(raw.plain)
	if li.ProductID == "" {
		li.ProductID = raw.LegacyProductID
	}
	return nil
}

// Subtotal returns price times quantity.
func (li LineItem) Subtotal() int64 {
	return li.Price * li.Quantity
}

// Address is the buyer's billing contact captured at checkout.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zipcode   string `json:"zipcode,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// AppliedCoupon records the coupon terms frozen onto an order.
type AppliedCoupon struct {
	Code     string
	Discount int64
	Type     DiscountType
}

// Order is the system of record for a purchase. Amount is always
// OriginalAmount minus the coupon discount and is never recomputed.
type Order struct {
	ID              string
	UserID          string
	Items           []LineItem
	Amount          int64
	OriginalAmount  int64
	Address         Address
	Status          OrderStatus
	PaymentMethod   string
	Payment         bool
	PayPalOrderID   string
	PayPalPaymentID string
	PayPalPayerID   string
	Coupon          *AppliedCoupon
	Date            time.Time
}

// HasItem reports whether productID is one of the order's line items.
func (o *Order) HasItem(productID string) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
