package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/usecase"
)

// CouponRequest is the admin payload for creating a coupon. ExpiryDate
// accepts RFC 3339 or a plain YYYY-MM-DD date.
type CouponRequest struct {
	Code                  string          `json:"code" binding:"required"`
	Description           string          `json:"description" binding:"required"`
	DiscountType          string          `json:"discountType" binding:"required,discounttype"`
	DiscountValue         decimal.Decimal `json:"discountValue"`
	MinimumOrderAmount    int64           `json:"minimumOrderAmount" binding:"gte=0"`
	MaximumDiscountAmount *int64          `json:"maximumDiscountAmount"`
	ExpiryDate            string          `json:"expiryDate" binding:"required"`
	UsageLimit            *int64          `json:"usageLimit"`
	ApplicableCategories  []string        `json:"applicableCategories"`
	ExcludedCategories    []string        `json:"excludedCategories"`
}

var expiryLayouts = []string{time.RFC3339, "2006-01-02"}

// ToInput converts the request into use case input.
func (r CouponRequest) ToInput() (usecase.CouponInput, bool) {
	var expiry time.Time
	var parsed bool
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, r.ExpiryDate); err == nil {
			expiry, parsed = t, true
			break
		}
	}
	if !parsed {
		return usecase.CouponInput{}, false
	}
	return usecase.CouponInput{
		Code:                  r.Code,
		Description:           r.Description,
		DiscountType:          model.DiscountType(r.DiscountType),
		DiscountValue:         r.DiscountValue,
		MinimumOrderAmount:    r.MinimumOrderAmount,
		MaximumDiscountAmount: r.MaximumDiscountAmount,
		ExpiryDate:            expiry,
		UsageLimit:            r.UsageLimit,
		ApplicableCategories:  r.ApplicableCategories,
		ExcludedCategories:    r.ExcludedCategories,
	}, true
}

// IDRequest identifies an entity by id.
type IDRequest struct {
	ID string `json:"id" binding:"required"`
}

// CouponStatusRequest toggles a coupon.
type CouponStatusRequest struct {
	ID       string `json:"id" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

// ApplyCouponRequest quotes a coupon against a cart of product id to quantity.
type ApplyCouponRequest struct {
	Code      string           `json:"code"`
	CartItems map[string]int64 `json:"cartItems"`
}

// CouponResponse is the admin view of a coupon.
type CouponResponse struct {
	ID                    string    `json:"_id"`
	Code                  string    `json:"code"`
	Description           string    `json:"description"`
	DiscountType          string    `json:"discountType"`
	DiscountValue         float64   `json:"discountValue"`
	MinimumOrderAmount    int64     `json:"minimumOrderAmount"`
	MaximumDiscountAmount *int64    `json:"maximumDiscountAmount"`
	ExpiryDate            time.Time `json:"expiryDate"`
	UsageLimit            *int64    `json:"usageLimit"`
	UsedCount             int64     `json:"usedCount"`
	IsActive              bool      `json:"isActive"`
	ApplicableCategories  []string  `json:"applicableCategories"`
	ExcludedCategories    []string  `json:"excludedCategories"`
	CreatedBy             string    `json:"createdBy"`
	CreatedDate           time.Time `json:"createdDate"`
}

// NewCouponResponse projects a coupon for the admin panel.
func NewCouponResponse(c model.Coupon) CouponResponse {
	return CouponResponse{
		ID:                    c.ID,
		Code:                  c.Code,
		Description:           c.Description,
		DiscountType:          string(c.DiscountType),
		DiscountValue:         c.DiscountValue.InexactFloat64(),
		MinimumOrderAmount:    c.MinimumOrderAmount,
		MaximumDiscountAmount: c.MaximumDiscountAmount,
		ExpiryDate:            c.ExpiryDate,
		UsageLimit:            c.UsageLimit,
		UsedCount:             c.UsedCount,
		IsActive:              c.IsActive,
		ApplicableCategories:  nonNil(c.ApplicableCategories),
		ExcludedCategories:    nonNil(c.ExcludedCategories),
		CreatedBy:             c.CreatedBy,
		CreatedDate:           c.CreatedAt,
	}
}

// PublicCouponResponse is the storefront view of an active coupon.
type PublicCouponResponse struct {
	Code               string    `json:"code"`
	Description        string    `json:"description"`
	DiscountType       string    `json:"discountType"`
	DiscountValue      float64   `json:"discountValue"`
	MinimumOrderAmount int64     `json:"minimumOrderAmount"`
	ExpiryDate         time.Time `json:"expiryDate"`
}

// NewPublicCouponResponse projects a public coupon.
func NewPublicCouponResponse(c model.PublicCoupon) PublicCouponResponse {
	return PublicCouponResponse{
		Code:               c.Code,
		Description:        c.Description,
		DiscountType:       string(c.DiscountType),
		DiscountValue:      c.DiscountValue.InexactFloat64(),
		MinimumOrderAmount: c.MinimumOrderAmount,
		ExpiryDate:         c.ExpiryDate,
	}
}

// QuoteResponse is the result of applying a coupon to a cart.
type QuoteResponse struct {
	Code             string   `json:"code"`
	DiscountType     string   `json:"discountType"`
	DiscountValue    float64  `json:"discountValue"`
	DiscountAmount   int64    `json:"discountAmount"`
	ApplicableAmount int64    `json:"applicableAmount"`
	SkippedItems     []string `json:"skippedItems,omitempty"`
}

// NewQuoteResponse projects a coupon quote.
func NewQuoteResponse(q *usecase.CouponQuote) QuoteResponse {
	return QuoteResponse{
		Code:             q.Coupon.Code,
		DiscountType:     string(q.Coupon.DiscountType),
		DiscountValue:    q.Coupon.DiscountValue.InexactFloat64(),
		DiscountAmount:   q.DiscountAmount,
		ApplicableAmount: q.ApplicableAmount,
		SkippedItems:     q.SkippedItems,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
