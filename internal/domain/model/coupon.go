package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType tells how a coupon's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Valid reports whether t is one of the known discount kinds.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Coupon is a named discount rule with eligibility constraints and a usage cap.
// Monetary fields are whole currency units.
type Coupon struct {
	ID                    string
	Code                  string
	Description           string
	DiscountType          DiscountType
	DiscountValue         decimal.Decimal
	MinimumOrderAmount    int64
	MaximumDiscountAmount *int64
	ExpiryDate            time.Time
	UsageLimit            *int64
	UsedCount             int64
	IsActive              bool
	ApplicableCategories  []string
	ExcludedCategories    []string
	CreatedBy             string
	CreatedAt             time.Time
}

// NormalizeCouponCode returns the canonical, case-insensitive form of a coupon code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Expired reports whether the coupon is past its expiry at now.
func (c *Coupon) Expired(now time.Time) bool {
	return !c.ExpiryDate.After(now)
}

// UsageExhausted reports whether the usage limit has been reached. A nil limit is unlimited.
func (c *Coupon) UsageExhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// Redeemable reports whether the coupon is active, unexpired and under its usage limit.
func (c *Coupon) Redeemable(now time.Time) bool {
	return c.IsActive && !c.Expired(now) && !c.UsageExhausted()
}

// AppliesTo evaluates the category rules for a single product category.
// The excluded list wins over the allow list; an empty allow list admits everything.
func (c *Coupon) AppliesTo(category string) bool {
	for _, excluded := range c.ExcludedCategories {
		if excluded == category {
			return false
		}
	}
	if len(c.ApplicableCategories) == 0 {
		return true
	}
	for _, allowed := range c.ApplicableCategories {
		if allowed == category {
			return true
		}
	}
	return false
}

// PublicCoupon is the projection of a coupon that storefront clients may see.
type PublicCoupon struct {
	Code               string
	Description        string
	DiscountType       DiscountType
	DiscountValue      decimal.Decimal
	MinimumOrderAmount int64
	ExpiryDate         time.Time
}

// Public projects the coupon onto its public fields.
func (c *Coupon) Public() PublicCoupon {
	return PublicCoupon{
		Code:               c.Code,
		Description:        c.Description,
		DiscountType:       c.DiscountType,
		DiscountValue:      c.DiscountValue,
		MinimumOrderAmount: c.MinimumOrderAmount,
		ExpiryDate:         c.ExpiryDate,
	}
}
