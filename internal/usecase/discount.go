package usecase

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// CouponQuote is the result of pricing a cart against a coupon.
type CouponQuote struct {
	Coupon           model.PublicCoupon
	CartAmount       int64
	ApplicableAmount int64
	DiscountAmount   int64
	// SkippedItems lists cart product ids that are no longer in the catalog.
	SkippedItems []string
}

// CalculateDiscount prices cart (product id to quantity) against coupon using the
// products in catalog. It never mutates the coupon.
func CalculateDiscount(coupon *model.Coupon, cart map[string]int64, catalog map[string]model.Product, now time.Time) (*CouponQuote, error) {
	if coupon == nil || !coupon.IsActive || coupon.Expired(now) {
		return nil, domainErrors.ErrInvalidCoupon
	}
	if coupon.UsageExhausted() {
		return nil, domainErrors.ErrUsageLimitExceeded
	}

	quote := &CouponQuote{Coupon: coupon.Public()}
	for _, id := range slices.Sorted(maps.Keys(cart)) {
		qty := cart[id]
		if qty <= 0 {
			continue
		}
		product, ok := catalog[id]
		if !ok {
			quote.SkippedItems = append(quote.SkippedItems, id)
			continue
		}
		line, ok := lineTotal(product.Price, qty)
		if !ok || quote.CartAmount > math.MaxInt64-line {
			return nil, fmt.Errorf("%w: quantity of %s is too large", domainErrors.ErrValidation, id)
		}
		quote.CartAmount += line
		if coupon.AppliesTo(product.Category) {
			quote.ApplicableAmount += line
		}
	}

	if quote.CartAmount < coupon.MinimumOrderAmount {
		return nil, &domainErrors.MinimumOrderError{Minimum: coupon.MinimumOrderAmount}
	}

	quote.DiscountAmount = discountFor(coupon, quote.ApplicableAmount)
	return quote, nil
}

// lineTotal multiplies price by qty, reporting false on int64 overflow.
func lineTotal(price, qty int64) (int64, bool) {
	if price > 0 && qty > math.MaxInt64/price {
		return 0, false
	}
	return price * qty, true
}

func discountFor(coupon *model.Coupon, applicable int64) int64 {
	base := decimal.NewFromInt(applicable)

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case model.DiscountPercentage:
		discount = base.Mul(coupon.DiscountValue).Div(hundred).Round(0)
		if coupon.MaximumDiscountAmount != nil {
			discount = decimal.Min(discount, decimal.NewFromInt(*coupon.MaximumDiscountAmount))
		}
	case model.DiscountFixed:
		discount = decimal.Min(coupon.DiscountValue.Round(0), base)
	}

	if discount.IsNegative() {
		return 0
	}
	return discount.IntPart()
}
