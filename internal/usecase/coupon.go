package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
)

const couponCreator = "admin"

// CouponInput carries the administrator supplied terms of a new coupon.
type CouponInput struct {
	Code                  string
	Description           string
	DiscountType          model.DiscountType
	DiscountValue         decimal.Decimal
	MinimumOrderAmount    int64
	MaximumDiscountAmount *int64
	ExpiryDate            time.Time
	UsageLimit            *int64
	ApplicableCategories  []string
	ExcludedCategories    []string
}

// CouponService manages coupons and prices carts against them.
type CouponService struct {
	coupons  repository.CouponRepository
	products repository.ProductRepository
	policy   *bluemonday.Policy
	now      func() time.Time
}

// NewCouponService constructs CouponService.
func NewCouponService(coupons repository.CouponRepository, products repository.ProductRepository) *CouponService {
	return &CouponService{
		coupons:  coupons,
		products: products,
		policy:   bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

// Apply validates code against cart and quotes the discount. Usage is not consumed.
func (s *CouponService) Apply(ctx context.Context, code string, cart map[string]int64) (*CouponQuote, error) {
	code = model.NormalizeCouponCode(code)
	if code == "" {
		return nil, domainErrors.ErrCouponCodeRequired
	}

	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCoupon
		}
		return nil, err
	}

	ids := make([]string, 0, len(cart))
	for id, qty := range cart {
		if qty > 0 {
			ids = append(ids, id)
		}
	}

	catalog := map[string]model.Product{}
	if len(ids) > 0 {
		if catalog, err = s.products.GetByIDs(ctx, ids); err != nil {
			return nil, fmt.Errorf("load cart products: %w", err)
		}
	}

	return CalculateDiscount(coupon, cart, catalog, s.now())
}

// Active returns the public view of coupons that can currently be redeemed.
func (s *CouponService) Active(ctx context.Context) ([]model.PublicCoupon, error) {
	coupons, err := s.coupons.ListActive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	result := make([]model.PublicCoupon, 0, len(coupons))
	for i := range coupons {
		result = append(result, coupons[i].Public())
	}
	return result, nil
}

// Create validates and stores a new coupon.
func (s *CouponService) Create(ctx context.Context, in CouponInput) (*model.Coupon, error) {
	now := s.now()
	if err := validateCouponInput(in, now); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:                   uuid.NewString(),
		Code:                 model.NormalizeCouponCode(in.Code),
		Description:          strings.TrimSpace(s.policy.Sanitize(in.Description)),
		DiscountType:         in.DiscountType,
		DiscountValue:        in.DiscountValue,
		MinimumOrderAmount:   in.MinimumOrderAmount,
		ExpiryDate:           in.ExpiryDate,
		IsActive:             true,
		ApplicableCategories: in.ApplicableCategories,
		ExcludedCategories:   in.ExcludedCategories,
		CreatedBy:            couponCreator,
		CreatedAt:            now,
	}
	if in.DiscountType == model.DiscountPercentage && in.MaximumDiscountAmount != nil && *in.MaximumDiscountAmount > 0 {
		coupon.MaximumDiscountAmount = in.MaximumDiscountAmount
	}
	if in.UsageLimit != nil && *in.UsageLimit > 0 {
		coupon.UsageLimit = in.UsageLimit
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func validateCouponInput(in CouponInput, now time.Time) error {
	if model.NormalizeCouponCode(in.Code) == "" || strings.TrimSpace(in.Description) == "" || in.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: code, description, discount type, value and expiry date are required", domainErrors.ErrValidation)
	}
	if !in.DiscountType.Valid() {
		return fmt.Errorf("%w: unknown discount type %q", domainErrors.ErrValidation, in.DiscountType)
	}
	if in.DiscountValue.IsNegative() || in.MinimumOrderAmount < 0 {
		return fmt.Errorf("%w: amounts must not be negative", domainErrors.ErrValidation)
	}
	if in.DiscountType == model.DiscountPercentage && in.DiscountValue.GreaterThan(hundred) {
		return domainErrors.ErrPercentageExceeds100
	}
	if !in.ExpiryDate.After(now) {
		return domainErrors.ErrCouponExpiryInPast
	}
	return nil
}

// List returns every coupon, newest first.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.coupons.List(ctx)
}

// Remove deletes a coupon.
func (s *CouponService) Remove(ctx context.Context, id string) error {
	return s.coupons.Delete(ctx, id)
}

// SetActive toggles whether a coupon can be redeemed.
func (s *CouponService) SetActive(ctx context.Context, id string, active bool) error {
	return s.coupons.SetActive(ctx, id, active)
}
