package repository

import (
	"context"
	"time"

	"github.com/trivima/assetstore/internal/domain/model"
)

// CouponRepository persists coupons. Lookups by code expect the normalized form.
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Coupon, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}
