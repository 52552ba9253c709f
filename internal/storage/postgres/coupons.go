package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

const couponColumns = `id, code, description, discount_type, discount_value, minimum_order_amount,
maximum_discount_amount, expiry_date, usage_limit, used_count, is_active, applicable_categories,
excluded_categories, created_by, created_at`

type couponRepository struct {
	storage *Storage
}

func scanCoupon(row scanner) (model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.MinimumOrderAmount, &c.MaximumDiscountAmount, &c.ExpiryDate, &c.UsageLimit, &c.UsedCount,
		&c.IsActive, &c.ApplicableCategories, &c.ExcludedCategories, &c.CreatedBy, &c.CreatedAt)
	return c, err
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	const query = `INSERT INTO coupons (id, code, description, discount_type, discount_value,
                   minimum_order_amount, maximum_discount_amount, expiry_date, usage_limit, used_count,
                   is_active, applicable_categories, excluded_categories, created_by, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.storage.pool.Exec(ctx, query, c.ID, c.Code, c.Description, c.DiscountType, c.DiscountValue,
		c.MinimumOrderAmount, c.MaximumDiscountAmount, c.ExpiryDate, c.UsageLimit, c.UsedCount, c.IsActive,
		nonNil(c.ApplicableCategories), nonNil(c.ExcludedCategories), c.CreatedBy, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrCouponExists
		}
		return err
	}
	return nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code=$1`
	c, err := scanCoupon(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *couponRepository) ListActive(ctx context.Context, now time.Time) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE is_active AND expiry_date > $1 ORDER BY created_at DESC`
	return r.list(ctx, query, now)
}

func (r *couponRepository) list(ctx context.Context, query string, args ...any) ([]model.Coupon, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *couponRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE coupons SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// redeemCouponTx consumes one use of a coupon if it is still redeemable at now.
func redeemCouponTx(ctx context.Context, tx pgx.Tx, code string, now time.Time) error {
	const query = `UPDATE coupons SET used_count = used_count + 1
                   WHERE code=$1 AND is_active AND expiry_date > $2
                   AND (usage_limit IS NULL OR used_count < usage_limit)`
	tag, err := tx.Exec(ctx, query, code, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrCouponNotRedeemable
	}
	return nil
}

func releaseCouponTx(ctx context.Context, tx pgx.Tx, code string) error {
	_, err := tx.Exec(ctx, `UPDATE coupons SET used_count = GREATEST(used_count - 1, 0) WHERE code=$1`, code)
	return err
}
