package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

const orderColumns = `id, user_id, items, amount, original_amount, address, status, payment_method, payment,
COALESCE(paypal_order_id, ''), COALESCE(paypal_payment_id, ''), COALESCE(paypal_payer_id, ''),
coupon_code, coupon_discount, coupon_type, created_at`

type orderRepository struct {
	storage *Storage
}

func scanOrder(row scanner) (model.Order, error) {
	var (
		o              model.Order
		items, address []byte
		couponCode     *string
		couponDiscount int64
		couponType     *string
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &o.Amount, &o.OriginalAmount, &address, &o.Status,
		&o.PaymentMethod, &o.Payment, &o.PayPalOrderID, &o.PayPalPaymentID, &o.PayPalPayerID,
		&couponCode, &couponDiscount, &couponType, &o.Date)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return o, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &o.Address); err != nil {
			return o, fmt.Errorf("decode address of order %s: %w", o.ID, err)
		}
	}
	if couponCode != nil {
		o.Coupon = &model.AppliedCoupon{Code: *couponCode, Discount: couponDiscount}
		if couponType != nil {
			o.Coupon.Type = model.DiscountType(*couponType)
		}
	}
	return o, nil
}

func (r *orderRepository) Place(ctx context.Context, order *model.Order, now time.Time) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}

	var (
		couponCode     *string
		couponDiscount int64
		couponType     *string
	)
	if order.Coupon != nil {
		couponCode = &order.Coupon.Code
		couponDiscount = order.Coupon.Discount
		kind := string(order.Coupon.Type)
		couponType = &kind
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO orders (id, user_id, items, amount, original_amount, address, status,
                        payment_method, payment, coupon_code, coupon_discount, coupon_type, created_at)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12)`
		if _, err := tx.Exec(ctx, insert, order.ID, order.UserID, items, order.Amount, order.OriginalAmount,
			address, order.Status, order.PaymentMethod, couponCode, couponDiscount, couponType, order.Date); err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := reserveStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if couponCode != nil {
			if err := redeemCouponTx(ctx, tx, *couponCode, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) Discard(ctx context.Context, orderID string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockUnpaidOrderTx(ctx, tx, `id=$1`, orderID)
		if err != nil {
			return err
		}
		if err := restoreOrderTx(ctx, tx, order); err != nil {
			return err
		}
		if order.Coupon != nil {
			if err := releaseCouponTx(ctx, tx, order.Coupon.Code); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) CancelUnpaid(ctx context.Context, orderID, userID string) (*model.Order, error) {
	var cancelled *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockUnpaidOrderTx(ctx, tx, `id=$1 AND user_id=$2`, orderID, userID)
		if err != nil {
			return err
		}
		if err := restoreOrderTx(ctx, tx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func lockUnpaidOrderTx(ctx context.Context, tx pgx.Tx, where string, args ...any) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where + ` FOR UPDATE`
	order, err := scanOrder(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	if order.Payment {
		return nil, domainErrors.ErrOrderAlreadyPaid
	}
	return &order, nil
}

// restoreOrderTx gives every line item's quantity back to stock and deletes the order.
func restoreOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	for _, item := range order.Items {
		if err := releaseStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	_, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, order.ID)
	return err
}

func (r *orderRepository) AttachPayPalOrder(ctx context.Context, orderID, paypalOrderID string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET paypal_order_id=$1 WHERE id=$2`, paypalOrderID, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return r.get(ctx, `id=$1`, id)
}

func (r *orderRepository) GetByPayPalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error) {
	return r.get(ctx, `paypal_order_id=$1`, paypalOrderID)
}

func (r *orderRepository) get(ctx context.Context, where, arg string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID, paymentID, payerID string, now time.Time) (bool, error) {
	var updated bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders SET payment=TRUE, status=$1, paypal_payment_id=$2, paypal_payer_id=$3
                        WHERE id=$4 AND payment=FALSE`
		tag, err := tx.Exec(ctx, update, model.OrderStatusAssetReady, paymentID, payerID, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		updated = true

		const enqueue = `INSERT INTO deliveries (id, order_id, status, attempts, next_attempt_at, created_at, updated_at)
                         VALUES ($1, $2, $3, 0, $4, $4, $4)
                         ON CONFLICT (order_id) DO NOTHING`
		_, err = tx.Exec(ctx, enqueue, uuid.NewString(), orderID, model.DeliveryPending, now)
		return err
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}
