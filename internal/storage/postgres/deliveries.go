package postgres

import (
	"context"
	"time"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

type deliveryRepository struct {
	storage *Storage
}

func (r *deliveryRepository) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]model.DeliveryTask, error) {
	const query = `UPDATE deliveries SET next_attempt_at=$2, updated_at=$1
                   WHERE id IN (
                       SELECT id FROM deliveries
                       WHERE status='PENDING' AND next_attempt_at <= $1
                       ORDER BY next_attempt_at
                       LIMIT $3
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING id, order_id, status, attempts, last_error, next_attempt_at, created_at, updated_at`
	rows, err := r.storage.pool.Query(ctx, query, now, now.Add(lease), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.DeliveryTask
	for rows.Next() {
		var t model.DeliveryTask
		if err := rows.Scan(&t.ID, &t.OrderID, &t.Status, &t.Attempts, &t.LastError, &t.NextAttemptAt,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *deliveryRepository) MarkSent(ctx context.Context, id string, now time.Time) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE deliveries SET status=$1, last_error='', updated_at=$2 WHERE id=$3`,
		model.DeliverySent, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *deliveryRepository) MarkFailed(ctx context.Context, id string, attempts int, lastErr string, next time.Time, final bool) error {
	status := model.DeliveryPending
	if final {
		status = model.DeliveryFailed
	}
	const query = `UPDATE deliveries SET status=$1, attempts=$2, last_error=$3, next_attempt_at=$4, updated_at=NOW() WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, status, attempts, lastErr, next, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
