package repository

import (
	"context"
	"time"

	"github.com/trivima/assetstore/internal/domain/model"
)

// DeliveryRepository is the outbox of pending download emails.
type DeliveryRepository interface {
	// ClaimDue leases up to limit pending tasks whose next attempt is due. A claimed task
	// is hidden from other claimers until lease elapses.
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]model.DeliveryTask, error)
	MarkSent(ctx context.Context, id string, now time.Time) error
	MarkFailed(ctx context.Context, id string, attempts int, lastErr string, next time.Time, final bool) error
}
