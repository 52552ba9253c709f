package repository

import (
	"context"

	"github.com/trivima/assetstore/internal/domain/model"
)

// ReviewRepository persists product reviews and keeps product rating aggregates in sync.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]model.Review, error)
}
