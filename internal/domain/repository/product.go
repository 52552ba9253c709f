package repository

import (
	"context"

	"github.com/trivima/assetstore/internal/domain/model"
)

// ProductRepository persists catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// GetByIDs returns the products that exist, keyed by id. Missing ids are absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id string) error
	// AddStock increases stock and returns the new level.
	AddStock(ctx context.Context, id string, quantity int64) (int64, error)
	// RemoveStock decreases stock, clamped at zero, and returns the new level.
	RemoveStock(ctx context.Context, id string, quantity int64) (int64, error)
}
