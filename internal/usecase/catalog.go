package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
)

// ProductInput carries a new catalog entry.
type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Cost        int64
	Category    string
	SubCategory string
	Images      []string
	Bestseller  bool
	Tag         model.ProductTag
	Stock       int64
	AssetURL    string
	AssetType   model.AssetType
	FileSize    string
	FileFormat  string
}

// CatalogService administers products and their stock.
type CatalogService struct {
	products repository.ProductRepository
	now      func() time.Time
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products, now: time.Now}
}

// Add validates and stores a product.
func (s *CatalogService) Add(ctx context.Context, in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: name and category are required", domainErrors.ErrValidation)
	}
	if in.Price < 0 || in.Cost < 0 || in.Stock < 0 {
		return nil, fmt.Errorf("%w: price, cost and stock must not be negative", domainErrors.ErrValidation)
	}
	if in.Tag != "" && !in.Tag.Valid() {
		return nil, fmt.Errorf("%w: unknown tag %q", domainErrors.ErrValidation, in.Tag)
	}

	assetType := in.AssetType
	if assetType == "" {
		assetType = model.AssetTypeUpload
	}
	if !assetType.Valid() {
		return nil, fmt.Errorf("%w: unknown asset type %q", domainErrors.ErrValidation, in.AssetType)
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Images:      in.Images,
		Bestseller:  in.Bestseller,
		Tag:         in.Tag,
		Stock:       in.Stock,
		AssetURL:    strings.TrimSpace(in.AssetURL),
		AssetType:   assetType,
		FileSize:    in.FileSize,
		FileFormat:  in.FileFormat,
		CreatedAt:   s.now(),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) Remove(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// AddStock increases a product's stock and returns the new level.
func (s *CatalogService) AddStock(ctx context.Context, id string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", domainErrors.ErrValidation)
	}
	return s.products.AddStock(ctx, id, quantity)
}

// RemoveStock decreases a product's stock, never below zero, and returns the new level.
func (s *CatalogService) RemoveStock(ctx context.Context, id string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", domainErrors.ErrValidation)
	}
	return s.products.RemoveStock(ctx, id, quantity)
}
