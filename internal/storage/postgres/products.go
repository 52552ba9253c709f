package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

const productColumns = `id, name, description, price, cost, category, sub_category, images, bestseller, tag,
stock, asset_url, asset_type, file_size, file_format, average_rating, total_reviews, created_at`

type productRepository struct {
	storage *Storage
}

func scanProduct(row scanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Category, &p.SubCategory,
		&p.Images, &p.Bestseller, &p.Tag, &p.Stock, &p.AssetURL, &p.AssetType, &p.FileSize,
		&p.FileFormat, &p.AverageRating, &p.TotalReviews, &p.CreatedAt)
	return p, err
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	const query = `INSERT INTO products (id, name, description, price, cost, category, sub_category, images,
                   bestseller, tag, stock, asset_url, asset_type, file_size, file_format, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	images := p.Images
	if images == nil {
		images = []string{}
	}
	_, err := r.storage.pool.Exec(ctx, query, p.ID, p.Name, p.Description, p.Price, p.Cost, p.Category,
		p.SubCategory, images, p.Bestseller, p.Tag, p.Stock, p.AssetURL, p.AssetType, p.FileSize,
		p.FileFormat, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	result := make(map[string]model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) AddStock(ctx context.Context, id string, quantity int64) (int64, error) {
	const query = `UPDATE products SET stock = stock + $1 WHERE id=$2 RETURNING stock`
	return r.updateStock(ctx, query, id, quantity)
}

func (r *productRepository) RemoveStock(ctx context.Context, id string, quantity int64) (int64, error) {
	const query = `UPDATE products SET stock = GREATEST(stock - $1, 0) WHERE id=$2 RETURNING stock`
	return r.updateStock(ctx, query, id, quantity)
}

func (r *productRepository) updateStock(ctx context.Context, query, id string, quantity int64) (int64, error) {
	var stock int64
	if err := r.storage.pool.QueryRow(ctx, query, quantity, id).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrProductNotFound
		}
		return 0, err
	}
	return stock, nil
}

// reserveStockTx takes quantity units of a product or fails without touching it.
func reserveStockTx(ctx context.Context, tx pgx.Tx, productID string, quantity int64) error {
	const query = `UPDATE products SET stock = stock - $1 WHERE id=$2 AND stock >= $1`
	tag, err := tx.Exec(ctx, query, quantity, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return &domainErrors.StockError{ProductID: productID, Err: domainErrors.ErrProductNotFound}
	}
	return &domainErrors.StockError{ProductID: productID, Err: domainErrors.ErrInsufficientStock}
}

// releaseStockTx returns quantity units to a product. Deleted products are ignored.
func releaseStockTx(ctx context.Context, tx pgx.Tx, productID string, quantity int64) error {
	_, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $1 WHERE id=$2`, quantity, productID)
	return err
}
