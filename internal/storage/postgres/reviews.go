package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

type reviewRepository struct {
	storage *Storage
}

// Create stores the review and refreshes the product's rating aggregates in the same transaction.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO reviews (id, user_id, user_name, product_id, order_id, rating, comment, is_verified, created_at)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := tx.Exec(ctx, insert, review.ID, review.UserID, review.UserName, review.ProductID,
			review.OrderID, review.Rating, review.Comment, review.IsVerified, review.Date); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyReviewed
			}
			return err
		}

		const aggregate = `UPDATE products SET
                           average_rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE product_id=$1), 0),
                           total_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id=$1)
                           WHERE id=$1`
		_, err := tx.Exec(ctx, aggregate, review.ProductID)
		return err
	})
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	return r.list(ctx, "product_id", productID)
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	return r.list(ctx, "user_id", userID)
}

// list returns reviews whose column equals value, newest first. column is never user input.
func (r *reviewRepository) list(ctx context.Context, column, value string) ([]model.Review, error) {
	query := `SELECT id, user_id, user_name, product_id, order_id, rating, comment, is_verified, created_at
              FROM reviews WHERE ` + column + `=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.ProductID, &rv.OrderID, &rv.Rating,
			&rv.Comment, &rv.IsVerified, &rv.Date); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
