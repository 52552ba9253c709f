package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
)

const maxReviewComment = 500

// ReviewInput is a customer's review of one product in one of their orders.
type ReviewInput struct {
	ProductID string
	OrderID   string
	Rating    int
	Comment   string
}

// ReviewService records verified-purchase reviews.
type ReviewService struct {
	reviews  repository.ReviewRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	policy   *bluemonday.Policy
	now     func() time.Time
}

// NewReviewService constructs ReviewService.
func NewReviewService(reviews repository.ReviewRepository, orders repository.OrderRepository, users repository.UserRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		orders:   orders,
		users:    users,
		products: products,
		policy:   bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

// Add stores a review. Only products of the caller's completed orders can be reviewed,
// once per product.
func (s *ReviewService) Add(ctx context.Context, userID string, in ReviewInput) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domainErrors.ErrInvalidRating
	}
	comment := strings.TrimSpace(s.policy.Sanitize(in.Comment))
	if in.ProductID == "" || in.OrderID == "" || comment == "" {
		return nil, fmt.Errorf("%w: all fields are required", domainErrors.ErrValidation)
	}
	if utf8.RuneCountInString(comment) > maxReviewComment {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", domainErrors.ErrValidation, maxReviewComment)
	}

	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, domainErrors.ErrReviewNotAllowed
	}
	if !order.HasItem(in.ProductID) {
		return nil, domainErrors.ErrProductNotInOrder
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrForbidden
		}
		return nil, err
	}

	review := &model.Review{
		ID:         uuid.NewString(),
		UserID:     userID,
		UserName:   user.Name,
		ProductID:  in.ProductID,
		OrderID:    in.OrderID,
		Rating:     in.Rating,
		Comment:    comment,
		IsVerified: true,
		Date:       s.now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ProductReviews returns a product's reviews, newest first, with rating statistics.
func (s *ReviewService) ProductReviews(ctx context.Context, productID string) (*model.ReviewSummary, error) {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	summary := &model.ReviewSummary{
		Reviews:      reviews,
		TotalReviews: len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary, nil
	}

	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
		summary.Distribution[r.Rating]++
	}
	summary.AverageRating = decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(reviews)))).
		Round(1).
		InexactFloat64()
	return summary, nil
}

// UserReviews returns the reviews userID wrote, newest first.
func (s *ReviewService) UserReviews(ctx context.Context, userID string) ([]model.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

// Reviewable lists the products of userID's completed orders that are still in the
// catalog and not reviewed yet. A product bought in several orders is listed once,
// against its most recent order.
func (s *ReviewService) Reviewable(ctx context.Context, userID string) ([]model.ReviewableItem, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		seen[r.ProductID] = true
	}

	var candidates []model.ReviewableItem
	var ids []string
	for _, order := range orders {
		if order.Status != model.OrderStatusCompleted {
			continue
		}
		for _, item := range order.Items {
			if seen[item.ProductID] {
				continue
			}
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
			candidates = append(candidates, model.ReviewableItem{Item: item, OrderID: order.ID, OrderDate: order.Date})
		}
	}
	if len(candidates) == 0 {
		return []model.ReviewableItem{}, nil
	}

	catalog, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]model.ReviewableItem, 0, len(candidates))
	for _, c := range candidates {
		product, ok := catalog[c.Item.ProductID]
		if !ok {
			continue
		}
		c.Product = product
		result = append(result, c)
	}
	return result, nil
}
