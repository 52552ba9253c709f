package dto

import (
	"strconv"
	"time"

	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/usecase"
)

// ReviewRequest submits a verified review.
type ReviewRequest struct {
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ToInput converts the request into use case input.
func (r ReviewRequest) ToInput() usecase.ReviewInput {
	return usecase.ReviewInput{
		ProductID: r.ProductID,
		OrderID:   r.OrderID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	ProductID  string    `json:"productId"`
	OrderID    string    `json:"orderId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsVerified bool      `json:"isVerified"`
	Date       time.Time `json:"date"`
}

// NewReviewResponse projects a review.
func NewReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		UserName:   r.UserName,
		ProductID:  r.ProductID,
		OrderID:    r.OrderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		Date:       r.Date,
	}
}

// ReviewSummaryResponse lists a product's reviews with aggregates.
type ReviewSummaryResponse struct {
	Success            bool             `json:"success"`
	Reviews            []ReviewResponse `json:"reviews"`
	TotalReviews       int              `json:"totalReviews"`
	AverageRating      float64          `json:"averageRating"`
	RatingDistribution map[string]int   `json:"ratingDistribution"`
}

// NewReviewSummaryResponse projects a review summary.
func NewReviewSummaryResponse(s *model.ReviewSummary) ReviewSummaryResponse {
	reviews := make([]ReviewResponse, 0, len(s.Reviews))
	for _, r := range s.Reviews {
		reviews = append(reviews, NewReviewResponse(r))
	}
	dist := make(map[string]int, 5)
	for star := 1; star <= 5; star++ {
		dist[strconv.Itoa(star)] = s.Distribution[star]
	}
	return ReviewSummaryResponse{
		Success:            true,
		Reviews:            reviews,
		TotalReviews:       s.TotalReviews,
		AverageRating:      s.AverageRating,
		RatingDistribution: dist,
	}
}

// ReviewableItemResponse is a purchased line item awaiting a review.
type ReviewableItemResponse struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Price          int64           `json:"price"`
	Quantity       int64           `json:"quantity"`
	Category       string          `json:"category"`
	OrderID        string          `json:"orderId"`
	OrderDate      int64           `json:"orderDate"`
	ProductDetails ProductResponse `json:"productDetails"`
}

// NewReviewableResponses projects reviewable items. OrderDate is milliseconds since the epoch.
func NewReviewableResponses(items []model.ReviewableItem) []ReviewableItemResponse {
	out := make([]ReviewableItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ReviewableItemResponse{
			ID:             it.Item.ProductID,
			Name:           it.Item.Name,
			Price:          it.Item.Price,
			Quantity:       it.Item.Quantity,
			Category:       it.Item.Category,
			OrderID:        it.OrderID,
			OrderDate:      it.OrderDate.UnixMilli(),
			ProductDetails: NewProductResponse(it.Product),
		})
	}
	return out
}
