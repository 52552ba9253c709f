package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trivima/assetstore/internal/server/http/dto"
)

// ReviewHandler serves verified-purchase reviews.
type ReviewHandler struct {
	facade ReviewFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Add handles POST /api/review/add.
func (h *ReviewHandler) Add(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.facade.AddReview(c.Request.Context(), CurrentIdentity(c).UserID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review added successfully",
		"review":  dto.NewReviewResponse(*review),
	})
}

// ProductReviews handles POST /api/review/product-reviews.
func (h *ReviewHandler) ProductReviews(c *gin.Context) {
	var req dto.ProductIDRequest
	if !bindJSON(c, &req) {
		return
	}
	summary, err := h.facade.ProductReviews(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewSummaryResponse(summary))
}

// UserReviews handles POST /api/review/user-reviews.
func (h *ReviewHandler) UserReviews(c *gin.Context) {
	reviews, err := h.facade.UserReviews(c.Request.Context(), CurrentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.NewReviewResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": out})
}

// ReviewableProducts handles POST /api/review/reviewable-products.
func (h *ReviewHandler) ReviewableProducts(c *gin.Context) {
	items, err := h.facade.ReviewableProducts(c.Request.Context(), CurrentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviewableProducts": dto.NewReviewableResponses(items)})
}
