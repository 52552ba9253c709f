package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trivima/assetstore/internal/server/http/dto"
)

// CouponHandler serves coupon administration and the storefront quote.
type CouponHandler struct {
	facade CouponFacade
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(facade CouponFacade) *CouponHandler {
	return &CouponHandler{facade: facade}
}

// Add handles POST /api/coupon/add.
func (h *CouponHandler) Add(c *gin.Context) {
	var req dto.CouponRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := req.ToInput()
	if !ok {
		c.JSON(http.StatusOK, dto.Fail("expiryDate is invalid"))
		return
	}

	coupon, err := h.facade.AddCoupon(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coupon created successfully",
		"coupon":  dto.NewCouponResponse(*coupon),
	})
}

// List handles GET /api/coupon/list.
func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.facade.Coupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		out = append(out, dto.NewCouponResponse(coupon))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupons": out})
}

// Remove handles POST /api/coupon/remove.
func (h *CouponHandler) Remove(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.RemoveCoupon(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Coupon deleted successfully"))
}

// UpdateStatus handles POST /api/coupon/update-status.
func (h *CouponHandler) UpdateStatus(c *gin.Context) {
	var req dto.CouponStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.SetCouponActive(c.Request.Context(), req.ID, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Coupon status updated successfully"))
}

// Apply handles POST /api/coupon/apply. It quotes without consuming the coupon.
func (h *CouponHandler) Apply(c *gin.Context) {
	var req dto.ApplyCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.facade.ApplyCoupon(c.Request.Context(), req.Code, req.CartItems)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coupon applied successfully",
		"coupon":  dto.NewQuoteResponse(quote),
	})
}

// Active handles GET /api/coupon/active.
func (h *CouponHandler) Active(c *gin.Context) {
	coupons, err := h.facade.ActiveCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.PublicCouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		out = append(out, dto.NewPublicCouponResponse(coupon))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupons": out})
}
