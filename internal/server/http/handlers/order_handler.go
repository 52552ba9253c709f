package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/server/http/dto"
)

// OrderHandler manages checkout and order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// PlacePayPal handles POST /api/order/paypal.
func (h *OrderHandler) PlacePayPal(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.facade.PlaceOrder(c.Request.Context(), req.ToCheckout(CurrentIdentity(c).UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PlaceOrderResponse{
		Success:       true,
		PayPalOrderID: result.PayPalOrderID,
		OrderID:       result.OrderID,
	})
}

// VerifyPayPal handles POST /api/order/verifyPayPal. Unlike the other
// endpoints it reports failures through the HTTP status as well.
func (h *OrderHandler) VerifyPayPal(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PayPalOrderID) == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("PayPal order ID is required"))
		return
	}

	order, err := h.facade.VerifyPayment(c.Request.Context(), req.PayPalOrderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			c.JSON(http.StatusBadRequest, dto.Fail("Order not found"))
		case errors.Is(err, domainErrors.ErrPaymentNotCompleted):
			c.JSON(http.StatusBadRequest, dto.Fail("Payment not completed"))
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, dto.Fail(message(err)))
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, dto.Fail(message(err)))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"order":   dto.NewOrderResponse(*order),
	})
}

// UserOrders handles POST /api/order/userorders.
func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.facade.UserOrders(c.Request.Context(), CurrentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": dto.NewOrderResponses(orders)})
}

// CancelUserOrder handles POST /api/order/remove-userOrder. Only unpaid orders
// owned by the caller can be cancelled; their stock is restored.
func (h *OrderHandler) CancelUserOrder(c *gin.Context) {
	var req dto.OrderIDRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.facade.CancelOrder(c.Request.Context(), CurrentIdentity(c).UserID, req.OrderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Order cancelled"))
}

// List handles POST /api/order/list.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": dto.NewOrderResponses(orders)})
}

// UpdateStatus handles POST /api/order/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.UpdateOrderStatus(c.Request.Context(), req.OrderID, model.OrderStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Status updated"))
}

// Remove handles POST /api/order/remove. Stock is not restored.
func (h *OrderHandler) Remove(c *gin.Context) {
	var req dto.OrderIDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.RemoveOrder(c.Request.Context(), req.OrderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Order removed"))
}
