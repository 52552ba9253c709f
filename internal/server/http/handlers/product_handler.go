package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trivima/assetstore/internal/server/http/dto"
)

// ProductHandler serves the catalog.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Add handles POST /api/product/add.
func (h *ProductHandler) Add(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.facade.AddProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product added",
		"product": dto.NewProductResponse(*product),
	})
}

// List handles GET /api/product/list.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.NewProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": out})
}

// Single handles POST /api/product/single.
func (h *ProductHandler) Single(c *gin.Context) {
	var req dto.ProductIDRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": dto.NewProductResponse(*product)})
}

// Remove handles POST /api/product/remove.
func (h *ProductHandler) Remove(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.RemoveProduct(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Product removed"))
}

// AddStock handles POST /api/product/add-stock.
func (h *ProductHandler) AddStock(c *gin.Context) {
	var req dto.StockRequest
	if !bindJSON(c, &req) {
		return
	}
	stock, err := h.facade.AddStock(c.Request.Context(), req.ID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StockResponse{Success: true, Message: "Stock added", Stock: stock})
}

// RemoveStock handles POST /api/product/remove-stock. Stock never drops below zero.
func (h *ProductHandler) RemoveStock(c *gin.Context) {
	var req dto.StockRequest
	if !bindJSON(c, &req) {
		return
	}
	stock, err := h.facade.RemoveStock(c.Request.Context(), req.ID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StockResponse{Success: true, Message: "Stock removed", Stock: stock})
}
