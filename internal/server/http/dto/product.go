package dto

import (
	"time"

	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/usecase"
)

// ProductRequest is the admin payload for a new product. Files are uploaded
// elsewhere; only their URLs travel here.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"gte=0"`
	Cost        int64    `json:"cost" binding:"gte=0"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"subCategory"`
	Images      []string `json:"image" binding:"omitempty,dive,url"`
	Bestseller  bool     `json:"bestseller"`
	Tag         string   `json:"tag" binding:"omitempty,oneof=topBundles hotNew mostPopular startHere"`
	Stock       int64    `json:"stock" binding:"gte=0"`
	ZipFile     string   `json:"zipFile" binding:"omitempty,url"`
	ZipFileType string   `json:"zipFileType" binding:"omitempty,oneof=upload drive_link"`
	FileSize    string   `json:"fileSize"`
	FileFormat  string   `json:"fileFormat"`
}

// ToInput converts the request into use case input.
func (r ProductRequest) ToInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Cost:        r.Cost,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Images:      r.Images,
		Bestseller:  r.Bestseller,
		Tag:         model.ProductTag(r.Tag),
		Stock:       r.Stock,
		AssetURL:    r.ZipFile,
		AssetType:   model.AssetType(r.ZipFileType),
		FileSize:    r.FileSize,
		FileFormat:  r.FileFormat,
	}
}

// ProductIDRequest looks up a single product.
type ProductIDRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// StockRequest adjusts a product's stock.
type StockRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// StockResponse reports stock after an adjustment.
type StockResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stock   int64  `json:"stock"`
}

// ProductResponse is the storefront view of a product. The asset link is
// withheld; buyers receive it by email once paid.
type ProductResponse struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	Category      string    `json:"category"`
	SubCategory   string    `json:"subCategory"`
	Images        []string  `json:"image"`
	Bestseller    bool      `json:"bestseller"`
	Tag           string    `json:"tag,omitempty"`
	Stock         int64     `json:"stock"`
	ZipFileType   string    `json:"zipFileType"`
	FileSize      string    `json:"fileSize,omitempty"`
	FileFormat    string    `json:"fileFormat,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int64     `json:"totalReviews"`
	Date          time.Time `json:"date"`
}

// NewProductResponse projects a product.
func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		SubCategory:   p.SubCategory,
		Images:        nonNil(p.Images),
		Bestseller:    p.Bestseller,
		Tag:           string(p.Tag),
		Stock:         p.Stock,
		ZipFileType:   string(p.AssetType),
		FileSize:      p.FileSize,
		FileFormat:    p.FileFormat,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		Date:          p.CreatedAt,
	}
}
