package model

import "time"

// AssetType distinguishes how a product's downloadable file is hosted.
type AssetType string

const (
	AssetTypeUpload    AssetType = "upload"
	AssetTypeDriveLink AssetType = "drive_link"
)

// Valid reports whether t is a known asset hosting type.
func (t AssetType) Valid() bool {
	return t == AssetTypeUpload || t == AssetTypeDriveLink
}

// ProductTag groups products on the storefront.
type ProductTag string

const (
	TagTopBundles  ProductTag = "topBundles"
	TagHotNew      ProductTag = "hotNew"
	TagMostPopular ProductTag = "mostPopular"
	TagStartHere   ProductTag = "startHere"
)

// Valid reports whether t is one of the storefront groupings.
func (t ProductTag) Valid() bool {
	switch t {
	case TagTopBundles, TagHotNew, TagMostPopular, TagStartHere:
		return true
	}
	return false
}

// Product is a sellable 3D asset bundle.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         int64
	Cost          int64
	Category      string
	SubCategory   string
	Images        []string
	Bestseller    bool
	Tag           ProductTag
	Stock         int64
	AssetURL      string
	AssetType     AssetType
	FileSize      string
	FileFormat    string
	AverageRating float64
	TotalReviews  int64
	CreatedAt     time.Time
}
