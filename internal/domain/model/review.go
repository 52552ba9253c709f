package model

import "time"

// Review is a verified-purchase rating left against a completed order.
type Review struct {
	ID         string
	UserID     string
	UserName   string
	ProductID  string
	OrderID    string
	Rating     int
	Comment    string
	IsVerified bool
	Date       time.Time
}

// ReviewSummary aggregates the reviews of one product.
type ReviewSummary struct {
	Reviews       []Review
	TotalReviews  int
	AverageRating float64
	Distribution  map[int]int
}

// ReviewableItem is a purchased product the customer has not reviewed yet.
type ReviewableItem struct {
	Item      LineItem
	OrderID   string
	OrderDate time.Time
	Product   Product
}
