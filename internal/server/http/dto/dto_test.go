package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"

	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/usecase"
)

func TestValidators(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"status ok", OrderStatusRequest{OrderID: "1", Status: "Digital Asset Ready"}, true},
		{"status unknown", OrderStatusRequest{OrderID: "1", Status: "Shipped"}, false},
		{"status missing", OrderStatusRequest{OrderID: "1"}, false},
		{"coupon type ok", PlaceOrderRequest{CouponType: "fixed"}, true},
		{"coupon type empty", PlaceOrderRequest{}, true},
		{"coupon type unknown", PlaceOrderRequest{CouponType: "bogo"}, false},
		{"coupon request bad type", CouponRequest{Code: "A", Description: "d", DiscountType: "free", ExpiryDate: "2030-01-01"}, false},
		{"product bad tag", ProductRequest{Name: "n", Category: "c", Tag: "cheap"}, false},
		{"product drive link", ProductRequest{Name: "n", Category: "c", ZipFile: "https://drive.google.com/file/d/x/view", ZipFileType: "drive_link"}, true},
		{"stock zero", StockRequest{ID: "p", Quantity: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.value)
			if tc.ok && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCouponRequestToInput(t *testing.T) {
	req := CouponRequest{
		Code:          "save10",
		Description:   "Ten off",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
		ExpiryDate:    "2030-01-02",
	}
	in, ok := req.ToInput()
	if !ok {
		t.Fatal("expected date to parse")
	}
	if !in.ExpiryDate.Equal(time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)) || in.DiscountType != model.DiscountPercentage {
		t.Fatalf("unexpected input %+v", in)
	}

	req.ExpiryDate = "2030-01-02T10:00:00Z"
	if _, ok := req.ToInput(); !ok {
		t.Fatal("expected RFC 3339 date to parse")
	}
	req.ExpiryDate = "tomorrow"
	if _, ok := req.ToInput(); ok {
		t.Fatal("expected parse failure")
	}
}

func TestPlaceOrderRequestToCheckout(t *testing.T) {
	original := int64(1000)
	req := PlaceOrderRequest{
		Items:          []OrderItemRequest{{ID: "chair", Quantity: 2}},
		Amount:         900,
		OriginalAmount: &original,
		CouponCode:     "SAVE10",
		CouponDiscount: 100,
		CouponType:     "percentage",
	}
	got := req.ToCheckout("u1")
	if got.UserID != "u1" || len(got.Items) != 1 || got.Items[0] != (usecase.CartLine{ProductID: "chair", Quantity: 2}) {
		t.Fatalf("unexpected checkout %+v", got)
	}
	if got.Coupon == nil || got.Coupon.Discount != 100 || got.Coupon.Type != model.DiscountPercentage {
		t.Fatalf("unexpected coupon claim %+v", got.Coupon)
	}

	req.CouponCode = ""
	if req.ToCheckout("u1").Coupon != nil {
		t.Fatal("expected no coupon claim without a code")
	}
}

func TestNewOrderResponse(t *testing.T) {
	date := time.UnixMilli(1700000000000)
	resp := NewOrderResponse(model.Order{
		ID:     "o1",
		Status: model.OrderStatusAssetReady,
		Coupon: &model.AppliedCoupon{Code: "SAVE10", Discount: 100, Type: model.DiscountPercentage},
		Date:   date,
	})
	if resp.Date != 1700000000000 || resp.Status != "Digital Asset Ready" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.CouponCode != "SAVE10" || resp.CouponDiscount != 100 || resp.CouponType != "percentage" {
		t.Fatalf("unexpected coupon fields %+v", resp)
	}
	if resp.Items == nil {
		t.Fatal("expected empty items slice")
	}
}

func TestOrderResponseItemKeys(t *testing.T) {
	resp := NewOrderResponse(model.Order{
		ID:    "o1",
		Items: []model.LineItem{{ProductID: "p1", Name: "Chair", Price: 500, Quantity: 1}},
	})
	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(encoded, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0]["_id"] != "p1" {
		t.Fatalf("line item lacks _id: %s", encoded)
	}
}

func TestNewReviewSummaryResponse(t *testing.T) {
	resp := NewReviewSummaryResponse(&model.ReviewSummary{
		Reviews:       []model.Review{{ID: "r1", Rating: 5}},
		TotalReviews:  1,
		AverageRating: 5,
		Distribution:  map[int]int{5: 1},
	})
	if len(resp.RatingDistribution) != 5 || resp.RatingDistribution["5"] != 1 || resp.RatingDistribution["1"] != 0 {
		t.Fatalf("unexpected distribution %v", resp.RatingDistribution)
	}
	if len(resp.Reviews) != 1 || !resp.Success {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestBindingMessage(t *testing.T) {
	RegisterValidators()

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"missing name", RegisterRequest{Email: "a@b.co", Password: "password1"}, "name is required"},
		{"bad email", RegisterRequest{Name: "n", Email: "nope", Password: "password1"}, "Please enter a valid email"},
		{"short password", RegisterRequest{Name: "n", Email: "a@b.co", Password: "short"}, "Please enter a strong password"},
		{"bad status", OrderStatusRequest{OrderID: "o", Status: "Lost"}, "status is invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.value)
			if got := BindingMessage(err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if got := BindingMessage(errors.New("unexpected EOF")); got != "Invalid request body" {
		t.Fatalf("unexpected message %q", got)
	}
}
