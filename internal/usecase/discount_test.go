package usecase

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

func percentCoupon(code string, value string, max *int64, minimum int64) *model.Coupon {
	return &model.Coupon{
		ID:                    "c-" + code,
		Code:                  code,
		Description:           code + " coupon",
		DiscountType:          model.DiscountPercentage,
		DiscountValue:         decimal.RequireFromString(value),
		MinimumOrderAmount:    minimum,
		MaximumDiscountAmount: max,
		ExpiryDate:            testNow.Add(24 * time.Hour),
		IsActive:              true,
	}
}

func fixedCoupon(code string, value string) *model.Coupon {
	return &model.Coupon{
		ID:            "c-" + code,
		Code:          code,
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.RequireFromString(value),
		ExpiryDate:    testNow.Add(24 * time.Hour),
		IsActive:      true,
	}
}

func testCatalog() map[string]model.Product {
	return map[string]model.Product{
		"chair": {ID: "chair", Name: "Chair", Price: 500, Category: "furniture"},
		"lamp":  {ID: "lamp", Name: "Lamp", Price: 250, Category: "lighting"},
		"tree":  {ID: "tree", Name: "Tree", Price: 50, Category: "nature"},
	}
}

func TestCalculateDiscountScenarios(t *testing.T) {
	cases := []struct {
		name           string
		coupon         *model.Coupon
		cart           map[string]int64
		wantCart       int64
		wantApplicable int64
		wantDiscount   int64
	}{
		{
			name:           "percentage capped by maximum",
			coupon:         percentCoupon("SAVE20", "20", int64Ptr(200), 500),
			cart:           map[string]int64{"chair": 2},
			wantCart:       1000,
			wantApplicable: 1000,
			wantDiscount:   200,
		},
		{
			name:           "percentage cap binds",
			coupon:         percentCoupon("SAVE50", "50", int64Ptr(100), 0),
			cart:           map[string]int64{"chair": 1},
			wantCart:       500,
			wantApplicable: 500,
			wantDiscount:   100,
		},
		{
			name:           "percentage rounds half away from zero",
			coupon:         percentCoupon("ODD", "25", nil, 0),
			cart:           map[string]int64{"tree": 1},
			wantCart:       50,
			wantApplicable: 50,
			wantDiscount:   13,
		},
		{
			name:           "fractional percentage",
			coupon:         percentCoupon("HALF", "12.5", nil, 0),
			cart:           map[string]int64{"lamp": 1},
			wantCart:       250,
			wantApplicable: 250,
			wantDiscount:   31,
		},
		{
			name:           "fixed capped by applicable amount",
			coupon:         fixedCoupon("FLAT100", "100"),
			cart:           map[string]int64{"tree": 1},
			wantCart:       50,
			wantApplicable: 50,
			wantDiscount:   50,
		},
		{
			name:           "fixed below applicable amount",
			coupon:         fixedCoupon("FLAT100", "100"),
			cart:           map[string]int64{"lamp": 2},
			wantCart:       500,
			wantApplicable: 500,
			wantDiscount:   100,
		},
		{
			name:           "zero quantities ignored",
			coupon:         fixedCoupon("FLAT100", "100"),
			cart:           map[string]int64{"lamp": 1, "chair": 0, "tree": -1},
			wantCart:       250,
			wantApplicable: 250,
			wantDiscount:   100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := CalculateDiscount(tc.coupon, tc.cart, testCatalog(), testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.CartAmount != tc.wantCart || quote.ApplicableAmount != tc.wantApplicable || quote.DiscountAmount != tc.wantDiscount {
				t.Fatalf("unexpected quote: cart=%d applicable=%d discount=%d", quote.CartAmount, quote.ApplicableAmount, quote.DiscountAmount)
			}
			if quote.Coupon.Code != tc.coupon.Code {
				t.Fatalf("expected coupon terms echoed, got %+v", quote.Coupon)
			}
		})
	}
}

func TestCalculateDiscountCategoryRules(t *testing.T) {
	coupon := percentCoupon("DECOR", "10", nil, 0)
	coupon.ApplicableCategories = []string{"furniture", "lighting"}
	coupon.ExcludedCategories = []string{"lighting"}

	quote, err := CalculateDiscount(coupon, map[string]int64{"chair": 1, "lamp": 1, "tree": 2}, testCatalog(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.CartAmount != 850 {
		t.Fatalf("expected cart amount 850, got %d", quote.CartAmount)
	}
	if quote.ApplicableAmount != 500 {
		t.Fatalf("expected only chair applicable, got %d", quote.ApplicableAmount)
	}
	if quote.DiscountAmount != 50 {
		t.Fatalf("expected discount 50, got %d", quote.DiscountAmount)
	}
}

func TestCalculateDiscountSkipsMissingProducts(t *testing.T) {
	coupon := fixedCoupon("FLAT100", "100")
	quote, err := CalculateDiscount(coupon, map[string]int64{"lamp": 1, "ghost": 3, "phantom": 1}, testCatalog(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.CartAmount != 250 {
		t.Fatalf("missing products must not count, got %d", quote.CartAmount)
	}
	if !slices.Equal(quote.SkippedItems, []string{"ghost", "phantom"}) {
		t.Fatalf("unexpected skipped items %v", quote.SkippedItems)
	}
}

func TestCalculateDiscountRejections(t *testing.T) {
	expired := percentCoupon("OLD", "10", nil, 0)
	expired.ExpiryDate = testNow

	inactive := percentCoupon("OFF", "10", nil, 0)
	inactive.IsActive = false

	exhausted := percentCoupon("GONE", "10", nil, 0)
	exhausted.UsageLimit = int64Ptr(3)
	exhausted.UsedCount = 3

	cases := []struct {
		name   string
		coupon *model.Coupon
		cart   map[string]int64
		want   error
	}{
		{"missing", nil, map[string]int64{"chair": 1}, domainErrors.ErrInvalidCoupon},
		{"expired", expired, map[string]int64{"chair": 1}, domainErrors.ErrInvalidCoupon},
		{"inactive", inactive, map[string]int64{"chair": 1}, domainErrors.ErrInvalidCoupon},
		{"usage limit", exhausted, map[string]int64{"chair": 1}, domainErrors.ErrUsageLimitExceeded},
		{"minimum order", percentCoupon("SAVE20", "20", int64Ptr(200), 500), map[string]int64{"lamp": 1, "tree": 3}, domainErrors.ErrMinimumOrderNotMet},
		{"line overflow", fixedCoupon("FLAT100", "100"), map[string]int64{"chair": math.MaxInt64 / 2}, domainErrors.ErrValidation},
		{"cart overflow", fixedCoupon("FLAT100", "100"), map[string]int64{"chair": math.MaxInt64 / 500, "lamp": math.MaxInt64 / 250}, domainErrors.ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CalculateDiscount(tc.coupon, tc.cart, testCatalog(), testNow); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCalculateDiscountMinimumUsesFullCart(t *testing.T) {
	coupon := percentCoupon("CHAIRS", "10", nil, 600)
	coupon.ApplicableCategories = []string{"furniture"}

	quote, err := CalculateDiscount(coupon, map[string]int64{"chair": 1, "lamp": 1}, testCatalog(), testNow)
	if err != nil {
		t.Fatalf("expected minimum to be met by full cart: %v", err)
	}
	if quote.ApplicableAmount != 500 || quote.DiscountAmount != 50 {
		t.Fatalf("unexpected quote %+v", quote)
	}
}

func TestCalculateDiscountDoesNotMutateCoupon(t *testing.T) {
	coupon := percentCoupon("SAVE20", "20", int64Ptr(200), 0)
	coupon.UsageLimit = int64Ptr(10)
	coupon.UsedCount = 4

	for i := 0; i < 3; i++ {
		if _, err := CalculateDiscount(coupon, map[string]int64{"chair": 1}, testCatalog(), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if coupon.UsedCount != 4 {
		t.Fatalf("quote must not consume usage, got %d", coupon.UsedCount)
	}
}

func TestCalculateDiscountPercentageProperty(t *testing.T) {
	for _, applicable := range []int64{0, 1, 99, 333, 1000, 12345} {
		for _, value := range []int64{0, 1, 15, 33, 100} {
			coupon := percentCoupon("P", decimal.NewFromInt(value).String(), int64Ptr(150), 0)
			got := discountFor(coupon, applicable)
			want := decimal.NewFromInt(applicable * value).Div(hundred).Round(0).IntPart()
			if want > 150 {
				want = 150
			}
			if got != want {
				t.Fatalf("applicable=%d value=%d: want %d got %d", applicable, value, want, got)
			}
			if got > applicable {
				t.Fatalf("discount exceeds applicable amount")
			}
		}
	}
}
