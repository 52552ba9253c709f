package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	testhelpers "github.com/trivima/assetstore/internal/test"
)

func newCouponService(coupons *testhelpers.CouponRepositoryStub, products *testhelpers.ProductRepositoryStub) *CouponService {
	svc := NewCouponService(coupons, products)
	svc.now = func() time.Time { return testNow }
	return svc
}

func catalogStub() *testhelpers.ProductRepositoryStub {
	products := make([]model.Product, 0)
	for _, p := range testCatalog() {
		products = append(products, p)
	}
	return testhelpers.NewProductRepositoryStub(products...)
}

func TestCouponServiceApply(t *testing.T) {
	coupons := testhelpers.NewCouponRepositoryStub(*percentCoupon("SAVE20", "20", int64Ptr(200), 500))
	svc := newCouponService(coupons, catalogStub())

	quote, err := svc.Apply(context.Background(), "  save20 ", map[string]int64{"chair": 2, "ghost": 1, "lamp": 0})
	if err != nil {
		t.Fatalf("apply returned error: %v", err)
	}
	if quote.DiscountAmount != 200 || quote.CartAmount != 1000 {
		t.Fatalf("unexpected quote %+v", quote)
	}
	if len(quote.SkippedItems) != 1 || quote.SkippedItems[0] != "ghost" {
		t.Fatalf("expected ghost to be skipped, got %v", quote.SkippedItems)
	}
	if coupons.Coupons["SAVE20"].UsedCount != 0 {
		t.Fatal("apply must not consume usage")
	}
}

func TestCouponServiceApplyErrors(t *testing.T) {
	coupons := testhelpers.NewCouponRepositoryStub(*percentCoupon("SAVE20", "20", int64Ptr(200), 500))
	svc := newCouponService(coupons, catalogStub())
	ctx := context.Background()

	if _, err := svc.Apply(ctx, "   ", map[string]int64{"chair": 1}); !errors.Is(err, domainErrors.ErrCouponCodeRequired) {
		t.Fatalf("expected code required, got %v", err)
	}
	if _, err := svc.Apply(ctx, "NOPE", map[string]int64{"chair": 1}); !errors.Is(err, domainErrors.ErrInvalidCoupon) {
		t.Fatalf("expected invalid coupon, got %v", err)
	}

	_, err := svc.Apply(ctx, "SAVE20", map[string]int64{"lamp": 1})
	var minErr *domainErrors.MinimumOrderError
	if !errors.As(err, &minErr) || minErr.Minimum != 500 {
		t.Fatalf("expected minimum order error, got %v", err)
	}

	boom := errors.New("db down")
	coupons.Err = boom
	if _, err := svc.Apply(ctx, "SAVE20", map[string]int64{"chair": 1}); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestCouponServiceApplyEmptyCartSkipsCatalog(t *testing.T) {
	products := catalogStub()
	svc := newCouponService(testhelpers.NewCouponRepositoryStub(*fixedCoupon("FLAT", "10")), products)

	quote, err := svc.Apply(context.Background(), "flat", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.DiscountAmount != 0 {
		t.Fatalf("expected zero discount, got %d", quote.DiscountAmount)
	}
	if len(products.RequestedID) != 0 {
		t.Fatalf("catalog should not be queried for an empty cart")
	}
}

func TestCouponServiceActive(t *testing.T) {
	active := percentCoupon("LIVE", "10", int64Ptr(50), 0)
	active.UsageLimit = int64Ptr(5)
	active.UsedCount = 2
	expired := percentCoupon("DEAD", "10", nil, 0)
	expired.ExpiryDate = testNow.Add(-time.Hour)
	disabled := fixedCoupon("OFF", "5")
	disabled.IsActive = false

	coupons := testhelpers.NewCouponRepositoryStub(*active, *expired, *disabled)
	svc := newCouponService(coupons, catalogStub())

	result, err := svc.Active(context.Background())
	if err != nil {
		t.Fatalf("active returned error: %v", err)
	}
	if len(result) != 1 || result[0].Code != "LIVE" {
		t.Fatalf("unexpected active coupons %+v", result)
	}
	if !coupons.ActiveAt[0].Equal(testNow) {
		t.Fatalf("expected active query at service clock")
	}
}

func validCouponInput() CouponInput {
	return CouponInput{
		Code:                  " welcome10 ",
		Description:           "Welcome <b>offer</b>",
		DiscountType:          model.DiscountPercentage,
		DiscountValue:         decimal.NewFromInt(10),
		MinimumOrderAmount:    100,
		MaximumDiscountAmount: int64Ptr(300),
		ExpiryDate:            testNow.Add(48 * time.Hour),
		UsageLimit:            int64Ptr(0),
		ApplicableCategories:  []string{"furniture"},
	}
}

func TestCouponServiceCreate(t *testing.T) {
	coupons := testhelpers.NewCouponRepositoryStub()
	svc := newCouponService(coupons, catalogStub())

	coupon, err := svc.Create(context.Background(), validCouponInput())
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Fatalf("expected normalized code, got %q", coupon.Code)
	}
	if coupon.Description != "Welcome offer" {
		t.Fatalf("expected sanitized description, got %q", coupon.Description)
	}
	if coupon.UsageLimit != nil {
		t.Fatalf("zero usage limit should mean unlimited")
	}
	if coupon.MaximumDiscountAmount == nil || *coupon.MaximumDiscountAmount != 300 {
		t.Fatalf("expected maximum discount to be kept for percentage coupons")
	}
	if !coupon.IsActive || coupon.UsedCount != 0 || coupon.CreatedBy != "admin" || coupon.ID == "" {
		t.Fatalf("unexpected defaults %+v", coupon)
	}
	if len(coupons.Created) != 1 {
		t.Fatalf("expected coupon to be stored")
	}

	if _, err := svc.Create(context.Background(), validCouponInput()); !errors.Is(err, domainErrors.ErrCouponExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCouponServiceCreateFixedDropsMaximum(t *testing.T) {
	svc := newCouponService(testhelpers.NewCouponRepositoryStub(), catalogStub())
	in := validCouponInput()
	in.DiscountType = model.DiscountFixed
	in.DiscountValue = decimal.NewFromInt(150)
	in.UsageLimit = int64Ptr(10)

	coupon, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if coupon.MaximumDiscountAmount != nil {
		t.Fatal("fixed coupons must not carry a maximum discount")
	}
	if coupon.UsageLimit == nil || *coupon.UsageLimit != 10 {
		t.Fatalf("expected usage limit 10")
	}
}

func TestCouponServiceCreateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CouponInput)
		want   error
	}{
		{"missing code", func(in *CouponInput) { in.Code = " " }, domainErrors.ErrValidation},
		{"missing description", func(in *CouponInput) { in.Description = "" }, domainErrors.ErrValidation},
		{"missing expiry", func(in *CouponInput) { in.ExpiryDate = time.Time{} }, domainErrors.ErrValidation},
		{"unknown type", func(in *CouponInput) { in.DiscountType = "bogo" }, domainErrors.ErrValidation},
		{"negative value", func(in *CouponInput) { in.DiscountValue = decimal.NewFromInt(-1) }, domainErrors.ErrValidation},
		{"percentage over 100", func(in *CouponInput) { in.DiscountValue = decimal.RequireFromString("100.5") }, domainErrors.ErrPercentageExceeds100},
		{"expiry in past", func(in *CouponInput) { in.ExpiryDate = testNow }, domainErrors.ErrCouponExpiryInPast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coupons := testhelpers.NewCouponRepositoryStub()
			svc := newCouponService(coupons, catalogStub())
			in := validCouponInput()
			tc.mutate(&in)
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(coupons.Created) != 0 {
				t.Fatal("invalid coupon must not be stored")
			}
		})
	}
}

func TestCouponServiceAdminOperations(t *testing.T) {
	coupons := testhelpers.NewCouponRepositoryStub(*fixedCoupon("A", "1"), *fixedCoupon("B", "2"))
	svc := newCouponService(coupons, catalogStub())
	ctx := context.Background()

	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("unexpected list %v, %v", list, err)
	}
	if err := svc.Remove(ctx, "c-A"); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if err := svc.SetActive(ctx, "c-B", false); err != nil {
		t.Fatalf("set active returned error: %v", err)
	}
	if coupons.Deleted[0] != "c-A" {
		t.Fatalf("expected delete of c-A")
	}
	if active, ok := coupons.ActiveToggle["c-B"]; !ok || active {
		t.Fatalf("expected c-B deactivated")
	}
}
