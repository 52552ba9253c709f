package paypal

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFixedRateConverter(t *testing.T) {
	conv := NewFixedRateConverter(decimal.RequireFromString("0.012"), "USD")

	cases := []struct {
		amount int64
		want   string
	}{
		{1050, "12.60"},
		{0, "0.00"},
		{1, "0.01"},
		{999, "11.99"},
	}
	for _, tc := range cases {
		if got := conv.Convert(tc.amount).StringFixed(2); got != tc.want {
			t.Errorf("Convert(%d) = %s, want %s", tc.amount, got, tc.want)
		}
	}
	if conv.Currency() != "USD" {
		t.Fatalf("unexpected currency %q", conv.Currency())
	}
}
