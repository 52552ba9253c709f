package paypal

import "github.com/shopspring/decimal"

// FixedRateConverter converts store amounts with a constant exchange rate.
// It is an approximation, not a live rate.
type FixedRateConverter struct {
	rate     decimal.Decimal
	currency string
}

// NewFixedRateConverter constructs FixedRateConverter.
func NewFixedRateConverter(rate decimal.Decimal, currency string) *FixedRateConverter {
	return &FixedRateConverter{rate: rate, currency: currency}
}

// Convert returns amount in the settlement currency, rounded to cents.
func (c *FixedRateConverter) Convert(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(c.rate).Round(2)
}

// Currency returns the settlement currency code.
func (c *FixedRateConverter) Currency() string {
	return c.currency
}
