package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a price string like "9.99" into a decimal amount.
// The remote API serves all monetary values as decimal strings.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// ParseOrZero parses an amount and falls back to zero on failure.
// Aggregates over server data must never abort on one bad value.
func ParseOrZero(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Subtotal computes unit price times quantity.
func Subtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Format renders an amount to the currency's minor unit.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
