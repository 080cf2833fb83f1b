package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision contracts for numeric elements. Every numeric element is rendered
// with exactly one of these, regardless of the precision of the input value.
const (
	PowerPlaces       int32 = 1
	PricePlaces       int32 = 6
	DispatchingPlaces int32 = 6
)

// Decimal renders d in fixed-point notation with exactly places decimals,
// rounding half away from zero and padding with trailing zeros.
func Decimal(d decimal.Decimal, places int32) string {
	if places < 0 {
		places = 0
	}
	return d.StringFixed(places)
}

// Power renders a power value (kW) with one decimal.
func Power(d decimal.Decimal) string {
	return Decimal(d, PowerPlaces)
}

// Price renders a price value with six decimals.
func Price(d decimal.Decimal) string {
	return Decimal(d, PricePlaces)
}

// ParseDecimal parses a plain or fixed-point decimal string.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("format: empty decimal")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("format: parse decimal %q: %w", raw, err)
	}
	return d, nil
}

// Places reports the number of significant decimal places of d.
func Places(d decimal.Decimal) int32 {
	exp := d.Exponent()
	if exp >= 0 {
		return 0
	}
	// strip trailing zeros so 3.10 counts as one place
	trimmed := strings.TrimRight(d.String(), "0")
	idx := strings.IndexByte(trimmed, '.')
	if idx < 0 {
		return 0
	}
	return int32(len(trimmed) - idx - 1)
}
