// Package core holds the invoicing domain model and the financial
// derivation rules for in-progress invoices.
//
// Monetary form fields round-trip as strings so partially typed or blank
// user input survives untouched; computation happens in float64 with
// 2-decimal half-up rounding on derived amounts.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds to 2 decimal places, half away from zero. Non-finite
// input collapses to 0, the normalization for degenerate conversions.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ParseAmount parses a user-typed numeric field. The second return is
// false for blank or non-numeric input.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Tolerate the decimal comma
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AmountOrZero parses a field, treating blank or malformed input as 0.
func AmountOrZero(s string) float64 {
	v, ok := ParseAmount(s)
	if !ok {
		return 0
	}
	return v
}

// FormatAmount renders a computed value back into field form, using the
// shortest decimal representation (8.0 -> "8", 8.25 -> "8.25").
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Subtotal sums rate*hours across drafted items. An item contributes only
// when both fields are non-blank and parse as numbers; anything else
// contributes exactly 0. The sum is not rounded.
func Subtotal(items []ItemDraft) float64 {
	var sum float64
	for _, it := range items {
		rate, okRate := ParseAmount(it.Rate)
		hours, okHours := ParseAmount(it.Hours)
		if okRate && okHours {
			sum += rate * hours
		}
	}
	return sum
}
