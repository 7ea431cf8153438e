package utils

import "math"

// ToCents converts a two-decimal monetary amount to integer cents,
// rounding so values like 19.99 do not lose a cent to float truncation.
func ToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// FromCents converts integer cents back to a two-decimal amount.
func FromCents(c int64) float64 {
	return float64(c) / 100
}
