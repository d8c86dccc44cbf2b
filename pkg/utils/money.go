package utils

import "math"

// RoundCents rounds a currency amount to the minor unit (two decimals).
// Commission math guarantees amount + netPayout == orderTotal only when
// both sides are rounded at the same boundary.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
