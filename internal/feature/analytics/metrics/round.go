// Package metrics computes return, risk and momentum statistics over a daily price
// series. Every function is total: short or empty input yields the documented
// neutral value instead of an error. Nothing here holds state.
package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// TradingDays annualizes daily statistics.
const TradingDays = 252

// round rounds half away from zero to places decimals so repeated runs over the same
// series produce byte-identical output. NaN and infinities collapse to 0.
func round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func round2(x float64) float64 { return round(x, 2) }

// Round2 rounds x to cents the same way every metric does.
func Round2(x float64) float64 { return round2(x) }

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
