package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"stock_analytics/internal/feature/series/domain/entity"
)

// DefaultRiskFreeRate is the annual risk-free rate used by SharpeRatio.
const DefaultRiskFreeRate = 0.03

// TotalReturn is (last/first - 1) in percent.
func TotalReturn(ts entity.TimeSeries) float64 {
	if ts.Len() < 2 {
		return 0
	}
	first, last := ts.Bars[0].Close, ts.Bars[ts.Len()-1].Close
	return round2((last/first - 1) * 100)
}

// AnnualizedVolatility is the sample standard deviation of daily returns scaled by
// sqrt(252), in percent.
func AnnualizedVolatility(ts entity.TimeSeries) float64 {
	return round2(dailyStdDev(ts.Returns()) * math.Sqrt(TradingDays) * 100)
}

// SharpeRatio is (annualized mean return - rf) / annualized volatility. It is 0 when
// volatility is 0 or undefined.
func SharpeRatio(ts entity.TimeSeries, rf float64) float64 {
	returns := ts.Returns()
	vol := dailyStdDev(returns) * math.Sqrt(TradingDays)
	if vol == 0 {
		return 0
	}
	return round2((stat.Mean(returns, nil)*TradingDays - rf) / vol)
}

// MaxDrawdown is the deepest fall of the compounded return path below its own running
// peak, in percent. The path starts at the first day's growth factor, so a loss on the
// first day has no earlier peak to fall from. It is never positive and never below -100.
func MaxDrawdown(ts entity.TimeSeries) float64 {
	return round2(maxDrawdown(ts.Returns()) * 100)
}

func maxDrawdown(returns []float64) float64 {
	cum, peak, worst := 1.0, math.Inf(-1), 0.0
	for _, r := range returns {
		cum *= 1 + r
		peak = math.Max(peak, cum)
		if dd := (cum - peak) / peak; dd < worst {
			worst = dd
		}
	}
	return worst
}

// priceDrawdown is the deepest fall of closes below their running maximum, first
// close included, as a fraction (<= 0).
func priceDrawdown(closes []float64) float64 {
	peak, worst := math.Inf(-1), 0.0
	for _, c := range closes {
		peak = math.Max(peak, c)
		if dd := (c - peak) / peak; dd < worst {
			worst = dd
		}
	}
	return worst
}

// dailyStdDev is the sample standard deviation, or 0 with fewer than two points.
func dailyStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return finite(stat.StdDev(xs, nil))
}
