package metrics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/series/domain/entity"
)

// Risk computes the 95% VaR and CVaR of daily returns, the max drawdown magnitude of
// the closes and the annualized downside deviation. All values are positive percentages.
func Risk(ts entity.TimeSeries) analytics.RiskReport {
	report := analytics.RiskReport{Symbol: ts.Symbol, Start: ts.Start, End: ts.End}
	returns := ts.Returns()
	if len(returns) == 0 {
		return report
	}

	sorted := slices.Clone(returns)
	slices.Sort(sorted)
	v := percentile(sorted, 5)

	var tail []float64
	for _, r := range sorted {
		if r > v {
			break
		}
		tail = append(tail, r)
	}

	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}

	report.ValueAtRisk = round2(math.Abs(v) * 100)
	report.ConditionalVaR = round2(math.Abs(stat.Mean(tail, nil)) * 100)
	report.MaxDrawdown = round2(math.Abs(priceDrawdown(ts.Closes())) * 100)
	report.DownsideRisk = round2(dailyStdDev(negative) * math.Sqrt(TradingDays) * 100)
	return report
}

// percentile returns the p-th percentile of ascending xs, interpolating linearly
// between closest ranks at position (n-1)*p/100.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := (float64(n) - 1) * p / 100
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
