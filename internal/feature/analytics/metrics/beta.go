package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/series/domain/entity"
)

// NeutralBeta is reported whenever beta cannot be estimated.
const NeutralBeta = 1.0

// Benchmark is the outcome of fetching a benchmark series; Err is set when the
// fetch failed.
type Benchmark struct {
	Symbol string
	Series entity.TimeSeries
	Err    error
}

// DegradedBeta returns the neutral beta with the reason it was used.
func DegradedBeta(reason string) analytics.BetaResult {
	return analytics.BetaResult{Value: NeutralBeta, Degraded: true, Reason: reason}
}

// Beta is cov(stock, benchmark) / var(benchmark) over the daily returns both series
// share a date for. It degrades to NeutralBeta when the benchmark is missing, the
// overlap has fewer than two points or the benchmark variance is zero.
func Beta(stock entity.TimeSeries, bench Benchmark) analytics.BetaResult {
	if bench.Err != nil {
		return DegradedBeta(fmt.Sprintf("benchmark %s unavailable: %v", bench.Symbol, bench.Err))
	}
	if bench.Series.Len() == 0 {
		return DegradedBeta(fmt.Sprintf("benchmark %s unavailable", bench.Symbol))
	}

	benchByDate := bench.Series.ReturnsByDate()
	var xs, ys []float64
	for i := 1; i < stock.Len(); i++ {
		d := stock.Bars[i].Date
		br, ok := benchByDate[d]
		if !ok {
			continue
		}
		xs = append(xs, stock.Bars[i].Close/stock.Bars[i-1].Close-1)
		ys = append(ys, br)
	}
	if len(xs) < 2 {
		return DegradedBeta(fmt.Sprintf("only %d overlapping returns with %s", len(xs), bench.Symbol))
	}

	v := stat.Variance(ys, nil)
	if v == 0 || finite(v) == 0 {
		return DegradedBeta(fmt.Sprintf("benchmark %s has zero variance", bench.Symbol))
	}
	return analytics.BetaResult{Value: round2(stat.Covariance(xs, ys, nil) / v)}
}
