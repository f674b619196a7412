package metrics

import (
	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/series/domain/entity"
)

// Options tunes the report builder.
type Options struct {
	RiskFreeRate    float64
	RSIPeriod       int
	SuddenThreshold float64
	SuddenLimit     int
}

// DefaultOptions returns the standard parameters.
func DefaultOptions() Options {
	return Options{
		RiskFreeRate:    DefaultRiskFreeRate,
		RSIPeriod:       DefaultRSIPeriod,
		SuddenThreshold: DefaultSuddenThreshold,
		SuddenLimit:     DefaultSuddenLimit,
	}
}

// NeedsBenchmark reports whether want includes beta.
func NeedsBenchmark(want []analytics.Metric) bool {
	for _, m := range want {
		if m == analytics.MetricBeta {
			return true
		}
	}
	return false
}

// Build computes the requested metrics of ts. bench is consulted only for beta.
func Build(ts entity.TimeSeries, bench Benchmark, want []analytics.Metric, opts Options) analytics.MetricsReport {
	r := analytics.MetricsReport{Symbol: ts.Symbol, Start: ts.Start, End: ts.End, Bars: ts.Len()}
	for _, m := range want {
		switch m {
		case analytics.MetricTotalReturn:
			v := TotalReturn(ts)
			r.TotalReturn = &v
		case analytics.MetricVolatility:
			v := AnnualizedVolatility(ts)
			r.AnnualizedVolatility = &v
		case analytics.MetricSharpeRatio:
			v := SharpeRatio(ts, opts.RiskFreeRate)
			r.SharpeRatio = &v
		case analytics.MetricMaxDrawdown:
			v := MaxDrawdown(ts)
			r.MaxDrawdown = &v
		case analytics.MetricBeta:
			v := Beta(ts, bench)
			r.Beta = &v
		case analytics.MetricRSI:
			v := RSI(ts, opts.RSIPeriod)
			r.RSI = &v
		case analytics.MetricMACD:
			v := MACD(ts)
			r.MACD = &v
		case analytics.MetricSuddenChanges:
			r.SuddenChanges = SuddenChanges(ts, opts.SuddenThreshold, opts.SuddenLimit)
		case analytics.MetricDailyStats:
			r.DailyStats = DailyStats(ts)
		}
	}
	return r
}
