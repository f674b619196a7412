// Package entity defines the value objects produced by the analytics feature.
package entity

import "time"

// Metric names one member of a MetricsReport.
type Metric string

const (
	MetricTotalReturn   Metric = "total_return"
	MetricVolatility    Metric = "annualized_volatility"
	MetricSharpeRatio   Metric = "sharpe_ratio"
	MetricMaxDrawdown   Metric = "max_drawdown"
	MetricBeta          Metric = "beta"
	MetricRSI           Metric = "rsi"
	MetricMACD          Metric = "macd"
	MetricSuddenChanges Metric = "sudden_changes"
	MetricDailyStats    Metric = "daily_stats"
)

// AllMetrics is the full bundle in report order.
var AllMetrics = []Metric{
	MetricTotalReturn, MetricVolatility, MetricSharpeRatio, MetricMaxDrawdown,
	MetricBeta, MetricRSI, MetricMACD, MetricSuddenChanges, MetricDailyStats,
}

// BasicMetrics are the four headline return and risk figures.
var BasicMetrics = []Metric{MetricTotalReturn, MetricVolatility, MetricSharpeRatio, MetricMaxDrawdown}

// BetaResult is a beta estimate. Degraded is set when no usable benchmark overlap
// existed and Value fell back to the neutral 1.0.
type BetaResult struct {
	Value    float64
	Degraded bool
	Reason   string
}

// RSIResult is the latest relative strength index. Sufficient is false when the series
// is too short, in which case Value carries no meaning.
type RSIResult struct {
	Value      float64
	Period     int
	Sufficient bool
}

// MACDResult holds the MACD line, its signal line and histogram as of the last bar.
// Sufficient is false when the series is shorter than the slow EMA span.
type MACDResult struct {
	MACD       float64
	Signal     float64
	Histogram  float64
	Sufficient bool
}

// SuddenChange is a bar whose close moved more than the threshold.
type SuddenChange struct {
	Date          time.Time
	PercentChange float64
	Close         float64
	Volume        int64
}

// DailyStat projects one bar for display.
type DailyStat struct {
	Date          time.Time
	Close         float64
	Volume        int64
	PercentChange float64
}

// MetricsReport groups the requested subset of metrics for one series. Nil fields
// were not requested. A report is never mutated after it is built.
type MetricsReport struct {
	Symbol string
	Start  time.Time
	End    time.Time
	Bars   int

	TotalReturn          *float64
	AnnualizedVolatility *float64
	SharpeRatio          *float64
	MaxDrawdown          *float64
	Beta                 *BetaResult
	RSI                  *RSIResult
	MACD                 *MACDResult
	SuddenChanges        []SuddenChange
	DailyStats           []DailyStat
}
