package metrics

import (
	"math"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/series/domain/entity"
)

const (
	// DefaultSuddenThreshold is the absolute daily move, in percent, that counts as sudden.
	DefaultSuddenThreshold = 5.0
	// DefaultSuddenLimit caps how many of the most recent sudden moves are returned.
	DefaultSuddenLimit = 10
)

// SuddenChanges returns the bars whose percent change exceeds threshold in absolute
// value, keeping only the limit most recent in chronological order.
func SuddenChanges(ts entity.TimeSeries, threshold float64, limit int) []analytics.SuddenChange {
	out := []analytics.SuddenChange{}
	for _, b := range ts.Bars {
		if math.Abs(b.PercentChange) <= threshold {
			continue
		}
		out = append(out, analytics.SuddenChange{
			Date:          b.Date,
			PercentChange: round2(b.PercentChange),
			Close:         b.Close,
			Volume:        b.Volume,
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// DailyStats projects every bar to date, close, volume and percent change. A series
// with fewer than two bars has no day-over-day change and yields an empty list.
func DailyStats(ts entity.TimeSeries) []analytics.DailyStat {
	if ts.Len() < 2 {
		return []analytics.DailyStat{}
	}
	out := make([]analytics.DailyStat, 0, ts.Len())
	for _, b := range ts.Bars {
		out = append(out, analytics.DailyStat{
			Date:          b.Date,
			Close:         b.Close,
			Volume:        b.Volume,
			PercentChange: round2(b.PercentChange),
		})
	}
	return out
}
