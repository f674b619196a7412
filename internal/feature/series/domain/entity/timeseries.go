package entity

import (
	"fmt"
	"sort"
	"time"

	"stock_analytics/internal/feature/series/domain"
)

// TimeSeries is an ordered run of daily bars for one symbol, strictly increasing by
// date with no duplicates. Build it with NewTimeSeries; the zero value is an empty series.
type TimeSeries struct {
	Symbol string
	Start  time.Time
	End    time.Time
	Bars   []PriceBar
}

// NewTimeSeries validates and orders raw bars and derives the close-to-close
// percent change of every bar. Rows that cannot form a valid series are reported
// as domain.ErrDataUnavailable.
func NewTimeSeries(symbol string, start, end time.Time, raw []PriceBar) (TimeSeries, error) {
	bars := make([]PriceBar, len(raw))
	copy(bars, raw)
	for i := range bars {
		bars[i].Date = Day(bars[i].Date)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	for i, b := range bars {
		if !b.Valid() {
			return TimeSeries{}, fmt.Errorf("%w: malformed bar for %s on %s", domain.ErrDataUnavailable, symbol, FormatDate(b.Date))
		}
		if i > 0 && b.Date.Equal(bars[i-1].Date) {
			return TimeSeries{}, fmt.Errorf("%w: duplicate bar for %s on %s", domain.ErrDataUnavailable, symbol, FormatDate(b.Date))
		}
	}

	for i := range bars {
		if i == 0 {
			bars[i].PercentChange = 0
			continue
		}
		bars[i].PercentChange = (bars[i].Close/bars[i-1].Close - 1) * 100
	}

	return TimeSeries{Symbol: symbol, Start: Day(start), End: Day(end), Bars: bars}, nil
}

// Len returns the number of bars.
func (ts TimeSeries) Len() int { return len(ts.Bars) }

// Closes returns the closing prices in date order.
func (ts TimeSeries) Closes() []float64 {
	out := make([]float64, len(ts.Bars))
	for i, b := range ts.Bars {
		out[i] = b.Close
	}
	return out
}

// Returns returns the daily simple returns close[i]/close[i-1]-1, one per bar after the first.
func (ts TimeSeries) Returns() []float64 {
	if len(ts.Bars) < 2 {
		return nil
	}
	out := make([]float64, 0, len(ts.Bars)-1)
	for i := 1; i < len(ts.Bars); i++ {
		out = append(out, ts.Bars[i].Close/ts.Bars[i-1].Close-1)
	}
	return out
}

// ReturnsByDate keys each daily return by the date of the bar that closed it.
func (ts TimeSeries) ReturnsByDate() map[time.Time]float64 {
	out := make(map[time.Time]float64, len(ts.Bars))
	for i := 1; i < len(ts.Bars); i++ {
		out[ts.Bars[i].Date] = ts.Bars[i].Close/ts.Bars[i-1].Close - 1
	}
	return out
}

// Last returns the final bar; ok is false for an empty series.
func (ts TimeSeries) Last() (PriceBar, bool) {
	if len(ts.Bars) == 0 {
		return PriceBar{}, false
	}
	return ts.Bars[len(ts.Bars)-1], true
}
