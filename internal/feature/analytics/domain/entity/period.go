package entity

import (
	"fmt"
	"time"

	"stock_analytics/internal/feature/analytics/domain"
)

// Period is a trailing history window such as "1mo".
type Period string

// DefaultPeriod is used when no period is requested.
const DefaultPeriod Period = "1mo"

var periodSpans = map[Period]func(time.Time) time.Time{
	"5d":  func(t time.Time) time.Time { return t.AddDate(0, 0, -5) },
	"1mo": func(t time.Time) time.Time { return t.AddDate(0, -1, 0) },
	"3mo": func(t time.Time) time.Time { return t.AddDate(0, -3, 0) },
	"6mo": func(t time.Time) time.Time { return t.AddDate(0, -6, 0) },
	"1y":  func(t time.Time) time.Time { return t.AddDate(-1, 0, 0) },
	"2y":  func(t time.Time) time.Time { return t.AddDate(-2, 0, 0) },
	"5y":  func(t time.Time) time.Time { return t.AddDate(-5, 0, 0) },
}

// ParsePeriod validates p. An empty string yields DefaultPeriod.
func ParsePeriod(p string) (Period, error) {
	if p == "" {
		return DefaultPeriod, nil
	}
	if _, ok := periodSpans[Period(p)]; !ok {
		return "", fmt.Errorf("%w: unsupported period %q", domain.ErrInvalidPeriod, p)
	}
	return Period(p), nil
}

// Start returns the first day of the window ending at end.
func (p Period) Start(end time.Time) time.Time {
	span, ok := periodSpans[p]
	if !ok {
		span = periodSpans[DefaultPeriod]
	}
	return span(end)
}
