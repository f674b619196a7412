package entity

import (
	"fmt"
	"strings"
	"time"

	"stock_analytics/internal/feature/series/domain"
)

const (
	// DateLayout is the canonical (ISO-8601) date format used in keys and responses.
	DateLayout = "2006-01-02"
	// CompactDateLayout is the YYYYMMDD form accepted on input.
	CompactDateLayout = "20060102"
)

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 or YYYYMMDD calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, CompactDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}

// FormatDate renders a date in the canonical layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
