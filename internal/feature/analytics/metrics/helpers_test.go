package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stock_analytics/internal/feature/series/domain/entity"
)

var firstDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// series builds a validated series with one bar per calendar day.
func series(t *testing.T, closes ...float64) entity.TimeSeries {
	t.Helper()
	return seriesFrom(t, firstDay, closes...)
}

func seriesFrom(t *testing.T, start time.Time, closes ...float64) entity.TimeSeries {
	t.Helper()

	bars := make([]entity.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = entity.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: int64(1000 + i)}
	}
	ts, err := entity.NewTimeSeries("TEST", start, start.AddDate(0, 0, len(closes)), bars)
	require.NoError(t, err)
	return ts
}
