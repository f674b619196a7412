package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stock_analytics/internal/feature/series/domain/entity"
)

func TestReturnMetrics_ShortSeriesAreZero(t *testing.T) {
	t.Parallel()

	for name, ts := range map[string]entity.TimeSeries{
		"empty":  {},
		"single": series(t, 100),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, 0.0, TotalReturn(ts))
			assert.Equal(t, 0.0, AnnualizedVolatility(ts))
			assert.Equal(t, 0.0, SharpeRatio(ts, DefaultRiskFreeRate))
			assert.Equal(t, 0.0, MaxDrawdown(ts))
			assert.NotNil(t, SuddenChanges(ts, DefaultSuddenThreshold, DefaultSuddenLimit))
			assert.Empty(t, SuddenChanges(ts, DefaultSuddenThreshold, DefaultSuddenLimit))
			assert.NotNil(t, DailyStats(ts))
			assert.Empty(t, DailyStats(ts))
		})
	}
}

func TestTotalReturn(t *testing.T) {
	t.Parallel()

	ts := series(t, 100, 105, 98, 120, 90)
	assert.Equal(t, -10.0, TotalReturn(ts))

	assert.Equal(t, 25.0, TotalReturn(series(t, 80, 100)))
}

func TestTotalReturn_ScaleInvariant(t *testing.T) {
	t.Parallel()

	closes := []float64{100, 105, 98, 120, 90, 93.5}
	for _, k := range []float64{0.01, 3.7, 1000} {
		scaled := make([]float64, len(closes))
		for i, c := range closes {
			scaled[i] = c * k
		}
		assert.Equal(t, TotalReturn(series(t, closes...)), TotalReturn(series(t, scaled...)), "scale %v", k)
	}
}

func TestAnnualizedVolatilityAndSharpe(t *testing.T) {
	t.Parallel()

	// Returns +10% and -10%: sample stdev sqrt(0.02).
	ts := series(t, 100, 110, 99)
	assert.Equal(t, 224.5, AnnualizedVolatility(ts))
	assert.Equal(t, -0.01, SharpeRatio(ts, 0.03))
	assert.Equal(t, 0.0, SharpeRatio(ts, 0))
}

func TestSharpeRatio_ZeroVolatility(t *testing.T) {
	t.Parallel()

	ts := series(t, 100, 100, 100, 100)
	assert.Equal(t, 0.0, AnnualizedVolatility(ts))
	assert.Equal(t, 0.0, SharpeRatio(ts, DefaultRiskFreeRate))
}

func TestSharpeRatio_TwoBarsHasNoDeviation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, SharpeRatio(series(t, 100, 120), DefaultRiskFreeRate))
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{name: "peak to trough", closes: []float64{100, 105, 98, 120, 90}, want: -25},
		{name: "monotonic rise", closes: []float64{1, 2, 3, 4}, want: 0},
		{name: "first day drop has no earlier peak", closes: []float64{100, 80, 90}, want: 0},
		{name: "first day drop then partial recovery", closes: []float64{100, 90, 95}, want: 0},
		{name: "fall below a later peak", closes: []float64{100, 90, 99, 81}, want: -18.18},
		{name: "near total loss", closes: []float64{100, 200, 0.02}, want: -99.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MaxDrawdown(series(t, tt.closes...))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, 0.0)
			assert.GreaterOrEqual(t, got, -100.0)
		})
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.24, round2(1.235))
	assert.Equal(t, -1.24, round2(-1.235))
	assert.Equal(t, 0.0, round2(nan()))
	assert.Equal(t, 0.1235, round(0.12345, 4))
}
