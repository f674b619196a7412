package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"stock_analytics/internal/feature/series/domain/entity"
)

func nan() float64 { return math.NaN() }

func closesFromReturns(start float64, returns ...float64) []float64 {
	out := []float64{start}
	for _, r := range returns {
		out = append(out, out[len(out)-1]*(1+r))
	}
	return out
}

func TestBeta(t *testing.T) {
	t.Parallel()

	benchReturns := []float64{0.01, -0.02, 0.03, -0.01, 0.015}
	stockReturns := make([]float64, len(benchReturns))
	for i, r := range benchReturns {
		stockReturns[i] = 2 * r
	}
	stock := series(t, closesFromReturns(100, stockReturns...)...)
	bench := series(t, closesFromReturns(3000, benchReturns...)...)

	got := Beta(stock, Benchmark{Symbol: "000001.SS", Series: bench})
	assert.False(t, got.Degraded)
	assert.Equal(t, 2.0, got.Value)
}

func TestBeta_UsesDateAlignedOverlap(t *testing.T) {
	t.Parallel()

	// The benchmark starts two days later; only shared return dates are paired.
	benchReturns := []float64{0.01, -0.02, 0.03, -0.01}
	stock := series(t, closesFromReturns(100, 0.5, -0.3, 0.01, -0.02, 0.03, -0.01)...)
	bench := seriesFrom(t, firstDay.AddDate(0, 0, 2), closesFromReturns(3000, benchReturns...)...)

	got := Beta(stock, Benchmark{Symbol: "IDX", Series: bench})
	assert.False(t, got.Degraded)
	assert.Equal(t, 1.0, got.Value)
}

func TestBeta_Degraded(t *testing.T) {
	t.Parallel()

	stock := series(t, 100, 101, 99, 103, 104)

	tests := []struct {
		name  string
		bench Benchmark
	}{
		{name: "fetch failed", bench: Benchmark{Symbol: "IDX", Err: errors.New("timeout")}},
		{name: "empty benchmark", bench: Benchmark{Symbol: "IDX"}},
		{name: "single overlapping return", bench: Benchmark{Symbol: "IDX", Series: seriesFrom(t, firstDay.AddDate(0, 0, 3), 10, 11)}},
		{name: "zero variance", bench: Benchmark{Symbol: "IDX", Series: series(t, 10, 10, 10, 10, 10)}},
		{name: "no date overlap", bench: Benchmark{Symbol: "IDX", Series: seriesFrom(t, firstDay.AddDate(1, 0, 0), 10, 11, 12)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Beta(stock, tt.bench)
			assert.True(t, got.Degraded)
			assert.Equal(t, NeutralBeta, got.Value)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestBeta_FailedBenchmarkIgnoresStockContent(t *testing.T) {
	t.Parallel()

	failed := Benchmark{Symbol: "IDX", Err: errors.New("boom")}
	for _, ts := range []entity.TimeSeries{{}, series(t, 1), series(t, 5, 50, 0.5, 500)} {
		assert.Equal(t, 1.0, Beta(ts, failed).Value)
	}
}
