package metrics

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
)

func TestBuild_OnlyRequestedMetrics(t *testing.T) {
	t.Parallel()

	ts := series(t, 100, 105, 98, 120, 90)
	r := Build(ts, Benchmark{}, analytics.BasicMetrics, DefaultOptions())

	require.NotNil(t, r.TotalReturn)
	assert.Equal(t, -10.0, *r.TotalReturn)
	assert.NotNil(t, r.AnnualizedVolatility)
	assert.NotNil(t, r.SharpeRatio)
	assert.NotNil(t, r.MaxDrawdown)
	assert.Nil(t, r.Beta)
	assert.Nil(t, r.RSI)
	assert.Nil(t, r.MACD)
	assert.Nil(t, r.SuddenChanges)
	assert.Nil(t, r.DailyStats)
	assert.Equal(t, 5, r.Bars)
}

func TestBuild_FullBundle(t *testing.T) {
	t.Parallel()

	ts := series(t, rising(30, 10, 1)...)
	r := Build(ts, Benchmark{Symbol: "IDX"}, analytics.AllMetrics, DefaultOptions())

	require.NotNil(t, r.Beta)
	assert.True(t, r.Beta.Degraded)
	require.NotNil(t, r.RSI)
	assert.True(t, r.RSI.Sufficient)
	require.NotNil(t, r.MACD)
	assert.True(t, r.MACD.Sufficient)
	assert.NotNil(t, r.SuddenChanges)
	assert.Len(t, r.DailyStats, 30)
}

func TestBuild_IsDeterministic(t *testing.T) {
	t.Parallel()

	ts := series(t, 100, 103.3, 97.1, 110.2, 108, 99.9, 101.01)
	a := Build(ts, Benchmark{}, analytics.AllMetrics, DefaultOptions())
	b := Build(ts, Benchmark{}, analytics.AllMetrics, DefaultOptions())
	assert.Equal(t, a, b)
}

func TestNeedsBenchmark(t *testing.T) {
	t.Parallel()

	assert.True(t, NeedsBenchmark(analytics.AllMetrics))
	assert.False(t, NeedsBenchmark(analytics.BasicMetrics))
}

func TestPredictPrices(t *testing.T) {
	t.Parallel()

	ts := series(t, rising(40, 100, 1)...)
	last, _ := ts.Last()

	p := PredictPrices(ts, 7, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, p.Dates, 7)
	require.Len(t, p.Prices, 7)
	for i, d := range p.Dates {
		assert.Equal(t, last.Date.AddDate(0, 0, i+1), d)
	}

	again := PredictPrices(ts, 7, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, p, again, "same seed, same placeholder")
}

func TestPredictPrices_FlatSeriesHasNoNoise(t *testing.T) {
	t.Parallel()

	p := PredictPrices(series(t, rising(5, 50, 0)...), 3, rand.New(rand.NewPCG(9, 9)))
	assert.Equal(t, []float64{50, 50, 50}, p.Prices)
}

func TestPredictPrices_Empty(t *testing.T) {
	t.Parallel()

	p := PredictPrices(series(t), 7, rand.New(rand.NewPCG(1, 1)))
	assert.Empty(t, p.Dates)
	assert.Empty(t, p.Prices)
}
