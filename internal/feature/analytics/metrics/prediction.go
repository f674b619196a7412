package metrics

import (
	"math/rand/v2"
	"time"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/series/domain/entity"
)

const trendWindow = 20

// PredictPrices extrapolates days prices after the last bar: the last close plus a
// linear trend over the trailing 20 closes plus Gaussian noise of 10% of the close
// standard deviation drawn from rng. It is a placeholder, not a forecast; the only
// guarantee is days dates and days prices for a non-empty series.
func PredictPrices(ts entity.TimeSeries, days int, rng *rand.Rand) analytics.Prediction {
	last, ok := ts.Last()
	if !ok || days <= 0 {
		return analytics.Prediction{Dates: []time.Time{}, Prices: []float64{}}
	}

	closes := ts.Closes()
	anchor := closes[max(0, len(closes)-trendWindow)]
	trend := (last.Close - anchor) / trendWindow
	sigma := 0.1 * dailyStdDev(closes)

	p := analytics.Prediction{
		Dates:  make([]time.Time, days),
		Prices: make([]float64, days),
	}
	for i := 1; i <= days; i++ {
		p.Dates[i-1] = last.Date.AddDate(0, 0, i)
		p.Prices[i-1] = round2(last.Close + trend*float64(i) + rng.NormFloat64()*sigma)
	}
	return p
}
