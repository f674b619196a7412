package metrics

import (
	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/series/domain/entity"
)

const (
	DefaultRSIPeriod = 14
	macdFast         = 12
	macdSlow         = 26
	macdSignal       = 9
)

// RSI is the relative strength index of the last period close-to-close moves, using
// simple averages of gains and losses. It needs period+1 bars; below that the result
// is marked insufficient rather than reported as a neutral 50.
func RSI(ts entity.TimeSeries, period int) analytics.RSIResult {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	closes := ts.Closes()
	n := len(closes)
	if n < period+1 {
		return analytics.RSIResult{Period: period}
	}

	var gain, loss float64
	for i := n - period; i < n; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain, avgLoss := gain/float64(period), loss/float64(period)

	var rsi float64
	switch {
	case avgGain == 0 && avgLoss == 0:
		rsi = 50
	case avgLoss == 0:
		rsi = 100
	default:
		rsi = 100 - 100/(1+avgGain/avgLoss)
	}
	return analytics.RSIResult{Value: round2(rsi), Period: period, Sufficient: true}
}

// MACD is EMA(12) - EMA(26) of closes with an EMA(9) signal line, as of the last bar.
// Shorter series return the partial values with Sufficient unset.
func MACD(ts entity.TimeSeries) analytics.MACDResult {
	closes := ts.Closes()
	if len(closes) == 0 {
		return analytics.MACDResult{}
	}

	fast, slow := ema(closes, macdFast), ema(closes, macdSlow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal := ema(line, macdSignal)

	last := len(closes) - 1
	return analytics.MACDResult{
		MACD:       round(line[last], 4),
		Signal:     round(signal[last], 4),
		Histogram:  round(line[last]-signal[last], 4),
		Sufficient: len(closes) >= macdSlow,
	}
}

// ema is the recursive exponential moving average seeded with the first value,
// alpha = 2/(span+1).
func ema(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	alpha := 2 / (float64(span) + 1)
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}
