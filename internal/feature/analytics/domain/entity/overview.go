package entity

import "time"

// Prediction is a placeholder extrapolation: one price per future calendar day.
// It is not a forecast.
type Prediction struct {
	Dates  []time.Time
	Prices []float64
}

// TechnicalIndicators summarize the trailing year of a symbol.
type TechnicalIndicators struct {
	Volatility  float64
	SharpeRatio float64
	Beta        BetaResult
	RSI         RSIResult
	MACD        MACDResult
}

// History is the raw series laid out column-wise for charting.
type History struct {
	Dates   []time.Time
	Prices  []float64
	Volumes []int64
}

// Overview is the dashboard view of a symbol.
type Overview struct {
	Symbol        string
	AsOf          time.Time
	CurrentPrice  float64
	Change        float64
	ChangePercent float64
	Volume        int64
	Indicators    TechnicalIndicators
	History       History
	Prediction    Prediction
	UpdatedAt     time.Time
}
