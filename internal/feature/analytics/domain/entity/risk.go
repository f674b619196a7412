package entity

import "time"

// RiskReport is the tail-risk bundle over a trailing window. All values are
// positive magnitudes in percent.
type RiskReport struct {
	Symbol         string
	Start          time.Time
	End            time.Time
	ValueAtRisk    float64 // 95% one-day historical VaR
	ConditionalVaR float64 // mean loss beyond the VaR
	MaxDrawdown    float64
	DownsideRisk   float64 // annualized deviation of negative returns
}
