// Package entity defines the domain models for the series feature.
package entity

import "time"

// PriceBar represents one trading day of OHLCV data.
type PriceBar struct {
	Date   time.Time // Trading day, truncated to midnight UTC
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
	Volume int64     // Traded volume

	// PercentChange is the close-to-close change against the previous bar of the
	// same series, in percent. The first bar of a series carries 0.
	PercentChange float64
}

// Valid reports whether the bar has positive prices, a non-negative volume and a
// consistent high/low envelope.
func (b PriceBar) Valid() bool {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 || b.Volume < 0 {
		return false
	}
	if b.High < b.Low {
		return false
	}
	return b.High >= b.Open && b.High >= b.Close && b.Low <= b.Open && b.Low <= b.Close
}
