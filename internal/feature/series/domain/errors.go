// Package domain defines domain-level errors for the series feature.
package domain

import "errors"

// Domain errors for price series retrieval and analysis.
var (
	// ErrDataUnavailable indicates that the upstream returned nothing usable for the requested range:
	// zero bars, or rows that cannot form a valid series (duplicate dates, non-positive prices).
	ErrDataUnavailable = errors.New("no price data available")

	// ErrUpstream indicates that the call to the market data provider itself failed
	// (network, rate limit, unknown symbol).
	ErrUpstream = errors.New("market data provider failed")

	// ErrInsufficientHistory indicates that a series is too short for a specific metric.
	// Common metrics never return it; they report their neutral value instead.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrInvalidDate is returned when a date parameter cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)
