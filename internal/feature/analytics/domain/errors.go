// Package domain holds the errors of the analytics feature. Data errors come from
// the series feature and are classified with errors.Is.
package domain

import "errors"

var (
	// ErrInvalidPeriod is returned for an unknown history window.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidSymbol is returned for an empty or malformed symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")
)
