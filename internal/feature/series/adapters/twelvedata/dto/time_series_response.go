// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// TimeSeriesResponse represents the JSON response from the Twelve Data time_series endpoint.
type TimeSeriesResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
		Exchange string `json:"exchange"`
	} `json:"meta"`
	Values []TimeSeriesValue `json:"values"`
}

// TimeSeriesValue is one bar; Twelve Data encodes every number as a string.
type TimeSeriesValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume,omitempty"`
}
