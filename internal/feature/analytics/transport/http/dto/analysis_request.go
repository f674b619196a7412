// Package dto converts analytics results to the HTTP models of the api package.
package dto

// AnalysisQuery is the query string of the /api/stock/analysis endpoints. Dates
// accept YYYY-MM-DD or YYYYMMDD.
type AnalysisQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// HistoryQuery is the query string of the history endpoint.
type HistoryQuery struct {
	Period string `form:"period"`
}
