package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"stock_analytics/internal/api"
	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/analytics/metrics"
	"stock_analytics/internal/feature/series/domain/entity"
)

func date(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

func dates(ts []time.Time) []openapi_types.Date {
	out := make([]openapi_types.Date, 0, len(ts))
	for _, t := range ts {
		out = append(out, date(t))
	}
	return out
}

func beta(b analytics.BetaResult) api.BetaResult {
	out := api.BetaResult{Value: b.Value, Degraded: b.Degraded}
	if b.Reason != "" {
		reason := b.Reason
		out.Reason = &reason
	}
	return out
}

func rsi(r analytics.RSIResult) api.RSIResult {
	return api.RSIResult{Value: r.Value, Period: r.Period, Sufficient: r.Sufficient}
}

func macd(m analytics.MACDResult) api.MACDResult {
	return api.MACDResult{Macd: m.MACD, Signal: m.Signal, Histogram: m.Histogram, Sufficient: m.Sufficient}
}

func suddenChanges(in []analytics.SuddenChange) []api.SuddenChange {
	out := make([]api.SuddenChange, 0, len(in))
	for _, s := range in {
		out = append(out, api.SuddenChange{Date: date(s.Date), PercentChange: s.PercentChange, Close: s.Close, Volume: s.Volume})
	}
	return out
}

func dailyStats(in []analytics.DailyStat) []api.DailyStat {
	out := make([]api.DailyStat, 0, len(in))
	for _, s := range in {
		out = append(out, api.DailyStat{Date: date(s.Date), Close: s.Close, Volume: s.Volume, PercentChange: s.PercentChange})
	}
	return out
}

// ToMetricsResponse renders every metric present in r; absent ones are omitted.
func ToMetricsResponse(r analytics.MetricsReport) api.MetricsResponse {
	out := api.MetricsResponse{
		Symbol:      r.Symbol,
		StartDate:   date(r.Start),
		EndDate:     date(r.End),
		Bars:        r.Bars,
		TotalReturn: r.TotalReturn,
		Volatility:  r.AnnualizedVolatility,
		SharpeRatio: r.SharpeRatio,
		MaxDrawdown: r.MaxDrawdown,
	}
	if r.Beta != nil {
		b := beta(*r.Beta)
		out.Beta = &b
	}
	if r.RSI != nil {
		v := rsi(*r.RSI)
		out.Rsi = &v
	}
	if r.MACD != nil {
		m := macd(*r.MACD)
		out.Macd = &m
	}
	if r.SuddenChanges != nil {
		s := suddenChanges(r.SuddenChanges)
		out.SuddenChanges = &s
	}
	if r.DailyStats != nil {
		d := dailyStats(r.DailyStats)
		out.DailyStats = &d
	}
	return out
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func ToBasicMetricsResponse(r analytics.MetricsReport) api.BasicMetricsResponse {
	return api.BasicMetricsResponse{
		Symbol:      r.Symbol,
		TotalReturn: deref(r.TotalReturn),
		Volatility:  deref(r.AnnualizedVolatility),
		SharpeRatio: deref(r.SharpeRatio),
		MaxDrawdown: deref(r.MaxDrawdown),
	}
}

func ToPriceDataResponse(r analytics.MetricsReport) api.PriceDataResponse {
	return api.PriceDataResponse{Symbol: r.Symbol, DailyStats: dailyStats(r.DailyStats)}
}

func ToSuddenChangesResponse(r analytics.MetricsReport) api.SuddenChangesResponse {
	return api.SuddenChangesResponse{Symbol: r.Symbol, SuddenChanges: suddenChanges(r.SuddenChanges)}
}

func ToRiskAnalysisResponse(r analytics.RiskReport) api.RiskAnalysisResponse {
	return api.RiskAnalysisResponse{
		Symbol:         r.Symbol,
		ValueAtRisk:    r.ValueAtRisk,
		ConditionalVar: r.ConditionalVaR,
		MaxDrawdown:    r.MaxDrawdown,
		DownsideRisk:   r.DownsideRisk,
	}
}

// ToOverviewResponse flattens an overview for the dashboard.
func ToOverviewResponse(o analytics.Overview) api.StockOverviewResponse {
	return api.StockOverviewResponse{
		Symbol:        o.Symbol,
		AsOf:          date(o.AsOf),
		CurrentPrice:  o.CurrentPrice,
		Change:        o.Change,
		ChangePercent: o.ChangePercent,
		Volume:        o.Volume,
		TechnicalIndicators: api.TechnicalIndicators{
			Volatility:  o.Indicators.Volatility,
			SharpeRatio: o.Indicators.SharpeRatio,
			Beta:        beta(o.Indicators.Beta),
			Rsi:         rsi(o.Indicators.RSI),
			Macd:        macd(o.Indicators.MACD),
		},
		HistoricalData: api.HistoricalData{
			Dates:   dates(o.History.Dates),
			Prices:  nonNil(o.History.Prices),
			Volumes: nonNilInt(o.History.Volumes),
		},
		Prediction: api.Prediction{
			Dates:  dates(o.Prediction.Dates),
			Prices: nonNil(o.Prediction.Prices),
		},
		UpdatedAt: o.UpdatedAt,
	}
}

func ToHistoryResponse(symbol, period string, bars []entity.PriceBar) api.HistoryResponse {
	out := api.HistoryResponse{Symbol: symbol, Period: period, Bars: make([]api.HistoryBar, 0, len(bars))}
	for _, b := range bars {
		out.Bars = append(out.Bars, api.HistoryBar{
			Date:          date(b.Date),
			Open:          b.Open,
			High:          b.High,
			Low:           b.Low,
			Close:         b.Close,
			Volume:        b.Volume,
			PercentChange: metrics.Round2(b.PercentChange),
		})
	}
	return out
}

func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}

func nonNilInt(xs []int64) []int64 {
	if xs == nil {
		return []int64{}
	}
	return xs
}
