// Package handler provides the HTTP handlers of the analytics feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analytics/internal/api"
	"stock_analytics/internal/feature/analytics/domain"
	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/analytics/transport/http/dto"
	seriesdomain "stock_analytics/internal/feature/series/domain"
	"stock_analytics/internal/feature/series/domain/entity"
)

// AnalyticsUsecase is the set of analytics operations served over HTTP.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AnalyticsUsecase interface {
	GetMetrics(ctx context.Context, symbol string, start, end time.Time) (analytics.MetricsReport, error)
	GetBasicMetrics(ctx context.Context, symbol string, start time.Time) (analytics.MetricsReport, error)
	GetPriceData(ctx context.Context, symbol string, start time.Time) (analytics.MetricsReport, error)
	GetSuddenChanges(ctx context.Context, symbol string, start time.Time) (analytics.MetricsReport, error)
	GetRiskAnalysis(ctx context.Context, symbol string) (analytics.RiskReport, error)
	GetOverview(ctx context.Context, symbol string) (analytics.Overview, error)
	GetHistory(ctx context.Context, symbol, period string) ([]entity.PriceBar, error)
}

var errStartDateRequired = errors.New("start_date is required")

// AnalyticsHandler handles /api/stock requests.
type AnalyticsHandler struct {
	uc AnalyticsUsecase
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(uc AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetMetrics returns the full metrics bundle.
//
// GET /api/stock/analysis/:symbol?start_date=2024-01-01&end_date=2024-06-30
func (h *AnalyticsHandler) GetMetrics(c *gin.Context) {
	start, end, ok := h.dateRange(c, true)
	if !ok {
		return
	}
	r, err := h.uc.GetMetrics(c.Request.Context(), c.Param("symbol"), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMetricsResponse(r))
}

// GetBasicMetrics returns total return, volatility, Sharpe ratio and max drawdown.
//
// GET /api/stock/analysis/:symbol/basic?start_date=20240101
func (h *AnalyticsHandler) GetBasicMetrics(c *gin.Context) {
	start, _, ok := h.dateRange(c, false)
	if !ok {
		return
	}
	r, err := h.uc.GetBasicMetrics(c.Request.Context(), c.Param("symbol"), start)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBasicMetricsResponse(r))
}

// GetPriceData returns the daily stats.
func (h *AnalyticsHandler) GetPriceData(c *gin.Context) {
	start, _, ok := h.dateRange(c, false)
	if !ok {
		return
	}
	r, err := h.uc.GetPriceData(c.Request.Context(), c.Param("symbol"), start)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPriceDataResponse(r))
}

// GetSuddenChanges returns the most recent sudden moves.
func (h *AnalyticsHandler) GetSuddenChanges(c *gin.Context) {
	start, _, ok := h.dateRange(c, false)
	if !ok {
		return
	}
	r, err := h.uc.GetSuddenChanges(c.Request.Context(), c.Param("symbol"), start)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSuddenChangesResponse(r))
}

// GetRiskAnalysis returns the trailing-year risk bundle.
//
// GET /api/stock/analysis/:symbol/risk
func (h *AnalyticsHandler) GetRiskAnalysis(c *gin.Context) {
	r, err := h.uc.GetRiskAnalysis(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRiskAnalysisResponse(r))
}

// GetOverview returns the dashboard view of a symbol.
//
// GET /api/stock/:symbol
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	o, err := h.uc.GetOverview(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOverviewResponse(o))
}

// GetHistory returns the bars of a trailing period, one month by default.
//
// GET /api/stock/:symbol/history?period=3mo
func (h *AnalyticsHandler) GetHistory(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if q.Period == "" {
		q.Period = string(analytics.DefaultPeriod)
	}
	bars, err := h.uc.GetHistory(c.Request.Context(), c.Param("symbol"), q.Period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHistoryResponse(strings.ToUpper(strings.TrimSpace(c.Param("symbol"))), q.Period, bars))
}

// dateRange parses start_date (required) and, when withEnd is set, the optional
// end_date. It writes a 400 and returns ok=false on bad input.
func (h *AnalyticsHandler) dateRange(c *gin.Context, withEnd bool) (start, end time.Time, ok bool) {
	var q dto.AnalysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return time.Time{}, time.Time{}, false
	}
	if q.StartDate == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errStartDateRequired.Error()})
		return time.Time{}, time.Time{}, false
	}
	start, err := entity.ParseDate(q.StartDate)
	if err != nil {
		writeError(c, err)
		return time.Time{}, time.Time{}, false
	}
	if withEnd && q.EndDate != "" {
		end, err = entity.ParseDate(q.EndDate)
		if err != nil {
			writeError(c, err)
			return time.Time{}, time.Time{}, false
		}
	}
	return start, end, true
}

// writeError maps a usecase error to its HTTP status.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, seriesdomain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidSymbol):
		status = http.StatusBadRequest
	case errors.Is(err, seriesdomain.ErrDataUnavailable):
		status = http.StatusNotFound
	case errors.Is(err, seriesdomain.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		slog.Error("analytics request failed", "path", c.FullPath(), "symbol", c.Param("symbol"), "status", status, "error", err)
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}
