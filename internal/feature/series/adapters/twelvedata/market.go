package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stock_analytics/internal/feature/series/adapters/twelvedata/dto"
	"stock_analytics/internal/feature/series/domain"
	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
	"stock_analytics/internal/shared/ratelimiter"
)

const maxOutputSize = 5000

// Market fetches daily bars from the Twelve Data time_series endpoint.
type Market struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket creates a Market. limiter may be nil when the caller throttles itself.
func NewMarket(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Market {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Market{cfg: cfg, client: client, limiter: limiter}
}

// FetchDaily returns the daily bars of symbol between start and end inclusive.
func (m *Market) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]entity.PriceBar, error) {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("start_date", entity.FormatDate(start))
	q.Set("end_date", entity.FormatDate(end))
	q.Set("order", "ASC")
	q.Set("outputsize", strconv.Itoa(maxOutputSize))
	q.Set("apikey", m.cfg.APIKey)

	u := fmt.Sprintf("%s/time_series?%s", m.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		// Twelve Data answers unknown symbols and empty ranges with an in-body 400/404.
		if body.Code == http.StatusBadRequest || body.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: twelvedata: %s", domain.ErrDataUnavailable, body.Message)
		}
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	bars := make([]entity.PriceBar, 0, len(body.Values))
	for _, v := range body.Values {
		b, err := toBar(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func toBar(v dto.TimeSeriesValue) (entity.PriceBar, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
	if err != nil {
		tm, err = time.Parse(entity.DateLayout, v.Datetime)
		if err != nil {
			return entity.PriceBar{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return entity.PriceBar{}, fmt.Errorf("parse open %q: %w", v.Open, err)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return entity.PriceBar{}, fmt.Errorf("parse high %q: %w", v.High, err)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return entity.PriceBar{}, fmt.Errorf("parse low %q: %w", v.Low, err)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return entity.PriceBar{}, fmt.Errorf("parse close %q: %w", v.Close, err)
	}
	// Indices carry no volume.
	var vol int64
	if v.Volume != "" {
		vol, err = strconv.ParseInt(v.Volume, 10, 64)
		if err != nil {
			return entity.PriceBar{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
	}

	return entity.PriceBar{Date: entity.Day(tm), Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}
