// Package yahoo fetches daily bars from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stock_analytics/internal/feature/series/domain"
	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
)

// DefaultBaseURL is the public chart endpoint host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Proxy   string // optional HTTP proxy URL
}

// chartResponse mirrors the v8 chart payload. Prices are nullable on halted days.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Market implements usecase.MarketRepository over the chart API.
type Market struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket creates a Market using client for all requests.
func NewMarket(cfg Config, client *http.Client) *Market {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Market{cfg: cfg, client: client}
}

// FetchDaily returns the daily bars of symbol between start and end inclusive.
func (m *Market) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]entity.PriceBar, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", strconv.FormatInt(entity.Day(start).Unix(), 10))
	// period2 is exclusive.
	q.Set("period2", strconv.FormatInt(entity.Day(end).AddDate(0, 0, 1).Unix(), 10))
	q.Set("events", "history")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", m.cfg.BaseURL, url.PathEscape(symbol), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: yahoo: unknown symbol %s", domain.ErrDataUnavailable, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo: %s", domain.ErrDataUnavailable, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return []entity.PriceBar{}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]entity.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue
		}
		var vol int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		// Timestamps mark the session open; shift to exchange time before taking the date.
		date := time.Unix(ts+result.Meta.GMTOffset, 0).UTC()
		bars = append(bars, entity.PriceBar{
			Date:   entity.Day(date),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *c,
			Volume: vol,
		})
	}
	return bars, nil
}

func at(vs []*float64, i int) *float64 {
	if i >= len(vs) {
		return nil
	}
	return vs[i]
}
