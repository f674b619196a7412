package twelvedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_analytics/internal/feature/series/domain"
)

var (
	start = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
)

type countingLimiter struct{ calls int }

func (c *countingLimiter) Wait(context.Context) error {
	c.calls++
	return nil
}

func newTestMarket(t *testing.T, handler http.HandlerFunc, limiter *countingLimiter) *Market {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := Config{APIKey: "test-key", BaseURL: server.URL}
	if limiter == nil {
		return NewMarket(cfg, server.Client(), nil)
	}
	return NewMarket(cfg, server.Client(), limiter)
}

func TestNewMarket_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	m := NewMarket(Config{APIKey: "k"}, &http.Client{}, nil)
	assert.Equal(t, DefaultBaseURL, m.cfg.BaseURL)
}

func TestMarket_FetchDaily_Success(t *testing.T) {
	t.Parallel()

	limiter := &countingLimiter{}
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "600519.SS", q.Get("symbol"))
		assert.Equal(t, "1day", q.Get("interval"))
		assert.Equal(t, "2025-01-13", q.Get("start_date"))
		assert.Equal(t, "2025-01-15", q.Get("end_date"))
		assert.Equal(t, "test-key", q.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"meta": {"symbol": "600519.SS", "interval": "1day"},
			"values": [
				{"datetime": "2025-01-14 09:30:00", "open": "148.00", "high": "151.00", "low": "147.50", "close": "150.00", "volume": "900000"},
				{"datetime": "2025-01-15", "open": "150.00", "high": "155.00", "low": "149.00", "close": "154.50"}
			]
		}`))
	}, limiter)

	bars, err := m.FetchDaily(context.Background(), "600519.SS", start, end)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 150.0, bars[0].Close)
	assert.Equal(t, int64(900000), bars[0].Volume)
	assert.Equal(t, int64(0), bars[1].Volume, "missing volume parses as zero")
	assert.Equal(t, 1, limiter.calls)
}

func TestMarket_FetchDaily_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantErrText string
	}{
		{name: "http error", status: http.StatusInternalServerError, wantErrText: "twelvedata http 500"},
		{name: "api error", status: http.StatusOK, body: `{"status":"error","code":429,"message":"rate limited"}`, wantErrText: "twelvedata: rate limited"},
		{name: "unknown symbol", status: http.StatusOK, body: `{"status":"error","code":400,"message":"No data is available"}`, wantErr: domain.ErrDataUnavailable},
		{name: "malformed number", status: http.StatusOK, body: `{"status":"ok","values":[{"datetime":"2025-01-14","open":"x","high":"1","low":"1","close":"1"}]}`, wantErr: domain.ErrDataUnavailable},
		{name: "malformed json", status: http.StatusOK, body: `{`, wantErrText: "unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMarket(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			_, err := m.FetchDaily(context.Background(), "AAPL", start, end)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.wantErrText != "" {
				assert.Contains(t, err.Error(), tt.wantErrText)
			}
		})
	}
}

func TestMarket_FetchDaily_ContextCancelled(t *testing.T) {
	t.Parallel()

	m := newTestMarket(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","values":[]}`))
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.FetchDaily(ctx, "AAPL", start, end)
	assert.ErrorIs(t, err, context.Canceled)
}
