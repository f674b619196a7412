// Package di provides the factories that assemble the application components.
package di

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"stock_analytics/internal/app/config"
	seriesadapters "stock_analytics/internal/feature/series/adapters"
	"stock_analytics/internal/feature/series/adapters/twelvedata"
	"stock_analytics/internal/feature/series/adapters/yahoo"
	"stock_analytics/internal/feature/series/usecase"
	infrahttp "stock_analytics/internal/platform/http"
	"stock_analytics/internal/shared/ratelimiter"
)

// NewMarket returns the MarketRepository selected by provider.name. limiter throttles
// Twelve Data calls and may be nil.
func NewMarket(cfg *config.Config, gdb *gorm.DB, limiter ratelimiter.Limiter) (usecase.MarketRepository, error) {
	switch cfg.Provider.Name {
	case config.ProviderDatabase:
		if gdb == nil {
			return nil, fmt.Errorf("provider %q needs a database", cfg.Provider.Name)
		}
		return seriesadapters.NewBarRepository(gdb), nil
	case config.ProviderTwelveData:
		return newTwelveData(cfg, limiter)
	default:
		return newYahoo(cfg)
	}
}

// NewUpstreamMarket returns the HTTP provider used to fill the bar table: the
// configured one, or Twelve Data (when keyed) or Yahoo if the service reads from the
// database itself.
func NewUpstreamMarket(cfg *config.Config, limiter ratelimiter.Limiter) (usecase.MarketRepository, error) {
	switch {
	case cfg.Provider.Name == config.ProviderTwelveData:
		return newTwelveData(cfg, limiter)
	case cfg.Provider.Name == config.ProviderDatabase && cfg.TwelveData.APIKey != "":
		return newTwelveData(cfg, limiter)
	default:
		return newYahoo(cfg)
	}
}

func newTwelveData(cfg *config.Config, limiter ratelimiter.Limiter) (*twelvedata.Market, error) {
	client, err := infrahttp.NewHTTPClient(cfg.TwelveData.Timeout, "")
	if err != nil {
		return nil, err
	}
	tcfg := twelvedata.Config{
		APIKey:            cfg.TwelveData.APIKey,
		BaseURL:           cfg.TwelveData.BaseURL,
		Timeout:           cfg.TwelveData.Timeout,
		RequestsPerMinute: cfg.TwelveData.RequestsPerMinute,
	}
	return twelvedata.NewMarket(tcfg, client, limiter), nil
}

func newYahoo(cfg *config.Config) (*yahoo.Market, error) {
	client, err := infrahttp.NewHTTPClient(cfg.Yahoo.Timeout, cfg.Yahoo.Proxy)
	if err != nil {
		return nil, err
	}
	return yahoo.NewMarket(yahoo.Config{BaseURL: cfg.Yahoo.BaseURL, Timeout: cfg.Yahoo.Timeout, Proxy: cfg.Yahoo.Proxy}, client), nil
}

// NewProviderLimiter returns the client-side quota of the Twelve Data plan.
func NewProviderLimiter(cfg *config.Config) *ratelimiter.RateLimiter {
	return ratelimiter.NewRateLimiter(cfg.TwelveData.RequestsPerMinute, time.Minute)
}
