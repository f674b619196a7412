// Package config loads the service configuration: defaults, then a YAML file, then
// STOCK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // market zones on hosts without zoneinfo

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"stock_analytics/internal/platform/db"
	redisx "stock_analytics/internal/platform/redis"
)

// EnvPrefix prefixes every environment override, e.g. STOCK_TWELVEDATA_API_KEY.
const EnvPrefix = "STOCK"

// Market data providers.
const (
	ProviderTwelveData = "twelvedata"
	ProviderYahoo      = "yahoo"
	ProviderDatabase   = "database"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Log        LogConfig        `yaml:"log" envconfig:"LOG"`
	Provider   ProviderConfig   `yaml:"provider" envconfig:"PROVIDER"`
	TwelveData TwelveDataConfig `yaml:"twelvedata" envconfig:"TWELVEDATA"`
	Yahoo      YahooConfig      `yaml:"yahoo" envconfig:"YAHOO"`
	Cache      CacheConfig      `yaml:"cache" envconfig:"CACHE"`
	Redis      redisx.Config    `yaml:"redis" envconfig:"REDIS"`
	DB         DBConfig         `yaml:"db" envconfig:"DB"`
	Analytics  AnalyticsConfig  `yaml:"analytics" envconfig:"ANALYTICS"`
	Auth       AuthConfig       `yaml:"auth" envconfig:"AUTH"`
	Ingest     IngestConfig     `yaml:"ingest" envconfig:"INGEST"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"ADDR"`
	AllowedOrigins  []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"` // json or text
}

type ProviderConfig struct {
	Name string `yaml:"name" envconfig:"NAME"`
}

type TwelveDataConfig struct {
	APIKey            string        `yaml:"api_key" envconfig:"API_KEY"`
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	RequestsPerMinute int           `yaml:"requests_per_minute" envconfig:"REQUESTS_PER_MINUTE"`
}

type YahooConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	Proxy   string        `yaml:"proxy" envconfig:"PROXY"`
}

// CacheConfig tunes the in-process store and the Redis tier.
type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl" envconfig:"TTL"`
	MaxEntries int           `yaml:"max_entries" envconfig:"MAX_ENTRIES"`
	EvictBatch int           `yaml:"evict_batch" envconfig:"EVICT_BATCH"`
	RedisTTL   time.Duration `yaml:"redis_ttl" envconfig:"REDIS_TTL"`
	// RefreshHour, when in 0..23, expires Redis entries at that local hour instead
	// of after RedisTTL. -1 disables it.
	RefreshHour int    `yaml:"refresh_hour" envconfig:"REFRESH_HOUR"`
	Location    string `yaml:"location" envconfig:"LOCATION"`
}

// DBConfig selects the database. An empty driver runs without one.
type DBConfig struct {
	db.Config      `yaml:",inline"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"CONNECT_TIMEOUT"`
	Migrate        bool          `yaml:"migrate" envconfig:"MIGRATE"`
}

type AnalyticsConfig struct {
	RiskFreeRate         float64           `yaml:"risk_free_rate" envconfig:"RISK_FREE_RATE"`
	OverviewRiskFreeRate float64           `yaml:"overview_risk_free_rate" envconfig:"OVERVIEW_RISK_FREE_RATE"`
	PredictionDays       int               `yaml:"prediction_days" envconfig:"PREDICTION_DAYS"`
	PredictionSeed       uint64            `yaml:"prediction_seed" envconfig:"PREDICTION_SEED"`
	BenchmarkDefault     string            `yaml:"benchmark_default" envconfig:"BENCHMARK_DEFAULT"`
	Benchmarks           map[string]string `yaml:"benchmarks" envconfig:"BENCHMARKS"` // market suffix -> index
}

type AuthConfig struct {
	Enabled  bool          `yaml:"enabled" envconfig:"ENABLED"`
	Secret   string        `yaml:"secret" envconfig:"SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" envconfig:"TOKEN_TTL"`
}

type IngestConfig struct {
	Cron         string   `yaml:"cron" envconfig:"CRON"`
	LookbackDays int      `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS"`
	Markets      []string `yaml:"markets" envconfig:"MARKETS"` // exchange suffixes, e.g. SS,SZ; empty = all
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 15 * time.Second,
		},
		Log:      LogConfig{Level: "info", Format: "json"},
		Provider: ProviderConfig{Name: ProviderYahoo},
		TwelveData: TwelveDataConfig{
			BaseURL:           "https://api.twelvedata.com",
			Timeout:           10 * time.Second,
			RequestsPerMinute: 8,
		},
		Yahoo: YahooConfig{
			BaseURL: "https://query1.finance.yahoo.com",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			TTL:         time.Hour,
			MaxEntries:  50,
			EvictBatch:  10,
			RedisTTL:    5 * time.Minute,
			RefreshHour: -1,
			Location:    "Asia/Shanghai",
		},
		DB: DBConfig{ConnectTimeout: 60 * time.Second},
		Analytics: AnalyticsConfig{
			RiskFreeRate:         0.03,
			OverviewRiskFreeRate: 0.02,
			PredictionDays:       7,
			PredictionSeed:       42,
			BenchmarkDefault:     "399001.SZ",
			Benchmarks:           map[string]string{".SS": "000001.SS"},
		},
		Auth:   AuthConfig{TokenTTL: 30 * 24 * time.Hour},
		Ingest: IngestConfig{Cron: "0 30 18 * * 1-5", LookbackDays: 730},
	}
}

// Load reads path (a missing file is not an error), applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case ProviderTwelveData:
		if c.TwelveData.APIKey == "" {
			return fmt.Errorf("twelvedata.api_key is required for provider %q", c.Provider.Name)
		}
	case ProviderYahoo:
	case ProviderDatabase:
		if c.DB.Driver == "" {
			return fmt.Errorf("db.driver is required for provider %q", c.Provider.Name)
		}
	default:
		return fmt.Errorf("provider.name must be one of %s, %s, %s; got %q",
			ProviderTwelveData, ProviderYahoo, ProviderDatabase, c.Provider.Name)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.Cache.MaxEntries <= 0 || c.Cache.EvictBatch <= 0 {
		return fmt.Errorf("cache.max_entries and cache.evict_batch must be positive")
	}
	if c.Cache.RefreshHour < -1 || c.Cache.RefreshHour > 23 {
		return fmt.Errorf("cache.refresh_hour must be -1 or 0..23")
	}
	if _, err := time.LoadLocation(c.Cache.Location); err != nil {
		return fmt.Errorf("cache.location: %w", err)
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required when auth is enabled")
	}
	if c.Analytics.PredictionDays <= 0 {
		return fmt.Errorf("analytics.prediction_days must be positive")
	}
	if c.Ingest.LookbackDays <= 0 {
		return fmt.Errorf("ingest.lookback_days must be positive")
	}
	return nil
}

// Location returns the market time zone that decides what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Cache.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps log.level to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Lookback returns the ingest window.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.Ingest.LookbackDays) * 24 * time.Hour
}
