package di

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_analytics/internal/app/config"
	"stock_analytics/internal/platform/db"
	redisx "stock_analytics/internal/platform/redis"
)

// NewLogger builds the process logger from log.level and log.format.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Log.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// OpenDatabase connects when db.driver is set and migrates the tables when
// db.migrate is on. It returns nil without error when no database is configured.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.Driver == "" {
		return nil, nil
	}
	gdb, err := db.Open(cfg.DB.Config, cfg.DB.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := db.Migrate(gdb, Models()...); err != nil {
			return nil, err
		}
	}
	slog.Info("database connected", "driver", cfg.DB.Driver)
	return gdb, nil
}

// OpenRedis connects when redis.host is set. A failed connection is logged and the
// service runs without the shared cache.
func OpenRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.Redis.Enabled() {
		return nil
	}
	rdb, err := redisx.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without shared cache", "error", err)
		return nil
	}
	return rdb
}
