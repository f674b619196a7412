package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_analytics/internal/app/scheduler"
	"stock_analytics/internal/feature/series/usecase"
	platformhandler "stock_analytics/internal/platform/http/handler"
)

// IngestTask is the scheduler name of the ingest job.
const IngestTask = "ingest"

// NewIngestJob refreshes the bars of every active symbol listed on markets (all
// markets when empty).
func NewIngestJob(symbols *usecase.SymbolUsecase, ingest *usecase.IngestUsecase, markets []string) scheduler.Job {
	return func(ctx context.Context) error {
		codes, err := symbols.ListActiveCodes(ctx, markets...)
		if err != nil {
			return fmt.Errorf("failed to load symbols: %w", err)
		}
		return ingest.IngestAll(ctx, codes)
	}
}

// NewHealthChecks probes the optional database and Redis connections.
func NewHealthChecks(gdb *gorm.DB, rdb *redis.Client) map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{}
	if gdb != nil {
		checks["db"] = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
