package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_analytics/internal/app/config"
	analyticsadapters "stock_analytics/internal/feature/analytics/adapters"
	analyticsusecase "stock_analytics/internal/feature/analytics/usecase"
	seriesadapters "stock_analytics/internal/feature/series/adapters"
	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
	"stock_analytics/internal/platform/cache"
)

const seriesNamespace = "series"

// NewCachedMarket decorates market with the shared Redis tier. A nil rdb passes
// every call through.
func NewCachedMarket(cfg *config.Config, rdb *redis.Client, market usecase.MarketRepository) *cache.CachingMarket {
	ttl := cache.FixedTTL(cfg.Cache.RedisTTL)
	if cfg.Cache.RefreshHour >= 0 {
		ttl = cache.RefreshTTL(cfg.Location(), cfg.Cache.RefreshHour)
	}
	return cache.NewCachingMarket(rdb, ttl, market, seriesNamespace)
}

// NewSeriesStore builds the in-process TTL store over market.
func NewSeriesStore(cfg *config.Config, market usecase.MarketRepository, reg prometheus.Registerer) *cache.SeriesStore {
	return cache.NewSeriesStore(market,
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithMaxEntries(cfg.Cache.MaxEntries),
		cache.WithEvictBatch(cfg.Cache.EvictBatch),
		cache.WithLocation(cfg.Location()),
		cache.WithMetrics(cache.NewMetrics(reg)),
	)
}

// NewBarWriter returns the ingest sink: the bar table, invalidating the Redis tier
// after every upsert.
func NewBarWriter(cfg *config.Config, rdb *redis.Client, gdb *gorm.DB) usecase.BarRepository {
	bars := seriesadapters.NewBarRepository(gdb)
	return NewCachedMarket(cfg, rdb, bars).WithWriter(bars)
}

// NewAnalyticsUsecase wires the analytics operations. gdb may be nil, in which case
// overview snapshots are not persisted.
func NewAnalyticsUsecase(cfg *config.Config, store analyticsusecase.SeriesStore, gdb *gorm.DB) *analyticsusecase.AnalyticsUsecase {
	var snapshots analyticsusecase.SnapshotRepository
	if gdb != nil {
		snapshots = analyticsadapters.NewSnapshotRepository(gdb)
	}
	return analyticsusecase.NewAnalyticsUsecase(
		store,
		analyticsusecase.NewBenchmarkResolver(cfg.Analytics.BenchmarkDefault, cfg.Analytics.Benchmarks),
		snapshots,
		analyticsusecase.Config{
			RiskFreeRate:         cfg.Analytics.RiskFreeRate,
			OverviewRiskFreeRate: cfg.Analytics.OverviewRiskFreeRate,
			PredictionDays:       cfg.Analytics.PredictionDays,
			PredictionSeed:       cfg.Analytics.PredictionSeed,
			Location:             cfg.Location(),
		},
	)
}

// Models lists the tables migrated at startup.
func Models() []any {
	return []any{
		&seriesadapters.PriceBarModel{},
		&entity.Symbol{},
		&analyticsadapters.OverviewSnapshotModel{},
	}
}
