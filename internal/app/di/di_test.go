package di

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stock_analytics/internal/app/config"
	analyticsadapters "stock_analytics/internal/feature/analytics/adapters"
	seriesadapters "stock_analytics/internal/feature/series/adapters"
	"stock_analytics/internal/feature/series/adapters/twelvedata"
	"stock_analytics/internal/feature/series/adapters/yahoo"
	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
	"stock_analytics/internal/platform/db"
	"stock_analytics/internal/shared/ratelimiter"
)

type fakeMarket struct {
	bars []entity.PriceBar
}

func (f *fakeMarket) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]entity.PriceBar, error) {
	return f.bars, nil
}

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Driver = db.DriverSQLite
	cfg.DB.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.DB.Migrate = true
	return cfg
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := OpenDatabase(sqliteConfig(t))
	require.NoError(t, err)
	require.NotNil(t, gdb)
	return gdb
}

func TestOpenDatabase(t *testing.T) {
	t.Parallel()

	t.Run("no driver means no database", func(t *testing.T) {
		t.Parallel()

		gdb, err := OpenDatabase(config.Default())
		require.NoError(t, err)
		assert.Nil(t, gdb)
	})

	t.Run("sqlite with migration", func(t *testing.T) {
		t.Parallel()

		gdb := openTestDB(t)
		m := gdb.Migrator()
		assert.True(t, m.HasTable(&seriesadapters.PriceBarModel{}))
		assert.True(t, m.HasTable(&entity.Symbol{}))
		assert.True(t, m.HasTable(&analyticsadapters.OverviewSnapshotModel{}))
	})
}

func TestNewMarket(t *testing.T) {
	t.Parallel()

	limiter := ratelimiter.NewRateLimiter(0, 0)

	t.Run("yahoo", func(t *testing.T) {
		t.Parallel()

		m, err := NewMarket(config.Default(), nil, limiter)
		require.NoError(t, err)
		assert.IsType(t, &yahoo.Market{}, m)
	})

	t.Run("twelvedata", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.Provider.Name = config.ProviderTwelveData
		cfg.TwelveData.APIKey = "key"
		m, err := NewMarket(cfg, nil, limiter)
		require.NoError(t, err)
		assert.IsType(t, &twelvedata.Market{}, m)
	})

	t.Run("database needs a connection", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.Provider.Name = config.ProviderDatabase
		_, err := NewMarket(cfg, nil, limiter)
		assert.Error(t, err)
	})

	t.Run("database", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.Provider.Name = config.ProviderDatabase
		m, err := NewMarket(cfg, openTestDB(t), limiter)
		require.NoError(t, err)
		assert.NotNil(t, m)
	})
}

func TestNewUpstreamMarket(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Provider.Name = config.ProviderDatabase
	m, err := NewUpstreamMarket(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &yahoo.Market{}, m)

	cfg.TwelveData.APIKey = "key"
	m, err = NewUpstreamMarket(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &twelvedata.Market{}, m)
}

func TestNewSeriesStore_ServesFromMarket(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	market := &fakeMarket{bars: []entity.PriceBar{
		{Date: day, Open: 10, High: 11, Low: 9, Close: 10, Volume: 100},
		{Date: day.AddDate(0, 0, 1), Open: 10, High: 12, Low: 10, Close: 11, Volume: 100},
	}}

	cfg := config.Default()
	store := NewSeriesStore(cfg, NewCachedMarket(cfg, nil, market), prometheus.NewRegistry())

	ts, err := store.Get(context.Background(), "600519.SS", day, day.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, 1, store.Len())
}

func TestNewIngestJob(t *testing.T) {
	t.Parallel()

	gdb := openTestDB(t)
	require.NoError(t, gdb.Create(&entity.Symbol{Code: "600519.SS", Name: "Kweichow Moutai", Market: "SSE", IsActive: true}).Error)
	require.NoError(t, gdb.Create(&entity.Symbol{Code: "000001.SZ", Name: "Ping An Bank", Market: "SZSE", IsActive: true}).Error)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	market := &fakeMarket{bars: []entity.PriceBar{
		{Date: day, Open: 10, High: 11, Low: 9, Close: 10, Volume: 100},
		{Date: day.AddDate(0, 0, 1), Open: 10, High: 12, Low: 10, Close: 11, Volume: 100},
		{Date: day.AddDate(0, 0, 2), Open: 11, High: 12, Low: 10, Close: 12, Volume: 100},
	}}

	cfg := config.Default()
	symbols := usecase.NewSymbolUsecase(seriesadapters.NewSymbolRepository(gdb))
	ingest := usecase.NewIngestUsecase(market, NewBarWriter(cfg, nil, gdb), ratelimiter.NewRateLimiter(0, 0), cfg.Lookback())

	job := NewIngestJob(symbols, ingest, nil)
	require.NoError(t, job(context.Background()))

	var count int64
	require.NoError(t, gdb.Model(&seriesadapters.PriceBarModel{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)

	// a second run overwrites instead of duplicating
	require.NoError(t, job(context.Background()))
	require.NoError(t, gdb.Model(&seriesadapters.PriceBarModel{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)

	var sz int64
	require.NoError(t, gdb.Model(&seriesadapters.PriceBarModel{}).Where("symbol = ?", "000001.SZ").Count(&sz).Error)
	assert.Equal(t, int64(3), sz)
}

func TestNewIngestJob_Markets(t *testing.T) {
	t.Parallel()

	gdb := openTestDB(t)
	require.NoError(t, gdb.Create(&entity.Symbol{Code: "600519.SS", Name: "Kweichow Moutai", Market: "SSE", IsActive: true}).Error)
	require.NoError(t, gdb.Create(&entity.Symbol{Code: "0700.HK", Name: "Tencent", Market: "HKEX", IsActive: true}).Error)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	market := &fakeMarket{bars: []entity.PriceBar{
		{Date: day, Open: 10, High: 11, Low: 9, Close: 10, Volume: 100},
	}}

	cfg := config.Default()
	symbols := usecase.NewSymbolUsecase(seriesadapters.NewSymbolRepository(gdb))
	ingest := usecase.NewIngestUsecase(market, NewBarWriter(cfg, nil, gdb), ratelimiter.NewRateLimiter(0, 0), cfg.Lookback())

	require.NoError(t, NewIngestJob(symbols, ingest, []string{"hk"})(context.Background()))

	var stored []string
	require.NoError(t, gdb.Model(&seriesadapters.PriceBarModel{}).Distinct().Pluck("symbol", &stored).Error)
	assert.Equal(t, []string{"0700.HK"}, stored)

	err := NewIngestJob(symbols, ingest, []string{"H*"})(context.Background())
	assert.ErrorIs(t, err, usecase.ErrInvalidMarket)
}

func TestNewHealthChecks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewHealthChecks(nil, nil))

	checks := NewHealthChecks(openTestDB(t), nil)
	require.Contains(t, checks, "db")
	assert.NoError(t, checks["db"](context.Background()))
}
