package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&OverviewSnapshotModel{}), "failed to migrate tables")
	return db
}

func overview(symbol string, price float64, updated time.Time) analytics.Overview {
	day := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	return analytics.Overview{
		Symbol:        symbol,
		AsOf:          day,
		CurrentPrice:  price,
		Change:        1.5,
		ChangePercent: 0.75,
		Volume:        12000,
		Indicators: analytics.TechnicalIndicators{
			Volatility: 21.4,
			Beta:       analytics.BetaResult{Value: 1, Degraded: true, Reason: "benchmark unavailable"},
			RSI:        analytics.RSIResult{Value: 61.2, Period: 14, Sufficient: true},
		},
		History:    analytics.History{Dates: []time.Time{day}, Prices: []float64{price}, Volumes: []int64{12000}},
		Prediction: analytics.Prediction{Dates: []time.Time{day.AddDate(0, 0, 1)}, Prices: []float64{price + 1}},
		UpdatedAt:  updated,
	}
}

func TestSnapshotMySQL_Upsert(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()
	first := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, overview("AAPL", 200, first)))
	require.NoError(t, repo.Upsert(ctx, overview("MSFT", 400, first)))

	var before OverviewSnapshotModel
	require.NoError(t, db.Where("symbol = ?", "AAPL").First(&before).Error)
	assert.Len(t, before.ID, 36)

	second := first.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, overview("AAPL", 210, second)))

	var count int64
	require.NoError(t, db.Model(&OverviewSnapshotModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "one row per symbol")

	got, err := repo.FindBySymbol(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 210.0, got.CurrentPrice)
	assert.True(t, second.Equal(got.UpdatedAt))
	assert.Equal(t, []float64{211}, got.Prediction.Prices)
	assert.Equal(t, "benchmark unavailable", got.Indicators.Beta.Reason)
	assert.Equal(t, 61.2, got.Indicators.RSI.Value)

	var after OverviewSnapshotModel
	require.NoError(t, db.Where("symbol = ?", "AAPL").First(&after).Error)
	assert.Equal(t, before.ID, after.ID, "upsert keeps the row id")
}

func TestSnapshotMySQL_FindBySymbol_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))

	_, err := repo.FindBySymbol(context.Background(), "NOPE")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
