package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_analytics/internal/feature/series/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&PriceBarModel{}, &entity.Symbol{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedBar(t *testing.T, db *gorm.DB, symbol string, date time.Time, close float64) {
	t.Helper()

	m := &PriceBarModel{Symbol: symbol, TradeDate: date, Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 1000}
	require.NoError(t, db.Create(m).Error, "failed to seed bar")
}

var baseDay = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func TestBarMySQL_UpsertBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bars      []entity.PriceBar
		setupFunc func(t *testing.T, db *gorm.DB)
		wantCount int64
		wantClose float64
	}{
		{
			name: "success: insert",
			bars: []entity.PriceBar{
				{Date: baseDay, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
				{Date: baseDay.AddDate(0, 0, 1), Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 200},
			},
			wantCount: 2,
			wantClose: 10.5,
		},
		{
			name:      "success: empty slice is a no-op",
			bars:      []entity.PriceBar{},
			wantCount: 0,
		},
		{
			name: "success: existing day is overwritten",
			bars: []entity.PriceBar{
				{Date: baseDay.Add(15 * time.Hour), Open: 20, High: 22, Low: 19, Close: 21, Volume: 300},
			},
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedBar(t, db, "600519.SS", baseDay, 10)
			},
			wantCount: 1,
			wantClose: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewBarRepository(db)
			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			require.NoError(t, repo.UpsertBatch(context.Background(), "600519.SS", tt.bars))

			var count int64
			db.Model(&PriceBarModel{}).Count(&count)
			assert.Equal(t, tt.wantCount, count)
			if tt.wantCount > 0 {
				var first PriceBarModel
				require.NoError(t, db.Order("trade_date ASC").First(&first).Error)
				assert.Equal(t, tt.wantClose, first.Close)
			}
		})
	}
}

func TestBarMySQL_FetchDaily(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)
	seedBar(t, db, "AAPL", baseDay.AddDate(0, 0, 2), 12)
	seedBar(t, db, "AAPL", baseDay, 10)
	seedBar(t, db, "AAPL", baseDay.AddDate(0, 0, 1), 11)
	seedBar(t, db, "AAPL", baseDay.AddDate(0, 0, 10), 20)
	seedBar(t, db, "MSFT", baseDay, 300)

	t.Run("range is inclusive and ordered ascending", func(t *testing.T) {
		bars, err := repo.FetchDaily(context.Background(), "AAPL", baseDay, baseDay.AddDate(0, 0, 2))
		require.NoError(t, err)
		require.Len(t, bars, 3)
		assert.Equal(t, []float64{10, 11, 12}, []float64{bars[0].Close, bars[1].Close, bars[2].Close})
		assert.Equal(t, baseDay.Unix(), bars[0].Date.Unix())
		assert.Equal(t, int64(1000), bars[0].Volume)
	})

	t.Run("zero bounds return everything", func(t *testing.T) {
		bars, err := repo.FetchDaily(context.Background(), "AAPL", time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, bars, 4)
	})

	t.Run("unknown symbol returns empty", func(t *testing.T) {
		bars, err := repo.FetchDaily(context.Background(), "NOTFOUND", baseDay, baseDay)
		require.NoError(t, err)
		assert.Empty(t, bars)
	})
}
