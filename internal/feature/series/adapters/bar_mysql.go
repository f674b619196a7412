// Package adapters provides the gorm-backed repositories of the series feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
)

type barMySQL struct {
	db *gorm.DB
}

var (
	_ usecase.BarRepository    = (*barMySQL)(nil)
	_ usecase.MarketRepository = (*barMySQL)(nil)
)

// NewBarRepository returns a repository over the price_bars table. It doubles as a
// MarketRepository so stored bars can serve analytics without an upstream call.
func NewBarRepository(db *gorm.DB) *barMySQL {
	return &barMySQL{db: db}
}

// PriceBarModel is the persisted form of a daily bar.
type PriceBarModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:bar_sym_date,priority:1"`
	TradeDate time.Time `gorm:"not null;uniqueIndex:bar_sym_date,priority:2"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (PriceBarModel) TableName() string {
	return "price_bars"
}

func toModel(symbol string, b entity.PriceBar) PriceBarModel {
	return PriceBarModel{
		Symbol:    symbol,
		TradeDate: entity.Day(b.Date),
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    b.Volume,
	}
}

// UpsertBatch inserts bars, overwriting the prices of any (symbol, date) already stored.
func (r *barMySQL) UpsertBatch(ctx context.Context, symbol string, bars []entity.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]PriceBarModel, 0, len(bars))
	for _, b := range bars {
		ms = append(ms, toModel(symbol, b))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// FetchDaily returns the stored bars of symbol between start and end inclusive, oldest first.
// PercentChange is left for the series constructor to derive.
func (r *barMySQL) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]entity.PriceBar, error) {
	var rows []PriceBarModel
	q := r.db.WithContext(ctx).Where("symbol = ?", symbol)
	if !start.IsZero() {
		q = q.Where("trade_date >= ?", entity.Day(start))
	}
	if !end.IsZero() {
		q = q.Where("trade_date <= ?", entity.Day(end))
	}
	if err := q.Order("trade_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.PriceBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.PriceBar{
			Date:   m.TradeDate.UTC(),
			Open:   m.Open,
			High:   m.High,
			Low:    m.Low,
			Close:  m.Close,
			Volume: m.Volume,
		})
	}
	return out, nil
}
