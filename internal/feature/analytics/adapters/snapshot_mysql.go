// Package adapters provides the gorm-backed persistence of the analytics feature.
package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/analytics/usecase"
)

type snapshotMySQL struct {
	db *gorm.DB
}

var _ usecase.SnapshotRepository = (*snapshotMySQL)(nil)

// NewSnapshotRepository returns a repository over the overview_snapshots table.
func NewSnapshotRepository(db *gorm.DB) *snapshotMySQL {
	return &snapshotMySQL{db: db}
}

// OverviewSnapshotModel keeps the latest overview computed for each symbol.
type OverviewSnapshotModel struct {
	ID            string    `gorm:"type:char(36);primaryKey"`
	Symbol        string    `gorm:"size:32;not null;uniqueIndex"`
	AsOf          time.Time `gorm:"not null"`
	CurrentPrice  float64   `gorm:"not null"`
	Change        float64   `gorm:"column:price_change;not null"`
	ChangePercent float64   `gorm:"not null"`
	Volume        int64     `gorm:"not null;default:0"`

	Indicators analytics.TechnicalIndicators `gorm:"type:text;serializer:json"`
	History    analytics.History             `gorm:"type:text;serializer:json"`
	Prediction analytics.Prediction          `gorm:"type:text;serializer:json"`

	UpdatedAt time.Time `gorm:"not null"`
}

func (OverviewSnapshotModel) TableName() string {
	return "overview_snapshots"
}

// Upsert stores o as the snapshot of its symbol, replacing any previous one.
func (r *snapshotMySQL) Upsert(ctx context.Context, o analytics.Overview) error {
	m := OverviewSnapshotModel{
		ID:            uuid.NewString(),
		Symbol:        o.Symbol,
		AsOf:          o.AsOf,
		CurrentPrice:  o.CurrentPrice,
		Change:        o.Change,
		ChangePercent: o.ChangePercent,
		Volume:        o.Volume,
		Indicators:    o.Indicators,
		History:       o.History,
		Prediction:    o.Prediction,
		UpdatedAt:     o.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"as_of", "current_price", "price_change", "change_percent", "volume",
			"indicators", "history", "prediction", "updated_at",
		}),
	}).Create(&m).Error
}

// FindBySymbol returns the stored snapshot of symbol, or gorm.ErrRecordNotFound.
func (r *snapshotMySQL) FindBySymbol(ctx context.Context, symbol string) (analytics.Overview, error) {
	var m OverviewSnapshotModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error; err != nil {
		return analytics.Overview{}, err
	}
	return analytics.Overview{
		Symbol:        m.Symbol,
		AsOf:          m.AsOf.UTC(),
		CurrentPrice:  m.CurrentPrice,
		Change:        m.Change,
		ChangePercent: m.ChangePercent,
		Volume:        m.Volume,
		Indicators:    m.Indicators,
		History:       m.History,
		Prediction:    m.Prediction,
		UpdatedAt:     m.UpdatedAt.UTC(),
	}, nil
}
