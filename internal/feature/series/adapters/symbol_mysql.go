package adapters

import (
	"context"

	"gorm.io/gorm"

	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
)

type symbolMySQL struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolMySQL)(nil)

// NewSymbolRepository returns a repository over the symbols table.
func NewSymbolRepository(db *gorm.DB) *symbolMySQL {
	return &symbolMySQL{db: db}
}

func (r *symbolMySQL) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC")
}

// ListActive returns every active symbol ordered by sort_key, then code.
func (r *symbolMySQL) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.active(ctx).Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes returns the codes of active symbols in listing order. Given market
// suffixes (".SS", ".HK"), only codes ending in one of them are returned.
func (r *symbolMySQL) ListActiveCodes(ctx context.Context, suffixes ...string) ([]string, error) {
	q := r.active(ctx)
	if len(suffixes) > 0 {
		match := r.db.Where("code LIKE ?", "%"+suffixes[0])
		for _, s := range suffixes[1:] {
			match = match.Or("code LIKE ?", "%"+s)
		}
		q = q.Where(match)
	}

	var codes []string
	if err := q.Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
