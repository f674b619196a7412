package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"stock_analytics/internal/feature/series/domain/entity"
)

// ErrInvalidMarket is returned for a market suffix that is not a plain exchange code.
var ErrInvalidMarket = errors.New("invalid market suffix")

// SymbolRepository abstracts the persistence layer for tracked symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	// ListActiveCodes filters by code suffix (".SS") when suffixes are given.
	ListActiveCodes(ctx context.Context, suffixes ...string) ([]string, error)
}

// SymbolUsecase lists the symbols the service tracks.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols in listing order.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes returns the distinct, upper-cased codes of active symbols. markets
// ("SS", ".hk") restrict the result to those exchange suffixes; none means all.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context, markets ...string) ([]string, error) {
	suffixes, err := marketSuffixes(markets)
	if err != nil {
		return nil, err
	}
	codes, err := u.repo.ListActiveCodes(ctx, suffixes...)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}

	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// marketSuffixes turns market codes into distinct ".XX" suffixes.
func marketSuffixes(markets []string) ([]string, error) {
	var out []string
	for _, m := range markets {
		m = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(m), "."))
		if m == "" || strings.IndexFunc(m, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMarket, m)
		}
		if s := "." + m; !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out, nil
}
