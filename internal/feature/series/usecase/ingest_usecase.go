// Package usecase implements the business logic for loading and persisting daily price series.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stock_analytics/internal/feature/series/domain"
	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/shared/ratelimiter"
)

// DefaultLookback is the history window refreshed by one ingest run.
const DefaultLookback = 2 * 365 * 24 * time.Hour

// MarketRepository fetches daily bars for a symbol over an inclusive date range.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]entity.PriceBar, error)
}

// BarRepository persists daily bars keyed by symbol and date.
type BarRepository interface {
	UpsertBatch(ctx context.Context, symbol string, bars []entity.PriceBar) error
}

// IngestUsecase pulls daily bars from an upstream provider and stores them.
type IngestUsecase struct {
	market   MarketRepository
	bars     BarRepository
	limiter  ratelimiter.Limiter
	lookback time.Duration
	now      func() time.Time
}

// NewIngestUsecase creates a new IngestUsecase. A non-positive lookback uses DefaultLookback.
func NewIngestUsecase(market MarketRepository, bars BarRepository, limiter ratelimiter.Limiter, lookback time.Duration) *IngestUsecase {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &IngestUsecase{market: market, bars: bars, limiter: limiter, lookback: lookback, now: time.Now}
}

func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	raw, err := iu.market.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: no bars for %s", domain.ErrDataUnavailable, symbol)
	}

	ts, err := entity.NewTimeSeries(symbol, start, end, raw)
	if err != nil {
		return 0, err
	}
	if err := iu.bars.UpsertBatch(ctx, symbol, ts.Bars); err != nil {
		return 0, err
	}
	return ts.Len(), nil
}

// IngestAll refreshes the lookback window of every symbol. A failure on one symbol is
// logged and skipped; only context cancellation aborts the run.
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	end := entity.Day(iu.now())
	start := entity.Day(end.Add(-iu.lookback))

	var ok, failed int
	for _, s := range symbols {
		if err := iu.limiter.Wait(ctx); err != nil {
			return err
		}
		n, err := iu.ingestOne(ctx, s, start, end)
		if err != nil {
			failed++
			slog.Error("failed to ingest data", "symbol", s, "start", entity.FormatDate(start), "end", entity.FormatDate(end), "error", err)
			continue
		}
		ok++
		slog.Debug("ingested bars", "symbol", s, "bars", n)
	}

	slog.Info("ingest finished", "symbols", len(symbols), "succeeded", ok, "failed", failed)
	return nil
}
