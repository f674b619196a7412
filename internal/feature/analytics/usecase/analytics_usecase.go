// Package usecase implements the analytics operations: metric reports, risk analysis,
// history and the symbol overview.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"stock_analytics/internal/feature/analytics/domain"
	analytics "stock_analytics/internal/feature/analytics/domain/entity"
	"stock_analytics/internal/feature/analytics/metrics"
	seriesdomain "stock_analytics/internal/feature/series/domain"
	"stock_analytics/internal/feature/series/domain/entity"
)

// SeriesStore resolves a daily series, from cache or upstream.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type SeriesStore interface {
	Get(ctx context.Context, symbol string, start, end time.Time) (entity.TimeSeries, error)
}

// SnapshotRepository persists the latest overview of a symbol.
type SnapshotRepository interface {
	Upsert(ctx context.Context, o analytics.Overview) error
	FindBySymbol(ctx context.Context, symbol string) (analytics.Overview, error)
}

// Config tunes the analytics operations.
type Config struct {
	RiskFreeRate         float64 // used by metric reports
	OverviewRiskFreeRate float64 // used by the overview indicators
	PredictionDays       int
	PredictionSeed       uint64
	Location             *time.Location // decides what "today" is
}

// DefaultConfig returns the standard parameters.
func DefaultConfig() Config {
	return Config{
		RiskFreeRate:         metrics.DefaultRiskFreeRate,
		OverviewRiskFreeRate: 0.02,
		PredictionDays:       7,
		PredictionSeed:       42,
		Location:             time.UTC,
	}
}

// AnalyticsUsecase computes metrics over series obtained from a SeriesStore.
type AnalyticsUsecase struct {
	store      SeriesStore
	benchmarks *BenchmarkResolver
	snapshots  SnapshotRepository
	cfg        Config
	now        func() time.Time
}

// NewAnalyticsUsecase creates an AnalyticsUsecase. snapshots may be nil, in which case
// overviews are not persisted.
func NewAnalyticsUsecase(store SeriesStore, benchmarks *BenchmarkResolver, snapshots SnapshotRepository, cfg Config) *AnalyticsUsecase {
	if benchmarks == nil {
		benchmarks = NewBenchmarkResolver("", nil)
	}
	if cfg.PredictionDays <= 0 {
		cfg.PredictionDays = 7
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &AnalyticsUsecase{store: store, benchmarks: benchmarks, snapshots: snapshots, cfg: cfg, now: time.Now}
}

// GetMetrics returns the full metrics bundle for symbol over [start, end]. A zero end
// means today.
func (u *AnalyticsUsecase) GetMetrics(ctx context.Context, symbol string, start, end time.Time) (analytics.MetricsReport, error) {
	return u.report(ctx, symbol, start, end, analytics.AllMetrics)
}

// GetBasicMetrics returns total return, volatility, Sharpe ratio and max drawdown
// from start until today.
func (u *AnalyticsUsecase) GetBasicMetrics(ctx context.Context, symbol string, start time.Time) (analytics.MetricsReport, error) {
	return u.report(ctx, symbol, start, time.Time{}, analytics.BasicMetrics)
}

// GetPriceData returns the daily stats from start until today.
func (u *AnalyticsUsecase) GetPriceData(ctx context.Context, symbol string, start time.Time) (analytics.MetricsReport, error) {
	return u.report(ctx, symbol, start, time.Time{}, []analytics.Metric{analytics.MetricDailyStats})
}

// GetSuddenChanges returns the most recent sudden moves from start until today.
func (u *AnalyticsUsecase) GetSuddenChanges(ctx context.Context, symbol string, start time.Time) (analytics.MetricsReport, error) {
	return u.report(ctx, symbol, start, time.Time{}, []analytics.Metric{analytics.MetricSuddenChanges})
}

// GetRiskAnalysis returns VaR, CVaR, max drawdown and downside risk over the trailing year.
func (u *AnalyticsUsecase) GetRiskAnalysis(ctx context.Context, symbol string) (analytics.RiskReport, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return analytics.RiskReport{}, err
	}
	end := u.today()
	ts, err := u.store.Get(ctx, symbol, end.AddDate(-1, 0, 0), end)
	if err != nil {
		return analytics.RiskReport{}, err
	}
	return metrics.Risk(ts), nil
}

// GetHistory returns the bars of symbol over a trailing period such as "1mo".
func (u *AnalyticsUsecase) GetHistory(ctx context.Context, symbol, period string) ([]entity.PriceBar, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	end := u.today()
	ts, err := u.store.Get(ctx, symbol, p.Start(end), end)
	if err != nil {
		return nil, err
	}
	return ts.Bars, nil
}

// GetOverview builds the dashboard view of symbol over the trailing year and stores
// it as the symbol's latest snapshot. A failed save is logged, not returned. When the
// provider is down the last stored snapshot is served instead.
func (u *AnalyticsUsecase) GetOverview(ctx context.Context, symbol string) (analytics.Overview, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return analytics.Overview{}, err
	}
	end := u.today()
	ts, bench, err := u.load(ctx, symbol, end.AddDate(-1, 0, 0), end, true)
	if err != nil {
		if errors.Is(err, seriesdomain.ErrUpstream) && u.snapshots != nil {
			if stale, serr := u.snapshots.FindBySymbol(ctx, symbol); serr == nil {
				slog.Warn("provider unavailable, serving stored overview", "symbol", symbol, "updated_at", stale.UpdatedAt, "error", err)
				return stale, nil
			}
		}
		return analytics.Overview{}, err
	}

	o := analytics.Overview{
		Symbol: symbol,
		Indicators: analytics.TechnicalIndicators{
			Volatility:  metrics.AnnualizedVolatility(ts),
			SharpeRatio: metrics.SharpeRatio(ts, u.cfg.OverviewRiskFreeRate),
			Beta:        metrics.Beta(ts, bench),
			RSI:         metrics.RSI(ts, metrics.DefaultRSIPeriod),
			MACD:        metrics.MACD(ts),
		},
		History:    history(ts),
		Prediction: metrics.PredictPrices(ts, u.cfg.PredictionDays, rand.New(rand.NewPCG(u.cfg.PredictionSeed, u.cfg.PredictionSeed))),
		UpdatedAt:  u.now().UTC(),
	}
	if last, ok := ts.Last(); ok {
		o.AsOf = last.Date
		o.CurrentPrice = last.Close
		o.Volume = last.Volume
		o.ChangePercent = metrics.Round2(last.PercentChange)
		if n := ts.Len(); n > 1 {
			o.Change = metrics.Round2(last.Close - ts.Bars[n-2].Close)
		}
	}

	if u.snapshots != nil {
		if err := u.snapshots.Upsert(ctx, o); err != nil {
			slog.Warn("failed to save overview snapshot", "symbol", symbol, "error", err)
		}
	}
	return o, nil
}

func (u *AnalyticsUsecase) report(ctx context.Context, symbol string, start, end time.Time, want []analytics.Metric) (analytics.MetricsReport, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return analytics.MetricsReport{}, err
	}
	ts, bench, err := u.load(ctx, symbol, start, end, metrics.NeedsBenchmark(want))
	if err != nil {
		return analytics.MetricsReport{}, err
	}
	opts := metrics.DefaultOptions()
	opts.RiskFreeRate = u.cfg.RiskFreeRate
	return metrics.Build(ts, bench, want, opts), nil
}

// load fetches the series and, when asked, its benchmark concurrently. A benchmark
// failure never fails the load; it is carried in Benchmark.Err.
func (u *AnalyticsUsecase) load(ctx context.Context, symbol string, start, end time.Time, withBenchmark bool) (entity.TimeSeries, metrics.Benchmark, error) {
	var (
		ts    entity.TimeSeries
		bench metrics.Benchmark
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ts, err = u.store.Get(gctx, symbol, start, end)
		return err
	})
	if withBenchmark {
		bench.Symbol = u.benchmarks.Resolve(symbol)
		g.Go(func() error {
			bench.Series, bench.Err = u.store.Get(gctx, bench.Symbol, start, end)
			if bench.Err != nil {
				slog.Warn("benchmark unavailable, beta degraded", "symbol", symbol, "benchmark", bench.Symbol, "error", bench.Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.TimeSeries{}, metrics.Benchmark{}, err
	}
	return ts, bench, nil
}

func (u *AnalyticsUsecase) today() time.Time {
	return entity.Day(u.now().In(u.cfg.Location))
}

func normalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || strings.ContainsAny(s, " /|:*") {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSymbol, symbol)
	}
	return s, nil
}

func history(ts entity.TimeSeries) analytics.History {
	h := analytics.History{
		Dates:   make([]time.Time, 0, ts.Len()),
		Prices:  make([]float64, 0, ts.Len()),
		Volumes: make([]int64, 0, ts.Len()),
	}
	for _, b := range ts.Bars {
		h.Dates = append(h.Dates, b.Date)
		h.Prices = append(h.Prices, b.Close)
		h.Volumes = append(h.Volumes, b.Volume)
	}
	return h
}
