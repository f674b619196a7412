// Package cache holds the caching layers in front of market data providers: the
// bounded in-process SeriesStore and the Redis-backed CachingMarket.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stock_analytics/internal/feature/series/domain"
	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
)

const (
	DefaultTTL        = time.Hour
	DefaultMaxEntries = 50
	DefaultEvictBatch = 10
)

type entry struct {
	series    entity.TimeSeries
	fetchedAt time.Time
	expiresAt time.Time
}

// SeriesStore fetches daily series through a MarketRepository and keeps them for a
// fixed TTL, bounded to maxEntries. Safe for concurrent use. Returned series share
// their bars with the cache and must be treated as read-only.
type SeriesStore struct {
	market     usecase.MarketRepository
	ttl        time.Duration
	maxEntries int
	evictBatch int
	now        func() time.Time
	loc        *time.Location
	metrics    *Metrics

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

// Option configures a SeriesStore.
type Option func(*SeriesStore)

func WithTTL(d time.Duration) Option {
	return func(s *SeriesStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func WithMaxEntries(n int) Option {
	return func(s *SeriesStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

func WithEvictBatch(n int) Option {
	return func(s *SeriesStore) {
		if n > 0 {
			s.evictBatch = n
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *SeriesStore) { s.now = now }
}

// WithLocation sets the zone used to decide what "today" is when no end date is given.
func WithLocation(loc *time.Location) Option {
	return func(s *SeriesStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *SeriesStore) { s.metrics = m }
}

// NewSeriesStore creates an empty store in front of market.
func NewSeriesStore(market usecase.MarketRepository, opts ...Option) *SeriesStore {
	s := &SeriesStore{
		market:     market,
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		evictBatch: DefaultEvictBatch,
		now:        time.Now,
		loc:        time.UTC,
		entries:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Key is the cache key of a normalized request.
func Key(symbol string, start, end time.Time) string {
	return symbol + "|" + entity.FormatDate(start) + "|" + entity.FormatDate(end)
}

// Get returns the series of symbol over [start, end]. A zero end means today.
// Failures are domain.ErrDataUnavailable for empty or malformed upstream data and
// domain.ErrUpstream when the fetch itself fails. Nothing is retried.
func (s *SeriesStore) Get(ctx context.Context, symbol string, start, end time.Time) (entity.TimeSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return entity.TimeSeries{}, errors.New("cache: empty symbol")
	}
	if end.IsZero() {
		end = s.now().In(s.loc)
	}
	start, end = entity.Day(start), entity.Day(end)
	if start.After(end) {
		return entity.TimeSeries{}, fmt.Errorf("%w: start %s is after end %s",
			domain.ErrInvalidDate, entity.FormatDate(start), entity.FormatDate(end))
	}
	key := Key(symbol, start, end)

	if ts, ok := s.lookup(key); ok {
		s.metrics.hits.Inc()
		return ts, nil
	}
	s.metrics.misses.Inc()

	// The fetch is shared by every caller of key and outlives a cancelled caller.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.load(context.WithoutCancel(ctx), key, symbol, start, end)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return entity.TimeSeries{}, ctx.Err()
	}
	if res.Err != nil {
		return entity.TimeSeries{}, res.Err
	}
	if res.Shared {
		slog.Debug("coalesced series fetch", "key", key)
	}
	return res.Val.(entity.TimeSeries), nil
}

func (s *SeriesStore) lookup(key string) (entity.TimeSeries, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.expiresAt.Before(s.now()) {
		return entity.TimeSeries{}, false
	}
	return e.series, true
}

func (s *SeriesStore) load(ctx context.Context, key, symbol string, start, end time.Time) (entity.TimeSeries, error) {
	raw, err := s.market.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			s.metrics.fetchErr.WithLabelValues("data_unavailable").Inc()
			return entity.TimeSeries{}, fmt.Errorf("fetch %s: %w", symbol, err)
		}
		s.metrics.fetchErr.WithLabelValues("upstream").Inc()
		return entity.TimeSeries{}, fmt.Errorf("%w: fetch %s: %w", domain.ErrUpstream, symbol, err)
	}
	if len(raw) == 0 {
		s.metrics.fetchErr.WithLabelValues("data_unavailable").Inc()
		return entity.TimeSeries{}, fmt.Errorf("%w: no bars for %s between %s and %s",
			domain.ErrDataUnavailable, symbol, entity.FormatDate(start), entity.FormatDate(end))
	}

	ts, err := entity.NewTimeSeries(symbol, start, end, raw)
	if err != nil {
		s.metrics.fetchErr.WithLabelValues("data_unavailable").Inc()
		return entity.TimeSeries{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.entries[key] = &entry{series: ts, fetchedAt: now, expiresAt: now.Add(s.ttl)}
	s.maintainLocked(now)
	s.metrics.entries.Set(float64(len(s.entries)))
	return ts, nil
}

// maintainLocked drops expired entries, then, while over the ceiling, the batch
// with the earliest expiry. s.mu must be held.
func (s *SeriesStore) maintainLocked(now time.Time) {
	for k, e := range s.entries {
		if e.expiresAt.Before(now) {
			delete(s.entries, k)
			s.metrics.evictions.WithLabelValues("expired").Inc()
		}
	}
	if len(s.entries) <= s.maxEntries {
		return
	}

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := s.entries[a].expiresAt.Compare(s.entries[b].expiresAt); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	n := max(s.evictBatch, len(keys)-s.maxEntries)
	for _, k := range keys[:min(n, len(keys))] {
		delete(s.entries, k)
	}
	s.metrics.evictions.WithLabelValues("capacity").Add(float64(min(n, len(keys))))
	slog.Debug("series store over capacity, evicted batch", "evicted", min(n, len(keys)), "remaining", len(s.entries))
}

// Len returns the number of entries currently held, expired or not.
func (s *SeriesStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
