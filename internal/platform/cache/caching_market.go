package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_analytics/internal/feature/series/domain/entity"
	"stock_analytics/internal/feature/series/usecase"
)

// ErrNoWriter is returned by UpsertBatch when no BarRepository was attached.
var ErrNoWriter = errors.New("cache: no bar writer configured")

// CachingMarket decorates a MarketRepository with a Redis tier shared by every
// process. Series are cached as JSON under namespace:SYMBOL:START:END.
type CachingMarket struct {
	inner     usecase.MarketRepository
	writer    usecase.BarRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var (
	_ usecase.MarketRepository = (*CachingMarket)(nil)
	_ usecase.BarRepository    = (*CachingMarket)(nil)
)

// NewCachingMarket decorates inner with Redis caching. A nil rdb disables caching.
// If ttl is nil entries live for 5 minutes; if namespace is empty it uses "series".
func NewCachingMarket(rdb *redis.Client, ttl func() time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarket {
	if ttl == nil {
		ttl = func() time.Duration { return 5 * time.Minute }
	}
	if namespace == "" {
		namespace = "series"
	}
	return &CachingMarket{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// FixedTTL returns a ttl function for a constant duration.
func FixedTTL(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

// WithWriter attaches the repository that UpsertBatch writes through to.
func (c *CachingMarket) WithWriter(w usecase.BarRepository) *CachingMarket {
	c.writer = w
	return c
}

// UpsertBatch writes bars through and invalidates every cached range of symbol.
func (c *CachingMarket) UpsertBatch(ctx context.Context, symbol string, bars []entity.PriceBar) error {
	if c.writer == nil {
		return ErrNoWriter
	}
	if err := c.writer.UpsertBatch(ctx, symbol, bars); err != nil {
		return err
	}
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}
	// Best effort: stale ranges expire on their own.
	_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(symbol)+"*")
	return nil
}

// FetchDaily serves from Redis when possible and fills it on a miss.
func (c *CachingMarket) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]entity.PriceBar, error) {
	if c.rdb == nil {
		return c.inner.FetchDaily(ctx, symbol, start, end)
	}

	key := c.cacheKey(symbol, start, end)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PriceBar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	// Empty answers are not cached so a later ingest is picked up immediately.
	if len(out) == 0 {
		return out, nil
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl()).Err()
	}
	return out, nil
}

func (c *CachingMarket) cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s%s:%s", c.cacheKeyPrefix(symbol), entity.FormatDate(start), entity.FormatDate(end))
}

func (c *CachingMarket) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(strings.ToUpper(symbol)))
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingMarket) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
