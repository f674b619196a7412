// Package ratelimiter throttles calls to rate-limited upstream APIs.
package ratelimiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Limiter blocks until the next call is allowed or ctx is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows at most limit calls per interval, with bursts up to limit.
// It is safe for concurrent use.
type RateLimiter struct {
	limiter  *rate.Limiter
	limit    int
	interval time.Duration
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter. A non-positive limit or interval disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{
		limiter:  rate.NewLimiter(every, limit),
		limit:    limit,
		interval: interval,
	}
}

// Wait reserves the next slot and sleeps until it is due.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.limiter.Reserve()
	if !r.OK() {
		return fmt.Errorf("ratelimiter: reservation exceeds burst %d", rl.limiter.Burst())
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	slog.Info("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval, "delay", delay)
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
