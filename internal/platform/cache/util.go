package cache

import "time"

// TimeUntilNextRefresh returns the duration from now until the next hour:00 in loc.
// Redis entries expire at the daily refresh so a fresh ingest is never shadowed.
func TimeUntilNextRefresh(now time.Time, loc *time.Location, hour int) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}

// RefreshTTL adapts TimeUntilNextRefresh to the ttl function of CachingMarket.
func RefreshTTL(loc *time.Location, hour int) func() time.Duration {
	return func() time.Duration { return TimeUntilNextRefresh(time.Now(), loc, hour) }
}
