package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyStats = "dashboard:stats"

// Stats holds the dashboard counters.
type Stats struct {
	TotalBooks  int64 `json:"total_books"`
	ActiveLoans int64 `json:"active_loans"`
}

// StatsCache caches the dashboard counters in Redis. Writers that change
// book or loan counts must call Invalidate.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatsCache returns a new StatsCache.
func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get returns cached stats or nil on miss.
func (c *StatsCache) Get(ctx context.Context) (*Stats, error) {
	b, err := c.rdb.Get(ctx, keyStats).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st Stats
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Set stores the stats in cache.
func (c *StatsCache) Set(ctx context.Context, st Stats) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyStats, b, c.ttl).Err()
}

// Invalidate drops the cached stats (cache invalidation on write).
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyStats).Err()
}
