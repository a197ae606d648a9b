package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Availability caches public available-times responses per
// (salon, staff, date). A nil *Availability disables caching, so the
// API runs without redis.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Availability{rdb: rdb, ttl: ttl}
}

func key(salonID, staffID uint, date string) string {
	return fmt.Sprintf("avail:%d:%d:%s", salonID, staffID, date)
}

func (c *Availability) Get(ctx context.Context, salonID, staffID uint, date string) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(salonID, staffID, date)).Result()
	if err != nil {
		return nil, false
	}

	var times []string
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil, false
	}
	return times, true
}

func (c *Availability) Set(ctx context.Context, salonID, staffID uint, date string, times []string) {
	if c == nil {
		return
	}

	b, err := json.Marshal(times)
	if err != nil {
		return
	}
	// best effort: a cache miss is never an API error
	c.rdb.Set(ctx, key(salonID, staffID, date), b, c.ttl)
}

// Invalidate drops the cached grid after any slot mutation.
func (c *Availability) Invalidate(ctx context.Context, salonID, staffID uint, dates ...string) {
	if c == nil {
		return
	}
	for _, date := range dates {
		c.rdb.Del(ctx, key(salonID, staffID, date))
	}
}
