// Package cache keeps derived availability windows in Redis so repeated
// agenda loads skip the schedule and blocking arithmetic.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"barberpanel/internal/events"
	"barberpanel/internal/metrics"
	"barberpanel/internal/timewindow"
)

// WindowsCache is a JSON cache of staff windows keyed by tenant and date.
// A nil cache always misses.
type WindowsCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewWindowsCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *WindowsCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &WindowsCache{
		redis:  rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "windows_cache").Logger(),
	}
}

// Key is the Redis key of one tenant day.
func Key(tenantID, date string) string {
	return fmt.Sprintf("windows:%s:%s", tenantID, date)
}

// Get returns cached windows.
func (c *WindowsCache) Get(ctx context.Context, tenantID, date string) (timewindow.StaffWindowsMap, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	val, err := c.redis.Get(ctx, Key(tenantID, date)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("read windows cache")
		}
		metrics.IncWindowsCache("miss")
		return nil, false
	}

	var windows timewindow.StaffWindowsMap
	if err := json.Unmarshal([]byte(val), &windows); err != nil {
		metrics.IncWindowsCache("miss")
		return nil, false
	}
	metrics.IncWindowsCache("hit")
	return windows, true
}

// Set stores windows for the ttl.
func (c *WindowsCache) Set(ctx context.Context, tenantID, date string, windows timewindow.StaffWindowsMap) error {
	if c == nil || c.redis == nil {
		return nil
	}
	data, err := json.Marshal(windows)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, Key(tenantID, date), data, c.ttl).Err()
}

// Invalidate drops one day, or every day of the tenant when date is empty.
func (c *WindowsCache) Invalidate(ctx context.Context, tenantID, date string) error {
	if c == nil || c.redis == nil {
		return nil
	}
	if date != "" {
		return c.redis.Del(ctx, Key(tenantID, date)).Err()
	}

	iter := c.redis.Scan(ctx, 0, Key(tenantID, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...).Err()
}

// Subscribe invalidates on every change that alters availability.
func (c *WindowsCache) Subscribe(bus *events.EventBus) {
	if c == nil || bus == nil {
		return
	}
	bus.SubscribeMany(func(e events.Event) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.Invalidate(ctx, e.TenantID, e.Date); err != nil {
			return fmt.Errorf("invalidate windows of %s: %w", e.TenantID, err)
		}
		c.logger.Debug().Str("tenant_id", e.TenantID).Str("type", e.Type).Msg("windows invalidated")
		return nil
	}, events.BlockingChanged, events.ScheduleChanged)
}

// Ping checks the Redis connection.
func (c *WindowsCache) Ping(ctx context.Context) error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}
