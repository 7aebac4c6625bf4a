package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ListCache caches list-read responses in redis. Entries are keyed by a
// per-shop version counter, so invalidation is a single INCR and stale
// entries age out with the TTL. Only list reads go through here;
// ownership lookups are never cached.
//
// A nil *ListCache is valid and disables caching.
type ListCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

// NewListCache builds a list cache around a redis client.
func NewListCache(client *redis.Client, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *ListCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListCache{client: client, ttl: ttl, metrics: metrics, logger: logger}
}

// Key builds a versioned cache key for one list query.
func (c *ListCache) Key(ctx context.Context, resource, shopID, query string) string {
	if c == nil {
		return ""
	}
	ver, err := c.client.Get(ctx, versionKey(resource, shopID)).Int64()
	if err != nil && err != redis.Nil {
		return ""
	}
	return fmt.Sprintf("list:%s:%s:v%d:%s", resource, shopID, ver, query)
}

// Get loads a cached entry into dest, reporting whether it was present.
func (c *ListCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || key == "" {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("list cache read failed", zap.Error(err))
		}
		c.observe(false)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.observe(false)
		return false
	}
	c.observe(true)
	return true
}

// Set stores a list response under key.
func (c *ListCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || key == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("list cache write failed", zap.Error(err))
	}
}

// Invalidate bumps the shop's version counter, orphaning cached entries.
func (c *ListCache) Invalidate(ctx context.Context, resource, shopID string) {
	if c == nil {
		return
	}
	if err := c.client.Incr(ctx, versionKey(resource, shopID)).Err(); err != nil {
		c.logger.Warn("list cache invalidation failed", zap.Error(err))
	}
}

func (c *ListCache) observe(hit bool) {
	if c.metrics != nil {
		c.metrics.ObserveCache(hit)
	}
}

func versionKey(resource, shopID string) string {
	return fmt.Sprintf("listver:%s:%s", resource, shopID)
}
