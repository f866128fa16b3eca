// Package cache wraps the optional Redis connection used for the per-user
// stats summary. A nil *Cache is valid and means caching is off.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin get/set/delete layer over Redis.
type Cache struct {
	rdb *redis.Client
}

// Connect opens a Redis client and verifies the connection. An empty addr
// returns a nil cache so callers can skip Redis entirely.
func Connect(addr string) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb}, nil
}

// Get returns the cached value for key, or "" when absent or caching is off.
func (c *Cache) Get(ctx context.Context, key string) string {
	if c == nil {
		return ""
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// Set stores val under key with the given TTL. Errors are ignored: the cache
// is best-effort and the store stays authoritative.
func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key, val, ttl).Err()
}

// Delete drops key, invalidating any cached summary.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
