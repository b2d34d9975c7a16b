package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin Redis wrapper. A nil *Cache, or one without a client, is a
// disabled cache: reads miss and writes succeed without doing anything.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultTTL applies when New is given a non-positive ttl.
const DefaultTTL = 10 * time.Minute

// New wraps client. Entries written through SetJSONIfGeneration expire
// after ttl.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Enabled reports whether the cache talks to Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns "" and no error when the key does not exist.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// GetJSON decodes the value stored at key into dest. It reports false on a
// miss or when the stored value cannot be decoded.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.Get(ctx, key)
	if err != nil || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// PoolStats reports the Redis connection pool counters, or nil when disabled.
func (c *Cache) PoolStats() *redis.PoolStats {
	if !c.Enabled() {
		return nil
	}
	return c.client.PoolStats()
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
