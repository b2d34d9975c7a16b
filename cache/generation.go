package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// generationTTL bounds how long an invalidation counter survives. It only
// has to outlive the slowest read between Generation and SetJSONIfGeneration.
const generationTTL = 24 * time.Hour

const setIfGenerationScript = `
local current = redis.call("GET", KEYS[2])
if not current then
	current = "0"
end
if current == ARGV[1] then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0
`

var setIfGeneration = redis.NewScript(setIfGenerationScript)

func generationKey(key string) string {
	return "gen:" + key
}

// Generation returns the invalidation counter of key, 0 when key was never
// invalidated. Read it before loading the value from the source of truth.
func (c *Cache) Generation(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetJSONIfGeneration stores value under key only when key has not been
// invalidated since gen was read. It reports whether the value was stored.
func (c *Cache) SetJSONIfGeneration(ctx context.Context, key string, gen int64, value interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{key, generationKey(key)},
		strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate drops keys and advances their generations in one MULTI, so a
// reader that loaded data before the write can no longer store it.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, generationKey(key))
			pipe.Expire(ctx, generationKey(key), generationTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}
