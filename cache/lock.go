package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLockNotHeld is returned when releasing a lock owned by someone else.
var ErrLockNotHeld = errors.New("lock release failed: not the lock owner")

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

var releaseLock = redis.NewScript(releaseLockScript)

// AcquireLock takes a distributed lock on key for ttl. value identifies the
// owner and must be passed back to ReleaseLock. A disabled cache always
// grants the lock.
func (c *Cache) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

// ReleaseLock drops the lock on key if value still owns it.
func (c *Cache) ReleaseLock(ctx context.Context, key, value string) error {
	if !c.Enabled() {
		return nil
	}
	result, err := releaseLock.Run(ctx, c.client, []string{key}, value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}
