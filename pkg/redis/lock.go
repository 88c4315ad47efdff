package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 2 * time.Minute
	acquireDelay  = 100 * time.Millisecond
	acquireWindow = 30 * time.Second
)

// Locker serializes critical sections across process instances. The batch
// counter read-then-increment is the only caller; the key is the contract
// address.
type Locker interface {
	WithLock(ctx context.Context, key string, f func(context.Context) error) error
}

type redisLocker struct {
	client *redis.Client
}

func NewLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *redisLocker) WithLock(ctx context.Context, key string, f func(context.Context) error) error {
	lockKey := "lock:" + key
	token := uuid.NewString()

	deadline := time.Now().Add(acquireWindow)
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, lockTTL).Result()
		if err != nil {
			return fmt.Errorf("cannot acquire lock %s: %w", lockKey, err)
		}

		if ok {
			break
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for lock %s", lockKey)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(acquireDelay):
		}
	}

	defer releaseScript.Run(context.WithoutCancel(ctx), l.client, []string{lockKey}, token)

	return f(ctx)
}
