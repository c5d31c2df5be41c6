package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockRetryInterval = 50 * time.Millisecond

// unlockScript deletes the key only while it still holds our token.
var unlockScript = redis.NewScript(1, `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker serializes requests touching the same key across service instances.
type Locker struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
	ttl    time.Duration
	wait   time.Duration
}

func NewLocker(pool *redis.Pool, logger *zap.SugaredLogger, ttl, wait time.Duration) *Locker {
	return &Locker{
		pool:   pool,
		logger: logger,
		ttl:    ttl,
		wait:   wait,
	}
}

// Lock blocks until key is acquired or the wait runs out, in which case model.ErrLocked is returned.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	key = "lock:" + key
	for {
		ok, err := l.tryLock(ctx, key, token)
		switch {
		case ok:
			return func() { l.unlock(key, token) }, nil
		case err != nil && ctx.Err() == nil:
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock %q: %w", key, model.ErrLocked)
		case <-time.After(lockRetryInterval):
		}
	}
}

func (l *Locker) tryLock(ctx context.Context, key, token string) (bool, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("get redis conn: %w", err)
	}
	defer conn.Close()

	_, err = redis.String(conn.Do("SET", key, token, "NX", "PX", l.ttl.Milliseconds()))
	switch {
	case err == redis.ErrNil:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("set lock: %w", err)
	}

	return true, nil
}

func (l *Locker) unlock(key, token string) {
	conn := l.pool.Get()
	defer conn.Close()

	if _, err := unlockScript.Do(conn, key, token); err != nil {
		l.logger.Errorw("Failed releasing lock", "key", key, "err", err)
	}
}
