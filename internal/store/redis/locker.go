package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/store"
)

const (
	defaultLockTTL   = 5 * time.Second
	lockRetryEvery   = 50 * time.Millisecond
	releaseTimeout   = 2 * time.Second
	defaultLockLimit = 100
)

// Locker is a store.Locker shared by every process using the same Redis.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewLocker creates a distributed locker. ttl bounds how long a crashed
// holder can block others.
func NewLocker(client *redis.Client, ttl time.Duration, log logger.Logger) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{
		client: redislock.New(client),
		ttl:    ttl,
		log:    log.With(logger.Component("redislock")),
	}
}

func (l *Locker) Lock(ctx context.Context, name string) (func(), error) {
	lock, err := l.client.Obtain(ctx, name, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryEvery), defaultLockLimit),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", store.ErrLockNotObtained, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", name, err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn("failed to release lock", logger.String("lock", name), logger.Error(err))
		}
	}, nil
}
