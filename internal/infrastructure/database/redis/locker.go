// internal/infrastructure/database/redis/locker.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// Locker hands out short-lived distributed locks
type Locker struct {
	client  *redislock.Client
	ttl     time.Duration
	backoff time.Duration
	retries int
	log     logrus.FieldLogger
}

// NewLocker creates a Locker holding each lock for at most ttl
func NewLocker(c *Client, ttl time.Duration, log logrus.FieldLogger) *Locker {
	return &Locker{
		client:  redislock.New(c.Redis),
		ttl:     ttl,
		backoff: 50 * time.Millisecond,
		retries: 40,
		log:     log,
	}
}

// Lock obtains key, waiting with linear backoff while another holder has it
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("lock %s: %w", key, inventory.ErrLockBusy)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func() {
		// Release with a fresh context; the request context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.WithError(err).WithField("key", key).Warn("failed to release redis lock")
		}
	}, nil
}
