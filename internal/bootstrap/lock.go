package bootstrap

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	migrationLockKey     = "game-scheduler:migration-lock"
	migrationLockTTL     = 60 * time.Second
	migrationLockPoll    = 500 * time.Millisecond
	migrationLockTimeout = 2 * time.Minute
)

type migrationLock struct {
	client *redis.Client
}

// acquireMigrationLock polls SetNX until the lock is taken or the
// timeout passes. The TTL covers a crashed holder - the lock expires
// instead of deadlocking every replica.
func acquireMigrationLock(ctx context.Context, client *redis.Client) (*migrationLock, error) {
	deadline := time.Now().Add(migrationLockTimeout)

	for {
		acquired, err := client.SetNX(ctx, migrationLockKey, "locked", migrationLockTTL).Result()
		if err != nil {
			return nil, errors.Wrap(err, "failed to acquire migration lock")
		}

		if acquired {
			return &migrationLock{client: client}, nil
		}

		if time.Now().After(deadline) {
			return nil, errors.New("timed out waiting for migration lock")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(migrationLockPoll):
		}
	}
}

func (l *migrationLock) release() {
	_ = l.client.Del(context.Background(), migrationLockKey).Err()
}
