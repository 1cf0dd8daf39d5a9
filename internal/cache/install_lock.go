package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// installLockTTL caps how long a crashed install can hold its lock.
const installLockTTL = 10 * time.Second

// InstallLock serializes install/uninstall per (user, module) pair. A
// double-clicked install button fires two concurrent requests for the same
// pair; without mutual exclusion both would pass the "already purchased"
// check and create duplicate purchase rows. Different pairs never contend.
type InstallLock struct {
	redis *RedisClient
}

// NewInstallLock creates a new InstallLock.
func NewInstallLock(redis *RedisClient) *InstallLock {
	return &InstallLock{redis: redis}
}

// key returns the Redis key for one (user, module) lock.
func (l *InstallLock) key(userID, moduleID string) string {
	return fmt.Sprintf("install:lock:%s:%s", userID, moduleID)
}

// Acquire takes the lock for the pair. It returns false when another
// operation on the same pair is in flight, and a release func when acquired.
// Release only deletes the key if it still holds this acquisition's token,
// so an expired lock is never released out from under its next owner.
func (l *InstallLock) Acquire(ctx context.Context, userID, moduleID string) (release func(), acquired bool, err error) {
	token := uuid.New().String()
	key := l.key(userID, moduleID)

	ok, err := l.redis.SetNX(ctx, key, token, installLockTTL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire install lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		// Best effort: compare the token before deleting.
		current, err := l.redis.Get(context.Background(), key)
		if err != nil || current != token {
			return
		}
		_ = l.redis.Delete(context.Background(), key)
	}
	return release, true, nil
}
