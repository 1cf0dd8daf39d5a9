package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/t-ecosystem/market_api/internal/models"
)

// entitlementTTL bounds how long a projection survives without a rebuild.
// Sessions re-sync on load, so a stale projection can only outlive a
// mutation made from another device by this window.
const entitlementTTL = 30 * time.Minute

// EntitlementCache holds the per-user installed-module projection in Redis.
// The durable purchases table stays authoritative; this is the fast path for
// isInstalled checks, rebuilt by SyncFromPurchases and updated in place on
// install/uninstall.
type EntitlementCache struct {
	redis *RedisClient
}

// NewEntitlementCache creates a new EntitlementCache.
func NewEntitlementCache(redis *RedisClient) *EntitlementCache {
	return &EntitlementCache{redis: redis}
}

// key returns the Redis key for a user's projection.
func (c *EntitlementCache) key(userID string) string {
	return fmt.Sprintf("entitlement:user:%s", userID)
}

// Get returns the cached projection for the user. The second return value is
// false on a cache miss.
func (c *EntitlementCache) Get(ctx context.Context, userID string) ([]models.InstalledModule, bool, error) {
	jsonData, err := c.redis.Get(ctx, c.key(userID))
	if err != nil {
		if IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var installed []models.InstalledModule
	if err := json.Unmarshal([]byte(jsonData), &installed); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal entitlement projection: %w", err)
	}
	return installed, true, nil
}

// Put replaces the user's cached projection.
func (c *EntitlementCache) Put(ctx context.Context, userID string, installed []models.InstalledModule) error {
	if installed == nil {
		installed = []models.InstalledModule{}
	}
	jsonData, err := json.Marshal(installed)
	if err != nil {
		return fmt.Errorf("failed to marshal entitlement projection: %w", err)
	}
	return c.redis.Set(ctx, c.key(userID), string(jsonData), entitlementTTL)
}

// Invalidate drops the user's cached projection so the next read rebuilds it
// from the durable store.
func (c *EntitlementCache) Invalidate(ctx context.Context, userID string) error {
	return c.redis.Delete(ctx, c.key(userID))
}
