package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casaline/listing-portal/internal/core/domain"
)

const defaultEntitlementTTL = 5 * time.Minute

// EntitlementCache stores the resolved role and account status per user with
// a bounded TTL, so a resolver read never serves an entitlement staler than
// the TTL even when explicit invalidation is missed.
// Key format: entitlement:<user_id>, value: <role>|<status>.
type EntitlementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEntitlementCache creates an EntitlementCache wrapping the given Redis
// client. A non-positive ttl falls back to the default staleness bound.
func NewEntitlementCache(client *redis.Client, ttl time.Duration) *EntitlementCache {
	if ttl <= 0 {
		ttl = defaultEntitlementTTL
	}
	return &EntitlementCache{client: client, ttl: ttl}
}

// Get returns the cached role and status; the third value reports a hit.
func (c *EntitlementCache) Get(ctx context.Context, userID string) (domain.Role, domain.AgentStatus, bool, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("entitlement cache get: %w", err)
	}

	role, status, ok := strings.Cut(val, "|")
	if !ok {
		// Malformed entry: treat as a miss so the resolver refreshes it.
		return "", "", false, nil
	}
	return domain.Role(role), domain.AgentStatus(status), true, nil
}

// Set records the entitlement for the session (expires after the TTL).
func (c *EntitlementCache) Set(ctx context.Context, userID string, role domain.Role, status domain.AgentStatus) error {
	val := string(role) + "|" + string(status)
	return c.client.Set(ctx, c.key(userID), val, c.ttl).Err()
}

// Invalidate drops the cached entitlement. Called on sign-out and after any
// approval decision that changes the user's role or status.
func (c *EntitlementCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *EntitlementCache) key(userID string) string {
	return "entitlement:" + userID
}
