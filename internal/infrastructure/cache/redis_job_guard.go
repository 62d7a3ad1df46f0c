package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockie/backend/internal/application/sync"
	"github.com/stockie/backend/internal/domain/integration"
)

// defaultGuardTTL bounds how long a crashed run can hold its slot.
// An order sync over the full window takes minutes, not hours.
const defaultGuardTTL = 30 * time.Minute

// RedisJobGuard implements sync.JobGuard on Redis SETNX. This is suitable
// for distributed deployments where multiple instances must not run the
// same sync job concurrently. The key carries a TTL so a crashed instance
// cannot hold the slot forever.
type RedisJobGuard struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisJobGuard creates a new Redis-based job guard
func NewRedisJobGuard(client *redis.Client) *RedisJobGuard {
	return &RedisJobGuard{
		client:    client,
		keyPrefix: "sync:guard:",
		ttl:       defaultGuardTTL,
	}
}

// NewRedisJobGuardWithTTL creates a guard with a custom slot TTL
func NewRedisJobGuardWithTTL(client *redis.Client, ttl time.Duration) *RedisJobGuard {
	guard := NewRedisJobGuard(client)
	if ttl > 0 {
		guard.ttl = ttl
	}
	return guard
}

// Acquire takes the slot for (platform, job). Returns a release function on
// success and ErrSyncAlreadyRunning if the slot is held.
func (g *RedisJobGuard) Acquire(ctx context.Context, platform integration.PlatformCode, job sync.Job) (func(), error) {
	key := g.keyPrefix + guardKey(platform, job)

	acquired, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquiring sync slot %s: %w", key, err)
	}
	if !acquired {
		return nil, sync.ErrSyncAlreadyRunning
	}

	release := func() {
		// Release runs in a deferred path after the job finished; the
		// caller's context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		g.client.Del(releaseCtx, key)
	}
	return release, nil
}

// Ensure RedisJobGuard implements sync.JobGuard
var _ sync.JobGuard = (*RedisJobGuard)(nil)
