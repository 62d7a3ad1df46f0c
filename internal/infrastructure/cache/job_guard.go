package cache

import (
	"context"
	gosync "sync"

	"github.com/stockie/backend/internal/application/sync"
	"github.com/stockie/backend/internal/domain/integration"
)

// InMemoryJobGuard implements sync.JobGuard with a process-local mutex map.
// This is suitable for single-instance deployments and testing.
type InMemoryJobGuard struct {
	mu      gosync.Mutex
	running map[string]struct{}
}

// NewInMemoryJobGuard creates a new in-memory job guard
func NewInMemoryJobGuard() *InMemoryJobGuard {
	return &InMemoryJobGuard{running: make(map[string]struct{})}
}

// Acquire takes the slot for (platform, job). Returns a release function on
// success and ErrSyncAlreadyRunning if the slot is held.
func (g *InMemoryJobGuard) Acquire(_ context.Context, platform integration.PlatformCode, job sync.Job) (func(), error) {
	key := guardKey(platform, job)

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.running[key]; held {
		return nil, sync.ErrSyncAlreadyRunning
	}
	g.running[key] = struct{}{}

	var once gosync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, key)
			g.mu.Unlock()
		})
	}
	return release, nil
}

func guardKey(platform integration.PlatformCode, job sync.Job) string {
	return platform.String() + ":" + job.String()
}

// Ensure InMemoryJobGuard implements sync.JobGuard
var _ sync.JobGuard = (*InMemoryJobGuard)(nil)
