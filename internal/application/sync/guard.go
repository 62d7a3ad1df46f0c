package sync

import (
	"context"
	"errors"

	"github.com/stockie/backend/internal/domain/integration"
)

// ErrSyncAlreadyRunning indicates another invocation of the same job is in
// flight for the platform
var ErrSyncAlreadyRunning = errors.New("sync: job already running for platform")

// Job names one sync job type for guarding and reporting
type Job string

const (
	JobBrands             Job = "brands"
	JobCategories         Job = "categories"
	JobCategoryAttributes Job = "category_attributes"
	JobAddresses          Job = "addresses"
	JobProducts           Job = "products"
	JobOrders             Job = "orders"
)

// String returns the string representation of Job
func (j Job) String() string {
	return string(j)
}

// JobGuard serializes sync jobs per (platform, job). Concurrent upserts on
// the same keys would not corrupt data, but interleaved runs waste the
// marketplace's rate budget and confuse reporting, so jobs take a
// single-flight slot before starting.
type JobGuard interface {
	// Acquire takes the slot for (platform, job). Returns a release
	// function on success and ErrSyncAlreadyRunning if the slot is held.
	Acquire(ctx context.Context, platform integration.PlatformCode, job Job) (func(), error)
}
