package trade

import (
	"context"
	"errors"
	"time"

	"github.com/stockie/backend/internal/domain/integration"
)

var (
	// ErrOrderNotFound indicates no order exists for the given identity
	ErrOrderNotFound = errors.New("trade: order not found")
)

// OrderQuery filters order listings
type OrderQuery struct {
	// Platform restricts to one marketplace; empty means all
	Platform integration.PlatformCode
	// Status restricts to one local status; empty means all
	Status integration.LocalOrderStatus
	// ModifiedAfter restricts to orders the marketplace touched after this time
	ModifiedAfter *time.Time
	// SortBy names the column to sort on; unknown values fall back to the
	// repository default
	SortBy string
	// SortDir is "asc" or "desc"; anything else means descending
	SortDir string
	// Offset is the number of records to skip
	Offset int
	// Limit is the maximum number of records to return, 0 for no limit
	Limit int
}

// OrderRepository defines the persistence contract for marketplace orders.
// Orders are identified by (Platform, OrderNumber, ShipmentPackageID);
// Upsert converges on the existing row when the identity already exists.
type OrderRepository interface {
	// Upsert inserts the order or updates the existing row with the same
	// (Platform, OrderNumber, ShipmentPackageID), replacing its lines
	Upsert(ctx context.Context, order *Order) error

	// FindByNumberAndPackage finds one order by its marketplace identity.
	// Returns ErrOrderNotFound if absent.
	FindByNumberAndPackage(ctx context.Context, platform integration.PlatformCode, orderNumber string, shipmentPackageID int64) (*Order, error)

	// FindByOrderNumber finds all shipment packages of a customer order
	FindByOrderNumber(ctx context.Context, platform integration.PlatformCode, orderNumber string) ([]*Order, error)

	// List returns orders matching the query, newest remote modification first
	List(ctx context.Context, query OrderQuery) ([]*Order, error)

	// Count returns the number of orders matching the query
	Count(ctx context.Context, query OrderQuery) (int64, error)

	// Save persists local mutations to an existing order
	Save(ctx context.Context, order *Order) error
}
