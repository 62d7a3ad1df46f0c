package catalog

import (
	"context"
	"errors"

	"github.com/stockie/backend/internal/domain/integration"
)

var (
	// ErrProductNotFound indicates no product exists for the given identity
	ErrProductNotFound = errors.New("catalog: product not found")
)

// ProductQuery filters product listings
type ProductQuery struct {
	// Status restricts to one status; empty means all
	Status ProductStatus
	// WithListing restricts to products with or without a cached listing
	WithListing *bool
	// Offset is the number of records to skip
	Offset int
	// Limit is the maximum number of records to return, 0 for no limit
	Limit int
}

// ProductRepository defines the persistence contract for catalog products
type ProductRepository interface {
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// FindByBarcode finds a product by barcode.
	// Returns ErrProductNotFound if absent.
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// List returns products matching the query
	List(ctx context.Context, query ProductQuery) ([]*Product, error)

	// Count returns the number of products matching the query
	Count(ctx context.Context, query ProductQuery) (int64, error)

	// CacheListings caches marketplace listings on the products that share
	// their barcode and returns the number of products updated. Listings
	// without a matching product are ignored.
	CacheListings(ctx context.Context, platform integration.PlatformCode, listings []integration.RemoteProduct) (int64, error)
}
