package integration

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Mirror Errors
// ---------------------------------------------------------------------------

var (
	ErrMirrorNotFound       = errors.New("integration: mirror record not found")
	ErrMirrorInvalidRecord  = errors.New("integration: mirror record missing identity")
	ErrMirrorEmptyBatch     = errors.New("integration: empty mirror batch")
	ErrCategoryMirrorCycle  = errors.New("integration: category tree contains a cycle")
	ErrAttributeNoCategory  = errors.New("integration: attribute mirror missing category")
	ErrAttributeNoAttribute = errors.New("integration: attribute mirror missing attribute ID")
)

// ---------------------------------------------------------------------------
// Mirror Entities
// ---------------------------------------------------------------------------
//
// Mirror entities are local copies of marketplace reference data. They are
// written only by sync jobs and identified by the marketplace's own IDs, so
// re-running a sync converges on the same rows instead of duplicating them.

// BrandMirror is the local copy of a marketplace brand
type BrandMirror struct {
	// Platform identifies the source marketplace
	Platform PlatformCode
	// RemoteID is the brand identifier on the marketplace
	RemoteID int64
	// Name is the brand name
	Name string
	// SyncedAt is when this record was last written by a sync job
	SyncedAt time.Time
}

// Validate checks the brand mirror carries its identity
func (b *BrandMirror) Validate() error {
	if !b.Platform.IsValid() || b.RemoteID == 0 {
		return ErrMirrorInvalidRecord
	}
	return nil
}

// CategoryMirror is the local copy of one marketplace category node.
// The tree arrives nested; importers flatten it into rows where ParentID
// references the parent's RemoteID, nil for roots.
type CategoryMirror struct {
	// Platform identifies the source marketplace
	Platform PlatformCode
	// RemoteID is the category identifier on the marketplace
	RemoteID int64
	// Name is the category name
	Name string
	// ParentID is the parent category's RemoteID, nil for roots
	ParentID *int64
	// Leaf indicates the category has no children
	Leaf bool
	// SyncedAt is when this record was last written by a sync job
	SyncedAt time.Time
}

// Validate checks the category mirror carries its identity
func (c *CategoryMirror) Validate() error {
	if !c.Platform.IsValid() || c.RemoteID == 0 {
		return ErrMirrorInvalidRecord
	}
	return nil
}

// CategoryAttributeMirror is the local copy of one category attribute
// definition. Attribute IDs repeat across categories, so the composite
// (Platform, CategoryID, AttributeID) identifies a record.
type CategoryAttributeMirror struct {
	// Platform identifies the source marketplace
	Platform PlatformCode
	// CategoryID is the owning category's RemoteID
	CategoryID int64
	// AttributeID is the attribute identifier on the marketplace
	AttributeID int64
	// Name is the attribute display name
	Name string
	// Required indicates the attribute must be set when listing
	Required bool
	// AllowCustom indicates free-text values are accepted
	AllowCustom bool
	// Varianter indicates the attribute participates in variant matching
	Varianter bool
	// Slicer indicates the attribute splits listings on the storefront
	Slicer bool
	// AllowedValues holds the permitted values as marshaled JSON
	AllowedValues string
	// SyncedAt is when this record was last written by a sync job
	SyncedAt time.Time
}

// Validate checks the attribute mirror carries its composite identity
func (a *CategoryAttributeMirror) Validate() error {
	if !a.Platform.IsValid() {
		return ErrMirrorInvalidRecord
	}
	if a.CategoryID == 0 {
		return ErrAttributeNoCategory
	}
	if a.AttributeID == 0 {
		return ErrAttributeNoAttribute
	}
	return nil
}

// AddressMirror is the local copy of a seller address. The address listing
// is small and unkeyed in any stable way beyond RemoteID, so sync replaces
// the whole set atomically rather than upserting.
type AddressMirror struct {
	// Platform identifies the source marketplace
	Platform PlatformCode
	// RemoteID is the address identifier on the marketplace
	RemoteID int64
	// AddressType distinguishes shipment from returning addresses
	AddressType string
	// Country is the country name
	Country string
	// City is the city name
	City string
	// District is the district name
	District string
	// PostCode is the postal code
	PostCode string
	// FullAddress is the free-form address text
	FullAddress string
	// IsDefault indicates the marketplace default shipment address
	IsDefault bool
	// IsReturningAddress indicates the default returning address
	IsReturningAddress bool
	// SyncedAt is when this record was written by a sync job
	SyncedAt time.Time
}

// ProductMirror is the local copy of a marketplace product listing,
// identified by barcode within a platform
type ProductMirror struct {
	// Platform identifies the source marketplace
	Platform PlatformCode
	// RemoteID is the listing identifier on the marketplace
	RemoteID string
	// Barcode is the product barcode, unique per listing
	Barcode string
	// Title is the listing title
	Title string
	// Brand is the brand name
	Brand string
	// BrandID is the brand identifier on the marketplace
	BrandID int64
	// CategoryName is the leaf category name
	CategoryName string
	// CategoryID is the leaf category identifier
	CategoryID int64
	// StockCode is the seller's stock code
	StockCode string
	// Quantity is the sellable stock quantity
	Quantity int
	// ListPrice is the strike-through price
	ListPrice decimal.Decimal
	// SalePrice is the effective selling price
	SalePrice decimal.Decimal
	// VatRate is the VAT percentage
	VatRate int
	// DimensionalWeight is the desi value used for cargo pricing
	DimensionalWeight decimal.Decimal
	// Description is the listing description HTML
	Description string
	// ImageURLs holds the listing image URLs as marshaled JSON
	ImageURLs string
	// Approved indicates the listing passed marketplace review
	Approved bool
	// OnSale indicates the listing is currently purchasable
	OnSale bool
	// SyncedAt is when this record was last written by a sync job
	SyncedAt time.Time
}

// Validate checks the product mirror carries its identity
func (p *ProductMirror) Validate() error {
	if !p.Platform.IsValid() || p.Barcode == "" {
		return ErrMirrorInvalidRecord
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mirror Repositories
// ---------------------------------------------------------------------------

// BrandMirrorRepository defines the persistence contract for brand mirrors
type BrandMirrorRepository interface {
	// UpsertBatch inserts or updates the batch keyed by (Platform, RemoteID)
	UpsertBatch(ctx context.Context, brands []BrandMirror) error

	// FindByRemoteID finds one brand mirror
	FindByRemoteID(ctx context.Context, platform PlatformCode, remoteID int64) (*BrandMirror, error)

	// Count returns the number of brand mirrors for a platform
	Count(ctx context.Context, platform PlatformCode) (int64, error)
}

// CategoryMirrorRepository defines the persistence contract for category mirrors
type CategoryMirrorRepository interface {
	// UpsertBatch inserts or updates the batch keyed by (Platform, RemoteID)
	UpsertBatch(ctx context.Context, categories []CategoryMirror) error

	// FindByRemoteID finds one category mirror
	FindByRemoteID(ctx context.Context, platform PlatformCode, remoteID int64) (*CategoryMirror, error)

	// FindChildren finds the direct children of a category
	FindChildren(ctx context.Context, platform PlatformCode, parentID int64) ([]CategoryMirror, error)

	// FindRoots finds the root categories of a platform
	FindRoots(ctx context.Context, platform PlatformCode) ([]CategoryMirror, error)

	// FindLeaves finds the leaf categories of a platform
	FindLeaves(ctx context.Context, platform PlatformCode) ([]CategoryMirror, error)

	// Count returns the number of category mirrors for a platform
	Count(ctx context.Context, platform PlatformCode) (int64, error)
}

// CategoryAttributeMirrorRepository defines the persistence contract for
// category attribute mirrors, keyed by (Platform, CategoryID, AttributeID)
type CategoryAttributeMirrorRepository interface {
	// Upsert inserts or updates one record by its composite key
	Upsert(ctx context.Context, attribute *CategoryAttributeMirror) error

	// UpsertBatch inserts or updates the batch by its composite key
	UpsertBatch(ctx context.Context, attributes []CategoryAttributeMirror) error

	// FindByCategory finds all attribute mirrors of a category
	FindByCategory(ctx context.Context, platform PlatformCode, categoryID int64) ([]CategoryAttributeMirror, error)

	// Find finds one attribute mirror by its composite key
	Find(ctx context.Context, platform PlatformCode, categoryID, attributeID int64) (*CategoryAttributeMirror, error)

	// Count returns the number of attribute mirrors for a platform
	Count(ctx context.Context, platform PlatformCode) (int64, error)
}

// AddressMirrorRepository defines the persistence contract for address mirrors
type AddressMirrorRepository interface {
	// ReplaceAll atomically replaces the platform's address set
	ReplaceAll(ctx context.Context, platform PlatformCode, addresses []AddressMirror) error

	// FindAll returns all address mirrors of a platform
	FindAll(ctx context.Context, platform PlatformCode) ([]AddressMirror, error)
}

// ProductMirrorRepository defines the persistence contract for product mirrors
type ProductMirrorRepository interface {
	// UpsertBatch inserts or updates the batch keyed by (Platform, Barcode)
	UpsertBatch(ctx context.Context, products []ProductMirror) error

	// FindByBarcode finds one product mirror
	FindByBarcode(ctx context.Context, platform PlatformCode, barcode string) (*ProductMirror, error)

	// Count returns the number of product mirrors for a platform
	Count(ctx context.Context, platform PlatformCode) (int64, error)
}
