package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/shared"
)

// ProductStatus represents the status of a catalog product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a product in the local catalog. Products are created
// and edited locally; when a marketplace listing with the same barcode is
// synced, the listing fields are cached on the product so stock and price
// can be compared without another remote call.
type Product struct {
	shared.BaseAggregateRoot
	// Barcode is the product barcode, unique across the catalog
	Barcode string `gorm:"type:varchar(64);not null;uniqueIndex"`
	// StockCode is the seller's own stock code
	StockCode string `gorm:"type:varchar(64);index"`
	// Name is the product name
	Name string `gorm:"type:varchar(255);not null"`
	// Description is the product description
	Description string `gorm:"type:text"`
	// Quantity is the local stock quantity
	Quantity int `gorm:"not null;default:0"`
	// ListPrice is the strike-through price
	ListPrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	// SalePrice is the effective selling price
	SalePrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	// VatRate is the VAT percentage
	VatRate int `gorm:"not null;default:0"`
	// Status controls catalog visibility
	Status ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
	// RemotePlatform is the marketplace the listing cache came from
	RemotePlatform integration.PlatformCode `gorm:"type:varchar(20)"`
	// RemoteListingID is the listing identifier on the marketplace
	RemoteListingID string `gorm:"type:varchar(64)"`
	// RemoteBrandID is the brand identifier on the marketplace
	RemoteBrandID int64
	// RemoteCategoryID is the leaf category identifier on the marketplace
	RemoteCategoryID int64
	// RemoteQuantity is the sellable quantity as last reported
	RemoteQuantity int
	// RemoteSalePrice is the selling price as last reported
	RemoteSalePrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	// RemoteApproved indicates the listing passed marketplace review
	RemoteApproved bool
	// RemoteSyncedAt is when the listing cache was last refreshed
	RemoteSyncedAt *time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(barcode, name string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Product barcode cannot be empty")
	}
	if len(barcode) > 64 {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Product barcode cannot exceed 64 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Barcode:           barcode,
		Name:              name,
		Status:            ProductStatusActive,
	}, nil
}

// CacheListing caches the marketplace listing fields on the product
func (p *Product) CacheListing(platform integration.PlatformCode, listing *integration.RemoteProduct) {
	now := time.Now()
	p.RemotePlatform = platform
	p.RemoteListingID = listing.RemoteID
	p.RemoteBrandID = listing.BrandID
	p.RemoteCategoryID = listing.CategoryID
	p.RemoteQuantity = listing.Quantity
	p.RemoteSalePrice = listing.SalePrice
	p.RemoteApproved = listing.Approved
	p.RemoteSyncedAt = &now
	p.UpdatedAt = now
}

// HasListing returns true if a marketplace listing was cached on the product
func (p *Product) HasListing() bool {
	return p.RemoteListingID != ""
}

// StockDrift returns the local quantity minus the last reported remote
// quantity. Zero means the two sides agree.
func (p *Product) StockDrift() int {
	return p.Quantity - p.RemoteQuantity
}

// AdjustQuantity changes the local stock quantity
func (p *Product) AdjustQuantity(delta int) error {
	if p.Quantity+delta < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Quantity cannot go negative")
	}
	p.Quantity += delta
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate removes the product from the active catalog
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Activate returns the product to the active catalog
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
