package integration

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Marketplace Errors
// ---------------------------------------------------------------------------

var (
	// Transport errors
	ErrMarketplaceUnavailable     = errors.New("integration: marketplace temporarily unavailable")
	ErrMarketplaceRequestRejected = errors.New("integration: marketplace rejected the request")
	ErrMarketplaceInvalidResponse = errors.New("integration: invalid marketplace response")
	ErrMarketplaceAuthFailed      = errors.New("integration: marketplace authentication failed")
	ErrMarketplaceRateLimited     = errors.New("integration: marketplace rate limited")

	// Fetch errors
	ErrFetchAborted      = errors.New("integration: fetch aborted after repeated page failures")
	ErrFetchInvalidPage  = errors.New("integration: invalid page request")
	ErrFetchInvalidRange = errors.New("integration: invalid time range")

	// Mutation errors
	ErrPackageNotFound        = errors.New("integration: shipment package not found on marketplace")
	ErrPackageUpdateRejected  = errors.New("integration: shipment package update rejected")
	ErrCargoProviderInvalid   = errors.New("integration: cargo provider not recognized by marketplace")
	ErrStatusUpdateNoLines    = errors.New("integration: status update requires at least one line")
	ErrStatusUpdateBadStatus  = errors.New("integration: status not allowed for package update")
	ErrCargoProviderNotSet    = errors.New("integration: cargo provider is required")
	ErrShipmentPackageMissing = errors.New("integration: shipment package ID is required")
)

// ---------------------------------------------------------------------------
// Remote Value Objects
// ---------------------------------------------------------------------------

// RemoteBrand is a brand record as the marketplace reports it
type RemoteBrand struct {
	// RemoteID is the brand identifier on the marketplace
	RemoteID int64
	// Name is the brand name
	Name string
}

// RemoteCategoryNode is one node of the marketplace category tree.
// SubCategories nests arbitrarily deep; importers flatten it themselves.
type RemoteCategoryNode struct {
	// RemoteID is the category identifier on the marketplace
	RemoteID int64
	// Name is the category name
	Name string
	// ParentID is the parent category identifier, nil for roots
	ParentID *int64
	// SubCategories contains the child nodes
	SubCategories []RemoteCategoryNode
}

// RemoteCategoryAttribute is one attribute definition of a leaf category
type RemoteCategoryAttribute struct {
	// CategoryID is the owning category identifier on the marketplace
	CategoryID int64
	// AttributeID is the attribute identifier on the marketplace
	AttributeID int64
	// Name is the attribute display name
	Name string
	// Required indicates the attribute must be set when listing a product
	Required bool
	// AllowCustom indicates free-text values are accepted
	AllowCustom bool
	// Varianter indicates the attribute participates in variant matching
	Varianter bool
	// Slicer indicates the attribute splits listings on the storefront
	Slicer bool
	// AllowedValues contains the permitted attribute values
	AllowedValues []RemoteAttributeValue
}

// RemoteAttributeValue is one permitted value of a category attribute
type RemoteAttributeValue struct {
	// RemoteID is the value identifier on the marketplace
	RemoteID int64
	// Name is the value display name
	Name string
}

// RemoteAddress is a seller address record (shipment or returning origin)
type RemoteAddress struct {
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
}

// RemoteProduct is a product listing as the marketplace reports it
type RemoteProduct struct {
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
	// ImageURLs contains the listing image URLs
	ImageURLs []string
	// Approved indicates the listing passed marketplace review
	Approved bool
	// OnSale indicates the listing is currently purchasable
	OnSale bool
}

// RemoteOrder is a shipment package as the marketplace reports it.
// The marketplace splits one customer order into one package per shipment,
// so the pair (OrderNumber, ShipmentPackageID) identifies a record.
type RemoteOrder struct {
	// OrderNumber is the customer-facing order number
	OrderNumber string
	// ShipmentPackageID is the package identifier within the order
	ShipmentPackageID int64
	// Status is the package status on the marketplace
	Status RemoteOrderStatus
	// CustomerFirstName is the buyer's first name
	CustomerFirstName string
	// CustomerLastName is the buyer's last name
	CustomerLastName string
	// CustomerEmail is the buyer's (relay) email address
	CustomerEmail string
	// CustomerPhone is the buyer's (relay) phone number
	CustomerPhone string
	// InvoiceFullName is the name on the billing address
	InvoiceFullName string
	// InvoiceAddress is the billing address text
	InvoiceAddress string
	// InvoiceCity is the billing city
	InvoiceCity string
	// InvoiceDistrict is the billing district
	InvoiceDistrict string
	// InvoicePostalCode is the billing postal code
	InvoicePostalCode string
	// ShipmentAddress is the delivery address text
	ShipmentAddress string
	// ShipmentCity is the delivery city
	ShipmentCity string
	// ShipmentDistrict is the delivery district
	ShipmentDistrict string
	// ShipmentPostalCode is the delivery postal code
	ShipmentPostalCode string
	// ShipmentAddressType is the marketplace's address kind label
	ShipmentAddressType string
	// GrossAmount is the total before discounts
	GrossAmount decimal.Decimal
	// TotalDiscount is the total discount applied
	TotalDiscount decimal.Decimal
	// TotalPrice is the amount the buyer paid
	TotalPrice decimal.Decimal
	// Currency is the payment currency
	Currency string
	// CargoProvider is the carrier assigned to the package
	CargoProvider string
	// CargoTrackingNumber is the carrier tracking number
	CargoTrackingNumber string
	// CargoTrackingLink is the carrier tracking URL
	CargoTrackingLink string
	// CargoSenderNumber is the barcode printed on the cargo label
	CargoSenderNumber string
	// DeliveryType is the marketplace delivery model
	DeliveryType string
	// EstimatedDeliveryStart is the promised delivery window start
	EstimatedDeliveryStart *time.Time
	// EstimatedDeliveryEnd is the promised delivery window end
	EstimatedDeliveryEnd *time.Time
	// OrderDate is when the order was placed
	OrderDate time.Time
	// LastModifiedDate is when the package last changed on the marketplace
	LastModifiedDate time.Time
	// Lines contains the package line items
	Lines []RemoteOrderLine
}

// RemoteOrderLine is one line item of a shipment package
type RemoteOrderLine struct {
	// LineID is the line identifier on the marketplace
	LineID int64
	// Barcode is the product barcode
	Barcode string
	// ProductName is the listing title at purchase time
	ProductName string
	// MerchantSKU is the seller's stock code
	MerchantSKU string
	// Quantity is the ordered quantity
	Quantity int
	// Price is the unit price paid
	Price decimal.Decimal
	// Discount is the discount applied to the line
	Discount decimal.Decimal
	// VatRate is the VAT percentage
	VatRate int
}

// ---------------------------------------------------------------------------
// Page Requests and Results
// ---------------------------------------------------------------------------

// PageRequest addresses one page of a paginated marketplace listing.
// Pages are zero-indexed.
type PageRequest struct {
	// Page is the zero-indexed page number
	Page int
	// Size is the number of items per page
	Size int
}

// Validate validates the page request
func (r *PageRequest) Validate() error {
	if r.Page < 0 {
		return ErrFetchInvalidPage
	}
	if r.Size < 1 {
		return ErrFetchInvalidPage
	}
	return nil
}

// OrderPageRequest addresses one page of the order listing within a
// modification time window
type OrderPageRequest struct {
	// Page is the zero-indexed page number
	Page int
	// Size is the number of packages per page
	Size int
	// StartDate is the window start, compared against LastModifiedDate
	StartDate time.Time
	// EndDate is the window end
	EndDate time.Time
	// Statuses restricts the result to the listed statuses; empty means all
	Statuses []RemoteOrderStatus
}

// Validate validates the order page request
func (r *OrderPageRequest) Validate() error {
	if r.Page < 0 || r.Size < 1 {
		return ErrFetchInvalidPage
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return ErrFetchInvalidRange
	}
	if r.StartDate.After(r.EndDate) {
		return ErrFetchInvalidRange
	}
	return nil
}

// BrandPage is one page of the brand listing
type BrandPage struct {
	// Items contains the brands on this page
	Items []RemoteBrand
}

// ProductPage is one page of the product listing
type ProductPage struct {
	// Items contains the products on this page
	Items []RemoteProduct
	// TotalElements is the marketplace's total listing count, when reported
	TotalElements int64
}

// OrderPage is one page of the order listing
type OrderPage struct {
	// Items contains the shipment packages on this page
	Items []RemoteOrder
	// TotalElements is the marketplace's total package count, when reported
	TotalElements int64
}

// ---------------------------------------------------------------------------
// Mutation Requests
// ---------------------------------------------------------------------------

// PackageStatusUpdate asks the marketplace to move a shipment package into
// a new status. Every line of the package must be listed with its quantity.
type PackageStatusUpdate struct {
	// ShipmentPackageID is the package to update
	ShipmentPackageID int64
	// Status is the target status
	Status RemoteOrderStatus
	// Lines lists the package lines with their quantities
	Lines []PackageStatusLine
}

// PackageStatusLine is one line entry of a package status update
type PackageStatusLine struct {
	// LineID is the line identifier on the marketplace
	LineID int64
	// Quantity is the line quantity being confirmed
	Quantity int
}

// Validate validates the package status update
func (u *PackageStatusUpdate) Validate() error {
	if u.ShipmentPackageID == 0 {
		return ErrShipmentPackageMissing
	}
	if !u.Status.IsValid() {
		return ErrStatusUpdateBadStatus
	}
	if len(u.Lines) == 0 {
		return ErrStatusUpdateNoLines
	}
	return nil
}

// CargoProviderUpdate asks the marketplace to reassign the carrier of a
// shipment package
type CargoProviderUpdate struct {
	// ShipmentPackageID is the package to update
	ShipmentPackageID int64
	// CargoProvider is the marketplace code of the new carrier
	CargoProvider string
}

// Validate validates the cargo provider update
func (u *CargoProviderUpdate) Validate() error {
	if u.ShipmentPackageID == 0 {
		return ErrShipmentPackageMissing
	}
	if u.CargoProvider == "" {
		return ErrCargoProviderNotSet
	}
	return nil
}

// ---------------------------------------------------------------------------
// Marketplace Port Interface
// ---------------------------------------------------------------------------

// Marketplace defines the port interface for an external marketplace.
// It is defined in the domain layer following the Ports & Adapters pattern;
// the concrete Trendyol adapter lives in the infrastructure layer.
//
// Fetch methods return exactly one page and never retry; retry and pacing
// policy belongs to the sync jobs in the application layer. Transport
// failures wrap ErrMarketplaceUnavailable, rejected requests (auth, bad
// parameters) wrap ErrMarketplaceRequestRejected.
type Marketplace interface {
	// PlatformCode returns the platform this adapter handles
	PlatformCode() PlatformCode

	// ---------------------------------------------------------------------------
	// Catalog Reference Data
	// ---------------------------------------------------------------------------

	// FetchBrandPage fetches one page of the marketplace brand listing
	FetchBrandPage(ctx context.Context, cred *Credential, req PageRequest) (*BrandPage, error)

	// FetchCategoryTree fetches the full category tree in one call
	FetchCategoryTree(ctx context.Context, cred *Credential) ([]RemoteCategoryNode, error)

	// FetchCategoryAttributes fetches the attribute definitions of one category
	FetchCategoryAttributes(ctx context.Context, cred *Credential, categoryID int64) ([]RemoteCategoryAttribute, error)

	// ---------------------------------------------------------------------------
	// Seller Data
	// ---------------------------------------------------------------------------

	// FetchAddresses fetches all seller addresses in one call
	FetchAddresses(ctx context.Context, cred *Credential) ([]RemoteAddress, error)

	// FetchProductPage fetches one page of the seller's product listings
	FetchProductPage(ctx context.Context, cred *Credential, req PageRequest) (*ProductPage, error)

	// FetchOrderPage fetches one page of shipment packages modified within
	// the request window, newest first
	FetchOrderPage(ctx context.Context, cred *Credential, req OrderPageRequest) (*OrderPage, error)

	// ---------------------------------------------------------------------------
	// Mutations
	// ---------------------------------------------------------------------------

	// UpdatePackageStatus moves a shipment package into a new status
	UpdatePackageStatus(ctx context.Context, cred *Credential, update *PackageStatusUpdate) error

	// UpdateCargoProvider reassigns the carrier of a shipment package
	UpdateCargoProvider(ctx context.Context, cred *Credential, update *CargoProviderUpdate) error
}
