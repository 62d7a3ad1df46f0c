package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockie/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// CredentialModel is the persistence model for marketplace credentials.
// One row per platform.
type CredentialModel struct {
	BaseModel
	Platform  integration.PlatformCode     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name      string                       `gorm:"type:varchar(100)"`
	APIKey    string                       `gorm:"type:varchar(255);not null;column:api_key"`
	APISecret string                       `gorm:"type:varchar(255);not null;column:api_secret"`
	SellerID  string                       `gorm:"type:varchar(50);not null"`
	Status    integration.CredentialStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (CredentialModel) TableName() string {
	return "marketplace_credentials"
}

// ToDomain converts the persistence model to a domain Credential
func (m *CredentialModel) ToDomain() *integration.Credential {
	return &integration.Credential{
		ID:        m.ID,
		Platform:  m.Platform,
		Name:      m.Name,
		APIKey:    m.APIKey,
		APISecret: m.APISecret,
		SellerID:  m.SellerID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Credential
func (m *CredentialModel) FromDomain(c *integration.Credential) {
	m.ID = c.ID
	m.Platform = c.Platform
	m.Name = c.Name
	m.APIKey = c.APIKey
	m.APISecret = c.APISecret
	m.SellerID = c.SellerID
	m.Status = c.Status
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// ---------------------------------------------------------------------------
// Brand Mirrors
// ---------------------------------------------------------------------------

// BrandMirrorModel is the persistence model for brand mirrors, keyed by
// (platform, remote_id)
type BrandMirrorModel struct {
	Platform integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:ux_brand_mirror,priority:1"`
	RemoteID int64                    `gorm:"not null;uniqueIndex:ux_brand_mirror,priority:2"`
	Name     string                   `gorm:"type:varchar(255);not null"`
	SyncedAt time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BrandMirrorModel) TableName() string {
	return "brand_mirrors"
}

// ToDomain converts the persistence model to a domain BrandMirror
func (m *BrandMirrorModel) ToDomain() integration.BrandMirror {
	return integration.BrandMirror{
		Platform: m.Platform,
		RemoteID: m.RemoteID,
		Name:     m.Name,
		SyncedAt: m.SyncedAt,
	}
}

// FromDomain populates the persistence model from a domain BrandMirror
func (m *BrandMirrorModel) FromDomain(b integration.BrandMirror) {
	m.Platform = b.Platform
	m.RemoteID = b.RemoteID
	m.Name = b.Name
	m.SyncedAt = b.SyncedAt
}

// ---------------------------------------------------------------------------
// Category Mirrors
// ---------------------------------------------------------------------------

// CategoryMirrorModel is the persistence model for category mirrors, keyed
// by (platform, remote_id). ParentID references the parent's remote ID.
type CategoryMirrorModel struct {
	Platform integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:ux_category_mirror,priority:1"`
	RemoteID int64                    `gorm:"not null;uniqueIndex:ux_category_mirror,priority:2"`
	Name     string                   `gorm:"type:varchar(255);not null"`
	ParentID *int64                   `gorm:"index"`
	Leaf     bool                     `gorm:"not null;default:false;index"`
	SyncedAt time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryMirrorModel) TableName() string {
	return "category_mirrors"
}

// ToDomain converts the persistence model to a domain CategoryMirror
func (m *CategoryMirrorModel) ToDomain() integration.CategoryMirror {
	return integration.CategoryMirror{
		Platform: m.Platform,
		RemoteID: m.RemoteID,
		Name:     m.Name,
		ParentID: m.ParentID,
		Leaf:     m.Leaf,
		SyncedAt: m.SyncedAt,
	}
}

// FromDomain populates the persistence model from a domain CategoryMirror
func (m *CategoryMirrorModel) FromDomain(c integration.CategoryMirror) {
	m.Platform = c.Platform
	m.RemoteID = c.RemoteID
	m.Name = c.Name
	m.ParentID = c.ParentID
	m.Leaf = c.Leaf
	m.SyncedAt = c.SyncedAt
}

// ---------------------------------------------------------------------------
// Category Attribute Mirrors
// ---------------------------------------------------------------------------

// CategoryAttributeMirrorModel is the persistence model for category
// attribute mirrors. Attribute IDs repeat across categories, so the
// composite (platform, category_id, attribute_id) forms the key.
type CategoryAttributeMirrorModel struct {
	Platform      integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:ux_category_attribute,priority:1"`
	CategoryID    int64                    `gorm:"not null;uniqueIndex:ux_category_attribute,priority:2;index"`
	AttributeID   int64                    `gorm:"not null;uniqueIndex:ux_category_attribute,priority:3"`
	Name          string                   `gorm:"type:varchar(255);not null"`
	Required      bool                     `gorm:"not null;default:false"`
	AllowCustom   bool                     `gorm:"not null;default:false"`
	Varianter     bool                     `gorm:"not null;default:false"`
	Slicer        bool                     `gorm:"not null;default:false"`
	AllowedValues string                   `gorm:"type:jsonb"`
	SyncedAt      time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryAttributeMirrorModel) TableName() string {
	return "category_attribute_mirrors"
}

// ToDomain converts the persistence model to a domain CategoryAttributeMirror
func (m *CategoryAttributeMirrorModel) ToDomain() integration.CategoryAttributeMirror {
	return integration.CategoryAttributeMirror{
		Platform:      m.Platform,
		CategoryID:    m.CategoryID,
		AttributeID:   m.AttributeID,
		Name:          m.Name,
		Required:      m.Required,
		AllowCustom:   m.AllowCustom,
		Varianter:     m.Varianter,
		Slicer:        m.Slicer,
		AllowedValues: m.AllowedValues,
		SyncedAt:      m.SyncedAt,
	}
}

// FromDomain populates the persistence model from a domain CategoryAttributeMirror
func (m *CategoryAttributeMirrorModel) FromDomain(a integration.CategoryAttributeMirror) {
	m.Platform = a.Platform
	m.CategoryID = a.CategoryID
	m.AttributeID = a.AttributeID
	m.Name = a.Name
	m.Required = a.Required
	m.AllowCustom = a.AllowCustom
	m.Varianter = a.Varianter
	m.Slicer = a.Slicer
	m.AllowedValues = a.AllowedValues
	m.SyncedAt = a.SyncedAt
}

// ---------------------------------------------------------------------------
// Address Mirrors
// ---------------------------------------------------------------------------

// AddressMirrorModel is the persistence model for seller address mirrors
type AddressMirrorModel struct {
	Platform           integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:ux_address_mirror,priority:1"`
	RemoteID           int64                    `gorm:"not null;uniqueIndex:ux_address_mirror,priority:2"`
	AddressType        string                   `gorm:"type:varchar(30)"`
	Country            string                   `gorm:"type:varchar(100)"`
	City               string                   `gorm:"type:varchar(100)"`
	District           string                   `gorm:"type:varchar(100)"`
	PostCode           string                   `gorm:"type:varchar(20)"`
	FullAddress        string                   `gorm:"type:text"`
	IsDefault          bool                     `gorm:"not null;default:false"`
	IsReturningAddress bool                     `gorm:"not null;default:false"`
	SyncedAt           time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressMirrorModel) TableName() string {
	return "address_mirrors"
}

// ToDomain converts the persistence model to a domain AddressMirror
func (m *AddressMirrorModel) ToDomain() integration.AddressMirror {
	return integration.AddressMirror{
		Platform:           m.Platform,
		RemoteID:           m.RemoteID,
		AddressType:        m.AddressType,
		Country:            m.Country,
		City:               m.City,
		District:           m.District,
		PostCode:           m.PostCode,
		FullAddress:        m.FullAddress,
		IsDefault:          m.IsDefault,
		IsReturningAddress: m.IsReturningAddress,
		SyncedAt:           m.SyncedAt,
	}
}

// FromDomain populates the persistence model from a domain AddressMirror
func (m *AddressMirrorModel) FromDomain(a integration.AddressMirror) {
	m.Platform = a.Platform
	m.RemoteID = a.RemoteID
	m.AddressType = a.AddressType
	m.Country = a.Country
	m.City = a.City
	m.District = a.District
	m.PostCode = a.PostCode
	m.FullAddress = a.FullAddress
	m.IsDefault = a.IsDefault
	m.IsReturningAddress = a.IsReturningAddress
	m.SyncedAt = a.SyncedAt
}

// ---------------------------------------------------------------------------
// Product Mirrors
// ---------------------------------------------------------------------------

// ProductMirrorModel is the persistence model for product listing mirrors,
// keyed by (platform, barcode)
type ProductMirrorModel struct {
	Platform          integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:ux_product_mirror,priority:1"`
	RemoteID          string                   `gorm:"type:varchar(64);index"`
	Barcode           string                   `gorm:"type:varchar(64);not null;uniqueIndex:ux_product_mirror,priority:2"`
	Title             string                   `gorm:"type:varchar(255)"`
	Brand             string                   `gorm:"type:varchar(255)"`
	BrandID           int64
	CategoryName      string `gorm:"type:varchar(255)"`
	CategoryID        int64  `gorm:"index"`
	StockCode         string `gorm:"type:varchar(64);index"`
	Quantity          int
	ListPrice         decimal.Decimal `gorm:"type:decimal(12,2)"`
	SalePrice         decimal.Decimal `gorm:"type:decimal(12,2)"`
	VatRate           int
	DimensionalWeight decimal.Decimal `gorm:"type:decimal(10,2)"`
	Description       string          `gorm:"type:text"`
	ImageURLs         string          `gorm:"type:jsonb;column:image_urls"`
	Approved          bool            `gorm:"not null;default:false"`
	OnSale            bool            `gorm:"not null;default:false"`
	SyncedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductMirrorModel) TableName() string {
	return "product_mirrors"
}

// ToDomain converts the persistence model to a domain ProductMirror
func (m *ProductMirrorModel) ToDomain() integration.ProductMirror {
	return integration.ProductMirror{
		Platform:          m.Platform,
		RemoteID:          m.RemoteID,
		Barcode:           m.Barcode,
		Title:             m.Title,
		Brand:             m.Brand,
		BrandID:           m.BrandID,
		CategoryName:      m.CategoryName,
		CategoryID:        m.CategoryID,
		StockCode:         m.StockCode,
		Quantity:          m.Quantity,
		ListPrice:         m.ListPrice,
		SalePrice:         m.SalePrice,
		VatRate:           m.VatRate,
		DimensionalWeight: m.DimensionalWeight,
		Description:       m.Description,
		ImageURLs:         m.ImageURLs,
		Approved:          m.Approved,
		OnSale:            m.OnSale,
		SyncedAt:          m.SyncedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductMirror
func (m *ProductMirrorModel) FromDomain(p integration.ProductMirror) {
	m.Platform = p.Platform
	m.RemoteID = p.RemoteID
	m.Barcode = p.Barcode
	m.Title = p.Title
	m.Brand = p.Brand
	m.BrandID = p.BrandID
	m.CategoryName = p.CategoryName
	m.CategoryID = p.CategoryID
	m.StockCode = p.StockCode
	m.Quantity = p.Quantity
	m.ListPrice = p.ListPrice
	m.SalePrice = p.SalePrice
	m.VatRate = p.VatRate
	m.DimensionalWeight = p.DimensionalWeight
	m.Description = p.Description
	m.ImageURLs = p.ImageURLs
	m.Approved = p.Approved
	m.OnSale = p.OnSale
	m.SyncedAt = p.SyncedAt
}
