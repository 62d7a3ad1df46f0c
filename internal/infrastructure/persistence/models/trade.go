package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
)

// OrderModel is the persistence model for marketplace orders. One row per
// shipment package; the composite (platform, order_number,
// shipment_package_id) is unique so re-running a sync converges.
type OrderModel struct {
	AggregateModel
	Platform               integration.PlatformCode     `gorm:"type:varchar(20);not null;uniqueIndex:ux_order_package,priority:1"`
	OrderNumber            string                       `gorm:"type:varchar(50);not null;uniqueIndex:ux_order_package,priority:2;index"`
	ShipmentPackageID      int64                        `gorm:"not null;uniqueIndex:ux_order_package,priority:3;index"`
	Status                 integration.LocalOrderStatus `gorm:"type:varchar(30);not null;index"`
	RemoteStatus           string                       `gorm:"type:varchar(30)"`
	CustomerFirstName      string                       `gorm:"type:varchar(100)"`
	CustomerLastName       string                       `gorm:"type:varchar(100)"`
	CustomerEmail          string                       `gorm:"type:varchar(255)"`
	CustomerPhone          string                       `gorm:"type:varchar(30)"`
	InvoiceFullName        string                       `gorm:"type:varchar(150)"`
	InvoiceAddress         string                       `gorm:"type:text"`
	InvoiceCity            string                       `gorm:"type:varchar(100)"`
	InvoiceDistrict        string                       `gorm:"type:varchar(100)"`
	InvoicePostalCode      string                       `gorm:"type:varchar(20)"`
	ShipmentAddress        string                       `gorm:"type:text"`
	ShipmentCity           string                       `gorm:"type:varchar(100)"`
	ShipmentDistrict       string                       `gorm:"type:varchar(100)"`
	ShipmentPostalCode     string                       `gorm:"type:varchar(20)"`
	ShipmentAddressType    string                       `gorm:"type:varchar(30)"`
	GrossAmount            decimal.Decimal              `gorm:"type:decimal(12,2)"`
	TotalDiscount          decimal.Decimal              `gorm:"type:decimal(12,2)"`
	TotalPrice             decimal.Decimal              `gorm:"type:decimal(12,2)"`
	Currency               string                       `gorm:"type:varchar(10)"`
	CargoProvider          string                       `gorm:"type:varchar(50)"`
	CargoTrackingNumber    string                       `gorm:"type:varchar(50)"`
	CargoTrackingLink      string                       `gorm:"type:varchar(500)"`
	CargoSenderNumber      string                       `gorm:"type:varchar(50)"`
	DeliveryType           string                       `gorm:"type:varchar(30)"`
	EstimatedDeliveryStart *time.Time
	EstimatedDeliveryEnd   *time.Time
	OrderDate              time.Time        `gorm:"not null;index"`
	RemoteLastModified     time.Time        `gorm:"not null;index"`
	SyncedAt               time.Time        `gorm:"not null"`
	Lines                  []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "marketplace_orders"
}

// OrderLineModel is the persistence model for order line items
type OrderLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RemoteLineID int64           `gorm:"not null"`
	Barcode      string          `gorm:"type:varchar(64);index"`
	ProductName  string          `gorm:"type:varchar(255)"`
	MerchantSKU  string          `gorm:"type:varchar(64);column:merchant_sku"`
	Quantity     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2)"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2)"`
	VatRate      int             `gorm:"not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "marketplace_order_lines"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		Platform:               m.Platform,
		OrderNumber:            m.OrderNumber,
		ShipmentPackageID:      m.ShipmentPackageID,
		Status:                 m.Status,
		RemoteStatus:           m.RemoteStatus,
		CustomerFirstName:      m.CustomerFirstName,
		CustomerLastName:       m.CustomerLastName,
		CustomerEmail:          m.CustomerEmail,
		CustomerPhone:          m.CustomerPhone,
		InvoiceFullName:        m.InvoiceFullName,
		InvoiceAddress:         m.InvoiceAddress,
		InvoiceCity:            m.InvoiceCity,
		InvoiceDistrict:        m.InvoiceDistrict,
		InvoicePostalCode:      m.InvoicePostalCode,
		ShipmentAddress:        m.ShipmentAddress,
		ShipmentCity:           m.ShipmentCity,
		ShipmentDistrict:       m.ShipmentDistrict,
		ShipmentPostalCode:     m.ShipmentPostalCode,
		ShipmentAddressType:    m.ShipmentAddressType,
		GrossAmount:            m.GrossAmount,
		TotalDiscount:          m.TotalDiscount,
		TotalPrice:             m.TotalPrice,
		Currency:               m.Currency,
		CargoProvider:          m.CargoProvider,
		CargoTrackingNumber:    m.CargoTrackingNumber,
		CargoTrackingLink:      m.CargoTrackingLink,
		CargoSenderNumber:      m.CargoSenderNumber,
		DeliveryType:           m.DeliveryType,
		EstimatedDeliveryStart: m.EstimatedDeliveryStart,
		EstimatedDeliveryEnd:   m.EstimatedDeliveryEnd,
		OrderDate:              m.OrderDate,
		RemoteLastModified:     m.RemoteLastModified,
		SyncedAt:               m.SyncedAt,
	}
	m.PopulateAggregateRoot(&order.BaseAggregateRoot)

	order.Lines = make([]trade.OrderLine, len(m.Lines))
	for i, l := range m.Lines {
		order.Lines[i] = l.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Platform = o.Platform
	m.OrderNumber = o.OrderNumber
	m.ShipmentPackageID = o.ShipmentPackageID
	m.Status = o.Status
	m.RemoteStatus = o.RemoteStatus
	m.CustomerFirstName = o.CustomerFirstName
	m.CustomerLastName = o.CustomerLastName
	m.CustomerEmail = o.CustomerEmail
	m.CustomerPhone = o.CustomerPhone
	m.InvoiceFullName = o.InvoiceFullName
	m.InvoiceAddress = o.InvoiceAddress
	m.InvoiceCity = o.InvoiceCity
	m.InvoiceDistrict = o.InvoiceDistrict
	m.InvoicePostalCode = o.InvoicePostalCode
	m.ShipmentAddress = o.ShipmentAddress
	m.ShipmentCity = o.ShipmentCity
	m.ShipmentDistrict = o.ShipmentDistrict
	m.ShipmentPostalCode = o.ShipmentPostalCode
	m.ShipmentAddressType = o.ShipmentAddressType
	m.GrossAmount = o.GrossAmount
	m.TotalDiscount = o.TotalDiscount
	m.TotalPrice = o.TotalPrice
	m.Currency = o.Currency
	m.CargoProvider = o.CargoProvider
	m.CargoTrackingNumber = o.CargoTrackingNumber
	m.CargoTrackingLink = o.CargoTrackingLink
	m.CargoSenderNumber = o.CargoSenderNumber
	m.DeliveryType = o.DeliveryType
	m.EstimatedDeliveryStart = o.EstimatedDeliveryStart
	m.EstimatedDeliveryEnd = o.EstimatedDeliveryEnd
	m.OrderDate = o.OrderDate
	m.RemoteLastModified = o.RemoteLastModified
	m.SyncedAt = o.SyncedAt

	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i, l := range o.Lines {
		m.Lines[i].FromDomain(l, o.GetID())
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() trade.OrderLine {
	return trade.OrderLine{
		ID:           m.ID,
		OrderID:      m.OrderID,
		RemoteLineID: m.RemoteLineID,
		Barcode:      m.Barcode,
		ProductName:  m.ProductName,
		MerchantSKU:  m.MerchantSKU,
		Quantity:     m.Quantity,
		Price:        m.Price,
		Discount:     m.Discount,
		VatRate:      m.VatRate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderLine
func (m *OrderLineModel) FromDomain(l trade.OrderLine, orderID uuid.UUID) {
	m.ID = l.ID
	m.OrderID = orderID
	m.RemoteLineID = l.RemoteLineID
	m.Barcode = l.Barcode
	m.ProductName = l.ProductName
	m.MerchantSKU = l.MerchantSKU
	m.Quantity = l.Quantity
	m.Price = l.Price
	m.Discount = l.Discount
	m.VatRate = l.VatRate
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}
