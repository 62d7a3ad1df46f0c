package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/shared"
)

// OrderLine represents a line item in a marketplace order
type OrderLine struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	// RemoteLineID is the line identifier on the marketplace
	RemoteLineID int64
	// Barcode is the product barcode
	Barcode string
	// ProductName is the listing title at purchase time
	ProductName string
	// MerchantSKU is the seller's stock code
	MerchantSKU string
	Quantity    int
	// Price is the unit price paid
	Price decimal.Decimal
	// Discount is the discount applied to the line
	Discount decimal.Decimal
	// VatRate is the VAT percentage
	VatRate   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order represents a marketplace order aggregate root. The marketplace
// splits one customer order into one shipment package per parcel, so the
// pair (OrderNumber, ShipmentPackageID) identifies an order record and two
// packages of the same customer order are two separate aggregates.
//
// Orders enter the system through sync jobs. Local mutations are limited to
// the status transitions the marketplace accepts; everything else is
// overwritten on the next sync.
type Order struct {
	shared.BaseAggregateRoot
	// Platform identifies the source marketplace
	Platform integration.PlatformCode
	// OrderNumber is the customer-facing order number
	OrderNumber string
	// ShipmentPackageID is the package identifier within the order
	ShipmentPackageID int64
	// Status is the local order status
	Status integration.LocalOrderStatus
	// RemoteStatus is the raw status as last reported by the marketplace
	RemoteStatus string
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
	// RemoteLastModified is when the package last changed on the marketplace
	RemoteLastModified time.Time
	// SyncedAt is when a sync job last wrote this record
	SyncedAt time.Time
	// Lines contains the order line items
	Lines []OrderLine
}

// NewOrderFromRemote builds an order aggregate from a marketplace package
func NewOrderFromRemote(platform integration.PlatformCode, remote *integration.RemoteOrder) (*Order, error) {
	if remote == nil {
		return nil, shared.NewDomainError("INVALID_REMOTE_ORDER", "Remote order cannot be nil")
	}
	if remote.OrderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if remote.ShipmentPackageID == 0 {
		return nil, shared.NewDomainError("INVALID_PACKAGE_ID", "Shipment package ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Platform:          platform,
		OrderNumber:       remote.OrderNumber,
		ShipmentPackageID: remote.ShipmentPackageID,
	}
	order.ApplyRemote(remote)

	return order, nil
}

// ApplyRemote overwrites the order's synced fields with the marketplace
// state. The identity fields (OrderNumber, ShipmentPackageID) are never
// touched; callers must only apply a remote package with matching identity.
func (o *Order) ApplyRemote(remote *integration.RemoteOrder) {
	now := time.Now()

	o.Status = integration.MapRemoteOrderStatus(remote.Status)
	o.RemoteStatus = remote.Status.String()
	o.CustomerFirstName = remote.CustomerFirstName
	o.CustomerLastName = remote.CustomerLastName
	o.CustomerEmail = remote.CustomerEmail
	o.CustomerPhone = remote.CustomerPhone
	o.InvoiceFullName = remote.InvoiceFullName
	o.InvoiceAddress = remote.InvoiceAddress
	o.InvoiceCity = remote.InvoiceCity
	o.InvoiceDistrict = remote.InvoiceDistrict
	o.InvoicePostalCode = remote.InvoicePostalCode
	o.ShipmentAddress = remote.ShipmentAddress
	o.ShipmentCity = remote.ShipmentCity
	o.ShipmentDistrict = remote.ShipmentDistrict
	o.ShipmentPostalCode = remote.ShipmentPostalCode
	o.ShipmentAddressType = remote.ShipmentAddressType
	o.GrossAmount = remote.GrossAmount
	o.TotalDiscount = remote.TotalDiscount
	o.TotalPrice = remote.TotalPrice
	o.Currency = remote.Currency
	o.CargoProvider = remote.CargoProvider
	o.CargoTrackingNumber = remote.CargoTrackingNumber
	o.CargoTrackingLink = remote.CargoTrackingLink
	o.CargoSenderNumber = remote.CargoSenderNumber
	o.DeliveryType = remote.DeliveryType
	o.EstimatedDeliveryStart = remote.EstimatedDeliveryStart
	o.EstimatedDeliveryEnd = remote.EstimatedDeliveryEnd
	o.OrderDate = remote.OrderDate
	o.RemoteLastModified = remote.LastModifiedDate
	o.SyncedAt = now
	o.UpdatedAt = now

	lines := make([]OrderLine, 0, len(remote.Lines))
	for _, rl := range remote.Lines {
		lines = append(lines, OrderLine{
			ID:           uuid.New(),
			OrderID:      o.ID,
			RemoteLineID: rl.LineID,
			Barcode:      rl.Barcode,
			ProductName:  rl.ProductName,
			MerchantSKU:  rl.MerchantSKU,
			Quantity:     rl.Quantity,
			Price:        rl.Price,
			Discount:     rl.Discount,
			VatRate:      rl.VatRate,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	o.Lines = lines
}

// MarkPreparing records that the package was confirmed for picking on the
// marketplace. Called only after the remote update succeeded.
func (o *Order) MarkPreparing() error {
	if o.Status != integration.LocalOrderStatusNew {
		return shared.NewDomainError("INVALID_STATE", "Only new orders can be moved to preparing")
	}
	o.Status = integration.LocalOrderStatusPreparing
	o.RemoteStatus = integration.RemoteOrderStatusPicking.String()
	o.UpdatedAt = time.Now()
	return nil
}

// CanPrepare returns true if the package may be confirmed for picking
func (o *Order) CanPrepare() bool {
	return o.Status == integration.LocalOrderStatusNew
}

// DisplayStatus returns the customer-facing status label
func (o *Order) DisplayStatus() string {
	return o.Status.DisplayName()
}

// CustomerName returns the buyer's full name
func (o *Order) CustomerName() string {
	if o.CustomerFirstName == "" {
		return o.CustomerLastName
	}
	if o.CustomerLastName == "" {
		return o.CustomerFirstName
	}
	return o.CustomerFirstName + " " + o.CustomerLastName
}

// StatusUpdateLines builds the line entries a package status update needs
func (o *Order) StatusUpdateLines() []integration.PackageStatusLine {
	lines := make([]integration.PackageStatusLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, integration.PackageStatusLine{
			LineID:   l.RemoteLineID,
			Quantity: l.Quantity,
		})
	}
	return lines
}
