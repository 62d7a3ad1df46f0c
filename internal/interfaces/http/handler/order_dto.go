package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockie/backend/internal/domain/trade"
)

// OrderLineResponse represents one order line in API responses
type OrderLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	RemoteLineID int64           `json:"remote_line_id"`
	Barcode      string          `json:"barcode"`
	ProductName  string          `json:"product_name"`
	MerchantSKU  string          `json:"merchant_sku"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	VatRate      int             `json:"vat_rate"`
}

// OrderResponse represents a marketplace order in API responses
type OrderResponse struct {
	ID                  uuid.UUID           `json:"id"`
	Platform            string              `json:"platform"`
	OrderNumber         string              `json:"order_number"`
	ShipmentPackageID   int64               `json:"shipment_package_id"`
	Status              string              `json:"status"`
	RemoteStatus        string              `json:"remote_status"`
	CustomerFirstName   string              `json:"customer_first_name"`
	CustomerLastName    string              `json:"customer_last_name"`
	CustomerEmail       string              `json:"customer_email,omitempty"`
	CustomerPhone       string              `json:"customer_phone,omitempty"`
	InvoiceFullName     string              `json:"invoice_full_name,omitempty"`
	InvoiceAddress      string              `json:"invoice_address,omitempty"`
	InvoiceCity         string              `json:"invoice_city,omitempty"`
	InvoiceDistrict     string              `json:"invoice_district,omitempty"`
	InvoicePostalCode   string              `json:"invoice_postal_code,omitempty"`
	ShipmentAddress     string              `json:"shipment_address,omitempty"`
	ShipmentCity        string              `json:"shipment_city,omitempty"`
	ShipmentDistrict    string              `json:"shipment_district,omitempty"`
	ShipmentPostalCode  string              `json:"shipment_postal_code,omitempty"`
	ShipmentAddressType string              `json:"shipment_address_type,omitempty"`
	GrossAmount         decimal.Decimal     `json:"gross_amount"`
	TotalDiscount       decimal.Decimal     `json:"total_discount"`
	TotalPrice          decimal.Decimal     `json:"total_price"`
	Currency            string              `json:"currency"`
	CargoProvider       string              `json:"cargo_provider,omitempty"`
	CargoTrackingNumber string              `json:"cargo_tracking_number,omitempty"`
	CargoTrackingLink   string              `json:"cargo_tracking_link,omitempty"`
	DeliveryType        string              `json:"delivery_type,omitempty"`
	OrderDate           time.Time           `json:"order_date"`
	RemoteLastModified  time.Time           `json:"remote_last_modified"`
	SyncedAt            time.Time           `json:"synced_at"`
	Lines               []OrderLineResponse `json:"lines"`
}

func toOrderResponse(o *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:           l.ID,
			RemoteLineID: l.RemoteLineID,
			Barcode:      l.Barcode,
			ProductName:  l.ProductName,
			MerchantSKU:  l.MerchantSKU,
			Quantity:     l.Quantity,
			Price:        l.Price,
			Discount:     l.Discount,
			VatRate:      l.VatRate,
		})
	}

	return OrderResponse{
		ID:                  o.ID,
		Platform:            o.Platform.String(),
		OrderNumber:         o.OrderNumber,
		ShipmentPackageID:   o.ShipmentPackageID,
		Status:              string(o.Status),
		RemoteStatus:        o.RemoteStatus,
		CustomerFirstName:   o.CustomerFirstName,
		CustomerLastName:    o.CustomerLastName,
		CustomerEmail:       o.CustomerEmail,
		CustomerPhone:       o.CustomerPhone,
		InvoiceFullName:     o.InvoiceFullName,
		InvoiceAddress:      o.InvoiceAddress,
		InvoiceCity:         o.InvoiceCity,
		InvoiceDistrict:     o.InvoiceDistrict,
		InvoicePostalCode:   o.InvoicePostalCode,
		ShipmentAddress:     o.ShipmentAddress,
		ShipmentCity:        o.ShipmentCity,
		ShipmentDistrict:    o.ShipmentDistrict,
		ShipmentPostalCode:  o.ShipmentPostalCode,
		ShipmentAddressType: o.ShipmentAddressType,
		GrossAmount:         o.GrossAmount,
		TotalDiscount:       o.TotalDiscount,
		TotalPrice:          o.TotalPrice,
		Currency:            o.Currency,
		CargoProvider:       o.CargoProvider,
		CargoTrackingNumber: o.CargoTrackingNumber,
		CargoTrackingLink:   o.CargoTrackingLink,
		DeliveryType:        o.DeliveryType,
		OrderDate:           o.OrderDate,
		RemoteLastModified:  o.RemoteLastModified,
		SyncedAt:            o.SyncedAt,
		Lines:               lines,
	}
}

func toOrderResponses(orders []*trade.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
