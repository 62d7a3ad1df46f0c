package marketplace

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockie/backend/internal/domain/integration"
)

// Wire types for the Trendyol supplier API. Field names mirror the JSON
// payloads; conversion to the domain value objects happens here so the
// rest of the system never sees Trendyol's shapes.

// epochMillis converts a Trendyol millisecond timestamp to time.Time
func epochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// epochMillisPtr converts an optional millisecond timestamp
func epochMillisPtr(ms int64) *time.Time {
	if ms == 0 {
		return nil
	}
	t := epochMillis(ms)
	return &t
}

// ---------------------------------------------------------------------------
// Brands
// ---------------------------------------------------------------------------

type trendyolBrandPage struct {
	Brands []trendyolBrand `json:"brands"`
}

type trendyolBrand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p *trendyolBrandPage) toDomain() *integration.BrandPage {
	items := make([]integration.RemoteBrand, 0, len(p.Brands))
	for _, b := range p.Brands {
		items = append(items, integration.RemoteBrand{RemoteID: b.ID, Name: b.Name})
	}
	return &integration.BrandPage{Items: items}
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

type trendyolCategoryTree struct {
	Categories []trendyolCategory `json:"categories"`
}

type trendyolCategory struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	ParentID      *int64             `json:"parentId"`
	SubCategories []trendyolCategory `json:"subCategories"`
}

func (t *trendyolCategoryTree) toDomain() []integration.RemoteCategoryNode {
	return convertCategories(t.Categories)
}

func convertCategories(src []trendyolCategory) []integration.RemoteCategoryNode {
	out := make([]integration.RemoteCategoryNode, 0, len(src))
	for _, c := range src {
		out = append(out, integration.RemoteCategoryNode{
			RemoteID:      c.ID,
			Name:          c.Name,
			ParentID:      c.ParentID,
			SubCategories: convertCategories(c.SubCategories),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Category Attributes
// ---------------------------------------------------------------------------

type trendyolAttributeResponse struct {
	ID                 int64                       `json:"id"`
	Name               string                      `json:"name"`
	CategoryAttributes []trendyolCategoryAttribute `json:"categoryAttributes"`
}

type trendyolCategoryAttribute struct {
	CategoryID      int64                    `json:"categoryId"`
	Attribute       trendyolAttributeRef     `json:"attribute"`
	Required        bool                     `json:"required"`
	AllowCustom     bool                     `json:"allowCustom"`
	Varianter       bool                     `json:"varianter"`
	Slicer          bool                     `json:"slicer"`
	AttributeValues []trendyolAttributeValue `json:"attributeValues"`
}

type trendyolAttributeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type trendyolAttributeValue struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r *trendyolAttributeResponse) toDomain() []integration.RemoteCategoryAttribute {
	out := make([]integration.RemoteCategoryAttribute, 0, len(r.CategoryAttributes))
	for _, a := range r.CategoryAttributes {
		values := make([]integration.RemoteAttributeValue, 0, len(a.AttributeValues))
		for _, v := range a.AttributeValues {
			values = append(values, integration.RemoteAttributeValue{RemoteID: v.ID, Name: v.Name})
		}
		categoryID := a.CategoryID
		if categoryID == 0 {
			categoryID = r.ID
		}
		out = append(out, integration.RemoteCategoryAttribute{
			CategoryID:    categoryID,
			AttributeID:   a.Attribute.ID,
			Name:          a.Attribute.Name,
			Required:      a.Required,
			AllowCustom:   a.AllowCustom,
			Varianter:     a.Varianter,
			Slicer:        a.Slicer,
			AllowedValues: values,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

type trendyolAddressResponse struct {
	SupplierAddresses []trendyolAddress `json:"supplierAddresses"`
}

type trendyolAddress struct {
	ID                 int64  `json:"id"`
	AddressType        string `json:"addressType"`
	Country            string `json:"country"`
	City               string `json:"city"`
	District           string `json:"district"`
	PostCode           string `json:"postCode"`
	FullAddress        string `json:"fullAddress"`
	IsDefault          bool   `json:"isDefault"`
	IsReturningAddress bool   `json:"isReturningAddress"`
}

func (r *trendyolAddressResponse) toDomain() []integration.RemoteAddress {
	out := make([]integration.RemoteAddress, 0, len(r.SupplierAddresses))
	for _, a := range r.SupplierAddresses {
		out = append(out, integration.RemoteAddress{
			RemoteID:           a.ID,
			AddressType:        a.AddressType,
			Country:            a.Country,
			City:               a.City,
			District:           a.District,
			PostCode:           a.PostCode,
			FullAddress:        a.FullAddress,
			IsDefault:          a.IsDefault,
			IsReturningAddress: a.IsReturningAddress,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type trendyolProductPage struct {
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	Content       []trendyolProduct `json:"content"`
}

type trendyolProduct struct {
	ID                string                 `json:"id"`
	Barcode           string                 `json:"barcode"`
	Title             string                 `json:"title"`
	Brand             string                 `json:"brand"`
	BrandID           int64                  `json:"brandId"`
	CategoryName      string                 `json:"categoryName"`
	PimCategoryID     int64                  `json:"pimCategoryId"`
	StockCode         string                 `json:"stockCode"`
	Quantity          int                    `json:"quantity"`
	ListPrice         decimal.Decimal        `json:"listPrice"`
	SalePrice         decimal.Decimal        `json:"salePrice"`
	VatRate           int                    `json:"vatRate"`
	DimensionalWeight decimal.Decimal        `json:"dimensionalWeight"`
	Description       string                 `json:"description"`
	Images            []trendyolProductImage `json:"images"`
	Approved          bool                   `json:"approved"`
	OnSale            bool                   `json:"onSale"`
}

type trendyolProductImage struct {
	URL string `json:"url"`
}

func (p *trendyolProductPage) toDomain() *integration.ProductPage {
	items := make([]integration.RemoteProduct, 0, len(p.Content))
	for _, c := range p.Content {
		urls := make([]string, 0, len(c.Images))
		for _, img := range c.Images {
			urls = append(urls, img.URL)
		}
		items = append(items, integration.RemoteProduct{
			RemoteID:          c.ID,
			Barcode:           c.Barcode,
			Title:             c.Title,
			Brand:             c.Brand,
			BrandID:           c.BrandID,
			CategoryName:      c.CategoryName,
			CategoryID:        c.PimCategoryID,
			StockCode:         c.StockCode,
			Quantity:          c.Quantity,
			ListPrice:         c.ListPrice,
			SalePrice:         c.SalePrice,
			VatRate:           c.VatRate,
			DimensionalWeight: c.DimensionalWeight,
			Description:       c.Description,
			ImageURLs:         urls,
			Approved:          c.Approved,
			OnSale:            c.OnSale,
		})
	}
	return &integration.ProductPage{Items: items, TotalElements: p.TotalElements}
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type trendyolOrderPage struct {
	TotalElements int64                     `json:"totalElements"`
	TotalPages    int                       `json:"totalPages"`
	Page          int                       `json:"page"`
	Size          int                       `json:"size"`
	Content       []trendyolShipmentPackage `json:"content"`
}

type trendyolShipmentPackage struct {
	ID                         int64               `json:"id"`
	OrderNumber                string              `json:"orderNumber"`
	Status                     string              `json:"status"`
	CustomerFirstName          string              `json:"customerFirstName"`
	CustomerLastName           string              `json:"customerLastName"`
	CustomerEmail              string              `json:"customerEmail"`
	CustomerPhone              string              `json:"customerPhone"`
	InvoiceAddress             trendyolOrderAddr   `json:"invoiceAddress"`
	ShipmentAddress            trendyolOrderAddr   `json:"shipmentAddress"`
	GrossAmount                decimal.Decimal     `json:"grossAmount"`
	TotalDiscount              decimal.Decimal     `json:"totalDiscount"`
	TotalPrice                 decimal.Decimal     `json:"totalPrice"`
	CurrencyCode               string              `json:"currencyCode"`
	CargoProviderName          string              `json:"cargoProviderName"`
	CargoTrackingNumber        string              `json:"cargoTrackingNumber"`
	CargoTrackingLink          string              `json:"cargoTrackingLink"`
	CargoSenderNumber          string              `json:"cargoSenderNumber"`
	DeliveryType               string              `json:"deliveryType"`
	EstimatedDeliveryStartDate int64               `json:"estimatedDeliveryStartDate"`
	EstimatedDeliveryEndDate   int64               `json:"estimatedDeliveryEndDate"`
	OrderDate                  int64               `json:"orderDate"`
	LastModifiedDate           int64               `json:"lastModifiedDate"`
	Lines                      []trendyolOrderLine `json:"lines"`
}

type trendyolOrderAddr struct {
	FullName    string `json:"fullName"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	District    string `json:"district"`
	PostalCode  string `json:"postalCode"`
	AddressType string `json:"addressType"`
}

// addressText returns the street address. The gateway sends both the
// pre-joined form and the split lines; the pre-joined form wins when
// present.
func (a *trendyolOrderAddr) addressText() string {
	if a.FullAddress != "" {
		return a.FullAddress
	}
	if a.Address2 != "" {
		return a.Address1 + " " + a.Address2
	}
	return a.Address1
}

type trendyolOrderLine struct {
	ID          int64           `json:"id"`
	Barcode     string          `json:"barcode"`
	ProductName string          `json:"productName"`
	MerchantSKU string          `json:"merchantSku"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	VatRate     int             `json:"vatBaseAmount"`
}

func (p *trendyolOrderPage) toDomain() *integration.OrderPage {
	items := make([]integration.RemoteOrder, 0, len(p.Content))
	for _, pkg := range p.Content {
		lines := make([]integration.RemoteOrderLine, 0, len(pkg.Lines))
		for _, l := range pkg.Lines {
			lines = append(lines, integration.RemoteOrderLine{
				LineID:      l.ID,
				Barcode:     l.Barcode,
				ProductName: l.ProductName,
				MerchantSKU: l.MerchantSKU,
				Quantity:    l.Quantity,
				Price:       l.Price,
				Discount:    l.Discount,
				VatRate:     l.VatRate,
			})
		}
		items = append(items, integration.RemoteOrder{
			OrderNumber:            pkg.OrderNumber,
			ShipmentPackageID:      pkg.ID,
			Status:                 integration.RemoteOrderStatus(pkg.Status),
			CustomerFirstName:      pkg.CustomerFirstName,
			CustomerLastName:       pkg.CustomerLastName,
			CustomerEmail:          pkg.CustomerEmail,
			CustomerPhone:          pkg.CustomerPhone,
			InvoiceFullName:        pkg.InvoiceAddress.FullName,
			InvoiceAddress:         pkg.InvoiceAddress.addressText(),
			InvoiceCity:            pkg.InvoiceAddress.City,
			InvoiceDistrict:        pkg.InvoiceAddress.District,
			InvoicePostalCode:      pkg.InvoiceAddress.PostalCode,
			ShipmentAddress:        pkg.ShipmentAddress.addressText(),
			ShipmentCity:           pkg.ShipmentAddress.City,
			ShipmentDistrict:       pkg.ShipmentAddress.District,
			ShipmentPostalCode:     pkg.ShipmentAddress.PostalCode,
			ShipmentAddressType:    pkg.ShipmentAddress.AddressType,
			GrossAmount:            pkg.GrossAmount,
			TotalDiscount:          pkg.TotalDiscount,
			TotalPrice:             pkg.TotalPrice,
			Currency:               pkg.CurrencyCode,
			CargoProvider:          pkg.CargoProviderName,
			CargoTrackingNumber:    pkg.CargoTrackingNumber,
			CargoTrackingLink:      pkg.CargoTrackingLink,
			CargoSenderNumber:      pkg.CargoSenderNumber,
			DeliveryType:           pkg.DeliveryType,
			EstimatedDeliveryStart: epochMillisPtr(pkg.EstimatedDeliveryStartDate),
			EstimatedDeliveryEnd:   epochMillisPtr(pkg.EstimatedDeliveryEndDate),
			OrderDate:              epochMillis(pkg.OrderDate),
			LastModifiedDate:       epochMillis(pkg.LastModifiedDate),
			Lines:                  lines,
		})
	}
	return &integration.OrderPage{Items: items, TotalElements: p.TotalElements}
}

// ---------------------------------------------------------------------------
// Mutation Payloads
// ---------------------------------------------------------------------------

type trendyolStatusUpdateRequest struct {
	Lines  []trendyolStatusUpdateLine `json:"lines"`
	Params map[string]string          `json:"params"`
	Status string                     `json:"status"`
}

type trendyolStatusUpdateLine struct {
	LineID   int64 `json:"lineId"`
	Quantity int   `json:"quantity"`
}

func newStatusUpdateRequest(update *integration.PackageStatusUpdate) trendyolStatusUpdateRequest {
	lines := make([]trendyolStatusUpdateLine, 0, len(update.Lines))
	for _, l := range update.Lines {
		lines = append(lines, trendyolStatusUpdateLine{LineID: l.LineID, Quantity: l.Quantity})
	}
	return trendyolStatusUpdateRequest{
		Lines:  lines,
		Params: map[string]string{},
		Status: update.Status.String(),
	}
}

type trendyolCargoProviderRequest struct {
	CargoProvider string `json:"cargoProvider"`
}
