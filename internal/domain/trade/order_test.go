package trade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockie/backend/internal/domain/integration"
)

func remoteOrderFixture() *integration.RemoteOrder {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	return &integration.RemoteOrder{
		OrderNumber:         "80421765",
		ShipmentPackageID:   7780123,
		Status:              integration.RemoteOrderStatusCreated,
		CustomerFirstName:   "Ayşe",
		CustomerLastName:    "Yılmaz",
		CustomerEmail:       "relay+80421765@marketplace.example",
		CustomerPhone:       "05551234567",
		InvoiceFullName:     "Ayşe Yılmaz",
		InvoiceAddress:      "Bağdat Cad. No:1",
		InvoiceCity:         "İstanbul",
		InvoiceDistrict:     "Kadıköy",
		InvoicePostalCode:   "34710",
		ShipmentAddress:     "Bağdat Cad. No:1",
		ShipmentCity:        "İstanbul",
		ShipmentDistrict:    "Kadıköy",
		ShipmentPostalCode:  "34710",
		ShipmentAddressType: "Shipment",
		GrossAmount:         decimal.NewFromInt(450),
		TotalDiscount:       decimal.NewFromInt(50),
		TotalPrice:          decimal.NewFromInt(400),
		Currency:            "TRY",
		CargoProvider:       "YKMP",
		CargoTrackingNumber: "725012345678",
		OrderDate:           start.Add(-24 * time.Hour),
		LastModifiedDate:    start,
		Lines: []integration.RemoteOrderLine{
			{LineID: 901, Barcode: "8681234567890", ProductName: "Pamuk Tişört", MerchantSKU: "TS-001", Quantity: 2, Price: decimal.NewFromInt(200)},
		},
		EstimatedDeliveryStart: &start,
		EstimatedDeliveryEnd:   &end,
	}
}

func TestNewOrderFromRemote(t *testing.T) {
	t.Run("Builds aggregate from remote package", func(t *testing.T) {
		remote := remoteOrderFixture()
		order, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remote)
		require.NoError(t, err)

		assert.Equal(t, "80421765", order.OrderNumber)
		assert.Equal(t, int64(7780123), order.ShipmentPackageID)
		assert.Equal(t, integration.LocalOrderStatusNew, order.Status)
		assert.Equal(t, "Created", order.RemoteStatus)
		assert.Equal(t, "Ayşe Yılmaz", order.CustomerName())
		assert.Equal(t, "05551234567", order.CustomerPhone)
		assert.Equal(t, "34710", order.ShipmentPostalCode)
		assert.Equal(t, "Shipment", order.ShipmentAddressType)
		assert.Equal(t, "Ayşe Yılmaz", order.InvoiceFullName)
		assert.Equal(t, "34710", order.InvoicePostalCode)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(400)))
		require.Len(t, order.Lines, 1)
		assert.Equal(t, int64(901), order.Lines[0].RemoteLineID)
		assert.Equal(t, order.ID, order.Lines[0].OrderID)
	})

	t.Run("Rejects nil remote", func(t *testing.T) {
		_, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, nil)
		assert.Error(t, err)
	})

	t.Run("Rejects missing order number", func(t *testing.T) {
		remote := remoteOrderFixture()
		remote.OrderNumber = ""
		_, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remote)
		assert.Error(t, err)
	})

	t.Run("Rejects missing package ID", func(t *testing.T) {
		remote := remoteOrderFixture()
		remote.ShipmentPackageID = 0
		_, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remote)
		assert.Error(t, err)
	})
}

func TestOrder_ApplyRemote(t *testing.T) {
	remote := remoteOrderFixture()
	order, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remote)
	require.NoError(t, err)

	t.Run("Overwrites synced fields", func(t *testing.T) {
		updated := remoteOrderFixture()
		updated.Status = integration.RemoteOrderStatusShipped
		updated.CargoTrackingNumber = "725099999999"
		updated.LastModifiedDate = remote.LastModifiedDate.Add(time.Hour)

		order.ApplyRemote(updated)

		assert.Equal(t, integration.LocalOrderStatusInTransit, order.Status)
		assert.Equal(t, "Shipped", order.RemoteStatus)
		assert.Equal(t, "725099999999", order.CargoTrackingNumber)
		assert.Equal(t, updated.LastModifiedDate, order.RemoteLastModified)
	})

	t.Run("Replaces lines instead of appending", func(t *testing.T) {
		updated := remoteOrderFixture()
		updated.Lines = append(updated.Lines, integration.RemoteOrderLine{
			LineID: 902, Barcode: "8689876543210", ProductName: "Keten Pantolon", Quantity: 1, Price: decimal.NewFromInt(250),
		})

		order.ApplyRemote(updated)
		order.ApplyRemote(updated)

		assert.Len(t, order.Lines, 2)
	})

	t.Run("Unrecognized status maps to unknown", func(t *testing.T) {
		updated := remoteOrderFixture()
		updated.Status = integration.RemoteOrderStatus("SomeFutureStatus")

		order.ApplyRemote(updated)

		assert.Equal(t, integration.LocalOrderStatusUnknown, order.Status)
		assert.Equal(t, "SomeFutureStatus", order.RemoteStatus)
	})
}

func TestOrder_MarkPreparing(t *testing.T) {
	t.Run("New order can be prepared", func(t *testing.T) {
		order, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remoteOrderFixture())
		require.NoError(t, err)
		assert.True(t, order.CanPrepare())

		require.NoError(t, order.MarkPreparing())
		assert.Equal(t, integration.LocalOrderStatusPreparing, order.Status)
		assert.Equal(t, "Picking", order.RemoteStatus)
	})

	t.Run("Shipped order cannot be prepared", func(t *testing.T) {
		remote := remoteOrderFixture()
		remote.Status = integration.RemoteOrderStatusShipped
		order, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remote)
		require.NoError(t, err)

		assert.False(t, order.CanPrepare())
		assert.Error(t, order.MarkPreparing())
	})
}

func TestOrder_StatusUpdateLines(t *testing.T) {
	remote := remoteOrderFixture()
	remote.Lines = append(remote.Lines, integration.RemoteOrderLine{
		LineID: 902, Barcode: "8689876543210", Quantity: 3, Price: decimal.NewFromInt(100),
	})
	order, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remote)
	require.NoError(t, err)

	lines := order.StatusUpdateLines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(901), lines[0].LineID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(902), lines[1].LineID)
	assert.Equal(t, 3, lines[1].Quantity)
}

func TestOrder_DisplayStatus(t *testing.T) {
	order, err := NewOrderFromRemote(integration.PlatformCodeTrendyol, remoteOrderFixture())
	require.NoError(t, err)
	assert.Equal(t, "Yeni", order.DisplayStatus())
}
