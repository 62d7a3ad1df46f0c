package sync

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
)

func remotePackage(orderNumber string, packageID int64, status integration.RemoteOrderStatus) integration.RemoteOrder {
	return integration.RemoteOrder{
		OrderNumber:       orderNumber,
		ShipmentPackageID: packageID,
		Status:            status,
		TotalPrice:        decimal.NewFromInt(100),
		Currency:          "TRY",
		OrderDate:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		LastModifiedDate:  time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Lines: []integration.RemoteOrderLine{
			{LineID: 1, Barcode: "868", Quantity: 1, Price: decimal.NewFromInt(100)},
		},
	}
}

func newOrderService(market *fakeMarketplace, repo *memOrderRepo, clock *fakeClock) *OrderSyncService {
	return NewOrderSyncService(
		integration.PlatformCodeTrendyol,
		activeCredentials(),
		market,
		repo,
		openGuard{},
		testPager(clock),
		clock,
		zap.NewNop(),
		0,
	)
}

func TestOrderSyncService_WindowAndStatuses(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.orderPages = [][]integration.RemoteOrder{
		{remotePackage("A", 1, integration.RemoteOrderStatusCreated)},
	}
	repo := newMemOrderRepo()

	_, err := newOrderService(market, repo, clock).Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, market.orderRequests)
	first := market.orderRequests[0]

	// Window is 14 days back from the job start, fixed across pages.
	assert.Equal(t, clock.Now().AddDate(0, 0, -14), first.StartDate)
	assert.Equal(t, clock.Now(), first.EndDate)
	assert.Equal(t, integration.OrderSyncStatuses, first.Statuses)
}

func TestOrderSyncService_CompositeKeyUpsert(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	// Same order number split into two shipment packages.
	market.orderPages = [][]integration.RemoteOrder{
		{
			remotePackage("80421765", 1, integration.RemoteOrderStatusCreated),
			remotePackage("80421765", 2, integration.RemoteOrderStatusShipped),
		},
	}
	repo := newMemOrderRepo()
	svc := newOrderService(market, repo, clock)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Applied)
	assert.Len(t, repo.rows, 2)

	p1, err := repo.FindByNumberAndPackage(context.Background(), integration.PlatformCodeTrendyol, "80421765", 1)
	require.NoError(t, err)
	assert.Equal(t, integration.LocalOrderStatusNew, p1.Status)

	p2, err := repo.FindByNumberAndPackage(context.Background(), integration.PlatformCodeTrendyol, "80421765", 2)
	require.NoError(t, err)
	assert.Equal(t, integration.LocalOrderStatusInTransit, p2.Status)

	t.Run("Resync updates in place without duplicating", func(t *testing.T) {
		firstID := p1.ID

		report, err := svc.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, report.Applied)
		assert.Len(t, repo.rows, 2)

		again, err := repo.FindByNumberAndPackage(context.Background(), integration.PlatformCodeTrendyol, "80421765", 1)
		require.NoError(t, err)
		assert.Equal(t, firstID, again.ID)
	})
}

func TestOrderSyncService_StatusChangeOnResync(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.orderPages = [][]integration.RemoteOrder{
		{remotePackage("A", 1, integration.RemoteOrderStatusCreated)},
	}
	repo := newMemOrderRepo()
	svc := newOrderService(market, repo, clock)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	market.orderPages[0][0].Status = integration.RemoteOrderStatusDelivered
	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	order, err := repo.FindByNumberAndPackage(context.Background(), integration.PlatformCodeTrendyol, "A", 1)
	require.NoError(t, err)
	assert.Equal(t, integration.LocalOrderStatusDelivered, order.Status)
	assert.Equal(t, "Delivered", order.RemoteStatus)
}

func TestOrderSyncService_DeduplicatesAcrossPages(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	// The same package appears on both pages, as happens when the listing
	// shifts under the fetch.
	market.orderPages = [][]integration.RemoteOrder{
		{
			remotePackage("A", 1, integration.RemoteOrderStatusCreated),
			remotePackage("B", 2, integration.RemoteOrderStatusCreated),
		},
		{
			remotePackage("B", 2, integration.RemoteOrderStatusCreated),
		},
	}
	repo := newMemOrderRepo()

	report, err := newOrderService(market, repo, clock).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Applied)
	assert.Len(t, repo.rows, 2)
}

func TestOrderSyncService_UnknownStatusDoesNotFailSync(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.orderPages = [][]integration.RemoteOrder{
		{remotePackage("A", 1, integration.RemoteOrderStatus("BrandNewState"))},
	}
	repo := newMemOrderRepo()

	report, err := newOrderService(market, repo, clock).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)

	order, err := repo.FindByNumberAndPackage(context.Background(), integration.PlatformCodeTrendyol, "A", 1)
	require.NoError(t, err)
	assert.Equal(t, integration.LocalOrderStatusUnknown, order.Status)
}

func TestOrderSyncService_FetchAbortKeepsNothingHalfApplied(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.orderPages = [][]integration.RemoteOrder{
		{
			remotePackage("A", 1, integration.RemoteOrderStatusCreated),
			remotePackage("B", 2, integration.RemoteOrderStatusCreated),
		},
	}
	market.orderErr[1] = integration.ErrMarketplaceUnavailable
	repo := newMemOrderRepo()

	_, err := newOrderService(market, repo, clock).Run(context.Background())
	require.ErrorIs(t, err, integration.ErrFetchAborted)
	// Orders are buffered until the fetch completes, so an aborted fetch
	// writes nothing.
	assert.Empty(t, repo.rows)
}

func TestOrderSyncService_SiblingPackageUntouched(t *testing.T) {
	clock := newFakeClock()
	repo := newMemOrderRepo()

	sibling := remotePackage("A", 1, integration.RemoteOrderStatusDelivered)
	existing, err := trade.NewOrderFromRemote(integration.PlatformCodeTrendyol, &sibling)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), existing))

	market := newFakeMarketplace()
	market.orderPages = [][]integration.RemoteOrder{
		{remotePackage("A", 2, integration.RemoteOrderStatusCreated)},
	}

	_, err = newOrderService(market, repo, clock).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.rows, 2)

	untouched, err := repo.FindByNumberAndPackage(context.Background(), integration.PlatformCodeTrendyol, "A", 1)
	require.NoError(t, err)
	assert.Equal(t, integration.LocalOrderStatusDelivered, untouched.Status)
}
