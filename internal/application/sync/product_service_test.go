package sync

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/catalog"
	"github.com/stockie/backend/internal/domain/integration"
)

func newProductService(market *fakeMarketplace, mirrors *memProductMirrorRepo, cat *memCatalogRepo, clock *fakeClock) *ProductSyncService {
	return NewProductSyncService(
		integration.PlatformCodeTrendyol,
		activeCredentials(),
		market,
		mirrors,
		cat,
		openGuard{},
		testPager(clock),
		clock,
		zap.NewNop(),
	)
}

func TestProductSyncService_ImportsAndCaches(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.productPages = [][]integration.RemoteProduct{
		{
			{RemoteID: "r1", Barcode: "868001", Title: "Tişört", Quantity: 10, SalePrice: decimal.NewFromInt(200)},
			{RemoteID: "r2", Barcode: "868002", Title: "Pantolon", Quantity: 5, SalePrice: decimal.NewFromInt(350)},
		},
	}
	mirrors := newMemProductMirrorRepo()

	cat := newMemCatalogRepo()
	local, err := catalog.NewProduct("868001", "Tişört")
	require.NoError(t, err)
	require.NoError(t, cat.Save(context.Background(), local))

	report, err := newProductService(market, mirrors, cat, clock).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Applied)
	assert.Len(t, mirrors.rows, 2)

	// The matching catalog product picked up the listing cache; the
	// listing without a local product was ignored.
	assert.Equal(t, int64(1), cat.cached)
	cached, err := cat.FindByBarcode(context.Background(), "868001")
	require.NoError(t, err)
	assert.True(t, cached.HasListing())
	assert.Equal(t, "r1", cached.RemoteListingID)
	assert.Equal(t, 10, cached.RemoteQuantity)
}

func TestProductSyncService_SkipsListingWithoutBarcode(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.productPages = [][]integration.RemoteProduct{
		{
			{RemoteID: "r1", Barcode: "868001", Title: "Tişört"},
			{RemoteID: "r2", Barcode: "", Title: "Bozuk Kayıt"},
		},
	}
	mirrors := newMemProductMirrorRepo()

	report, err := newProductService(market, mirrors, newMemCatalogRepo(), clock).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, mirrors.rows, 1)
}
