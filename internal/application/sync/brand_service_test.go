package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

func newBrandService(market *fakeMarketplace, repo *memBrandRepo, clock *fakeClock) *BrandSyncService {
	return NewBrandSyncService(
		integration.PlatformCodeTrendyol,
		activeCredentials(),
		market,
		repo,
		openGuard{},
		testPager(clock),
		clock,
		zap.NewNop(),
	)
}

func TestBrandSyncService_ImportsAllPages(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.brandPages = [][]integration.RemoteBrand{
		{{RemoteID: 1, Name: "Mavi"}, {RemoteID: 2, Name: "Koton"}},
		{{RemoteID: 3, Name: "LC Waikiki"}},
	}
	repo := newMemBrandRepo()
	svc := newBrandService(market, repo, clock)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 3, report.Applied)
	assert.Len(t, repo.rows, 3)

	t.Run("Reimport overwrites in place", func(t *testing.T) {
		market.brandPages[0][0].Name = "Mavi Jeans"

		report, err := svc.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, report.Applied)
		assert.Len(t, repo.rows, 3)

		b, err := repo.FindByRemoteID(context.Background(), integration.PlatformCodeTrendyol, 1)
		require.NoError(t, err)
		assert.Equal(t, "Mavi Jeans", b.Name)
	})
}

func TestBrandSyncService_BulkWriteFailureGoesThroughPageRetry(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.brandPages = [][]integration.RemoteBrand{
		{{RemoteID: 1, Name: "Mavi"}, {RemoteID: 2, Name: "Koton"}},
	}
	repo := newMemBrandRepo()
	repo.err = assert.AnError
	svc := newBrandService(market, repo, clock)

	_, err := svc.Run(context.Background())
	// The bulk write fails the page; the pager retries and then aborts.
	require.ErrorIs(t, err, integration.ErrFetchAborted)
	assert.Equal(t, 3, market.brandCalls[0])
	assert.Empty(t, repo.rows)
}

func TestBrandSyncService_RetainsEarlierPagesOnAbort(t *testing.T) {
	clock := newFakeClock()
	market := newFakeMarketplace()
	market.brandPages = [][]integration.RemoteBrand{
		{{RemoteID: 1, Name: "Mavi"}, {RemoteID: 2, Name: "Koton"}},
		{{RemoteID: 3, Name: "Defacto"}, {RemoteID: 4, Name: "Vakko"}},
	}
	market.brandErr[1] = integration.ErrMarketplaceUnavailable
	repo := newMemBrandRepo()
	svc := newBrandService(market, repo, clock)

	report, err := svc.Run(context.Background())
	require.ErrorIs(t, err, integration.ErrFetchAborted)
	// Page 0 was reconciled before the abort and stays.
	assert.Equal(t, 2, report.Applied)
	assert.Len(t, repo.rows, 2)
}

func TestBrandSyncService_SingleFlight(t *testing.T) {
	svc := NewBrandSyncService(
		integration.PlatformCodeTrendyol,
		activeCredentials(),
		newFakeMarketplace(),
		newMemBrandRepo(),
		closedGuard{},
		testPager(newFakeClock()),
		newFakeClock(),
		zap.NewNop(),
	)

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncAlreadyRunning)
}
