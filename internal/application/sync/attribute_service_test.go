package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

func attributeFixtures() (*memCategoryRepo, *fakeMarketplace) {
	categories := newMemCategoryRepo()
	categories.rows[111] = integration.CategoryMirror{Platform: integration.PlatformCodeTrendyol, RemoteID: 111, Leaf: true}
	categories.rows[112] = integration.CategoryMirror{Platform: integration.PlatformCodeTrendyol, RemoteID: 112, Leaf: true}
	categories.rows[11] = integration.CategoryMirror{Platform: integration.PlatformCodeTrendyol, RemoteID: 11, Leaf: false}

	market := newFakeMarketplace()
	market.attributes = map[int64][]integration.RemoteCategoryAttribute{
		111: {
			{CategoryID: 111, AttributeID: 338, Name: "Renk", Required: true},
			{CategoryID: 111, AttributeID: 343, Name: "Beden", Varianter: true},
		},
		112: {
			// Attribute ID repeats across categories; the composite key
			// keeps the two definitions apart.
			{CategoryID: 112, AttributeID: 338, Name: "Renk"},
		},
	}
	market.attributeErr = map[int64]error{}
	return categories, market
}

func newAttributeService(categories *memCategoryRepo, attributes *memAttributeRepo, market *fakeMarketplace, clock *fakeClock) *AttributeSyncService {
	return NewAttributeSyncService(
		integration.PlatformCodeTrendyol,
		activeCredentials(),
		market,
		categories,
		attributes,
		openGuard{},
		testPager(clock),
		clock,
		zap.NewNop(),
	)
}

func TestAttributeSyncService_CompositeKey(t *testing.T) {
	categories, market := attributeFixtures()
	attributes := newMemAttributeRepo()
	svc := newAttributeService(categories, attributes, market, newFakeClock())

	report, err := svc.Run(context.Background(), SkipItem)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Applied)
	assert.Len(t, attributes.rows, 3)

	a111, err := attributes.Find(context.Background(), integration.PlatformCodeTrendyol, 111, 338)
	require.NoError(t, err)
	assert.True(t, a111.Required)

	a112, err := attributes.Find(context.Background(), integration.PlatformCodeTrendyol, 112, 338)
	require.NoError(t, err)
	assert.False(t, a112.Required)

	t.Run("Rerun converges", func(t *testing.T) {
		report, err := svc.Run(context.Background(), SkipItem)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Applied)
		assert.Len(t, attributes.rows, 3)
	})
}

func TestAttributeSyncService_SkipPolicy(t *testing.T) {
	categories, market := attributeFixtures()
	market.attributeErr[111] = integration.ErrMarketplaceUnavailable
	attributes := newMemAttributeRepo()
	svc := newAttributeService(categories, attributes, market, newFakeClock())

	report, err := svc.Run(context.Background(), SkipItem)
	require.NoError(t, err)
	// Category 111 is skipped after its retries run out, category 112
	// still imports.
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "category:111", report.Failures[0].Key)
	assert.Equal(t, 3, market.attributeCalls[111])
}

func TestAttributeSyncService_AbortPolicy(t *testing.T) {
	categories, market := attributeFixtures()
	market.attributeErr[111] = integration.ErrMarketplaceUnavailable
	market.attributeErr[112] = integration.ErrMarketplaceUnavailable
	attributes := newMemAttributeRepo()
	svc := newAttributeService(categories, attributes, market, newFakeClock())

	_, err := svc.Run(context.Background(), AbortBatch)
	assert.ErrorIs(t, err, integration.ErrFetchAborted)
	assert.Empty(t, attributes.rows)
}

func TestAttributeSyncService_StorageFailureSkips(t *testing.T) {
	categories, market := attributeFixtures()
	attributes := newMemAttributeRepo()
	attributes.err = assert.AnError
	svc := newAttributeService(categories, attributes, market, newFakeClock())

	report, err := svc.Run(context.Background(), SkipItem)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Applied)
	assert.Equal(t, 3, report.Skipped)
}

func TestAttributeSyncService_RetriesTransientCategoryFetch(t *testing.T) {
	categories, market := attributeFixtures()
	market.attributeErrs[111] = []error{integration.ErrMarketplaceUnavailable}
	attributes := newMemAttributeRepo()
	clock := newFakeClock()
	svc := newAttributeService(categories, attributes, market, clock)

	report, err := svc.Run(context.Background(), SkipItem)
	require.NoError(t, err)
	// The failed call is retried in place, so nothing is skipped.
	assert.Equal(t, 3, report.Applied)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 2, market.attributeCalls[111])
	assert.Equal(t, []time.Duration{10 * time.Second}, clock.sleepLog())
}

func TestAttributeSyncService_PausesBetweenCategoryBlocks(t *testing.T) {
	categories := newMemCategoryRepo()
	for id := int64(1); id <= 12; id++ {
		categories.rows[id] = integration.CategoryMirror{
			Platform: integration.PlatformCodeTrendyol,
			RemoteID: id,
			Leaf:     true,
		}
	}
	market := newFakeMarketplace()
	market.attributes = map[int64][]integration.RemoteCategoryAttribute{}
	attributes := newMemAttributeRepo()
	clock := newFakeClock()
	svc := newAttributeService(categories, attributes, market, clock)

	_, err := svc.Run(context.Background(), SkipItem)
	require.NoError(t, err)
	// Twelve categories cross one block boundary, so exactly one pause.
	assert.Equal(t, []time.Duration{5 * time.Second}, clock.sleepLog())
}
