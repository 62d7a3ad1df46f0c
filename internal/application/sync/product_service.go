package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/catalog"
	"github.com/stockie/backend/internal/domain/integration"
)

// ProductSyncService imports the seller's marketplace listings into the
// product mirror and refreshes the listing cache on catalog products that
// share a barcode.
type ProductSyncService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	products    integration.ProductMirrorRepository
	catalog     catalog.ProductRepository
	guard       JobGuard
	pager       *Pager
	clock       Clock
	logger      *zap.Logger
}

// NewProductSyncService creates a new ProductSyncService
func NewProductSyncService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	products integration.ProductMirrorRepository,
	catalogRepo catalog.ProductRepository,
	guard JobGuard,
	pager *Pager,
	clock Clock,
	logger *zap.Logger,
) *ProductSyncService {
	return &ProductSyncService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		products:    products,
		catalog:     catalogRepo,
		guard:       guard,
		pager:       pager,
		clock:       clock,
		logger:      logger,
	}
}

// Run imports all product listing pages until exhaustion
func (s *ProductSyncService) Run(ctx context.Context) (*Report, error) {
	release, err := s.guard.Acquire(ctx, s.platform, JobProducts)
	if err != nil {
		return nil, err
	}
	defer release()

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	report := newReport(JobProducts, s.platform, s.clock.Now())
	var cachedTotal int64

	stats, err := s.pager.Run(ctx, "products", func(ctx context.Context, page, size int) (int, error) {
		productPage, err := s.marketplace.FetchProductPage(ctx, cred, integration.PageRequest{Page: page, Size: size})
		if err != nil {
			return 0, err
		}
		if len(productPage.Items) == 0 {
			return 0, nil
		}

		mirrors := make([]integration.ProductMirror, 0, len(productPage.Items))
		for _, item := range productPage.Items {
			mirror, err := s.toMirror(item)
			if err != nil {
				report.Skipped++
				report.Failures = append(report.Failures, ItemFailure{
					Key:    item.Barcode,
					Reason: err.Error(),
				})
				continue
			}
			mirrors = append(mirrors, mirror)
		}

		if len(mirrors) > 0 {
			if err := s.products.UpsertBatch(ctx, mirrors); err != nil {
				return 0, fmt.Errorf("writing product page %d: %w", page, err)
			}
			report.Applied += len(mirrors)
		}

		cached, err := s.catalog.CacheListings(ctx, s.platform, productPage.Items)
		if err != nil {
			s.logger.Warn("Failed to refresh catalog listing cache",
				zap.Int("page", page),
				zap.Error(err),
			)
		} else {
			cachedTotal += cached
		}

		return len(productPage.Items), nil
	})

	report.Pages = stats.Pages
	report.Fetched = stats.Items
	if err != nil {
		return report.finish(s.clock.Now()), err
	}

	s.logger.Info("Product sync completed",
		zap.String("platform", s.platform.String()),
		zap.Int("pages", report.Pages),
		zap.Int("listings", report.Applied),
		zap.Int64("catalog_cached", cachedTotal),
	)
	return report.finish(s.clock.Now()), nil
}

func (s *ProductSyncService) toMirror(item integration.RemoteProduct) (integration.ProductMirror, error) {
	if item.Barcode == "" {
		return integration.ProductMirror{}, integration.ErrMirrorInvalidRecord
	}
	images, err := json.Marshal(item.ImageURLs)
	if err != nil {
		return integration.ProductMirror{}, fmt.Errorf("encoding image URLs for %s: %w", item.Barcode, err)
	}
	return integration.ProductMirror{
		Platform:          s.platform,
		RemoteID:          item.RemoteID,
		Barcode:           item.Barcode,
		Title:             item.Title,
		Brand:             item.Brand,
		BrandID:           item.BrandID,
		CategoryName:      item.CategoryName,
		CategoryID:        item.CategoryID,
		StockCode:         item.StockCode,
		Quantity:          item.Quantity,
		ListPrice:         item.ListPrice,
		SalePrice:         item.SalePrice,
		VatRate:           item.VatRate,
		DimensionalWeight: item.DimensionalWeight,
		Description:       item.Description,
		ImageURLs:         string(images),
		Approved:          item.Approved,
		OnSale:            item.OnSale,
		SyncedAt:          s.clock.Now(),
	}, nil
}
