package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

// BrandSyncService imports the marketplace brand listing into the local
// brand mirror. Each page is written as one bulk upsert; a failed write
// fails the page and goes through the pager's retry.
type BrandSyncService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	brands      integration.BrandMirrorRepository
	guard       JobGuard
	pager       *Pager
	clock       Clock
	logger      *zap.Logger
}

// NewBrandSyncService creates a new BrandSyncService
func NewBrandSyncService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	brands integration.BrandMirrorRepository,
	guard JobGuard,
	pager *Pager,
	clock Clock,
	logger *zap.Logger,
) *BrandSyncService {
	return &BrandSyncService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		brands:      brands,
		guard:       guard,
		pager:       pager,
		clock:       clock,
		logger:      logger,
	}
}

// Run imports all brand pages until exhaustion
func (s *BrandSyncService) Run(ctx context.Context) (*Report, error) {
	release, err := s.guard.Acquire(ctx, s.platform, JobBrands)
	if err != nil {
		return nil, err
	}
	defer release()

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	report := newReport(JobBrands, s.platform, s.clock.Now())

	stats, err := s.pager.Run(ctx, "brands", func(ctx context.Context, page, size int) (int, error) {
		brandPage, err := s.marketplace.FetchBrandPage(ctx, cred, integration.PageRequest{Page: page, Size: size})
		if err != nil {
			return 0, err
		}
		if len(brandPage.Items) == 0 {
			return 0, nil
		}

		now := s.clock.Now()
		mirrors := make([]integration.BrandMirror, 0, len(brandPage.Items))
		for _, item := range brandPage.Items {
			mirrors = append(mirrors, integration.BrandMirror{
				Platform: s.platform,
				RemoteID: item.RemoteID,
				Name:     item.Name,
				SyncedAt: now,
			})
		}

		if err := s.brands.UpsertBatch(ctx, mirrors); err != nil {
			return 0, fmt.Errorf("writing brand page %d: %w", page, err)
		}

		report.Applied += len(mirrors)
		return len(brandPage.Items), nil
	})

	report.Pages = stats.Pages
	report.Fetched = stats.Items
	if err != nil {
		s.logger.Error("Brand sync failed",
			zap.String("platform", s.platform.String()),
			zap.Int("pages", report.Pages),
			zap.Int("applied", report.Applied),
			zap.Error(err),
		)
		return report.finish(s.clock.Now()), err
	}

	s.logger.Info("Brand sync completed",
		zap.String("platform", s.platform.String()),
		zap.Int("pages", report.Pages),
		zap.Int("brands", report.Applied),
	)
	return report.finish(s.clock.Now()), nil
}
