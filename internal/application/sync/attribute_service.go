package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

// The attribute endpoint is called once per category, and the marketplace
// throttles sustained bursts of those calls. A full run pauses after every
// block of categories to stay under the limit.
const (
	attributePaceEvery = 10
	attributePause     = 5 * time.Second
)

// AttributeSyncService imports attribute definitions for every leaf
// category of the local category mirror. The marketplace exposes one
// attribute endpoint per category, so a full run issues one call per leaf;
// the error policy decides whether a failing category is skipped or ends
// the run.
type AttributeSyncService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	categories  integration.CategoryMirrorRepository
	attributes  integration.CategoryAttributeMirrorRepository
	guard       JobGuard
	pager       *Pager
	clock       Clock
	logger      *zap.Logger
}

// NewAttributeSyncService creates a new AttributeSyncService
func NewAttributeSyncService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	categories integration.CategoryMirrorRepository,
	attributes integration.CategoryAttributeMirrorRepository,
	guard JobGuard,
	pager *Pager,
	clock Clock,
	logger *zap.Logger,
) *AttributeSyncService {
	return &AttributeSyncService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		categories:  categories,
		attributes:  attributes,
		guard:       guard,
		pager:       pager,
		clock:       clock,
		logger:      logger,
	}
}

// Run imports attributes for all leaf categories. Attribute records are
// written one at a time under the given policy; a single bad record does
// not have to cost the whole category.
func (s *AttributeSyncService) Run(ctx context.Context, policy ErrorPolicy) (*Report, error) {
	if !policy.IsValid() {
		policy = SkipItem
	}

	release, err := s.guard.Acquire(ctx, s.platform, JobCategoryAttributes)
	if err != nil {
		return nil, err
	}
	defer release()

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	report := newReport(JobCategoryAttributes, s.platform, s.clock.Now())

	leaves, err := s.categories.FindLeaves(ctx, s.platform)
	if err != nil {
		return report.finish(s.clock.Now()), fmt.Errorf("loading leaf categories: %w", err)
	}

	for i, leaf := range leaves {
		if err := ctx.Err(); err != nil {
			return report.finish(s.clock.Now()), err
		}

		if i > 0 && i%attributePaceEvery == 0 {
			if err := s.clock.Sleep(ctx, attributePause); err != nil {
				return report.finish(s.clock.Now()), err
			}
		}

		var remote []integration.RemoteCategoryAttribute
		err := s.pager.Retry(ctx, fmt.Sprintf("attributes for category %d", leaf.RemoteID), func(ctx context.Context) error {
			var fetchErr error
			remote, fetchErr = s.marketplace.FetchCategoryAttributes(ctx, cred, leaf.RemoteID)
			return fetchErr
		})
		if err != nil {
			if policy == AbortBatch {
				return report.finish(s.clock.Now()), err
			}
			report.Skipped++
			report.Failures = append(report.Failures, ItemFailure{
				Key:    fmt.Sprintf("category:%d", leaf.RemoteID),
				Reason: err.Error(),
			})
			s.logger.Warn("Skipped category during attribute sync",
				zap.Int64("category_id", leaf.RemoteID),
				zap.Error(err),
			)
			continue
		}

		report.Fetched += len(remote)

		mirrors, err := s.toMirrors(remote)
		if err != nil {
			if policy == AbortBatch {
				return report.finish(s.clock.Now()), err
			}
			report.Skipped++
			continue
		}

		batch, err := ReconcileBatch(mirrors, policy, s.logger,
			func(m integration.CategoryAttributeMirror) string {
				return fmt.Sprintf("%d/%d", m.CategoryID, m.AttributeID)
			},
			func(m integration.CategoryAttributeMirror) error {
				return s.attributes.Upsert(ctx, &m)
			},
		)
		report.addBatch(batch)
		if err != nil {
			return report.finish(s.clock.Now()),
				fmt.Errorf("writing attributes for category %d: %w", leaf.RemoteID, err)
		}
	}

	s.logger.Info("Attribute sync completed",
		zap.String("platform", s.platform.String()),
		zap.Int("categories", len(leaves)),
		zap.Int("attributes", report.Applied),
		zap.Int("skipped", report.Skipped),
	)
	return report.finish(s.clock.Now()), nil
}

func (s *AttributeSyncService) toMirrors(remote []integration.RemoteCategoryAttribute) ([]integration.CategoryAttributeMirror, error) {
	now := s.clock.Now()
	mirrors := make([]integration.CategoryAttributeMirror, 0, len(remote))
	for _, attr := range remote {
		values, err := json.Marshal(attr.AllowedValues)
		if err != nil {
			return nil, fmt.Errorf("encoding allowed values for attribute %d: %w", attr.AttributeID, err)
		}
		mirrors = append(mirrors, integration.CategoryAttributeMirror{
			Platform:      s.platform,
			CategoryID:    attr.CategoryID,
			AttributeID:   attr.AttributeID,
			Name:          attr.Name,
			Required:      attr.Required,
			AllowCustom:   attr.AllowCustom,
			Varianter:     attr.Varianter,
			Slicer:        attr.Slicer,
			AllowedValues: string(values),
			SyncedAt:      now,
		})
	}
	return mirrors, nil
}
