package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

// CategorySyncService imports the marketplace category tree into the flat
// local category mirror. The remote tree arrives fully nested in one
// response; flattening walks an explicit worklist instead of recursing so
// a pathologically deep tree cannot exhaust the stack.
type CategorySyncService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	categories  integration.CategoryMirrorRepository
	guard       JobGuard
	pager       *Pager
	clock       Clock
	logger      *zap.Logger
}

// NewCategorySyncService creates a new CategorySyncService
func NewCategorySyncService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	categories integration.CategoryMirrorRepository,
	guard JobGuard,
	pager *Pager,
	clock Clock,
	logger *zap.Logger,
) *CategorySyncService {
	return &CategorySyncService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		categories:  categories,
		guard:       guard,
		pager:       pager,
		clock:       clock,
		logger:      logger,
	}
}

// Run imports the full category tree
func (s *CategorySyncService) Run(ctx context.Context) (*Report, error) {
	release, err := s.guard.Acquire(ctx, s.platform, JobCategories)
	if err != nil {
		return nil, err
	}
	defer release()

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	report := newReport(JobCategories, s.platform, s.clock.Now())

	var roots []integration.RemoteCategoryNode
	err = s.pager.Retry(ctx, "category tree", func(ctx context.Context) error {
		var fetchErr error
		roots, fetchErr = s.marketplace.FetchCategoryTree(ctx, cred)
		return fetchErr
	})
	if err != nil {
		return report.finish(s.clock.Now()), err
	}

	mirrors := FlattenCategoryTree(s.platform, roots, s.clock.Now())
	report.Fetched = len(mirrors)

	if len(mirrors) > 0 {
		if err := s.categories.UpsertBatch(ctx, mirrors); err != nil {
			return report.finish(s.clock.Now()), fmt.Errorf("writing category mirrors: %w", err)
		}
		report.Applied = len(mirrors)
	}

	total, err := s.categories.Count(ctx, s.platform)
	if err != nil {
		s.logger.Warn("Failed to count category mirrors", zap.Error(err))
	} else {
		s.logger.Info("Category sync completed",
			zap.String("platform", s.platform.String()),
			zap.Int("imported", report.Applied),
			zap.Int64("total_local", total),
		)
	}

	return report.finish(s.clock.Now()), nil
}

// FlattenCategoryTree turns the nested remote tree into flat mirror rows.
// Each row's ParentID is the immediate ancestor's remote ID, nil for roots.
func FlattenCategoryTree(platform integration.PlatformCode, roots []integration.RemoteCategoryNode, syncedAt time.Time) []integration.CategoryMirror {
	type workItem struct {
		node     integration.RemoteCategoryNode
		parentID *int64
	}

	stack := make([]workItem, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, workItem{node: roots[i]})
	}

	mirrors := make([]integration.CategoryMirror, 0, len(roots))
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		mirrors = append(mirrors, integration.CategoryMirror{
			Platform: platform,
			RemoteID: item.node.RemoteID,
			Name:     item.node.Name,
			ParentID: item.parentID,
			Leaf:     len(item.node.SubCategories) == 0,
			SyncedAt: syncedAt,
		})

		parentID := item.node.RemoteID
		children := item.node.SubCategories
		for i := len(children) - 1; i >= 0; i-- {
			id := parentID
			stack = append(stack, workItem{node: children[i], parentID: &id})
		}
	}

	return mirrors
}
