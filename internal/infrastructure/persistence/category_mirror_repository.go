package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// categoryUpsertBatchSize bounds the rows per INSERT; the full Trendyol
// tree arrives in one call and runs to several thousand nodes.
const categoryUpsertBatchSize = 500

// GormCategoryMirrorRepository implements CategoryMirrorRepository using GORM
type GormCategoryMirrorRepository struct {
	db *gorm.DB
}

// NewGormCategoryMirrorRepository creates a new GormCategoryMirrorRepository
func NewGormCategoryMirrorRepository(db *gorm.DB) *GormCategoryMirrorRepository {
	return &GormCategoryMirrorRepository{db: db}
}

// UpsertBatch inserts or updates the batch keyed by (platform, remote_id)
func (r *GormCategoryMirrorRepository) UpsertBatch(ctx context.Context, categories []integration.CategoryMirror) error {
	if len(categories) == 0 {
		return nil
	}

	rows := make([]models.CategoryMirrorModel, len(categories))
	for i, c := range categories {
		rows[i].FromDomain(c)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "parent_id", "leaf", "synced_at"}),
	}).CreateInBatches(&rows, categoryUpsertBatchSize).Error
}

// FindByRemoteID finds one category mirror
func (r *GormCategoryMirrorRepository) FindByRemoteID(ctx context.Context, platform integration.PlatformCode, remoteID int64) (*integration.CategoryMirror, error) {
	var model models.CategoryMirrorModel
	if err := r.db.WithContext(ctx).
		First(&model, "platform = ? AND remote_id = ?", platform, remoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMirrorNotFound
		}
		return nil, err
	}
	category := model.ToDomain()
	return &category, nil
}

// FindChildren finds the direct children of a category
func (r *GormCategoryMirrorRepository) FindChildren(ctx context.Context, platform integration.PlatformCode, parentID int64) ([]integration.CategoryMirror, error) {
	var rows []models.CategoryMirrorModel
	if err := r.db.WithContext(ctx).
		Where("platform = ? AND parent_id = ?", platform, parentID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategoryMirrors(rows), nil
}

// FindRoots finds the root categories of a platform
func (r *GormCategoryMirrorRepository) FindRoots(ctx context.Context, platform integration.PlatformCode) ([]integration.CategoryMirror, error) {
	var rows []models.CategoryMirrorModel
	if err := r.db.WithContext(ctx).
		Where("platform = ? AND parent_id IS NULL", platform).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategoryMirrors(rows), nil
}

// FindLeaves finds the leaf categories of a platform
func (r *GormCategoryMirrorRepository) FindLeaves(ctx context.Context, platform integration.PlatformCode) ([]integration.CategoryMirror, error) {
	var rows []models.CategoryMirrorModel
	if err := r.db.WithContext(ctx).
		Where("platform = ? AND leaf = ?", platform, true).
		Order("remote_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategoryMirrors(rows), nil
}

// Count returns the number of category mirrors for a platform
func (r *GormCategoryMirrorRepository) Count(ctx context.Context, platform integration.PlatformCode) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CategoryMirrorModel{}).
		Where("platform = ?", platform).
		Count(&count).Error
	return count, err
}

func toCategoryMirrors(rows []models.CategoryMirrorModel) []integration.CategoryMirror {
	out := make([]integration.CategoryMirror, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out
}

// Ensure GormCategoryMirrorRepository implements CategoryMirrorRepository
var _ integration.CategoryMirrorRepository = (*GormCategoryMirrorRepository)(nil)
