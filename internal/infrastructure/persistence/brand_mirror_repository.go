package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// GormBrandMirrorRepository implements BrandMirrorRepository using GORM
type GormBrandMirrorRepository struct {
	db *gorm.DB
}

// NewGormBrandMirrorRepository creates a new GormBrandMirrorRepository
func NewGormBrandMirrorRepository(db *gorm.DB) *GormBrandMirrorRepository {
	return &GormBrandMirrorRepository{db: db}
}

// UpsertBatch inserts or updates the batch keyed by (platform, remote_id)
func (r *GormBrandMirrorRepository) UpsertBatch(ctx context.Context, brands []integration.BrandMirror) error {
	if len(brands) == 0 {
		return nil
	}

	rows := make([]models.BrandMirrorModel, len(brands))
	for i, b := range brands {
		rows[i].FromDomain(b)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "synced_at"}),
	}).Create(&rows).Error
}

// FindByRemoteID finds one brand mirror
func (r *GormBrandMirrorRepository) FindByRemoteID(ctx context.Context, platform integration.PlatformCode, remoteID int64) (*integration.BrandMirror, error) {
	var model models.BrandMirrorModel
	if err := r.db.WithContext(ctx).
		First(&model, "platform = ? AND remote_id = ?", platform, remoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMirrorNotFound
		}
		return nil, err
	}
	brand := model.ToDomain()
	return &brand, nil
}

// Count returns the number of brand mirrors for a platform
func (r *GormBrandMirrorRepository) Count(ctx context.Context, platform integration.PlatformCode) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BrandMirrorModel{}).
		Where("platform = ?", platform).
		Count(&count).Error
	return count, err
}

// Ensure GormBrandMirrorRepository implements BrandMirrorRepository
var _ integration.BrandMirrorRepository = (*GormBrandMirrorRepository)(nil)
