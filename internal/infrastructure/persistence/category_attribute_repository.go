package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// GormCategoryAttributeRepository implements
// CategoryAttributeMirrorRepository using GORM
type GormCategoryAttributeRepository struct {
	db *gorm.DB
}

// NewGormCategoryAttributeRepository creates a new GormCategoryAttributeRepository
func NewGormCategoryAttributeRepository(db *gorm.DB) *GormCategoryAttributeRepository {
	return &GormCategoryAttributeRepository{db: db}
}

var categoryAttributeConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "platform"}, {Name: "category_id"}, {Name: "attribute_id"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"name", "required", "allow_custom", "varianter", "slicer", "allowed_values", "synced_at",
	}),
}

// Upsert inserts or updates one record by its composite key
func (r *GormCategoryAttributeRepository) Upsert(ctx context.Context, attribute *integration.CategoryAttributeMirror) error {
	model := &models.CategoryAttributeMirrorModel{}
	model.FromDomain(*attribute)
	return r.db.WithContext(ctx).Clauses(categoryAttributeConflict).Create(model).Error
}

// UpsertBatch inserts or updates the batch by its composite key
func (r *GormCategoryAttributeRepository) UpsertBatch(ctx context.Context, attributes []integration.CategoryAttributeMirror) error {
	if len(attributes) == 0 {
		return nil
	}

	rows := make([]models.CategoryAttributeMirrorModel, len(attributes))
	for i, a := range attributes {
		rows[i].FromDomain(a)
	}
	return r.db.WithContext(ctx).Clauses(categoryAttributeConflict).Create(&rows).Error
}

// FindByCategory finds all attribute mirrors of a category
func (r *GormCategoryAttributeRepository) FindByCategory(ctx context.Context, platform integration.PlatformCode, categoryID int64) ([]integration.CategoryAttributeMirror, error) {
	var rows []models.CategoryAttributeMirrorModel
	if err := r.db.WithContext(ctx).
		Where("platform = ? AND category_id = ?", platform, categoryID).
		Order("attribute_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]integration.CategoryAttributeMirror, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

// Find finds one attribute mirror by its composite key
func (r *GormCategoryAttributeRepository) Find(ctx context.Context, platform integration.PlatformCode, categoryID, attributeID int64) (*integration.CategoryAttributeMirror, error) {
	var model models.CategoryAttributeMirrorModel
	if err := r.db.WithContext(ctx).
		First(&model, "platform = ? AND category_id = ? AND attribute_id = ?", platform, categoryID, attributeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMirrorNotFound
		}
		return nil, err
	}
	attribute := model.ToDomain()
	return &attribute, nil
}

// Count returns the number of attribute mirrors for a platform
func (r *GormCategoryAttributeRepository) Count(ctx context.Context, platform integration.PlatformCode) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CategoryAttributeMirrorModel{}).
		Where("platform = ?", platform).
		Count(&count).Error
	return count, err
}

// Ensure GormCategoryAttributeRepository implements CategoryAttributeMirrorRepository
var _ integration.CategoryAttributeMirrorRepository = (*GormCategoryAttributeRepository)(nil)
