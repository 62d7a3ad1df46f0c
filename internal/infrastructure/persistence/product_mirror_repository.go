package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// productMirrorUpsertBatchSize bounds the rows per INSERT
const productMirrorUpsertBatchSize = 200

// GormProductMirrorRepository implements ProductMirrorRepository using GORM
type GormProductMirrorRepository struct {
	db *gorm.DB
}

// NewGormProductMirrorRepository creates a new GormProductMirrorRepository
func NewGormProductMirrorRepository(db *gorm.DB) *GormProductMirrorRepository {
	return &GormProductMirrorRepository{db: db}
}

// UpsertBatch inserts or updates the batch keyed by (platform, barcode)
func (r *GormProductMirrorRepository) UpsertBatch(ctx context.Context, products []integration.ProductMirror) error {
	if len(products) == 0 {
		return nil
	}

	rows := make([]models.ProductMirrorModel, len(products))
	for i, p := range products {
		rows[i].FromDomain(p)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}, {Name: "barcode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"remote_id", "title", "brand", "brand_id", "category_name", "category_id",
			"stock_code", "quantity", "list_price", "sale_price", "vat_rate",
			"dimensional_weight", "description", "image_urls", "approved", "on_sale",
			"synced_at",
		}),
	}).CreateInBatches(&rows, productMirrorUpsertBatchSize).Error
}

// FindByBarcode finds one product mirror
func (r *GormProductMirrorRepository) FindByBarcode(ctx context.Context, platform integration.PlatformCode, barcode string) (*integration.ProductMirror, error) {
	var model models.ProductMirrorModel
	if err := r.db.WithContext(ctx).
		First(&model, "platform = ? AND barcode = ?", platform, barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMirrorNotFound
		}
		return nil, err
	}
	product := model.ToDomain()
	return &product, nil
}

// Count returns the number of product mirrors for a platform
func (r *GormProductMirrorRepository) Count(ctx context.Context, platform integration.PlatformCode) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductMirrorModel{}).
		Where("platform = ?", platform).
		Count(&count).Error
	return count, err
}

// Ensure GormProductMirrorRepository implements ProductMirrorRepository
var _ integration.ProductMirrorRepository = (*GormProductMirrorRepository)(nil)
