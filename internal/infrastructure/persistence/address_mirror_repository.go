package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// GormAddressMirrorRepository implements AddressMirrorRepository using GORM
type GormAddressMirrorRepository struct {
	db *gorm.DB
}

// NewGormAddressMirrorRepository creates a new GormAddressMirrorRepository
func NewGormAddressMirrorRepository(db *gorm.DB) *GormAddressMirrorRepository {
	return &GormAddressMirrorRepository{db: db}
}

// ReplaceAll atomically replaces the platform's address set. Delete and
// insert run in one transaction so readers never observe a partial set.
func (r *GormAddressMirrorRepository) ReplaceAll(ctx context.Context, platform integration.PlatformCode, addresses []integration.AddressMirror) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AddressMirrorModel{}, "platform = ?", platform).Error; err != nil {
			return err
		}
		if len(addresses) == 0 {
			return nil
		}

		rows := make([]models.AddressMirrorModel, len(addresses))
		for i, a := range addresses {
			rows[i].FromDomain(a)
		}
		return tx.Create(&rows).Error
	})
}

// FindAll returns all address mirrors of a platform
func (r *GormAddressMirrorRepository) FindAll(ctx context.Context, platform integration.PlatformCode) ([]integration.AddressMirror, error) {
	var rows []models.AddressMirrorModel
	if err := r.db.WithContext(ctx).
		Where("platform = ?", platform).
		Order("remote_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]integration.AddressMirror, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

// Ensure GormAddressMirrorRepository implements AddressMirrorRepository
var _ integration.AddressMirrorRepository = (*GormAddressMirrorRepository)(nil)
