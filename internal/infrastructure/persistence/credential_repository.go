package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByPlatform finds the credential record for a platform
func (r *GormCredentialRepository) FindByPlatform(ctx context.Context, platform integration.PlatformCode) (*integration.Credential, error) {
	var model models.CredentialModel
	if err := r.db.WithContext(ctx).First(&model, "platform = ?", platform).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrCredentialNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByPlatform finds the credential for a platform and verifies it
// is active
func (r *GormCredentialRepository) FindActiveByPlatform(ctx context.Context, platform integration.PlatformCode) (*integration.Credential, error) {
	cred, err := r.FindByPlatform(ctx, platform)
	if err != nil {
		return nil, err
	}
	if !cred.IsActive() {
		return nil, integration.ErrCredentialInactive
	}
	return cred, nil
}

// Save creates or updates the credential record, keyed by platform
func (r *GormCredentialRepository) Save(ctx context.Context, credential *integration.Credential) error {
	model := &models.CredentialModel{}
	model.FromDomain(credential)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "api_key", "api_secret", "seller_id", "status", "updated_at",
		}),
	}).Create(model).Error
}

// Delete removes the credential record for a platform
func (r *GormCredentialRepository) Delete(ctx context.Context, platform integration.PlatformCode) error {
	result := r.db.WithContext(ctx).Delete(&models.CredentialModel{}, "platform = ?", platform)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return integration.ErrCredentialNotFound
	}
	return nil
}

// Ensure GormCredentialRepository implements CredentialRepository
var _ integration.CredentialRepository = (*GormCredentialRepository)(nil)
