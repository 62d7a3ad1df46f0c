package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockie/backend/internal/domain/catalog"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens an in-memory SQLite database with the schema migrated.
// The production schema lives in SQL migrations; AutoMigrate here only
// serves the tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.CredentialModel{},
		&models.BrandMirrorModel{},
		&models.CategoryMirrorModel{},
		&models.CategoryAttributeMirrorModel{},
		&models.AddressMirrorModel{},
		&models.ProductMirrorModel{},
		&models.OrderModel{},
		&models.OrderLineModel{},
		&catalog.Product{},
	))
	return db
}
