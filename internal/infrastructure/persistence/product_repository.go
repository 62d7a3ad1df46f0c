package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stockie/backend/internal/domain/catalog"
	"github.com/stockie/backend/internal/domain/integration"
)

// GormProductRepository implements catalog.ProductRepository using GORM.
// Catalog products carry their own GORM mapping, so no separate
// persistence model is needed.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByBarcode finds a product by barcode
func (r *GormProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List returns products matching the query
func (r *GormProductRepository) List(ctx context.Context, query catalog.ProductQuery) ([]*catalog.Product, error) {
	var products []*catalog.Product
	q := r.applyQuery(r.db.WithContext(ctx), query).Order("barcode ASC")

	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of products matching the query
func (r *GormProductRepository) Count(ctx context.Context, query catalog.ProductQuery) (int64, error) {
	var count int64
	err := r.applyQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query).
		Count(&count).Error
	return count, err
}

// CacheListings caches marketplace listings on the products that share
// their barcode and returns the number of products updated
func (r *GormProductRepository) CacheListings(ctx context.Context, platform integration.PlatformCode, listings []integration.RemoteProduct) (int64, error) {
	if len(listings) == 0 {
		return 0, nil
	}

	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, listing := range listings {
			if listing.Barcode == "" {
				continue
			}
			result := tx.Model(&catalog.Product{}).
				Where("barcode = ?", listing.Barcode).
				Updates(map[string]any{
					"remote_platform":    platform,
					"remote_listing_id":  listing.RemoteID,
					"remote_brand_id":    listing.BrandID,
					"remote_category_id": listing.CategoryID,
					"remote_quantity":    listing.Quantity,
					"remote_sale_price":  listing.SalePrice,
					"remote_approved":    listing.Approved,
					"remote_synced_at":   now,
					"updated_at":         now,
				})
			if result.Error != nil {
				return result.Error
			}
			updated += result.RowsAffected
		}
		return nil
	})
	return updated, err
}

func (r *GormProductRepository) applyQuery(q *gorm.DB, query catalog.ProductQuery) *gorm.DB {
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.WithListing != nil {
		if *query.WithListing {
			q = q.Where("remote_listing_id <> ''")
		} else {
			q = q.Where("remote_listing_id = ''")
		}
	}
	return q
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
