package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
	"github.com/stockie/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Upsert inserts the order or updates the existing row with the same
// (platform, order_number, shipment_package_id), replacing its lines.
// The existing row's identity and creation time survive the update.
func (r *GormOrderRepository) Upsert(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.OrderModel
		err := tx.Select("id", "created_at").
			First(&existing, "platform = ? AND order_number = ? AND shipment_package_id = ?",
				order.Platform, order.OrderNumber, order.ShipmentPackageID).Error

		model := models.OrderModelFromDomain(order)

		switch {
		case err == nil:
			model.ID = existing.ID
			model.CreatedAt = existing.CreatedAt
			for i := range model.Lines {
				model.Lines[i].OrderID = existing.ID
			}
			if err := tx.Delete(&models.OrderLineModel{}, "order_id = ?", existing.ID).Error; err != nil {
				return err
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(model).Error
		default:
			return err
		}
	})
}

// FindByNumberAndPackage finds one order by its marketplace identity
func (r *GormOrderRepository) FindByNumberAndPackage(ctx context.Context, platform integration.PlatformCode, orderNumber string, shipmentPackageID int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "platform = ? AND order_number = ? AND shipment_package_id = ?",
			platform, orderNumber, shipmentPackageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds all shipment packages of a customer order
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, platform integration.PlatformCode, orderNumber string) ([]*trade.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("platform = ? AND order_number = ?", platform, orderNumber).
		Order("shipment_package_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// List returns orders matching the query, newest remote modification first
func (r *GormOrderRepository) List(ctx context.Context, query trade.OrderQuery) ([]*trade.Order, error) {
	var rows []models.OrderModel
	sortField := ValidateSortField(query.SortBy, OrderSortFields, "remote_last_modified")
	sortDir := ValidateSortOrder(query.SortDir)
	q := r.applyQuery(r.db.WithContext(ctx).Preload("Lines"), query).
		Order(sortField + " " + sortDir)

	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// Count returns the number of orders matching the query
func (r *GormOrderRepository) Count(ctx context.Context, query trade.OrderQuery) (int64, error) {
	var count int64
	err := r.applyQuery(r.db.WithContext(ctx).Model(&models.OrderModel{}), query).
		Count(&count).Error
	return count, err
}

// Save persists local mutations to an existing order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).
		Omit("Lines").
		Save(model).Error
}

func (r *GormOrderRepository) applyQuery(q *gorm.DB, query trade.OrderQuery) *gorm.DB {
	if query.Platform != "" {
		q = q.Where("platform = ?", query.Platform)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.ModifiedAfter != nil {
		q = q.Where("remote_last_modified > ?", *query.ModifiedAfter)
	}
	return q
}

func toOrders(rows []models.OrderModel) []*trade.Order {
	out := make([]*trade.Order, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

// Ensure GormOrderRepository implements trade.OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
