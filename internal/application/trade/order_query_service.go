package trade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
)

// OrderQueryService serves read access to synced marketplace orders.
// It never talks to the marketplace; the local mirror is the source for
// all listings and lookups.
type OrderQueryService struct {
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewOrderQueryService creates a new OrderQueryService
func NewOrderQueryService(orders trade.OrderRepository, logger *zap.Logger) *OrderQueryService {
	return &OrderQueryService{
		orders: orders,
		logger: logger,
	}
}

// List returns orders matching the query together with the total match
// count for pagination
func (s *OrderQueryService) List(ctx context.Context, query trade.OrderQuery) ([]*trade.Order, int64, error) {
	orders, err := s.orders.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("listing orders: %w", err)
	}

	total, err := s.orders.Count(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	return orders, total, nil
}

// GetPackages returns all shipment packages of a customer order.
// Returns trade.ErrOrderNotFound when no package exists.
func (s *OrderQueryService) GetPackages(ctx context.Context, platform integration.PlatformCode, orderNumber string) ([]*trade.Order, error) {
	packages, err := s.orders.FindByOrderNumber(ctx, platform, orderNumber)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return nil, trade.ErrOrderNotFound
	}
	return packages, nil
}
