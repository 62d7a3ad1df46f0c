package trade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/shared"
	"github.com/stockie/backend/internal/domain/trade"
)

// OrderPushService pushes local order-state transitions to the marketplace.
// Both operations are single-attempt: they are user-initiated and latency
// sensitive, so a failure is surfaced for the caller to re-trigger instead
// of being retried internally.
//
// The local record is only touched after the remote call succeeds. A
// rejected or failed remote call leaves local state provably unchanged.
type OrderPushService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	orders      trade.OrderRepository
	logger      *zap.Logger
}

// NewOrderPushService creates a new OrderPushService
func NewOrderPushService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	orders trade.OrderRepository,
	logger *zap.Logger,
) *OrderPushService {
	return &OrderPushService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		orders:      orders,
		logger:      logger,
	}
}

// MarkPicking confirms a shipment package for picking on the marketplace
// and, only after the remote call succeeds, moves the local order to
// Preparing. A zero shipmentPackageID resolves to the order's only
// package; orders split into several packages must name one explicitly.
func (s *OrderPushService) MarkPicking(ctx context.Context, orderNumber string, shipmentPackageID int64) (*trade.Order, error) {
	order, err := s.resolveOrder(ctx, orderNumber, shipmentPackageID)
	if err != nil {
		return nil, err
	}

	if !order.CanPrepare() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order %s is %s and cannot be moved to picking", orderNumber, order.Status))
	}

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	update := &integration.PackageStatusUpdate{
		ShipmentPackageID: order.ShipmentPackageID,
		Status:            integration.RemoteOrderStatusPicking,
		Lines:             order.StatusUpdateLines(),
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if err := s.marketplace.UpdatePackageStatus(ctx, cred, update); err != nil {
		s.logger.Error("Package status push failed",
			zap.String("order_number", orderNumber),
			zap.Int64("shipment_package_id", order.ShipmentPackageID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("pushing picking status for order %s: %w", orderNumber, err)
	}

	if err := order.MarkPreparing(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("saving order %s after status push: %w", orderNumber, err)
	}

	s.logger.Info("Order moved to picking",
		zap.String("order_number", orderNumber),
		zap.Int64("shipment_package_id", order.ShipmentPackageID),
	)
	return order, nil
}

// ChangeCargoProvider reassigns the carrier of a shipment package on the
// marketplace. The local cargo fields are intentionally not updated here:
// the marketplace owns carrier assignment and the next order sync brings
// the confirmed value back.
func (s *OrderPushService) ChangeCargoProvider(ctx context.Context, shipmentPackageID int64, cargoProvider string) error {
	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return err
	}

	update := &integration.CargoProviderUpdate{
		ShipmentPackageID: shipmentPackageID,
		CargoProvider:     cargoProvider,
	}
	if err := update.Validate(); err != nil {
		return err
	}

	if err := s.marketplace.UpdateCargoProvider(ctx, cred, update); err != nil {
		s.logger.Error("Cargo provider push failed",
			zap.Int64("shipment_package_id", shipmentPackageID),
			zap.String("cargo_provider", cargoProvider),
			zap.Error(err),
		)
		return fmt.Errorf("changing cargo provider for package %d: %w", shipmentPackageID, err)
	}

	s.logger.Info("Cargo provider changed",
		zap.Int64("shipment_package_id", shipmentPackageID),
		zap.String("cargo_provider", cargoProvider),
	)
	return nil
}

func (s *OrderPushService) resolveOrder(ctx context.Context, orderNumber string, shipmentPackageID int64) (*trade.Order, error) {
	if shipmentPackageID != 0 {
		return s.orders.FindByNumberAndPackage(ctx, s.platform, orderNumber, shipmentPackageID)
	}

	packages, err := s.orders.FindByOrderNumber(ctx, s.platform, orderNumber)
	if err != nil {
		return nil, err
	}
	switch len(packages) {
	case 0:
		return nil, trade.ErrOrderNotFound
	case 1:
		return packages[0], nil
	default:
		return nil, shared.NewDomainError("AMBIGUOUS_PACKAGE",
			fmt.Sprintf("Order %s has %d shipment packages, specify one", orderNumber, len(packages)))
	}
}
