package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
)

// DefaultOrderWindowDays is how far back the rolling order window reaches
const DefaultOrderWindowDays = 14

// OrderSyncService pulls the rolling window of marketplace shipment
// packages and reconciles them into local order storage keyed by
// (orderNumber, shipmentPackageID).
//
// Unlike the other jobs, pages are buffered and reconciled after the fetch
// completes: the marketplace orders the listing by modification date, so a
// package can slide across a page boundary mid-fetch and show up twice.
// Deduplicating the buffer keeps one projection per identity.
type OrderSyncService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	orders      trade.OrderRepository
	guard       JobGuard
	pager       *Pager
	clock       Clock
	logger      *zap.Logger
	windowDays  int
}

// NewOrderSyncService creates a new OrderSyncService
func NewOrderSyncService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	orders trade.OrderRepository,
	guard JobGuard,
	pager *Pager,
	clock Clock,
	logger *zap.Logger,
	windowDays int,
) *OrderSyncService {
	if windowDays <= 0 {
		windowDays = DefaultOrderWindowDays
	}
	return &OrderSyncService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		orders:      orders,
		guard:       guard,
		pager:       pager,
		clock:       clock,
		logger:      logger,
		windowDays:  windowDays,
	}
}

// Run fetches and reconciles the order window
func (s *OrderSyncService) Run(ctx context.Context) (*Report, error) {
	release, err := s.guard.Acquire(ctx, s.platform, JobOrders)
	if err != nil {
		return nil, err
	}
	defer release()

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	report := newReport(JobOrders, s.platform, s.clock.Now())

	// The window is fixed before pagination starts so every page queries
	// the same range.
	endDate := s.clock.Now()
	startDate := endDate.AddDate(0, 0, -s.windowDays)

	var buffer []integration.RemoteOrder
	seen := make(map[string]struct{})

	stats, err := s.pager.Run(ctx, "orders", func(ctx context.Context, page, size int) (int, error) {
		orderPage, err := s.marketplace.FetchOrderPage(ctx, cred, integration.OrderPageRequest{
			Page:      page,
			Size:      size,
			StartDate: startDate,
			EndDate:   endDate,
			Statuses:  integration.OrderSyncStatuses,
		})
		if err != nil {
			return 0, err
		}

		for _, remote := range orderPage.Items {
			key := fmt.Sprintf("%s/%d", remote.OrderNumber, remote.ShipmentPackageID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			buffer = append(buffer, remote)
		}

		return len(orderPage.Items), nil
	})

	report.Pages = stats.Pages
	report.Fetched = stats.Items
	if err != nil {
		return report.finish(s.clock.Now()), err
	}

	batch, err := ReconcileBatch(buffer, SkipItem, s.logger,
		func(remote integration.RemoteOrder) string {
			return fmt.Sprintf("%s/%d", remote.OrderNumber, remote.ShipmentPackageID)
		},
		func(remote integration.RemoteOrder) error {
			return s.reconcileOrder(ctx, &remote)
		},
	)
	report.addBatch(batch)

	s.logger.Info("Order sync completed",
		zap.String("platform", s.platform.String()),
		zap.Int("pages", report.Pages),
		zap.Int("fetched", report.Fetched),
		zap.Int("applied", report.Applied),
		zap.Int("skipped", report.Skipped),
	)
	return report.finish(s.clock.Now()), nil
}

// reconcileOrder applies one remote package to local storage. The lookup is
// scoped to the exact (orderNumber, shipmentPackageID) pair: an order
// number may already exist under a sibling package and that record must
// not be touched.
func (s *OrderSyncService) reconcileOrder(ctx context.Context, remote *integration.RemoteOrder) error {
	existing, err := s.orders.FindByNumberAndPackage(ctx, s.platform, remote.OrderNumber, remote.ShipmentPackageID)
	if err != nil && !errors.Is(err, trade.ErrOrderNotFound) {
		return err
	}

	if existing != nil {
		existing.ApplyRemote(remote)
		return s.orders.Upsert(ctx, existing)
	}

	order, err := trade.NewOrderFromRemote(s.platform, remote)
	if err != nil {
		return err
	}
	return s.orders.Upsert(ctx, order)
}
