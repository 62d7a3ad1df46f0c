package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

// AddressSyncService refreshes the seller address mirror. The listing is
// small and unpaginated, so the whole set is fetched in one call and the
// local collection is replaced atomically.
type AddressSyncService struct {
	platform    integration.PlatformCode
	credentials integration.CredentialRepository
	marketplace integration.Marketplace
	addresses   integration.AddressMirrorRepository
	guard       JobGuard
	clock       Clock
	logger      *zap.Logger
}

// NewAddressSyncService creates a new AddressSyncService
func NewAddressSyncService(
	platform integration.PlatformCode,
	credentials integration.CredentialRepository,
	marketplace integration.Marketplace,
	addresses integration.AddressMirrorRepository,
	guard JobGuard,
	clock Clock,
	logger *zap.Logger,
) *AddressSyncService {
	return &AddressSyncService{
		platform:    platform,
		credentials: credentials,
		marketplace: marketplace,
		addresses:   addresses,
		guard:       guard,
		clock:       clock,
		logger:      logger,
	}
}

// Run replaces the local address mirror with the remote set
func (s *AddressSyncService) Run(ctx context.Context) (*Report, error) {
	release, err := s.guard.Acquire(ctx, s.platform, JobAddresses)
	if err != nil {
		return nil, err
	}
	defer release()

	cred, err := s.credentials.FindActiveByPlatform(ctx, s.platform)
	if err != nil {
		return nil, err
	}

	report := newReport(JobAddresses, s.platform, s.clock.Now())

	remote, err := s.marketplace.FetchAddresses(ctx, cred)
	if err != nil {
		return report.finish(s.clock.Now()), fmt.Errorf("fetching addresses: %w", err)
	}
	report.Fetched = len(remote)

	now := s.clock.Now()
	mirrors := make([]integration.AddressMirror, 0, len(remote))
	for _, addr := range remote {
		mirrors = append(mirrors, integration.AddressMirror{
			Platform:           s.platform,
			RemoteID:           addr.RemoteID,
			AddressType:        addr.AddressType,
			Country:            addr.Country,
			City:               addr.City,
			District:           addr.District,
			PostCode:           addr.PostCode,
			FullAddress:        addr.FullAddress,
			IsDefault:          addr.IsDefault,
			IsReturningAddress: addr.IsReturningAddress,
			SyncedAt:           now,
		})
	}

	if err := s.addresses.ReplaceAll(ctx, s.platform, mirrors); err != nil {
		return report.finish(s.clock.Now()), fmt.Errorf("replacing address mirrors: %w", err)
	}
	report.Applied = len(mirrors)

	s.logger.Info("Address sync completed",
		zap.String("platform", s.platform.String()),
		zap.Int("addresses", report.Applied),
	)
	return report.finish(s.clock.Now()), nil
}

// List returns the current address mirror for read endpoints
func (s *AddressSyncService) List(ctx context.Context) ([]integration.AddressMirror, error) {
	return s.addresses.FindAll(ctx, s.platform)
}
