package handler

import (
	"errors"

	syncapp "github.com/stockie/backend/internal/application/sync"
	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/interfaces/http/dto"
)

// integrationErrorCode maps integration-layer sentinel errors to API error
// codes. The second return is false when the error is not an integration
// error and the caller should fall through to generic handling.
func integrationErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, syncapp.ErrSyncAlreadyRunning):
		return dto.ErrCodeSyncRunning, true

	case errors.Is(err, integration.ErrCredentialNotFound),
		errors.Is(err, integration.ErrCredentialInactive),
		errors.Is(err, integration.ErrCredentialInvalid):
		return dto.ErrCodeIntegrationNotConfigured, true

	case errors.Is(err, integration.ErrMarketplaceAuthFailed):
		return dto.ErrCodeUpstreamAuth, true

	case errors.Is(err, integration.ErrMarketplaceRateLimited):
		return dto.ErrCodeUpstreamRateLimited, true

	case errors.Is(err, integration.ErrMarketplaceUnavailable),
		errors.Is(err, integration.ErrFetchAborted):
		return dto.ErrCodeUpstreamUnavailable, true

	case errors.Is(err, integration.ErrMarketplaceRequestRejected),
		errors.Is(err, integration.ErrMarketplaceInvalidResponse),
		errors.Is(err, integration.ErrPackageNotFound),
		errors.Is(err, integration.ErrPackageUpdateRejected),
		errors.Is(err, integration.ErrCargoProviderInvalid):
		return dto.ErrCodeUpstreamRejected, true

	// Local pre-flight validation of outbound updates
	case errors.Is(err, integration.ErrCargoProviderNotSet),
		errors.Is(err, integration.ErrShipmentPackageMissing),
		errors.Is(err, integration.ErrStatusUpdateNoLines),
		errors.Is(err, integration.ErrStatusUpdateBadStatus):
		return dto.ErrCodeInvalidInput, true
	}

	return "", false
}
