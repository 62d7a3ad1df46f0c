package integration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Credential Errors
// ---------------------------------------------------------------------------

var (
	// ErrCredentialNotFound indicates no credential record exists for the platform.
	// Surfaced to callers as a configuration error; never retried.
	ErrCredentialNotFound = errors.New("integration: credential not found for platform")
	// ErrCredentialInactive indicates a credential record exists but is disabled
	ErrCredentialInactive = errors.New("integration: credential is not active")
	// ErrCredentialInvalid indicates a credential record is missing required fields
	ErrCredentialInvalid = errors.New("integration: credential is missing required fields")
)

// ---------------------------------------------------------------------------
// PlatformCode
// ---------------------------------------------------------------------------

// PlatformCode identifies an external marketplace platform
type PlatformCode string

const (
	// PlatformCodeTrendyol represents the Trendyol marketplace
	PlatformCodeTrendyol PlatformCode = "TRENDYOL"
	// PlatformCodeHepsiburada represents the Hepsiburada marketplace (reserved)
	PlatformCodeHepsiburada PlatformCode = "HEPSIBURADA"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeTrendyol, PlatformCodeHepsiburada:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeTrendyol:
		return "Trendyol"
	case PlatformCodeHepsiburada:
		return "Hepsiburada"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// CredentialStatus
// ---------------------------------------------------------------------------

// CredentialStatus represents the lifecycle state of a credential record
type CredentialStatus string

const (
	// CredentialStatusActive indicates the credential may be used by sync jobs
	CredentialStatusActive CredentialStatus = "ACTIVE"
	// CredentialStatusDisabled indicates the credential is retained but unusable
	CredentialStatusDisabled CredentialStatus = "DISABLED"
)

// IsValid returns true if the status is valid
func (s CredentialStatus) IsValid() bool {
	switch s {
	case CredentialStatusActive, CredentialStatusDisabled:
		return true
	default:
		return false
	}
}

// String returns the string representation of CredentialStatus
func (s CredentialStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Credential
// ---------------------------------------------------------------------------

// Credential holds the API access material for one marketplace integration.
// There is at most one record per platform. Sync jobs consume credentials
// read-only; creation and editing happen through configuration flows.
type Credential struct {
	// ID is the unique identifier of the credential record
	ID uuid.UUID
	// Platform identifies which marketplace this credential belongs to
	Platform PlatformCode
	// Name is a human-readable label for the integration
	Name string
	// APIKey is the marketplace API key identifier
	APIKey string
	// APISecret is the marketplace API secret
	APISecret string
	// SellerID is the seller/supplier identifier on the marketplace
	SellerID string
	// Status controls whether sync jobs may use this credential
	Status CredentialStatus
	// CreatedAt is when the record was created
	CreatedAt time.Time
	// UpdatedAt is when the record was last updated
	UpdatedAt time.Time
}

// Validate checks that the credential carries everything a sync job needs
func (c *Credential) Validate() error {
	if !c.Platform.IsValid() {
		return ErrCredentialInvalid
	}
	if c.APIKey == "" || c.APISecret == "" || c.SellerID == "" {
		return ErrCredentialInvalid
	}
	return nil
}

// IsActive returns true if the credential may be used by sync jobs
func (c *Credential) IsActive() bool {
	return c.Status == CredentialStatusActive
}

// ---------------------------------------------------------------------------
// CredentialRepository
// ---------------------------------------------------------------------------

// CredentialRepository defines the persistence contract for credentials.
// Sync jobs only ever read; the write operations serve configuration flows.
type CredentialRepository interface {
	// FindByPlatform finds the credential record for a platform.
	// Returns ErrCredentialNotFound if no record exists.
	FindByPlatform(ctx context.Context, platform PlatformCode) (*Credential, error)

	// FindActiveByPlatform finds the credential for a platform and verifies
	// it is active. Returns ErrCredentialNotFound if absent and
	// ErrCredentialInactive if present but disabled.
	FindActiveByPlatform(ctx context.Context, platform PlatformCode) (*Credential, error)

	// Save creates or updates a credential record
	Save(ctx context.Context, credential *Credential) error

	// Delete removes the credential record for a platform
	Delete(ctx context.Context, platform PlatformCode) error
}
