package marketplace

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/stockie/backend/internal/domain/integration"
)

// TrendyolConfig holds configuration for the Trendyol supplier API
type TrendyolConfig struct {
	// APIBaseURL is the base URL of the supplier gateway
	APIBaseURL string
	// UserAgent identifies this client to Trendyol, prefixed with the
	// seller ID per their integration guidelines
	UserAgent string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// TrendyolProductionAPIURL is the production supplier gateway
	TrendyolProductionAPIURL = "https://api.trendyol.com/sapigw"
	// TrendyolStageAPIURL is the staging supplier gateway
	TrendyolStageAPIURL = "https://stageapi.trendyol.com/stagesapigw"

	defaultUserAgent      = "Stockie App"
	defaultTimeoutSeconds = 30
)

// Errors for Trendyol configuration
var (
	ErrTrendyolConfigMissingBaseURL = errors.New("trendyol: API base URL is required")
)

// NewTrendyolConfig creates a new Trendyol configuration with defaults
func NewTrendyolConfig() *TrendyolConfig {
	return &TrendyolConfig{
		APIBaseURL:     TrendyolProductionAPIURL,
		UserAgent:      defaultUserAgent,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Validate validates the Trendyol configuration
func (c *TrendyolConfig) Validate() error {
	if c.APIBaseURL == "" {
		return ErrTrendyolConfigMissingBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}

// basicAuth builds the Authorization header value for a credential.
// Trendyol authenticates with HTTP Basic over the API key pair.
func basicAuth(cred *integration.Credential) string {
	token := base64.StdEncoding.EncodeToString([]byte(cred.APIKey + ":" + cred.APISecret))
	return "Basic " + token
}

// userAgentFor builds the per-seller User-Agent Trendyol expects
func (c *TrendyolConfig) userAgentFor(cred *integration.Credential) string {
	return fmt.Sprintf("%s - %s", cred.SellerID, c.UserAgent)
}
