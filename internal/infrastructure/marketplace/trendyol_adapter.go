package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

// maxResponseSize caps marketplace response bodies at 10MB
const maxResponseSize = 10 * 1024 * 1024

// TrendyolAdapter implements the Marketplace port for Trendyol.
//
// Every method performs exactly one HTTP request. Retry, pacing and
// cooldown policy live in the sync jobs, not here.
type TrendyolAdapter struct {
	config     *TrendyolConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTrendyolAdapter creates a new Trendyol adapter
func NewTrendyolAdapter(config *TrendyolConfig, logger *zap.Logger) (*TrendyolAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trendyol config: %w", err)
	}
	return &TrendyolAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// PlatformCode returns the platform this adapter handles
func (a *TrendyolAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeTrendyol
}

// ---------------------------------------------------------------------------
// Catalog Reference Data
// ---------------------------------------------------------------------------

// FetchBrandPage fetches one page of the marketplace brand listing
func (a *TrendyolAdapter) FetchBrandPage(ctx context.Context, cred *integration.Credential, req integration.PageRequest) (*integration.BrandPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("size", strconv.Itoa(req.Size))

	body, err := a.doRequest(ctx, cred, http.MethodGet, "/brands", query, nil)
	if err != nil {
		return nil, err
	}

	var page trendyolBrandPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: parsing brand page: %v", integration.ErrMarketplaceInvalidResponse, err)
	}
	return page.toDomain(), nil
}

// FetchCategoryTree fetches the full category tree in one call
func (a *TrendyolAdapter) FetchCategoryTree(ctx context.Context, cred *integration.Credential) ([]integration.RemoteCategoryNode, error) {
	body, err := a.doRequest(ctx, cred, http.MethodGet, "/product-categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var tree trendyolCategoryTree
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("%w: parsing category tree: %v", integration.ErrMarketplaceInvalidResponse, err)
	}
	return tree.toDomain(), nil
}

// FetchCategoryAttributes fetches the attribute definitions of one category
func (a *TrendyolAdapter) FetchCategoryAttributes(ctx context.Context, cred *integration.Credential, categoryID int64) ([]integration.RemoteCategoryAttribute, error) {
	path := fmt.Sprintf("/product-categories/%d/attributes", categoryID)
	body, err := a.doRequest(ctx, cred, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp trendyolAttributeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parsing category attributes: %v", integration.ErrMarketplaceInvalidResponse, err)
	}
	return resp.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Seller Data
// ---------------------------------------------------------------------------

// FetchAddresses fetches all seller addresses in one call
func (a *TrendyolAdapter) FetchAddresses(ctx context.Context, cred *integration.Credential) ([]integration.RemoteAddress, error) {
	path := fmt.Sprintf("/suppliers/%s/addresses", cred.SellerID)
	body, err := a.doRequest(ctx, cred, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp trendyolAddressResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parsing addresses: %v", integration.ErrMarketplaceInvalidResponse, err)
	}
	return resp.toDomain(), nil
}

// FetchProductPage fetches one page of the seller's product listings
func (a *TrendyolAdapter) FetchProductPage(ctx context.Context, cred *integration.Credential, req integration.PageRequest) (*integration.ProductPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("size", strconv.Itoa(req.Size))

	path := fmt.Sprintf("/suppliers/%s/products", cred.SellerID)
	body, err := a.doRequest(ctx, cred, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var page trendyolProductPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: parsing product page: %v", integration.ErrMarketplaceInvalidResponse, err)
	}
	return page.toDomain(), nil
}

// FetchOrderPage fetches one page of shipment packages modified within the
// request window, newest first
func (a *TrendyolAdapter) FetchOrderPage(ctx context.Context, cred *integration.Credential, req integration.OrderPageRequest) (*integration.OrderPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("size", strconv.Itoa(req.Size))
	query.Set("startDate", strconv.FormatInt(req.StartDate.UnixMilli(), 10))
	query.Set("endDate", strconv.FormatInt(req.EndDate.UnixMilli(), 10))
	query.Set("orderByField", "PackageLastModifiedDate")
	query.Set("orderByDirection", "DESC")
	if len(req.Statuses) > 0 {
		names := make([]string, 0, len(req.Statuses))
		for _, s := range req.Statuses {
			names = append(names, s.String())
		}
		query.Set("status", strings.Join(names, ","))
	}

	path := fmt.Sprintf("/suppliers/%s/orders", cred.SellerID)
	body, err := a.doRequest(ctx, cred, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var page trendyolOrderPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: parsing order page: %v", integration.ErrMarketplaceInvalidResponse, err)
	}
	return page.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// UpdatePackageStatus moves a shipment package into a new status
func (a *TrendyolAdapter) UpdatePackageStatus(ctx context.Context, cred *integration.Credential, update *integration.PackageStatusUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	path := fmt.Sprintf("/suppliers/%s/shipment-packages/%d", cred.SellerID, update.ShipmentPackageID)
	_, err := a.doRequest(ctx, cred, http.MethodPut, path, nil, newStatusUpdateRequest(update))
	if err != nil {
		return fmt.Errorf("updating package %d status: %w", update.ShipmentPackageID, err)
	}
	return nil
}

// UpdateCargoProvider reassigns the carrier of a shipment package
func (a *TrendyolAdapter) UpdateCargoProvider(ctx context.Context, cred *integration.Credential, update *integration.CargoProviderUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	path := fmt.Sprintf("/suppliers/%s/shipment-packages/%d/cargo-providers", cred.SellerID, update.ShipmentPackageID)
	_, err := a.doRequest(ctx, cred, http.MethodPut, path, nil, trendyolCargoProviderRequest{CargoProvider: update.CargoProvider})
	if err != nil {
		return fmt.Errorf("changing package %d cargo provider: %w", update.ShipmentPackageID, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// HTTP Helpers
// ---------------------------------------------------------------------------

// doRequest performs an authenticated request against the supplier gateway
// and returns the response body. Status codes map onto the marketplace
// error sentinels so callers can distinguish transient from permanent
// failures without knowing HTTP.
func (a *TrendyolAdapter) doRequest(ctx context.Context, cred *integration.Credential, method, path string, query url.Values, payload any) ([]byte, error) {
	requestURL := a.config.APIBaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", basicAuth(cred))
	req.Header.Set("User-Agent", a.config.userAgentFor(cred))
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrMarketplaceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", integration.ErrMarketplaceInvalidResponse, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrMarketplaceAuthFailed, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: HTTP 429", integration.ErrMarketplaceRateLimited)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrMarketplaceUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		a.logger.Warn("Trendyol rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body, 512)),
		)
		return nil, fmt.Errorf("%w: HTTP %d: %s", integration.ErrMarketplaceRequestRejected, resp.StatusCode, truncate(body, 512))
	}

	return body, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// Ensure TrendyolAdapter implements the Marketplace interface
var _ integration.Marketplace = (*TrendyolAdapter)(nil)
