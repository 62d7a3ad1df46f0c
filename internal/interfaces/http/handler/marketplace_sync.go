package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	syncapp "github.com/stockie/backend/internal/application/sync"
	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/scheduler"
)

// SyncRunner executes one sync pass for a reference-data or order job
type SyncRunner interface {
	Run(ctx context.Context) (*syncapp.Report, error)
}

// AttributeSyncRunner executes the category-attribute sync, which takes an
// error policy because attribute pages fail independently per category
type AttributeSyncRunner interface {
	Run(ctx context.Context, policy syncapp.ErrorPolicy) (*syncapp.Report, error)
}

// AddressReader reads the synced seller address mirror
type AddressReader interface {
	List(ctx context.Context) ([]integration.AddressMirror, error)
}

// SyncRunHistory exposes recent scheduled order sync runs
type SyncRunHistory interface {
	History(limit int) []*scheduler.Run
}

// MarketplaceSyncHandler handles marketplace sync trigger endpoints
type MarketplaceSyncHandler struct {
	BaseHandler
	brands     SyncRunner
	categories SyncRunner
	attributes AttributeSyncRunner
	addresses  SyncRunner
	products   SyncRunner
	orders     SyncRunner

	addressReader AddressReader
	history       SyncRunHistory
}

// NewMarketplaceSyncHandler creates a new MarketplaceSyncHandler.
// history may be nil when the scheduler is disabled.
func NewMarketplaceSyncHandler(
	brands SyncRunner,
	categories SyncRunner,
	attributes AttributeSyncRunner,
	addresses SyncRunner,
	products SyncRunner,
	orders SyncRunner,
	addressReader AddressReader,
	history SyncRunHistory,
) *MarketplaceSyncHandler {
	return &MarketplaceSyncHandler{
		brands:        brands,
		categories:    categories,
		attributes:    attributes,
		addresses:     addresses,
		products:      products,
		orders:        orders,
		addressReader: addressReader,
		history:       history,
	}
}

// RegisterRoutes registers marketplace sync routes on the given router group
func (h *MarketplaceSyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	trendyol := rg.Group("/trendyol")
	{
		sync := trendyol.Group("/sync")
		{
			sync.POST("/brands", h.SyncBrands)
			sync.POST("/categories", h.SyncCategories)
			sync.POST("/category-attributes", h.SyncCategoryAttributes)
			sync.POST("/addresses", h.SyncAddresses)
			sync.POST("/products", h.SyncProducts)
			sync.POST("/orders", h.SyncOrders)
			sync.GET("/runs", h.ListScheduledRuns)
		}

		trendyol.GET("/addresses", h.ListAddresses)
	}
}

// SyncBrands triggers a full brand sync from the marketplace
func (h *MarketplaceSyncHandler) SyncBrands(c *gin.Context) {
	h.runSync(c, h.brands)
}

// SyncCategories triggers a full category tree sync from the marketplace
func (h *MarketplaceSyncHandler) SyncCategories(c *gin.Context) {
	h.runSync(c, h.categories)
}

// SyncCategoryAttributes triggers an attribute sync for all leaf categories.
// The on_error query parameter selects the failure policy: "skip" (default)
// records per-category failures and continues, "abort" stops on the first.
func (h *MarketplaceSyncHandler) SyncCategoryAttributes(c *gin.Context) {
	policy := syncapp.SkipItem
	switch c.DefaultQuery("on_error", "skip") {
	case "skip":
		policy = syncapp.SkipItem
	case "abort":
		policy = syncapp.AbortBatch
	default:
		h.BadRequest(c, "on_error must be skip or abort")
		return
	}

	report, err := h.attributes.Run(c.Request.Context(), policy)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	h.Success(c, report)
}

// SyncAddresses triggers a seller address sync from the marketplace
func (h *MarketplaceSyncHandler) SyncAddresses(c *gin.Context) {
	h.runSync(c, h.addresses)
}

// SyncProducts triggers a product listing sync from the marketplace
func (h *MarketplaceSyncHandler) SyncProducts(c *gin.Context) {
	h.runSync(c, h.products)
}

// SyncOrders triggers an order sync from the marketplace
func (h *MarketplaceSyncHandler) SyncOrders(c *gin.Context) {
	h.runSync(c, h.orders)
}

// AddressResponse represents one synced seller address
type AddressResponse struct {
	Platform           string    `json:"platform"`
	RemoteID           int64     `json:"remote_id"`
	AddressType        string    `json:"address_type"`
	Country            string    `json:"country"`
	City               string    `json:"city"`
	District           string    `json:"district"`
	PostCode           string    `json:"post_code,omitempty"`
	FullAddress        string    `json:"full_address"`
	IsDefault          bool      `json:"is_default"`
	IsReturningAddress bool      `json:"is_returning_address"`
	SyncedAt           time.Time `json:"synced_at"`
}

// ListAddresses returns the synced seller addresses
func (h *MarketplaceSyncHandler) ListAddresses(c *gin.Context) {
	mirrors, err := h.addressReader.List(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}

	out := make([]AddressResponse, 0, len(mirrors))
	for _, m := range mirrors {
		out = append(out, AddressResponse{
			Platform:           m.Platform.String(),
			RemoteID:           m.RemoteID,
			AddressType:        m.AddressType,
			Country:            m.Country,
			City:               m.City,
			District:           m.District,
			PostCode:           m.PostCode,
			FullAddress:        m.FullAddress,
			IsDefault:          m.IsDefault,
			IsReturningAddress: m.IsReturningAddress,
			SyncedAt:           m.SyncedAt,
		})
	}

	h.Success(c, out)
}

// ScheduledRunResponse represents one scheduled order sync run
type ScheduledRunResponse struct {
	ID          uuid.UUID       `json:"id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
	Report      *syncapp.Report `json:"report,omitempty"`
}

// ListScheduledRuns returns recent scheduled order sync runs, newest first
func (h *MarketplaceSyncHandler) ListScheduledRuns(c *gin.Context) {
	if h.history == nil {
		h.Success(c, []ScheduledRunResponse{})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs := h.history.History(limit)
	out := make([]ScheduledRunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, ScheduledRunResponse{
			ID:          r.ID,
			StartedAt:   r.StartedAt,
			CompletedAt: r.CompletedAt,
			Status:      string(r.Status),
			Error:       r.Error,
			Report:      r.Report,
		})
	}

	h.Success(c, out)
}

func (h *MarketplaceSyncHandler) runSync(c *gin.Context, runner SyncRunner) {
	report, err := runner.Run(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	h.Success(c, report)
}

func (h *MarketplaceSyncHandler) handleSyncError(c *gin.Context, err error) {
	if code, ok := integrationErrorCode(err); ok {
		h.ErrorWithCode(c, code, err.Error())
		return
	}
	h.HandleDomainError(c, err)
}
