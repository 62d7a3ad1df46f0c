package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
)

// OrderReader serves read access to synced marketplace orders
type OrderReader interface {
	List(ctx context.Context, query trade.OrderQuery) ([]*trade.Order, int64, error)
	GetPackages(ctx context.Context, platform integration.PlatformCode, orderNumber string) ([]*trade.Order, error)
}

// OrderPusher pushes order-state transitions to the marketplace
type OrderPusher interface {
	MarkPicking(ctx context.Context, orderNumber string, shipmentPackageID int64) (*trade.Order, error)
	ChangeCargoProvider(ctx context.Context, shipmentPackageID int64, cargoProvider string) error
}

// OrderHandler handles marketplace order API endpoints
type OrderHandler struct {
	BaseHandler
	reader OrderReader
	pusher OrderPusher
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(reader OrderReader, pusher OrderPusher) *OrderHandler {
	return &OrderHandler{
		reader: reader,
		pusher: pusher,
	}
}

// RegisterRoutes registers order routes on the given router group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:orderNumber", h.GetPackages)
		orders.PUT("/status/picking", h.MarkPicking)
		orders.PUT("/shipment-packages/:packageId/cargo-provider", h.ChangeCargoProvider)
	}
}

// ListOrdersRequest represents order listing query parameters
type ListOrdersRequest struct {
	Platform      string `form:"platform"`
	Status        string `form:"status"`
	ModifiedAfter string `form:"modified_after"`
	SortBy        string `form:"sort_by"`
	SortDir       string `form:"sort_dir"`
	Page          int    `form:"page,default=1" binding:"min=1"`
	PageSize      int    `form:"page_size,default=20" binding:"min=1,max=200"`
}

// List returns synced orders, newest remote modification first
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	query := trade.OrderQuery{
		SortBy:  req.SortBy,
		SortDir: req.SortDir,
		Offset:  (req.Page - 1) * req.PageSize,
		Limit:   req.PageSize,
	}

	if req.Platform != "" {
		platform := integration.PlatformCode(req.Platform)
		if !platform.IsValid() {
			h.BadRequest(c, "Unknown platform: "+req.Platform)
			return
		}
		query.Platform = platform
	}

	if req.Status != "" {
		status := integration.LocalOrderStatus(req.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown order status: "+req.Status)
			return
		}
		query.Status = status
	}

	if req.ModifiedAfter != "" {
		after, err := time.Parse(time.RFC3339, req.ModifiedAfter)
		if err != nil {
			h.BadRequest(c, "modified_after must be RFC3339")
			return
		}
		query.ModifiedAfter = &after
	}

	orders, total, err := h.reader.List(c.Request.Context(), query)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	h.SuccessWithMeta(c, toOrderResponses(orders), total, req.Page, req.PageSize)
}

// GetPackages returns all shipment packages of one customer order
func (h *OrderHandler) GetPackages(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	platform := integration.PlatformCodeTrendyol
	if p := c.Query("platform"); p != "" {
		platform = integration.PlatformCode(p)
		if !platform.IsValid() {
			h.BadRequest(c, "Unknown platform: "+p)
			return
		}
	}

	packages, err := h.reader.GetPackages(c.Request.Context(), platform, orderNumber)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	h.Success(c, toOrderResponses(packages))
}

// MarkPickingRequest represents a request to move an order to picking
type MarkPickingRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	// ShipmentPackageID may be omitted when the order has a single package
	ShipmentPackageID int64 `json:"shipment_package_id"`
}

// MarkPicking confirms a shipment package for picking on the marketplace
func (h *OrderHandler) MarkPicking(c *gin.Context) {
	var req MarkPickingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.pusher.MarkPicking(c.Request.Context(), req.OrderNumber, req.ShipmentPackageID)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// ChangeCargoProviderRequest represents a carrier reassignment request
type ChangeCargoProviderRequest struct {
	CargoProvider string `json:"cargo_provider" binding:"required"`
}

// ChangeCargoProvider reassigns the carrier of a shipment package
func (h *OrderHandler) ChangeCargoProvider(c *gin.Context) {
	packageID, err := strconv.ParseInt(c.Param("packageId"), 10, 64)
	if err != nil || packageID <= 0 {
		h.BadRequest(c, "Invalid shipment package ID")
		return
	}

	var req ChangeCargoProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.pusher.ChangeCargoProvider(c.Request.Context(), packageID, req.CargoProvider); err != nil {
		h.handleOrderError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *OrderHandler) handleOrderError(c *gin.Context, err error) {
	if errors.Is(err, trade.ErrOrderNotFound) {
		h.NotFound(c, "Order not found")
		return
	}
	if code, ok := integrationErrorCode(err); ok {
		h.ErrorWithCode(c, code, err.Error())
		return
	}
	h.HandleDomainError(c, err)
}
