package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type orderRoutes struct{}

func (orderRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.GET("", ok)
	orders.GET("/:orderNumber", ok)
}

func perform(engine *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestRouter_MountsUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(orderRoutes{}).Setup()

	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/orders"))
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/orders/80421765"))
	// Unversioned path does not exist.
	assert.Equal(t, http.StatusNotFound, perform(engine, http.MethodGet, "/orders"))
}

func TestRouter_CustomVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(orderRoutes{}).Setup()

	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v2/orders"))
	assert.Equal(t, http.StatusNotFound, perform(engine, http.MethodGet, "/api/v1/orders"))
}

func TestRouter_RegisterChains(t *testing.T) {
	engine := gin.New()
	system := NewDomainGroup("system", "/system").GET("/ping", ok)

	NewRouter(engine).
		Register(orderRoutes{}).
		Register(system).
		Setup()

	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/orders"))
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/system/ping"))
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("integrations", "/integrations/trendyol").
		GET("/addresses", ok).
		POST("/sync/orders", ok).
		PUT("/orders/status/picking", ok)
	NewRouter(engine).Register(group).Setup()

	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/integrations/trendyol/addresses"))
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodPost, "/api/v1/integrations/trendyol/sync/orders"))
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodPut, "/api/v1/integrations/trendyol/orders/status/picking"))
	// Method not registered on the path.
	assert.Equal(t, http.StatusNotFound, perform(engine, http.MethodDelete, "/api/v1/integrations/trendyol/addresses"))
}
