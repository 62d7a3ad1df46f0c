package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockie/backend/internal/interfaces/http/dto"
)

type markPickingBody struct {
	OrderNumber       string `json:"order_number" binding:"required"`
	ShipmentPackageID int64  `json:"shipment_package_id" binding:"gt=0"`
	CargoProvider     string `json:"cargo_provider" binding:"omitempty,oneof=YKMP MNGM ARASM"`
}

func bindAndHandle(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	SetupValidator()

	engine := gin.New()
	engine.Use(RequestID())
	engine.POST("/orders/status/picking", func(c *gin.Context) {
		var req markPickingBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/status/picking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleValidationError(t *testing.T) {
	w := bindAndHandle(t, `{"shipment_package_id":-5,"cargo_provider":"PTTK"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	// Field names come from the json tags, not the Go struct fields.
	byField := map[string]string{}
	for _, d := range resp.Error.Details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", byField["order_number"])
	assert.Equal(t, "Must be greater than 0", byField["shipment_package_id"])
	assert.Equal(t, "Must be one of: YKMP MNGM ARASM", byField["cargo_provider"])
}

func TestHandleValidationError_ValidBody(t *testing.T) {
	w := bindAndHandle(t, `{"order_number":"80421765","shipment_package_id":11650604}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(json.Unmarshal([]byte("{"), &markPickingBody{}), "req-7")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-7", resp.Error.RequestID)
	// Malformed JSON carries no per-field details.
	assert.Empty(t, resp.Error.Details)
}

func TestGetRequestIDFromContext(t *testing.T) {
	t.Run("prefers context value", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(RequestIDKey, "from-context")
		c.Request.Header.Set(RequestIDKey, "from-header")

		assert.Equal(t, "from-context", getRequestIDFromContext(c))
	})

	t.Run("falls back to header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDKey, "from-header")

		assert.Equal(t, "from-header", getRequestIDFromContext(c))
	})
}
