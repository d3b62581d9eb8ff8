package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"protest-tracker/internal/handler"
	"protest-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
}

type routeRegistrar interface {
	RegisterRoutes(public, authed *gin.RouterGroup)
}

// setupRouter mounts h under /api; authed routes see callerID as the signed-in organizer.
func setupRouter(h routeRegistrar, callerID int64) *gin.Engine {
	router := gin.New()
	public := router.Group("/api")
	authed := router.Group("/api", func(c *gin.Context) {
		if callerID > 0 {
			c.Set(middleware.ContextOrganizerIDKey, callerID)
		}
		c.Next()
	})
	h.RegisterRoutes(public, authed)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthHandler(t *testing.T) {
	router := gin.New()
	handler.NewHealthHandler().RegisterRoutes(router)

	for _, path := range []string{"/api", "/api/health"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	}
}
