package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"protest-tracker/internal/auth"
	"protest-tracker/internal/database"
	"protest-tracker/internal/metrics"
	"protest-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter(tokens auth.TokenIssuer) *gin.Engine {
	router := gin.New()
	router.GET("/private", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := middleware.OrganizerID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"organizer_id": id})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewJWTIssuer("secret", time.Hour)
	router := setupAuthRouter(tokens)

	valid, err := tokens.Sign(12, "a@example.com")
	assert.NoError(t, err)
	foreign, err := auth.NewJWTIssuer("other", time.Hour).Sign(12, "a@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusForbidden},
		{"garbage token", "Bearer garbage", http.StatusForbidden},
		{"foreign signature", "Bearer " + foreign, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"organizer_id": 12}`, w.Body.String())
			}
		})
	}
}

func TestSchemaReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		var calls atomic.Int32
		schema := database.NewSchemaInitializer(func(ctx context.Context) error {
			calls.Add(1)
			return nil
		}, time.Second)

		router := gin.New()
		router.Use(middleware.SchemaReadiness(schema))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failure is served as 500 on every request", func(t *testing.T) {
		schema := database.NewSchemaInitializer(func(ctx context.Context) error {
			return errors.New("permission denied")
		}, time.Second)

		reached := false
		router := gin.New()
		router.Use(middleware.SchemaReadiness(schema))
		router.GET("/x", func(c *gin.Context) { reached = true })

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		}
		assert.False(t, reached)
		assert.Equal(t, 0.0, promtestutil.ToFloat64(metrics.SchemaReady))
	})

	t.Run("caller giving up leaves the gauge alone", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		schema := database.NewSchemaInitializer(func(ctx context.Context) error {
			<-release
			return nil
		}, time.Minute)
		metrics.SchemaReady.Set(1)

		reached := false
		router := gin.New()
		router.Use(middleware.SchemaReadiness(schema))
		router.GET("/x", func(c *gin.Context) { reached = true })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(ctx))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, reached)
		assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.SchemaReady))
	})
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CORSMiddleware([]string{"https://app.example"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://app.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://app.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog())
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.ContextRequestIDKey)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(middleware.RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}
