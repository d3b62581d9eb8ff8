package middleware

import (
	"errors"
	"net/http"

	"protest-tracker/internal/database"
	"protest-tracker/internal/metrics"
	apperrors "protest-tracker/pkg/app_errors"
	"protest-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchemaReadiness holds every request until the schema exists. A cached
// initialization failure answers 500 on every request; a caller that gives up
// while the shared work is still running gets 503 and does not affect the gauge.
func SchemaReadiness(schema database.SchemaInitializer) gin.HandlerFunc {
	log := logger.WithComponent("middleware")
	return func(c *gin.Context) {
		err := schema.EnsureReady(c.Request.Context())
		switch {
		case err == nil:
			metrics.SchemaReady.Set(1)
			c.Next()
		case errors.Is(err, apperrors.ErrSchemaNotReady):
			metrics.SchemaReady.Set(0)
			log.Error("Schema not ready", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		default:
			log.Debug("Request ended while waiting for schema", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
		}
	}
}
