package middleware

import (
	"errors"
	"net/http"

	"protest-tracker/internal/auth"
	apperrors "protest-tracker/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

const ContextOrganizerIDKey = "organizer_id"

// AuthMiddleware requires "Authorization: Bearer <token>". A missing header is 401;
// a malformed, invalid or expired token is 403.
func AuthMiddleware(tokens auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err == nil {
			var claims *auth.Claims
			if claims, err = tokens.Verify(token); err == nil {
				c.Set(ContextOrganizerIDKey, claims.OrganizerID)
				c.Next()
				return
			}
		}

		if errors.Is(err, apperrors.ErrMissingToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
	}
}

// OrganizerID returns the id stored by AuthMiddleware.
func OrganizerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextOrganizerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
