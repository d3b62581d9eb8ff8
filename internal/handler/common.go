package handler

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	apperrors "protest-tracker/pkg/app_errors"
	"protest-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// RegisterValidators adds the "clock" rule (HH:MM or HH:MM:SS) to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			for _, layout := range []string{"15:04", "15:04:05"} {
				if _, err := time.Parse(layout, s); err == nil {
					return true
				}
			}
			return false
		})
	})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// ParamID parses a positive integer path parameter, answering 400 otherwise.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, apperrors.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, apperrors.ErrInvalidToken):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, apperrors.ErrNotOwner):
		log.Warn("Not owner")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this protest"})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrProtestNotFound):
		log.Warn("Protest not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Protest not found"})
	case errors.Is(err, apperrors.ErrOrganizerNotFound):
		log.Warn("Organizer not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Organizer not found"})
	case errors.Is(err, apperrors.ErrEmailTaken):
		log.Warn("Email taken")
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
