package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
)

const maxUserIDLength = 128

// RequestLogger logs one line per request after the handler ran.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "err", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// UserIDMiddleware reads the :userId path parameter, rejects empty or
// oversized ids and stores it in the context for handlers.
func UserIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.Param("userId"))
		if userID == "" {
			abortWithError(c, http.StatusBadRequest, "User ID is required")
			return
		}
		if len(userID) > maxUserIDLength {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("User ID must be at most %d characters", maxUserIDLength))
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}
