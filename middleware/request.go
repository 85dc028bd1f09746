package middleware

import (
	"net/http"
	"time"

	"script9/constants"
	apperrors "script9/errors"
	"script9/response"
	"script9/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID propagates X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constants.ContextRequestIDKey, id)
		c.Writer.Header().Set(constants.HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger writes one entry per request after it completes.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logger.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"clientIp":  c.ClientIP(),
			"requestId": c.GetString(constants.ContextRequestIDKey),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Recovery turns panics into a 500 error body.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(logger.Fields{
			"requestId": c.GetString(constants.ContextRequestIDKey),
			"path":      c.Request.URL.Path,
		}).Error("panic: %v", recovered)
		response.HandleError(c, nil, apperrors.NewAppError("internal_error", "INTERNAL", "internal server error", nil))
	})
}
