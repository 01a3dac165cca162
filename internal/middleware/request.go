package middleware

import (
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(common.ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"request_id", common.GetRequestID(c),
		}
		if p, ok := common.GetPrincipal(c); ok {
			args = append(args, "user_id", p.UserID)
		}
		switch {
		case status >= 500:
			logger.Error("request", args...)
		case status >= 400:
			logger.Info("request", args...)
		default:
			logger.Debug("request", args...)
		}
	}
}
