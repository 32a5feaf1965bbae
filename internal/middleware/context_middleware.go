package middleware

import (
	"time"

	"hris-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger to the request context and
// logs one line per request. It expects RequestID to run first.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		reqLogger := logger.With(
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))

		c.Next()

		reqLogger.Info("request completed",
			zap.Int("status", c.Writer.Status()),
			zap.String("user_id", c.GetString("user_id")),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
