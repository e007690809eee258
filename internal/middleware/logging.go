package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// LoggingMiddleware tags every request with an id and logs its outcome.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		ctx := context.WithValue(c.Request.Context(), constants.CtxKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.GetLogger().Error("HTTP request", fields...)
		case latency > 2*time.Second:
			logger.GetLogger().Warn("Slow request", fields...)
		default:
			logger.GetLogger().Info("HTTP request", fields...)
		}
	}
}
