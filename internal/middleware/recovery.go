package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

// RecoveryMiddleware converts panics into a 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.GetLogger().Error("Panic recovered",
					zap.Any("panic", recovered),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					constants.BuildResponse(http.StatusInternalServerError, "internal server error"))
			}
		}()
		c.Next()
	}
}
