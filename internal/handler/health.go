package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/pkg/cache"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewHealthHandler(db *gorm.DB, cacheClient *cache.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "healthy"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "unhealthy"
	}

	cacheStatus := "healthy"
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		cacheStatus = "unavailable"
	}

	status := http.StatusOK
	if dbStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    dbStatus,
		"cache":     cacheStatus,
		"timestamp": time.Now(),
	})
}
