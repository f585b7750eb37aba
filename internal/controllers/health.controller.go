package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DatabasePinger func(ctx context.Context) error

type CacheStatus interface {
	Status(ctx context.Context) (map[string]interface{}, error)
}

type HealthController struct {
	pingDB DatabasePinger
	cache  CacheStatus
}

func NewHealthController(pingDB DatabasePinger, cache CacheStatus) *HealthController {
	return &HealthController{pingDB: pingDB, cache: cache}
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (hc *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Civil Registry API is running",
	})
}

// Database godoc
// @Summary Database and cache health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /debug/database [get]
func (hc *HealthController) Database(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result := gin.H{"status": "success", "database": "connected"}
	code := http.StatusOK
	if err := hc.pingDB(ctx); err != nil {
		code = http.StatusServiceUnavailable
		result["status"] = "error"
		result["database"] = "unavailable"
		result["error"] = err.Error()
	}

	if hc.cache != nil {
		if status, err := hc.cache.Status(ctx); err != nil {
			result["cache"] = gin.H{"connected": false, "error": err.Error()}
		} else {
			result["cache"] = status
		}
	} else {
		result["cache"] = gin.H{"connected": false}
	}
	c.JSON(code, result)
}
