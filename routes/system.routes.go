package routes

import (
	"strings"

	"civilregistry/internal/controllers"
	"civilregistry/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSystemRoutes mounts the unauthenticated operational endpoints.
func RegisterSystemRoutes(router *gin.Engine, healthController *controllers.HealthController, gatherer prometheus.Gatherer) {
	router.GET("/", healthController.Root)
	router.GET("/debug/database", healthController.Database)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterUploadRoutes serves stored ID card photos under their public prefix.
func RegisterUploadRoutes(router *gin.Engine, dir string) {
	router.Static(strings.TrimSuffix(storage.PublicPrefix, "/"), dir)
}
