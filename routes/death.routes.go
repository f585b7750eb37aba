package routes

import (
	"civilregistry/internal/controllers"
	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterDeathRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, deathController *controllers.DeathController) {
	deaths := api.Group("/deaths")
	deaths.Use(auth)
	{
		deaths.GET("", deathController.List)
		deaths.GET("/today", deathController.Today)
		deaths.GET("/:id", deathController.Get)

		recorders := middleware.RequireRoles(models.RoleAdmin, models.RoleDeathRecorder)
		deaths.POST("", recorders, deathController.Create)
		deaths.PUT("/:id", recorders, deathController.Update)
		deaths.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), deathController.Delete)
	}
}
