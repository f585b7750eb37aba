package routes

import (
	"civilregistry/internal/controllers"
	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterBirthRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, birthController *controllers.BirthController) {
	births := api.Group("/births")
	births.Use(auth)
	{
		births.GET("", birthController.List)
		births.GET("/pending", birthController.ListPending)
		births.GET("/verified", birthController.ListVerified)
		births.GET("/rejected", birthController.ListRejected)
		births.GET("/:id", birthController.Get)

		births.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleBirthRecorder), birthController.Submit)

		review := middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer)
		births.POST("/approve/:id", review, birthController.Approve)
		births.POST("/reject/:id", review, birthController.Reject)
		births.PATCH("/:id/status", review, birthController.SetStatus)
	}
}
