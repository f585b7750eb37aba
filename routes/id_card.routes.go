package routes

import (
	"civilregistry/internal/controllers"
	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterIDCardRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, idCardController *controllers.IDCardController) {
	ids := api.Group("/ids")
	ids.Use(auth)
	{
		ids.GET("", idCardController.List)
		ids.GET("/pending", idCardController.ListPending)
		ids.GET("/verified", idCardController.ListVerified)
		ids.GET("/rejected", idCardController.ListRejected)
		ids.GET("/:id", idCardController.Get)

		recorders := middleware.RequireRoles(models.RoleAdmin, models.RoleIDCardRecorder)
		ids.POST("", recorders, idCardController.Submit)
		ids.PUT("/:id", recorders, idCardController.Update)
		ids.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), idCardController.Delete)
		ids.PATCH("/:id/status", middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer), idCardController.SetStatus)
	}
}
