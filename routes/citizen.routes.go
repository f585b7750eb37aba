package routes

import (
	"civilregistry/internal/controllers"
	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterCitizenRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, citizenController *controllers.CitizenController) {
	citizens := api.Group("/citizens")
	citizens.Use(auth)
	{
		citizens.GET("", citizenController.All)
		citizens.GET("/verified-ids", citizenController.VerifiedIDs)
		citizens.GET("/verified-births", citizenController.VerifiedBirths)
	}
}

func RegisterNotificationRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, notificationController *controllers.NotificationController) {
	notifications := api.Group("/notifications")
	notifications.Use(auth, middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer))
	{
		notifications.POST("/send", notificationController.Send)
	}
}
