package routes

import (
	"civilregistry/internal/controllers"
	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, userController *controllers.UserController) {
	userRoutes := api.Group("/users")
	userRoutes.Use(auth)
	{
		userRoutes.GET("/stats", userController.GetStats)
	}
	adminRoutes := api.Group("/users")
	adminRoutes.Use(auth, middleware.RequireRoles(models.RoleAdmin))
	{
		adminRoutes.GET("", userController.ListUsers)
		adminRoutes.POST("", userController.CreateUser)
		adminRoutes.PUT("/:id", userController.UpdateUser)
		adminRoutes.DELETE("/:id", userController.DeleteUser)
	}
}
