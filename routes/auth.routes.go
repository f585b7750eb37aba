package routes

import (
	"civilregistry/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, authController *controllers.AuthController) {
	authRoutesPublic := api.Group("/auth")
	{
		authRoutesPublic.POST("/register", authController.Register)
		authRoutesPublic.POST("/login", authController.Login)
	}
	authRoutesPrivate := api.Group("/auth")
	authRoutesPrivate.Use(auth)
	{
		authRoutesPrivate.GET("/me", authController.Me)
		authRoutesPrivate.PUT("/profile", authController.UpdateProfile)
		authRoutesPrivate.PUT("/change-password", authController.ChangePassword)
	}
}
