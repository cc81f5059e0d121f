package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/change_password", middleware.RequireAuth(), controllers.ChangePassword)
	}
}
