package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(r *gin.Engine) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.RequireAuth())
	{
		notifications.GET("/", controllers.ListNotifications)
		notifications.GET("/:id", controllers.GetNotification)
		notifications.POST("/:id/read", controllers.MarkNotificationRead)
	}

	admin := r.Group("/notifications")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/", controllers.CreateNotification)
		admin.DELETE("/:id", controllers.DeleteNotification)
	}
}
