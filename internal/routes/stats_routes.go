package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func StatsRoutes(r *gin.Engine) {
	stats := r.Group("/weekly-stats")
	stats.Use(middleware.RequireAuth())
	{
		stats.GET("/", controllers.ListWeeklyStats)
		stats.GET("/:id", controllers.GetWeeklyStats)
	}

	admin := r.Group("/weekly-stats")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/", controllers.CreateWeeklyStats)
		admin.PATCH("/:id", controllers.UpdateWeeklyStats)
		admin.DELETE("/:id", controllers.DeleteWeeklyStats)
	}
}
