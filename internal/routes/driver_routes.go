package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.RequireAuth())
	{
		drivers.GET("/", controllers.ListDrivers)
		drivers.GET("/:id", controllers.GetDriver)
		drivers.GET("/:id/stats", controllers.DriverStats)
	}

	admin := r.Group("/drivers")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/", controllers.CreateDriver)
		admin.PATCH("/:id", controllers.UpdateDriver)
		admin.DELETE("/:id", controllers.DeleteDriver)
		// Hit once a week by the external scheduler.
		admin.POST("/reset_hours", controllers.ResetWeeklyHours)
	}
}
