package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TruckRoutes(r *gin.Engine) {
	trucks := r.Group("/trucks")
	trucks.Use(middleware.RequireAuth())
	{
		trucks.GET("/", controllers.ListTrucks)
		trucks.GET("/:id", controllers.GetTruck)
		trucks.POST("/:id/refuel", controllers.RefuelTruck)
	}

	admin := r.Group("/trucks")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/", controllers.CreateTruck)
		admin.PATCH("/:id", controllers.UpdateTruck)
		admin.DELETE("/:id", controllers.DeleteTruck)
	}
}
