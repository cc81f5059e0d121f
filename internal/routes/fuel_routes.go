package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func FuelRoutes(r *gin.Engine) {
	fuel := r.Group("/fuel")
	fuel.Use(middleware.RequireAuth())
	{
		fuel.POST("/", controllers.CreateFuelEntry)
		fuel.GET("/", controllers.ListFuelEntries)
		fuel.GET("/:id", controllers.GetFuelEntry)
		// The ledger is append-only: no update or delete.
	}
}
