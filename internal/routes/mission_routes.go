package routes

import (
	"fleet_dispatch/internal/controllers"
	"fleet_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func MissionRoutes(r *gin.Engine) {
	missions := r.Group("/missions")
	missions.Use(middleware.RequireAuth())
	{
		missions.GET("/", controllers.ListMissions)
		missions.GET("/:id", controllers.GetMission)

		// Lifecycle actions, driven from the driver app.
		missions.POST("/:id/start", controllers.StartMission)
		missions.POST("/:id/complete", controllers.CompleteMission)
		missions.POST("/:id/cancel", controllers.CancelMission)

		missions.POST("/check_fuel", controllers.CheckFuel)
	}

	admin := r.Group("/missions")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/", controllers.CreateMission)
		admin.POST("/refuel_and_create", controllers.RefuelAndCreate)
		admin.PATCH("/:id", controllers.UpdateMission)
		admin.DELETE("/:id", controllers.DeleteMission)
	}
}
