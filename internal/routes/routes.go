package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleet_dispatch/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.Prometheus())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	AuthRoutes(r)
	DriverRoutes(r)
	TruckRoutes(r)
	MissionRoutes(r)
	FuelRoutes(r)
	NotificationRoutes(r)
	StatsRoutes(r)

	return r
}
