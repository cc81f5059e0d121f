package main

import (
	"log"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/logger"
	"fleet_dispatch/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (middleware, CORS and all route groups)
	r := routes.SetupRouter()

	log.Println("🚀 Server running at :8080")
	log.Fatal(r.Run("0.0.0.0:8080"))
}
