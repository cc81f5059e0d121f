package main

import (
	"fmt"
	"log"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/logger"
	"fleet_dispatch/internal/services"
)

// Zeroes the weekly hours of every active driver. Run from cron every
// Sunday at midnight:
//
//	0 0 * * 0  /usr/local/bin/resethours
func main() {
	logger.Setup()
	config.InitDB()

	svc := services.NewDriverService(config.DB, config.DriverDefaultPassword())
	count, err := svc.ResetWeeklyHours()
	if err != nil {
		log.Fatalf("weekly hours reset failed: %v", err)
	}

	fmt.Printf("✅ %d driver(s) reset\n", count)
}
