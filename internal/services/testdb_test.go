package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/models"
)

// newTestDB opens a per-test in-memory database with the full schema. The
// shared-cache URI keeps the database alive across the pooled connections
// GORM opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedDriver(t *testing.T, db *gorm.DB, name string, contractual int, worked float64) *models.Driver {
	t.Helper()
	driver := &models.Driver{
		Name:             name,
		Email:            fmt.Sprintf("%s@fleet.test", name),
		ContractualHours: contractual,
		HoursWorked:      worked,
		IsActive:         true,
	}
	if err := db.Create(driver).Error; err != nil {
		t.Fatalf("seeding driver: %v", err)
	}
	return driver
}

func seedTruck(t *testing.T, db *gorm.DB, plate string, tank int, fuel, consumption float64) *models.Truck {
	t.Helper()
	truck := &models.Truck{
		Plate:          plate,
		TankCapacity:   tank,
		CurrentFuel:    fuel,
		AvgConsumption: consumption,
		IsAvailable:    true,
	}
	if err := db.Create(truck).Error; err != nil {
		t.Fatalf("seeding truck: %v", err)
	}
	return truck
}

// seedMission inserts a mission row directly, bypassing service
// validations, so tests can set up arbitrary states.
func seedMission(t *testing.T, db *gorm.DB, driverID, truckID *uint, status models.MissionStatus) *models.Mission {
	t.Helper()
	mission := &models.Mission{
		DriverID:            driverID,
		TruckID:             truckID,
		DepartureCity:       "Casablanca",
		ArrivalCity:         "Tanger",
		PickupTime:          time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		ExpectedDropoffTime: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		ContainerNumber:     "MAEU1234567",
		ContainerType:       "40ft",
		Distance:            100,
		Status:              status,
	}
	if err := db.Create(mission).Error; err != nil {
		t.Fatalf("seeding mission: %v", err)
	}
	return mission
}

func newMissionInput(driverID, truckID *uint) *models.Mission {
	return &models.Mission{
		DriverID:            driverID,
		TruckID:             truckID,
		DepartureCity:       "Casablanca",
		ArrivalCity:         "Tanger",
		PickupTime:          time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		ExpectedDropoffTime: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		ContainerNumber:     "MAEU1234567",
		ContainerType:       "40ft",
		Distance:            100,
	}
}
