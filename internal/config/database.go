package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleet_dispatch/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB loads the environment and opens the Postgres connection used by
// every controller and service, then migrates the schema.
func InitDB() {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "dispatch")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	DB = db
}

// Migrate applies the schema for every entity. Split out so tests can run
// it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.Truck{},
		&models.Mission{},
		&models.FuelEntry{},
		&models.Notification{},
		&models.WeeklyStats{},
	)
}

// FuelPricePerLiter is the price used for every fuel cost computation.
// Configurable per deployment; defaults to the Moroccan diesel price the
// fleet operates against.
func FuelPricePerLiter() float64 {
	if v := os.Getenv("FUEL_PRICE_PER_LITER"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			return price
		}
		log.Printf("invalid FUEL_PRICE_PER_LITER %q, using default", v)
	}
	return 15.0
}

// DriverDefaultPassword is the placeholder credential assigned to a driver
// account at provisioning time. Drivers are expected to change it on first
// login.
func DriverDefaultPassword() string {
	return getEnv("DRIVER_DEFAULT_PASSWORD", "temp123456")
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
