package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/models"
	"fleet_dispatch/internal/services"
)

type updateTruckInput struct {
	Plate          *string  `json:"plate"`
	Brand          *string  `json:"brand"`
	Capacity       *int     `json:"capacity"`
	TankCapacity   *int     `json:"tank_capacity"`
	AvgConsumption *float64 `json:"avg_consumption"`
	IsAvailable    *bool    `json:"is_available"`
}

// CreateTruck registers a new truck.
func CreateTruck(c *gin.Context) {
	var truck models.Truck
	if err := c.ShouldBindJSON(&truck); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&truck).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "plate already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"truck": truck})
}

// ListTrucks lists the fleet.
func ListTrucks(c *gin.Context) {
	var trucks []models.Truck
	if err := config.DB.Order("created_at desc").Find(&trucks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch trucks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trucks})
}

// GetTruck fetches one truck by id.
func GetTruck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var truck models.Truck
	if err := config.DB.First(&truck, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"truck": truck})
}

// UpdateTruck applies a partial update. fuel_percentage is derived and
// cannot be set; current_fuel only ever moves through refuels and mission
// completions.
func UpdateTruck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var truck models.Truck
	if err := config.DB.First(&truck, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input updateTruckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Plate != nil {
		truck.Plate = *input.Plate
	}
	if input.Brand != nil {
		truck.Brand = *input.Brand
	}
	if input.Capacity != nil {
		truck.Capacity = *input.Capacity
	}
	if input.TankCapacity != nil {
		truck.TankCapacity = *input.TankCapacity
	}
	if input.AvgConsumption != nil {
		truck.AvgConsumption = *input.AvgConsumption
	}
	if input.IsAvailable != nil {
		truck.IsAvailable = *input.IsAvailable
	}

	if err := config.DB.Save(&truck).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "plate already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"truck": truck})
}

// DeleteTruck removes a truck unless missions still depend on it.
func DeleteTruck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.NewTruckService(config.DB).Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Truck deleted"})
}

// RefuelTruck tops up a truck's tank by the posted quantity.
func RefuelTruck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck, err := services.NewTruckService(config.DB).Refuel(id, body.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Truck refuelled",
		"current_fuel": truck.CurrentFuel,
		"truck":        truck,
	})
}
