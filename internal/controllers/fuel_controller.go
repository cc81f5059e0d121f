package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/models"
	"fleet_dispatch/internal/services"
)

// CreateFuelEntry appends a refuelling to the ledger and raises the
// truck's stock in the same transaction. Entries are immutable afterwards,
// so there is no update endpoint.
func CreateFuelEntry(c *gin.Context) {
	var input services.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.NewFuelService(config.DB).CreateEntry(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fuel_entry": entry})
}

// ListFuelEntries lists the ledger, optionally per truck.
func ListFuelEntries(c *gin.Context) {
	query := config.DB.Preload("Truck").Order("created_at desc")
	if truckID := c.Query("truck_id"); truckID != "" {
		query = query.Where("truck_id = ?", truckID)
	}

	var entries []models.FuelEntry
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch fuel entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GetFuelEntry fetches one ledger line.
func GetFuelEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var entry models.FuelEntry
	if err := config.DB.Preload("Truck").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fuel entry not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"fuel_entry": entry})
}
