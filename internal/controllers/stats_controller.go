package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/models"
)

// CreateWeeklyStats records a weekly snapshot for a driver. One row per
// (driver, week_start); a duplicate week is a conflict.
func CreateWeeklyStats(c *gin.Context) {
	var stats models.WeeklyStats
	if err := c.ShouldBindJSON(&stats); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, stats.DriverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	if err := config.DB.Create(&stats).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "stats for this driver and week already exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create weekly stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"weekly_stats": stats})
}

// ListWeeklyStats lists snapshots, optionally per driver.
func ListWeeklyStats(c *gin.Context) {
	query := config.DB.Preload("Driver").Order("week_start desc")
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}

	var stats []models.WeeklyStats
	if err := query.Find(&stats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch weekly stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetWeeklyStats fetches one snapshot.
func GetWeeklyStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var stats models.WeeklyStats
	if err := config.DB.Preload("Driver").First(&stats, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weekly stats not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly_stats": stats})
}

// UpdateWeeklyStats updates the aggregate fields of a snapshot.
func UpdateWeeklyStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var stats models.WeeklyStats
	if err := config.DB.First(&stats, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weekly stats not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input struct {
		TotalKilometers   *int     `json:"total_kilometers"`
		TotalHoursWorked  *float64 `json:"total_hours_worked"`
		CompletedMissions *int     `json:"completed_missions"`
		AverageSpeed      *int     `json:"average_speed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.TotalKilometers != nil {
		stats.TotalKilometers = *input.TotalKilometers
	}
	if input.TotalHoursWorked != nil {
		stats.TotalHoursWorked = *input.TotalHoursWorked
	}
	if input.CompletedMissions != nil {
		stats.CompletedMissions = *input.CompletedMissions
	}
	if input.AverageSpeed != nil {
		stats.AverageSpeed = *input.AverageSpeed
	}

	if err := config.DB.Save(&stats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update weekly stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly_stats": stats})
}

// DeleteWeeklyStats removes a snapshot.
func DeleteWeeklyStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&models.WeeklyStats{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete weekly stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weekly stats deleted"})
}
