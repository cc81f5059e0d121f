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

// updateDriverInput defines the fields a client can send to update a
// driver's profile. Nil means "leave unchanged".
type updateDriverInput struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	ContractualHours *int    `json:"contractual_hours"`
	IsActive         *bool   `json:"is_active"`
}

func driverService() *services.DriverService {
	return services.NewDriverService(config.DB, config.DriverDefaultPassword())
}

// CreateDriver onboards a driver and provisions their login account in one
// transaction.
func CreateDriver(c *gin.Context) {
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := driverService().Create(&driver); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver.ToResponse()})
}

// ListDrivers returns every driver profile.
func ListDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := config.DB.Order("created_at desc").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch drivers"})
		return
	}

	responses := make([]*models.DriverResponse, 0, len(drivers))
	for i := range drivers {
		responses = append(responses, drivers[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetDriver fetches one driver by id.
func GetDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver.ToResponse()})
}

// UpdateDriver applies a partial profile update.
func UpdateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Email != nil {
		driver.Email = *input.Email
	}
	if input.Phone != nil {
		driver.Phone = *input.Phone
	}
	if input.ContractualHours != nil {
		driver.ContractualHours = *input.ContractualHours
	}
	if input.IsActive != nil {
		driver.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver.ToResponse()})
}

// DeleteDriver removes a driver and their account, cancelling any mission
// still underway first.
func DeleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := driverService().Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver and associated account removed"})
}

// DriverStats aggregates the driver's completed missions.
func DriverStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := driverService().Stats(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ResetWeeklyHours zeroes hours_worked for all active drivers. Hit by the
// weekly scheduler (or cmd/resethours on the box itself).
func ResetWeeklyHours(c *gin.Context) {
	count, err := driverService().ResetWeeklyHours()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weekly hours reset", "drivers_reset": count})
}
