package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/models"
)

// CreateNotification records a notification for a driver.
func CreateNotification(c *gin.Context) {
	var notification models.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, notification.DriverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	if err := config.DB.Create(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create notification: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// ListNotifications lists notifications, optionally per driver or unread
// only.
func ListNotifications(c *gin.Context) {
	query := config.DB.Order("created_at desc")
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// GetNotification fetches one notification.
func GetNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var notification models.Notification
	if err := config.DB.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

// MarkNotificationRead flips the read flag.
func MarkNotificationRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var notification models.Notification
	if err := config.DB.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	notification.IsRead = true
	if err := config.DB.Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification read", "notification": notification})
}

// DeleteNotification removes a notification.
func DeleteNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&models.Notification{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
