package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_dispatch/internal/services"
)

// respondServiceError translates domain errors into HTTP responses. Rule
// violations are the client's problem (400), missing rows are 404, anything
// else is logged and surfaced as 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		validation   *services.ValidationError
		truckBusy    *services.TruckBusyError
		overCapacity *services.DriverOverCapacityError
		transition   *services.InvalidTransitionError
		activeTruck  *services.TruckHasActiveMissionsError
	)

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})

	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})

	case errors.As(err, &truckBusy):
		c.JSON(http.StatusBadRequest, gin.H{"error": truckBusy.Error(), "conflicting_mission_id": truckBusy.MissionID})

	case errors.As(err, &overCapacity):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           overCapacity.Error(),
			"remaining_hours": overCapacity.Remaining,
			"required_hours":  overCapacity.Required,
		})

	case errors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{"error": transition.Error(), "current_status": transition.Current})

	case errors.As(err, &activeTruck):
		c.JSON(http.StatusBadRequest, gin.H{"error": activeTruck.Error(), "mission_ids": activeTruck.MissionIDs})

	default:
		logrus.WithError(err).Error("unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseID reads the :id route parameter. A non-numeric id aborts with 400
// and returns false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}
