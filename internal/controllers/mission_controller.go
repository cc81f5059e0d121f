package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_dispatch/internal/config"
	"fleet_dispatch/internal/models"
	"fleet_dispatch/internal/services"
)

// createMissionInput is the write-shape: bare driver/truck ids in, full
// nested objects out (see models.MissionResponse).
type createMissionInput struct {
	DriverID *uint `json:"driver_id"`
	TruckID  *uint `json:"truck_id"`

	DepartureCity    string   `json:"departure_city" binding:"required"`
	DepartureAddress string   `json:"departure_address"`
	DepartureLat     *float64 `json:"departure_lat"`
	DepartureLng     *float64 `json:"departure_lng"`

	ArrivalCity    string   `json:"arrival_city" binding:"required"`
	ArrivalAddress string   `json:"arrival_address"`
	ArrivalLat     *float64 `json:"arrival_lat"`
	ArrivalLng     *float64 `json:"arrival_lng"`

	PickupTime          time.Time `json:"pickup_time" binding:"required"`
	ExpectedDropoffTime time.Time `json:"expected_dropoff_time" binding:"required"`

	ContainerNumber string `json:"container_number"`
	ContainerType   string `json:"container_type"`
	Distance        int    `json:"distance"`
}

func (in *createMissionInput) toModel() *models.Mission {
	return &models.Mission{
		DriverID:            in.DriverID,
		TruckID:             in.TruckID,
		DepartureCity:       in.DepartureCity,
		DepartureAddress:    in.DepartureAddress,
		DepartureLat:        in.DepartureLat,
		DepartureLng:        in.DepartureLng,
		ArrivalCity:         in.ArrivalCity,
		ArrivalAddress:      in.ArrivalAddress,
		ArrivalLat:          in.ArrivalLat,
		ArrivalLng:          in.ArrivalLng,
		PickupTime:          in.PickupTime,
		ExpectedDropoffTime: in.ExpectedDropoffTime,
		ContainerNumber:     in.ContainerNumber,
		ContainerType:       in.ContainerType,
		Distance:            in.Distance,
	}
}

func missionService() *services.MissionService {
	return services.NewMissionService(config.DB, config.FuelPricePerLiter())
}

// CreateMission validates and creates a mission in pending state.
func CreateMission(c *gin.Context) {
	var input createMissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mission, err := missionService().Create(input.toModel())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mission": mission.ToResponse()})
}

// ListMissions lists missions, optionally filtered by status or driver.
func ListMissions(c *gin.Context) {
	query := config.DB.Preload("Driver").Preload("Truck").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}

	var missions []models.Mission
	if err := query.Find(&missions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch missions"})
		return
	}

	responses := make([]*models.MissionResponse, 0, len(missions))
	for i := range missions {
		responses = append(responses, missions[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetMission fetches one mission with its driver and truck resolved.
func GetMission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var mission models.Mission
	if err := config.DB.Preload("Driver").Preload("Truck").First(&mission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mission not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"mission": mission.ToResponse()})
}

// UpdateMission applies a partial update with the creation validations
// re-run.
func UpdateMission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input services.UpdateMissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	mission, err := missionService().Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mission": mission.ToResponse()})
}

// DeleteMission removes a mission record.
func DeleteMission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&models.Mission{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mission deleted"})
}

// StartMission moves a pending mission to in_progress.
func StartMission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	mission, err := missionService().Start(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mission": mission.ToResponse()})
}

// CompleteMission finishes an in_progress mission with its fuel and
// payroll side effects.
func CompleteMission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	mission, err := missionService().Complete(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mission": mission.ToResponse()})
}

// CancelMission aborts a pending or in_progress mission.
func CancelMission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	mission, err := missionService().Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mission": mission.ToResponse()})
}

// CheckFuel is the pre-flight fuel sufficiency check used before assigning
// a mission to a truck.
func CheckFuel(c *gin.Context) {
	var body struct {
		TruckID  uint    `json:"truck_id"`
		Distance float64 `json:"distance"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.TruckID == 0 || body.Distance <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "truck_id and a positive distance are required"})
		return
	}

	truck, check, err := missionService().CheckFuel(body.TruckID, body.Distance)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"truck":      truck,
		"fuel_check": check,
	})
}

// RefuelAndCreate composes an optional refuel with mission creation in one
// atomic unit.
func RefuelAndCreate(c *gin.Context) {
	var body struct {
		TruckID      uint                `json:"truck_id"`
		RefuelAmount float64             `json:"refuel_amount"`
		MissionData  *createMissionInput `json:"mission_data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.TruckID == 0 || body.MissionData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "truck_id and mission_data are required"})
		return
	}

	mission, err := missionService().RefuelAndCreate(body.TruckID, body.RefuelAmount, body.MissionData.toModel())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mission":       mission.ToResponse(),
		"truck":         mission.Truck,
		"refuel_amount": body.RefuelAmount,
	})
}
