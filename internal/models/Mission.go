package models

import (
	"time"

	"gorm.io/gorm"
)

type MissionStatus string

const (
	MissionPending    MissionStatus = "pending"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
	MissionCancelled  MissionStatus = "cancelled"
)

// Mission is a single point-to-point container transport job assigned to
// one driver and one truck. Driver and truck references survive entity
// deletion as NULLs; a mission row is never cascade-deleted.
type Mission struct {
	gorm.Model
	DriverID *uint   `json:"driver_id" gorm:"index"`
	Driver   *Driver `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"driver,omitempty"`
	TruckID  *uint   `json:"truck_id" gorm:"index"`
	Truck    *Truck  `gorm:"foreignKey:TruckID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"truck,omitempty"`

	DepartureCity    string    `json:"departure_city" binding:"required"`
	DepartureAddress string    `json:"departure_address"`
	DepartureLat     *float64  `json:"departure_lat"`
	DepartureLng     *float64  `json:"departure_lng"`
	PickupTime       time.Time `json:"pickup_time" binding:"required"`

	ArrivalCity         string    `json:"arrival_city" binding:"required"`
	ArrivalAddress      string    `json:"arrival_address"`
	ArrivalLat          *float64  `json:"arrival_lat"`
	ArrivalLng          *float64  `json:"arrival_lng"`
	ExpectedDropoffTime time.Time `json:"expected_dropoff_time" binding:"required"`

	ContainerNumber string `json:"container_number"`
	ContainerType   string `json:"container_type"` // "20ft", "40ft", "40ft HC"

	Distance          int      `json:"distance"` // km
	EstimatedFuelCost float64  `json:"estimated_fuel_cost"`
	ActualFuelCost    *float64 `json:"actual_fuel_cost"`

	Status MissionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`

	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`
	HoursWorked     float64    `json:"hours_worked" gorm:"default:0"`

	// HoursCredited marks that the driver has been paid the planned hours
	// for this mission. It is persisted so retried completion requests, and
	// completions replayed after a restart, credit at most once.
	HoursCredited bool `json:"hours_credited" gorm:"default:false"`
}

// PlannedHours is the scheduled duration of the mission in hours. Payroll
// accounting uses this, never the actual elapsed time.
func (m *Mission) PlannedHours() float64 {
	if m.PickupTime.IsZero() || m.ExpectedDropoffTime.IsZero() {
		return 0
	}
	return m.ExpectedDropoffTime.Sub(m.PickupTime).Hours()
}

func (m *Mission) CanStart() bool {
	return m.Status == MissionPending
}

func (m *Mission) CanComplete() bool {
	return m.Status == MissionInProgress
}

func (m *Mission) CanCancel() bool {
	return m.Status == MissionPending || m.Status == MissionInProgress
}
