package models

import (
	"time"

	"gorm.io/gorm"
)

// WeeklyStats is an aggregated weekly activity snapshot per driver, one row
// per (driver, week_start).
type WeeklyStats struct {
	gorm.Model
	DriverID uint    `json:"driver_id" gorm:"not null;uniqueIndex:idx_driver_week"`
	Driver   *Driver `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE;" json:"driver,omitempty"`

	WeekStart time.Time `json:"week_start" gorm:"uniqueIndex:idx_driver_week"`
	WeekEnd   time.Time `json:"week_end"`

	TotalKilometers   int     `json:"total_kilometers" gorm:"default:0"`
	TotalHoursWorked  float64 `json:"total_hours_worked" gorm:"default:0"`
	CompletedMissions int     `json:"completed_missions" gorm:"default:0"`
	AverageSpeed      int     `json:"average_speed" gorm:"default:0"`
}
