package models

import (
	"gorm.io/gorm"
)

// Driver is a chauffeur on the company payroll. Each driver is backed by a
// User account (provisioned when the driver record is created) so they can
// log in from the mobile app.
type Driver struct {
	gorm.Model
	UserID           *uint   `json:"user_id" gorm:"uniqueIndex"`
	User             *User   `gorm:"foreignKey:UserID" json:"-"`
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" gorm:"unique" binding:"required,email"`
	Phone            string  `json:"phone"`
	ContractualHours int     `json:"contractual_hours" gorm:"default:40"`
	HoursWorked      float64 `json:"hours_worked" gorm:"default:0"`
	IsActive         bool    `json:"is_active" gorm:"default:true"`
}

// RemainingHours returns the hours the driver still has available this week.
func (d *Driver) RemainingHours() float64 {
	remaining := float64(d.ContractualHours) - d.HoursWorked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasCapacityFor reports whether the driver can take on a mission of the
// given estimated length without exceeding their contractual hours.
func (d *Driver) HasCapacityFor(estimatedHours float64) bool {
	return d.RemainingHours() >= estimatedHours
}
