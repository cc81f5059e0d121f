package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	DriverID uint    `json:"driver_id" gorm:"not null;index"`
	Driver   *Driver `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE;" json:"-"`

	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
	Type    string `json:"type" gorm:"default:'general'"` // "mission", "fuel", "maintenance", "general"
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
