package models

import "gorm.io/gorm"

// FuelEntry is one line of the append-only refuelling ledger. Entries are
// never updated after creation; their only side effect is raising the
// referenced truck's fuel stock at insert time.
type FuelEntry struct {
	gorm.Model
	TruckID   uint     `json:"truck_id" gorm:"not null;index"`
	Truck     *Truck   `gorm:"foreignKey:TruckID;constraint:OnDelete:CASCADE;" json:"truck,omitempty"`
	MissionID *uint    `json:"mission_id" gorm:"index"`
	Mission   *Mission `gorm:"foreignKey:MissionID;constraint:OnDelete:SET NULL;" json:"-"`

	Quantity float64 `json:"quantity"` // liters
	Cost     float64 `json:"cost"`
	Location string  `json:"location"`
	Notes    string  `json:"notes"`
}
