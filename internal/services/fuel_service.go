package services

import (
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_dispatch/internal/models"
)

// FuelService appends entries to the refuelling ledger. The ledger insert
// and the truck stock update are one transaction: a crash between them must
// not leave an entry unreflected in the tank, or the other way round.
type FuelService struct {
	db *gorm.DB
}

func NewFuelService(db *gorm.DB) *FuelService {
	return &FuelService{db: db}
}

// CreateEntryInput is the write-shape for a ledger entry. The cost is
// computed server-side from quantity and the posted pump price.
type CreateEntryInput struct {
	TruckID       uint    `json:"truck_id" binding:"required"`
	MissionID     *uint   `json:"mission_id"`
	Quantity      float64 `json:"quantity"`
	PricePerLiter float64 `json:"price_per_liter"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
}

func (s *FuelService) CreateEntry(input CreateEntryInput) (*models.FuelEntry, error) {
	if input.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if input.PricePerLiter <= 0 {
		return nil, &ValidationError{Field: "price_per_liter", Reason: "must be positive"}
	}

	var entry models.FuelEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var truck models.Truck
		if err := tx.First(&truck, input.TruckID).Error; err != nil {
			return err
		}

		entry = models.FuelEntry{
			TruckID:   truck.ID,
			MissionID: input.MissionID,
			Quantity:  input.Quantity,
			Cost:      round2(input.Quantity * input.PricePerLiter),
			Location:  input.Location,
			Notes:     input.Notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		truck.ApplyRefuel(input.Quantity)
		return tx.Save(&truck).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"truck_id": entry.TruckID,
		"liters":   entry.Quantity,
	}).Info("fuel entry recorded")
	return &entry, nil
}
