package services

import (
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_dispatch/internal/models"
)

// TruckService covers the truck operations that carry business rules:
// refuelling and the guarded delete.
type TruckService struct {
	db *gorm.DB
}

func NewTruckService(db *gorm.DB) *TruckService {
	return &TruckService{db: db}
}

// Refuel tops the tank up by quantity liters, capped at tank capacity.
func (s *TruckService) Refuel(id uint, quantity float64) (*models.Truck, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	var truck models.Truck
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&truck, id).Error; err != nil {
			return err
		}
		truck.ApplyRefuel(quantity)
		return tx.Save(&truck).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"truck_id":     truck.ID,
		"current_fuel": truck.CurrentFuel,
	}).Info("truck refuelled")
	return &truck, nil
}

// Delete removes a truck unless missions still depend on it. Unlike driver
// removal, trucks are never force-cancelled out of their missions.
func (s *TruckService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var truck models.Truck
		if err := tx.First(&truck, id).Error; err != nil {
			return err
		}

		var active []models.Mission
		if err := tx.Where("truck_id = ? AND status IN ?",
			truck.ID, []models.MissionStatus{models.MissionPending, models.MissionInProgress}).
			Limit(5).Find(&active).Error; err != nil {
			return err
		}
		if len(active) > 0 {
			ids := make([]uint, 0, len(active))
			for _, m := range active {
				ids = append(ids, m.ID)
			}
			return &TruckHasActiveMissionsError{MissionIDs: ids}
		}

		// Finished missions keep their history but drop the truck reference;
		// the refuel ledger goes with the truck.
		if err := tx.Model(&models.Mission{}).Where("truck_id = ?", truck.ID).
			Update("truck_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("truck_id = ?", truck.ID).Delete(&models.FuelEntry{}).Error; err != nil {
			return err
		}

		return tx.Delete(&truck).Error
	})
}
