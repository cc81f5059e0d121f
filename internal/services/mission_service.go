package services

import (
	"errors"
	"math"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_dispatch/internal/models"
)

// MissionService owns the mission lifecycle: creation with its validation
// gates, the pending → in_progress → completed/cancelled transitions, and
// the fuel and payroll side effects of completion. Every state change runs
// inside one transaction so the mission, truck and driver rows can never
// drift apart.
type MissionService struct {
	db        *gorm.DB
	fuelPrice float64
}

func NewMissionService(db *gorm.DB, fuelPrice float64) *MissionService {
	return &MissionService{db: db, fuelPrice: fuelPrice}
}

// Create validates and persists a new mission in pending state.
func (s *MissionService) Create(mission *models.Mission) (*models.Mission, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.createInTx(tx, mission)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(mission.ID)
}

// createInTx runs the creation validations and insert against tx so that
// RefuelAndCreate can join it with a fuel entry in one atomic unit.
func (s *MissionService) createInTx(tx *gorm.DB, mission *models.Mission) error {
	var truck *models.Truck
	if mission.TruckID != nil {
		var t models.Truck
		if err := tx.First(&t, *mission.TruckID).Error; err != nil {
			return err
		}
		truck = &t

		// A truck hauls one mission at a time.
		var conflict models.Mission
		q := tx.Where("truck_id = ? AND status = ?", *mission.TruckID, models.MissionInProgress)
		if mission.ID != 0 {
			q = q.Where("id <> ?", mission.ID)
		}
		if err := q.First(&conflict).Error; err == nil {
			return &TruckBusyError{MissionID: conflict.ID}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if mission.DriverID != nil {
		var driver models.Driver
		if err := tx.First(&driver, *mission.DriverID).Error; err != nil {
			return err
		}
		// Capacity gate uses the planned window, not any realtime estimate.
		if planned := mission.PlannedHours(); planned > 0 && !driver.HasCapacityFor(planned) {
			return &DriverOverCapacityError{
				DriverName: driver.Name,
				Remaining:  driver.RemainingHours(),
				Required:   planned,
			}
		}
	}

	if truck != nil && mission.Distance > 0 {
		mission.EstimatedFuelCost = round2(truck.FuelCost(float64(mission.Distance), s.fuelPrice))
	}
	mission.Status = models.MissionPending

	if err := tx.Create(mission).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"mission_id": mission.ID,
		"departure":  mission.DepartureCity,
		"arrival":    mission.ArrivalCity,
		"planned_h":  mission.PlannedHours(),
	}).Info("mission created")
	return nil
}

// UpdateMissionInput carries the mutable mission fields; nil means "leave
// unchanged".
type UpdateMissionInput struct {
	DriverID            *uint      `json:"driver_id"`
	TruckID             *uint      `json:"truck_id"`
	DepartureCity       *string    `json:"departure_city"`
	DepartureAddress    *string    `json:"departure_address"`
	ArrivalCity         *string    `json:"arrival_city"`
	ArrivalAddress      *string    `json:"arrival_address"`
	PickupTime          *time.Time `json:"pickup_time"`
	ExpectedDropoffTime *time.Time `json:"expected_dropoff_time"`
	ContainerNumber     *string    `json:"container_number"`
	ContainerType       *string    `json:"container_type"`
	Distance            *int       `json:"distance"`
}

// Update applies a partial update and re-runs the creation validations
// against the new truck/driver/window.
func (s *MissionService) Update(id uint, input UpdateMissionInput) (*models.Mission, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.First(&mission, id).Error; err != nil {
			return err
		}

		if input.DriverID != nil {
			mission.DriverID = input.DriverID
		}
		if input.TruckID != nil {
			mission.TruckID = input.TruckID
		}
		if input.DepartureCity != nil {
			mission.DepartureCity = *input.DepartureCity
		}
		if input.DepartureAddress != nil {
			mission.DepartureAddress = *input.DepartureAddress
		}
		if input.ArrivalCity != nil {
			mission.ArrivalCity = *input.ArrivalCity
		}
		if input.ArrivalAddress != nil {
			mission.ArrivalAddress = *input.ArrivalAddress
		}
		if input.PickupTime != nil {
			mission.PickupTime = *input.PickupTime
		}
		if input.ExpectedDropoffTime != nil {
			mission.ExpectedDropoffTime = *input.ExpectedDropoffTime
		}
		if input.ContainerNumber != nil {
			mission.ContainerNumber = *input.ContainerNumber
		}
		if input.ContainerType != nil {
			mission.ContainerType = *input.ContainerType
		}
		if input.Distance != nil {
			mission.Distance = *input.Distance
		}

		if mission.TruckID != nil {
			var truck models.Truck
			if err := tx.First(&truck, *mission.TruckID).Error; err != nil {
				return err
			}

			var conflict models.Mission
			err := tx.Where("truck_id = ? AND status = ? AND id <> ?",
				*mission.TruckID, models.MissionInProgress, mission.ID).
				First(&conflict).Error
			if err == nil {
				return &TruckBusyError{MissionID: conflict.ID}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if mission.Distance > 0 {
				mission.EstimatedFuelCost = round2(truck.FuelCost(float64(mission.Distance), s.fuelPrice))
			}
		}

		if mission.DriverID != nil {
			var driver models.Driver
			if err := tx.First(&driver, *mission.DriverID).Error; err != nil {
				return err
			}
			if planned := mission.PlannedHours(); planned > 0 && !driver.HasCapacityFor(planned) {
				return &DriverOverCapacityError{
					DriverName: driver.Name,
					Remaining:  driver.RemainingHours(),
					Required:   planned,
				}
			}
		}

		return tx.Save(&mission).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(id)
}

// Start moves a pending mission to in_progress and stamps the real start
// time.
func (s *MissionService) Start(id uint) (*models.Mission, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.First(&mission, id).Error; err != nil {
			return err
		}
		if !mission.CanStart() {
			return &InvalidTransitionError{Action: "started", Current: mission.Status}
		}

		now := time.Now()
		mission.Status = models.MissionInProgress
		mission.ActualStartTime = &now
		return tx.Save(&mission).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(id)
}

// Complete finishes an in_progress mission: stamps the end time, books the
// planned hours, burns fuel off the truck and credits the driver, all in
// one transaction. Crediting is guarded by the persistent hours_credited
// marker so a retried completion never pays twice.
func (s *MissionService) Complete(id uint) (*models.Mission, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Preload("Truck").Preload("Driver").First(&mission, id).Error; err != nil {
			return err
		}
		if !mission.CanComplete() {
			return &InvalidTransitionError{Action: "completed", Current: mission.Status}
		}

		now := time.Now()
		mission.Status = models.MissionCompleted
		mission.ActualEndTime = &now

		// Payroll hours come from the planned window; overruns and
		// underruns on the road do not change what the driver is owed.
		mission.HoursWorked = mission.PlannedHours()

		if mission.Truck != nil && mission.Distance > 0 {
			litersConsumed := mission.Truck.FuelNeeded(float64(mission.Distance))
			before := mission.Truck.CurrentFuel
			mission.Truck.ConsumeFuel(litersConsumed)
			if litersConsumed > before {
				logrus.WithFields(logrus.Fields{
					"mission_id": mission.ID,
					"truck_id":   mission.Truck.ID,
					"needed":     litersConsumed,
					"had":        before,
				}).Warn("fuel consumption exceeded stock, tank clamped to empty")
			}
			if err := tx.Save(mission.Truck).Error; err != nil {
				return err
			}

			actualCost := round2(litersConsumed * s.fuelPrice)
			mission.ActualFuelCost = &actualCost
		}

		if err := s.creditDriverHours(tx, &mission); err != nil {
			return err
		}

		if err := tx.Save(&mission).Error; err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"mission_id": mission.ID,
			"hours":      mission.HoursWorked,
		}).Info("mission completed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(id)
}

// creditDriverHours adds the planned hours to the driver exactly once per
// mission, using the durable hours_credited flag as the guard.
func (s *MissionService) creditDriverHours(tx *gorm.DB, mission *models.Mission) error {
	if mission.HoursCredited || mission.Driver == nil {
		return nil
	}
	hours := mission.PlannedHours()
	if hours <= 0 {
		return nil
	}

	mission.Driver.HoursWorked += hours
	if err := tx.Save(mission.Driver).Error; err != nil {
		return err
	}
	mission.HoursCredited = true

	logrus.WithFields(logrus.Fields{
		"mission_id":  mission.ID,
		"driver_id":   mission.Driver.ID,
		"hours_added": hours,
		"total":       mission.Driver.HoursWorked,
	}).Info("driver hours credited")
	return nil
}

// Cancel aborts a pending or in_progress mission. No fuel or payroll side
// effects.
func (s *MissionService) Cancel(id uint) (*models.Mission, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.First(&mission, id).Error; err != nil {
			return err
		}
		if !mission.CanCancel() {
			return &InvalidTransitionError{Action: "cancelled", Current: mission.Status}
		}

		now := time.Now()
		mission.Status = models.MissionCancelled
		mission.ActualEndTime = &now
		return tx.Save(&mission).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(id)
}

// CheckFuel runs the pre-flight fuel sufficiency check for a truck and
// distance without touching any state.
func (s *MissionService) CheckFuel(truckID uint, distanceKm float64) (*models.Truck, *models.FuelCheck, error) {
	var truck models.Truck
	if err := s.db.First(&truck, truckID).Error; err != nil {
		return nil, nil, err
	}
	check := truck.CheckFuel(distanceKm, s.fuelPrice)
	return &truck, &check, nil
}

// RefuelAndCreate optionally refuels the truck (writing the ledger entry)
// and creates the mission, atomically. A failed mission validation rolls
// the refuel back too.
func (s *MissionService) RefuelAndCreate(truckID uint, refuelAmount float64, mission *models.Mission) (*models.Mission, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var truck models.Truck
		if err := tx.First(&truck, truckID).Error; err != nil {
			return err
		}

		if refuelAmount > 0 {
			entry := models.FuelEntry{
				TruckID:  truck.ID,
				Quantity: refuelAmount,
				Cost:     round2(refuelAmount * s.fuelPrice),
				Location: "Fuel station (auto)",
				Notes:    "Automatic refuel at mission creation",
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			truck.ApplyRefuel(refuelAmount)
			if err := tx.Save(&truck).Error; err != nil {
				return err
			}
		}

		mission.TruckID = &truck.ID
		return s.createInTx(tx, mission)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(mission.ID)
}

// reload fetches a mission with its associations for the read-shape.
func (s *MissionService) reload(id uint) (*models.Mission, error) {
	var mission models.Mission
	if err := s.db.Preload("Driver").Preload("Truck").First(&mission, id).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
