package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"fleet_dispatch/internal/models"
)

func TestRefuelRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewTruckService(db)
	truck := seedTruck(t, db, "B-2001", 400, 100, 25)

	for _, quantity := range []float64{0, -10} {
		_, err := svc.Refuel(truck.ID, quantity)

		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("quantity %v: expected ValidationError, got %v", quantity, err)
		}
	}
}

func TestRefuelCapsAtTankCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewTruckService(db)
	truck := seedTruck(t, db, "B-2002", 400, 380, 25)

	refuelled, err := svc.Refuel(truck.ID, 100)
	if err != nil {
		t.Fatalf("Refuel returned error: %v", err)
	}
	if refuelled.CurrentFuel != 400 {
		t.Errorf("CurrentFuel = %v, want 400 (capped)", refuelled.CurrentFuel)
	}
	if refuelled.FuelPercentage != 100 {
		t.Errorf("FuelPercentage = %d, want 100", refuelled.FuelPercentage)
	}
}

func TestRefuelUnknownTruck(t *testing.T) {
	db := newTestDB(t)
	svc := NewTruckService(db)

	_, err := svc.Refuel(999, 50)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteTruckBlockedByActiveMissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewTruckService(db)
	truck := seedTruck(t, db, "B-2003", 400, 100, 25)
	pending := seedMission(t, db, nil, &truck.ID, models.MissionPending)

	err := svc.Delete(truck.ID)

	var active *TruckHasActiveMissionsError
	if !errors.As(err, &active) {
		t.Fatalf("expected TruckHasActiveMissionsError, got %v", err)
	}
	if len(active.MissionIDs) != 1 || active.MissionIDs[0] != pending.ID {
		t.Errorf("MissionIDs = %v, want [%d]", active.MissionIDs, pending.ID)
	}

	if err := db.First(&models.Truck{}, truck.ID).Error; err != nil {
		t.Error("truck should still exist after blocked delete")
	}
}

func TestDeleteTruckListsAtMostFiveMissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewTruckService(db)
	truck := seedTruck(t, db, "B-2004", 400, 100, 25)

	for i := 0; i < 7; i++ {
		mission := seedMission(t, db, nil, &truck.ID, models.MissionPending)
		db.Model(mission).Update("container_number", fmt.Sprintf("MAEU%07d", i))
	}

	err := svc.Delete(truck.ID)

	var active *TruckHasActiveMissionsError
	if !errors.As(err, &active) {
		t.Fatalf("expected TruckHasActiveMissionsError, got %v", err)
	}
	if len(active.MissionIDs) != 5 {
		t.Errorf("listed %d mission ids, want at most 5", len(active.MissionIDs))
	}
}

func TestDeleteTruckWithOnlyFinishedMissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewTruckService(db)
	truck := seedTruck(t, db, "B-2005", 400, 100, 25)
	done := seedMission(t, db, nil, &truck.ID, models.MissionCompleted)
	seedMission(t, db, nil, &truck.ID, models.MissionCancelled)
	db.Create(&models.FuelEntry{TruckID: truck.ID, Quantity: 50, Cost: 750})

	if err := svc.Delete(truck.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if err := db.First(&models.Truck{}, truck.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Error("truck still present after delete")
	}

	var reloaded models.Mission
	db.First(&reloaded, done.ID)
	if reloaded.TruckID != nil {
		t.Errorf("mission truck_id = %v, want nil after truck delete", *reloaded.TruckID)
	}

	var entries int64
	db.Model(&models.FuelEntry{}).Where("truck_id = ?", truck.ID).Count(&entries)
	if entries != 0 {
		t.Errorf("fuel entries remaining = %d, want 0", entries)
	}
}
