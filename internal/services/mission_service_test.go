package services

import (
	"errors"
	"testing"
	"time"

	"fleet_dispatch/internal/models"
)

const testFuelPrice = 15.0

func TestCreateMissionComputesEstimatedCost(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1001", 400, 200, 25)

	mission, err := svc.Create(newMissionInput(nil, &truck.ID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// 100km * 25L/100km * 15/L
	if mission.EstimatedFuelCost != 375 {
		t.Errorf("EstimatedFuelCost = %v, want 375", mission.EstimatedFuelCost)
	}
	if mission.Status != models.MissionPending {
		t.Errorf("Status = %q, want pending", mission.Status)
	}
}

func TestCreateMissionWithoutTruckDefaultsCostToZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)

	mission, err := svc.Create(newMissionInput(nil, nil))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if mission.EstimatedFuelCost != 0 {
		t.Errorf("EstimatedFuelCost = %v, want 0", mission.EstimatedFuelCost)
	}
}

func TestCreateMissionRejectsBusyTruck(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1002", 400, 200, 25)
	running := seedMission(t, db, nil, &truck.ID, models.MissionInProgress)

	_, err := svc.Create(newMissionInput(nil, &truck.ID))

	var busy *TruckBusyError
	if !errors.As(err, &busy) {
		t.Fatalf("expected TruckBusyError, got %v", err)
	}
	if busy.MissionID != running.ID {
		t.Errorf("conflicting mission id = %d, want %d", busy.MissionID, running.ID)
	}

	var count int64
	db.Model(&models.Mission{}).Count(&count)
	if count != 1 {
		t.Errorf("mission count = %d, want 1 (no new row persisted)", count)
	}
}

func TestCreateMissionRejectsOverCapacityDriver(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	driver := seedDriver(t, db, "yassine", 40, 38)

	// Planned window is 6h, driver only has 2h left.
	_, err := svc.Create(newMissionInput(&driver.ID, nil))

	var over *DriverOverCapacityError
	if !errors.As(err, &over) {
		t.Fatalf("expected DriverOverCapacityError, got %v", err)
	}
	if over.Remaining != 2 {
		t.Errorf("Remaining = %v, want 2", over.Remaining)
	}
	if over.Required != 6 {
		t.Errorf("Required = %v, want 6", over.Required)
	}

	var count int64
	db.Model(&models.Mission{}).Count(&count)
	if count != 0 {
		t.Errorf("mission count = %d, want 0", count)
	}
}

func TestStartMission(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	mission := seedMission(t, db, nil, nil, models.MissionPending)

	started, err := svc.Start(mission.ID)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if started.Status != models.MissionInProgress {
		t.Errorf("Status = %q, want in_progress", started.Status)
	}
	if started.ActualStartTime == nil {
		t.Error("ActualStartTime not set")
	}
}

func TestStartMissionRejectsNonPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)

	for _, status := range []models.MissionStatus{
		models.MissionInProgress, models.MissionCompleted, models.MissionCancelled,
	} {
		mission := seedMission(t, db, nil, nil, status)

		_, err := svc.Start(mission.ID)

		var transition *InvalidTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("%s: expected InvalidTransitionError, got %v", status, err)
		}
		if transition.Current != status {
			t.Errorf("Current = %q, want %q", transition.Current, status)
		}

		var reloaded models.Mission
		db.First(&reloaded, mission.ID)
		if reloaded.Status != status {
			t.Errorf("status changed to %q after rejected start", reloaded.Status)
		}
	}
}

func TestCompleteMission(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	driver := seedDriver(t, db, "karim", 40, 10)
	truck := seedTruck(t, db, "A-1003", 400, 100, 25)
	mission := seedMission(t, db, &driver.ID, &truck.ID, models.MissionInProgress)

	completed, err := svc.Complete(mission.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if completed.Status != models.MissionCompleted {
		t.Errorf("Status = %q, want completed", completed.Status)
	}
	if completed.ActualEndTime == nil {
		t.Error("ActualEndTime not set")
	}
	// Planned window 08:00-14:00, regardless of actual timing.
	if completed.HoursWorked != 6 {
		t.Errorf("HoursWorked = %v, want 6", completed.HoursWorked)
	}
	if !completed.HoursCredited {
		t.Error("HoursCredited not set")
	}
	if completed.ActualFuelCost == nil || *completed.ActualFuelCost != 375 {
		t.Errorf("ActualFuelCost = %v, want 375", completed.ActualFuelCost)
	}

	var reloadedTruck models.Truck
	db.First(&reloadedTruck, truck.ID)
	if reloadedTruck.CurrentFuel != 75 {
		t.Errorf("truck fuel = %v, want 75 (100 - 25 consumed)", reloadedTruck.CurrentFuel)
	}

	var reloadedDriver models.Driver
	db.First(&reloadedDriver, driver.ID)
	if reloadedDriver.HoursWorked != 16 {
		t.Errorf("driver hours = %v, want 16 (10 + 6 planned)", reloadedDriver.HoursWorked)
	}
}

func TestCompleteMissionClampsFuelAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1004", 400, 10, 25)
	mission := seedMission(t, db, nil, &truck.ID, models.MissionInProgress)

	// Needs 25L but only 10L on board; completion clamps, no error.
	if _, err := svc.Complete(mission.ID); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	var reloaded models.Truck
	db.First(&reloaded, truck.ID)
	if reloaded.CurrentFuel != 0 {
		t.Errorf("truck fuel = %v, want 0", reloaded.CurrentFuel)
	}
	if reloaded.FuelPercentage != 0 {
		t.Errorf("fuel percentage = %d, want 0", reloaded.FuelPercentage)
	}
}

func TestCompleteMissionRejectsNonInProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	mission := seedMission(t, db, nil, nil, models.MissionPending)

	_, err := svc.Complete(mission.ID)

	var transition *InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestCompleteMissionCreditsHoursExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	driver := seedDriver(t, db, "salah", 40, 0)
	mission := seedMission(t, db, &driver.ID, nil, models.MissionInProgress)

	if _, err := svc.Complete(mission.ID); err != nil {
		t.Fatalf("first Complete returned error: %v", err)
	}

	// A duplicate completion trigger lands on a completed mission and is
	// rejected outright.
	if _, err := svc.Complete(mission.ID); err == nil {
		t.Fatal("second Complete should have been rejected")
	}

	// Even if the status is forced back to in_progress (e.g. a partially
	// replayed request after a crash), the persisted marker still blocks a
	// second credit.
	db.Model(&models.Mission{}).Where("id = ?", mission.ID).
		Update("status", models.MissionInProgress)
	if _, err := svc.Complete(mission.ID); err != nil {
		t.Fatalf("replayed Complete returned error: %v", err)
	}

	var reloaded models.Driver
	db.First(&reloaded, driver.ID)
	if reloaded.HoursWorked != 6 {
		t.Errorf("driver hours = %v, want 6 (credited exactly once)", reloaded.HoursWorked)
	}
}

func TestCancelMission(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)

	for _, status := range []models.MissionStatus{models.MissionPending, models.MissionInProgress} {
		mission := seedMission(t, db, nil, nil, status)

		cancelled, err := svc.Cancel(mission.ID)
		if err != nil {
			t.Fatalf("%s: Cancel returned error: %v", status, err)
		}
		if cancelled.Status != models.MissionCancelled {
			t.Errorf("Status = %q, want cancelled", cancelled.Status)
		}
		if cancelled.ActualEndTime == nil {
			t.Error("ActualEndTime not set")
		}
	}
}

func TestCancelMissionRejectsTerminalStates(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)

	for _, status := range []models.MissionStatus{models.MissionCompleted, models.MissionCancelled} {
		mission := seedMission(t, db, nil, nil, status)

		_, err := svc.Cancel(mission.ID)

		var transition *InvalidTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("%s: expected InvalidTransitionError, got %v", status, err)
		}
	}
}

func TestCancelHasNoFuelOrHourSideEffects(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	driver := seedDriver(t, db, "omar", 40, 5)
	truck := seedTruck(t, db, "A-1005", 400, 120, 25)
	mission := seedMission(t, db, &driver.ID, &truck.ID, models.MissionInProgress)

	if _, err := svc.Cancel(mission.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	var reloadedTruck models.Truck
	db.First(&reloadedTruck, truck.ID)
	if reloadedTruck.CurrentFuel != 120 {
		t.Errorf("truck fuel = %v, want 120 (unchanged)", reloadedTruck.CurrentFuel)
	}

	var reloadedDriver models.Driver
	db.First(&reloadedDriver, driver.ID)
	if reloadedDriver.HoursWorked != 5 {
		t.Errorf("driver hours = %v, want 5 (unchanged)", reloadedDriver.HoursWorked)
	}
}

func TestCheckFuel(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1006", 400, 10, 25)

	_, check, err := svc.CheckFuel(truck.ID, 100)
	if err != nil {
		t.Fatalf("CheckFuel returned error: %v", err)
	}
	if check.Enough {
		t.Error("expected not enough fuel")
	}
	if check.Missing != 15 || check.RefuelCost != 225 {
		t.Errorf("Missing = %v RefuelCost = %v, want 15 and 225", check.Missing, check.RefuelCost)
	}
}

func TestRefuelAndCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1007", 400, 10, 25)

	mission, err := svc.RefuelAndCreate(truck.ID, 40, newMissionInput(nil, nil))
	if err != nil {
		t.Fatalf("RefuelAndCreate returned error: %v", err)
	}
	if mission.Status != models.MissionPending {
		t.Errorf("Status = %q, want pending", mission.Status)
	}

	var reloaded models.Truck
	db.First(&reloaded, truck.ID)
	if reloaded.CurrentFuel != 50 {
		t.Errorf("truck fuel = %v, want 50", reloaded.CurrentFuel)
	}

	var entries int64
	db.Model(&models.FuelEntry{}).Where("truck_id = ?", truck.ID).Count(&entries)
	if entries != 1 {
		t.Errorf("fuel entries = %d, want 1", entries)
	}
}

func TestRefuelAndCreateRollsBackRefuelOnRejectedMission(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1008", 400, 10, 25)
	driver := seedDriver(t, db, "hamza", 40, 39)

	// Driver has 1h left, the mission needs 6h: the whole unit rolls back,
	// refuel included.
	_, err := svc.RefuelAndCreate(truck.ID, 40, newMissionInput(&driver.ID, nil))

	var over *DriverOverCapacityError
	if !errors.As(err, &over) {
		t.Fatalf("expected DriverOverCapacityError, got %v", err)
	}

	var reloaded models.Truck
	db.First(&reloaded, truck.ID)
	if reloaded.CurrentFuel != 10 {
		t.Errorf("truck fuel = %v, want 10 (refuel rolled back)", reloaded.CurrentFuel)
	}

	var entries int64
	db.Model(&models.FuelEntry{}).Count(&entries)
	if entries != 0 {
		t.Errorf("fuel entries = %d, want 0 (rolled back)", entries)
	}
}

func TestUpdateMissionRecomputesEstimatedCost(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	truck := seedTruck(t, db, "A-1009", 400, 200, 25)
	mission := seedMission(t, db, nil, &truck.ID, models.MissionPending)

	newDistance := 200
	updated, err := svc.Update(mission.ID, UpdateMissionInput{Distance: &newDistance})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	// 200km * 25L/100km * 15/L
	if updated.EstimatedFuelCost != 750 {
		t.Errorf("EstimatedFuelCost = %v, want 750", updated.EstimatedFuelCost)
	}
}

func TestUpdateMissionWindowChecksCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewMissionService(db, testFuelPrice)
	driver := seedDriver(t, db, "nabil", 40, 36)
	mission := seedMission(t, db, nil, nil, models.MissionPending)

	// Widen the window to 8h and assign a driver with 4h remaining.
	dropoff := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	_, err := svc.Update(mission.ID, UpdateMissionInput{
		DriverID:            &driver.ID,
		ExpectedDropoffTime: &dropoff,
	})

	var over *DriverOverCapacityError
	if !errors.As(err, &over) {
		t.Fatalf("expected DriverOverCapacityError, got %v", err)
	}
}
