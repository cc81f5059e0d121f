package models

import "testing"

func TestRemainingHours(t *testing.T) {
	driver := &Driver{ContractualHours: 40, HoursWorked: 12.5}

	if got := driver.RemainingHours(); got != 27.5 {
		t.Errorf("RemainingHours() = %v, want 27.5", got)
	}
}

func TestRemainingHoursNeverNegative(t *testing.T) {
	driver := &Driver{ContractualHours: 40, HoursWorked: 45}

	if got := driver.RemainingHours(); got != 0 {
		t.Errorf("RemainingHours() = %v, want 0", got)
	}
}

func TestHasCapacityFor(t *testing.T) {
	driver := &Driver{ContractualHours: 40, HoursWorked: 38}

	if driver.HasCapacityFor(3) {
		t.Error("driver with 2h remaining should not have capacity for a 3h mission")
	}
	if !driver.HasCapacityFor(2) {
		t.Error("driver with 2h remaining should have capacity for a 2h mission")
	}
}
