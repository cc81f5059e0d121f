package models

import (
	"math"
	"testing"
)

func TestFuelNeeded(t *testing.T) {
	truck := &Truck{AvgConsumption: 25}

	if got := truck.FuelNeeded(100); got != 25 {
		t.Errorf("FuelNeeded(100) = %v, want 25", got)
	}
	if got := truck.FuelNeeded(60); got != 15 {
		t.Errorf("FuelNeeded(60) = %v, want 15", got)
	}
}

func TestFuelCost(t *testing.T) {
	truck := &Truck{AvgConsumption: 25}

	if got := truck.FuelCost(100, 15.0); got != 375 {
		t.Errorf("FuelCost(100, 15) = %v, want 375", got)
	}
}

func TestCheckFuelEnough(t *testing.T) {
	truck := &Truck{CurrentFuel: 50, AvgConsumption: 25, TankCapacity: 200}

	check := truck.CheckFuel(100, 15.0)

	if !check.Enough {
		t.Error("expected enough fuel")
	}
	if check.Needed != 25 {
		t.Errorf("Needed = %v, want 25", check.Needed)
	}
	if check.Missing != 0 {
		t.Errorf("Missing = %v, want 0", check.Missing)
	}
	if check.RefuelCost != 0 {
		t.Errorf("RefuelCost = %v, want 0", check.RefuelCost)
	}
	if check.FullTankCost != 150*15.0 {
		t.Errorf("FullTankCost = %v, want %v", check.FullTankCost, 150*15.0)
	}
}

func TestCheckFuelMissing(t *testing.T) {
	truck := &Truck{CurrentFuel: 10, AvgConsumption: 25, TankCapacity: 200}

	check := truck.CheckFuel(100, 15.0)

	if check.Enough {
		t.Error("expected not enough fuel")
	}
	if check.Needed != 25 {
		t.Errorf("Needed = %v, want 25", check.Needed)
	}
	if check.Missing != 15 {
		t.Errorf("Missing = %v, want 15", check.Missing)
	}
	if check.RefuelCost != 225.0 {
		t.Errorf("RefuelCost = %v, want 225", check.RefuelCost)
	}
}

func TestApplyRefuelCapsAtTankCapacity(t *testing.T) {
	truck := &Truck{CurrentFuel: 180, TankCapacity: 200}

	truck.ApplyRefuel(50)

	if truck.CurrentFuel != 200 {
		t.Errorf("CurrentFuel = %v, want 200 (capped)", truck.CurrentFuel)
	}
}

func TestConsumeFuelClampsAtZero(t *testing.T) {
	truck := &Truck{CurrentFuel: 10, TankCapacity: 200}

	truck.ConsumeFuel(25)

	if truck.CurrentFuel != 0 {
		t.Errorf("CurrentFuel = %v, want 0 (clamped)", truck.CurrentFuel)
	}
}

func TestFuelPercentageDerivedOnSave(t *testing.T) {
	cases := []struct {
		fuel float64
		tank int
		want int
	}{
		{0, 200, 0},
		{100, 200, 50},
		{200, 200, 100},
		{33, 200, 17}, // 16.5 rounds up
	}

	for _, tc := range cases {
		truck := &Truck{CurrentFuel: tc.fuel, TankCapacity: tc.tank}
		if err := truck.BeforeSave(nil); err != nil {
			t.Fatalf("BeforeSave returned error: %v", err)
		}
		if truck.FuelPercentage != tc.want {
			t.Errorf("fuel %v / tank %v: FuelPercentage = %d, want %d",
				tc.fuel, tc.tank, truck.FuelPercentage, tc.want)
		}
		want := int(math.Round(tc.fuel / float64(tc.tank) * 100))
		if truck.FuelPercentage != want {
			t.Errorf("FuelPercentage = %d does not match round(current/tank*100) = %d",
				truck.FuelPercentage, want)
		}
	}
}
