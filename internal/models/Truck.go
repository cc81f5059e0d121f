package models

import (
	"math"

	"gorm.io/gorm"
)

type Truck struct {
	gorm.Model
	Plate          string  `json:"plate" gorm:"unique" binding:"required"`
	Brand          string  `json:"brand"`
	Capacity       int     `json:"capacity"` // load capacity in kg
	TankCapacity   int     `json:"tank_capacity" binding:"required"`
	CurrentFuel    float64 `json:"current_fuel" gorm:"default:0"`
	AvgConsumption float64 `json:"avg_consumption" gorm:"default:25"` // liters per 100km
	FuelPercentage int     `json:"fuel_percentage" gorm:"default:0"`
	IsAvailable    bool    `json:"is_available" gorm:"default:true"`
}

// FuelCheck is the result of a pre-flight fuel sufficiency check for a
// planned distance. All costs use the configured price per liter.
type FuelCheck struct {
	Enough       bool    `json:"enough"`
	CurrentFuel  float64 `json:"current_fuel"`
	Needed       float64 `json:"needed"`
	Missing      float64 `json:"missing"`
	RefuelCost   float64 `json:"refuel_cost"`
	FullTankCost float64 `json:"full_tank_cost"`
}

// BeforeSave keeps fuel_percentage derived from current_fuel and the tank
// size. It is never set directly.
func (t *Truck) BeforeSave(tx *gorm.DB) error {
	if t.TankCapacity > 0 {
		t.FuelPercentage = int(math.Round(t.CurrentFuel / float64(t.TankCapacity) * 100))
	}
	return nil
}

// FuelNeeded returns the liters required to cover distanceKm.
func (t *Truck) FuelNeeded(distanceKm float64) float64 {
	return distanceKm * t.AvgConsumption / 100
}

// FuelCost returns the estimated fuel cost for distanceKm at the given
// price per liter.
func (t *Truck) FuelCost(distanceKm, pricePerLiter float64) float64 {
	return t.FuelNeeded(distanceKm) * pricePerLiter
}

// CheckFuel reports whether the tank holds enough fuel for distanceKm and
// what topping up would cost. Pure; does not touch the tank.
func (t *Truck) CheckFuel(distanceKm, pricePerLiter float64) FuelCheck {
	needed := t.FuelNeeded(distanceKm)
	missing := needed - t.CurrentFuel
	if missing < 0 {
		missing = 0
	}
	return FuelCheck{
		Enough:       t.CurrentFuel >= needed,
		CurrentFuel:  t.CurrentFuel,
		Needed:       needed,
		Missing:      missing,
		RefuelCost:   missing * pricePerLiter,
		FullTankCost: (float64(t.TankCapacity) - t.CurrentFuel) * pricePerLiter,
	}
}

// ApplyRefuel adds quantity liters to the tank, capped at tank capacity.
func (t *Truck) ApplyRefuel(quantity float64) {
	t.CurrentFuel = math.Min(t.CurrentFuel+quantity, float64(t.TankCapacity))
}

// ConsumeFuel removes liters from the tank, clamped at zero. Consumption
// beyond the current stock is not an error; the tank just reads empty.
func (t *Truck) ConsumeFuel(liters float64) {
	t.CurrentFuel = math.Max(0, t.CurrentFuel-liters)
}
