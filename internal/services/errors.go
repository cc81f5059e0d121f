package services

import (
	"fmt"

	"fleet_dispatch/internal/models"
)

// ValidationError reports malformed or missing input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TruckBusyError means the truck already has a mission underway.
type TruckBusyError struct {
	MissionID uint
}

func (e *TruckBusyError) Error() string {
	return fmt.Sprintf("truck is already assigned to mission #%d which is in progress", e.MissionID)
}

// DriverOverCapacityError means the planned mission window would exceed the
// driver's remaining contractual hours.
type DriverOverCapacityError struct {
	DriverName string
	Remaining  float64
	Required   float64
}

func (e *DriverOverCapacityError) Error() string {
	return fmt.Sprintf("%s only has %.1fh available this week (mission needs %.1fh)",
		e.DriverName, e.Remaining, e.Required)
}

// InvalidTransitionError means a lifecycle action was attempted from a
// state that does not permit it.
type InvalidTransitionError struct {
	Action  string
	Current models.MissionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("mission cannot be %s: current status is %q", e.Action, e.Current)
}

// TruckHasActiveMissionsError blocks truck deletion while missions still
// reference it. Carries at most the first five offending mission ids.
type TruckHasActiveMissionsError struct {
	MissionIDs []uint
}

func (e *TruckHasActiveMissionsError) Error() string {
	return fmt.Sprintf("truck has active missions %v and cannot be deleted", e.MissionIDs)
}
