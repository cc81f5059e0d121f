package models

import "time"

// Read-shapes returned by the API. Write-shapes accept bare ids; reads
// always resolve the referenced driver and truck into full objects.

type DriverResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	ContractualHours int       `json:"contractual_hours"`
	HoursWorked      float64   `json:"hours_worked"`
	RemainingHours   float64   `json:"remaining_hours"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type MissionResponse struct {
	ID     uint            `json:"id"`
	Driver *DriverResponse `json:"driver"`
	Truck  *Truck          `json:"truck"`

	DepartureCity    string    `json:"departure_city"`
	DepartureAddress string    `json:"departure_address"`
	PickupTime       time.Time `json:"pickup_time"`

	ArrivalCity         string    `json:"arrival_city"`
	ArrivalAddress      string    `json:"arrival_address"`
	ExpectedDropoffTime time.Time `json:"expected_dropoff_time"`

	ContainerNumber string `json:"container_number"`
	ContainerType   string `json:"container_type"`

	Distance          int      `json:"distance"`
	EstimatedFuelCost float64  `json:"estimated_fuel_cost"`
	ActualFuelCost    *float64 `json:"actual_fuel_cost"`

	Status          MissionStatus `json:"status"`
	ActualStartTime *time.Time    `json:"actual_start_time"`
	ActualEndTime   *time.Time    `json:"actual_end_time"`
	HoursWorked     float64       `json:"hours_worked"`

	CreatedAt time.Time `json:"created_at"`
}

func (d *Driver) ToResponse() *DriverResponse {
	return &DriverResponse{
		ID:               d.ID,
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		ContractualHours: d.ContractualHours,
		HoursWorked:      d.HoursWorked,
		RemainingHours:   d.RemainingHours(),
		IsActive:         d.IsActive,
		CreatedAt:        d.CreatedAt,
	}
}

func (m *Mission) ToResponse() *MissionResponse {
	resp := &MissionResponse{
		ID:                  m.ID,
		Truck:               m.Truck,
		DepartureCity:       m.DepartureCity,
		DepartureAddress:    m.DepartureAddress,
		PickupTime:          m.PickupTime,
		ArrivalCity:         m.ArrivalCity,
		ArrivalAddress:      m.ArrivalAddress,
		ExpectedDropoffTime: m.ExpectedDropoffTime,
		ContainerNumber:     m.ContainerNumber,
		ContainerType:       m.ContainerType,
		Distance:            m.Distance,
		EstimatedFuelCost:   m.EstimatedFuelCost,
		ActualFuelCost:      m.ActualFuelCost,
		Status:              m.Status,
		ActualStartTime:     m.ActualStartTime,
		ActualEndTime:       m.ActualEndTime,
		HoursWorked:         m.HoursWorked,
		CreatedAt:           m.CreatedAt,
	}
	if m.Driver != nil {
		resp.Driver = m.Driver.ToResponse()
	}
	return resp
}
