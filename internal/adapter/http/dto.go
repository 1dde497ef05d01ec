// Package http provides the HTTP handler layer for the flight KPI API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// UpdateCostRequest is the body for PUT /api/v1/costs/:model. Absent fields
// leave the current values unchanged.
type UpdateCostRequest struct {
	FixedCostPerHour *float64 `json:"fixed_cost_per_hour,omitempty"`
	FuelCostPerHour  *float64 `json:"fuel_cost_per_hour,omitempty"`
	MonthlyFixedCost *float64 `json:"monthly_fixed_cost,omitempty"`
	Capacity         *int     `json:"capacity,omitempty"`
}

// ToDomain converts the request to a domain cost update.
func (r *UpdateCostRequest) ToDomain() domain.CostUpdate {
	return domain.CostUpdate{
		FixedCostPerHour: r.FixedCostPerHour,
		FuelCostPerHour:  r.FuelCostPerHour,
		MonthlyFixedCost: r.MonthlyFixedCost,
		Capacity:         r.Capacity,
	}
}

// UploadResponse reports the result of a data upload or append.
type UploadResponse struct {
	Message string `json:"message"`
	Records int    `json:"records"`
	Months  []int  `json:"months"`
}

// FiltersResponse pairs the active filter spec with the resulting counts.
type FiltersResponse struct {
	Filters       domain.FilterSpec `json:"filters"`
	TotalRecords  int               `json:"total_records"`
	FilteredCount int               `json:"filtered_count"`
}
