package usecase

import (
	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// modelMonth keys the monthly allocation groups.
type modelMonth struct {
	model string
	month int
}

// AllocateCosts computes per-flight operating costs from the cost table and
// returns a new dataset with the cost columns populated. The input dataset is
// never mutated.
//
// Three cost components are computed per record:
//   - fixed cost:  flight hours x fixed cost per hour
//   - fuel cost:   flight hours x fuel cost per hour
//   - monthly allocation: each (model, month) group shares a pool of
//     monthly fixed cost x distinct prefixes flying that model, distributed
//     proportionally to each flight's share of the group's hours. A group
//     with zero total hours allocates zero to every flight in it.
//
// Models absent from the cost table get zero for all components. The sum of
// allocations within a non-zero-hours group always equals its pool.
func AllocateCosts(ds *domain.Dataset, table domain.CostTable) *domain.Dataset {
	if ds == nil {
		return domain.NewDataset()
	}
	out := ds.Clone()
	if out.IsEmpty() {
		out.Columns.Add(domain.ColCost)
		return out
	}

	// Distinct prefixes per model, counted over the whole dataset.
	prefixesByModel := make(map[string]map[string]struct{})
	groupHours := make(map[modelMonth]float64)
	for i := range out.Records {
		r := &out.Records[i]
		set, ok := prefixesByModel[r.AircraftModel]
		if !ok {
			set = make(map[string]struct{})
			prefixesByModel[r.AircraftModel] = set
		}
		if r.AircraftPrefix != "" {
			set[r.AircraftPrefix] = struct{}{}
		}
		groupHours[modelMonth{r.AircraftModel, r.SheetMonth}] += r.FlightTimeHours
	}

	for i := range out.Records {
		r := &out.Records[i]
		cfg, ok := table[r.AircraftModel]
		if !ok {
			r.FixedCost = 0
			r.FuelCost = 0
			r.MonthlyAllocation = 0
			r.Cost = 0
			continue
		}

		r.FixedCost = r.FlightTimeHours * cfg.FixedCostPerHour
		r.FuelCost = r.FlightTimeHours * cfg.FuelCostPerHour

		prefixCount := len(prefixesByModel[r.AircraftModel])
		if prefixCount == 0 {
			prefixCount = 1
		}
		pool := cfg.MonthlyFixedCost * float64(prefixCount)
		hours := groupHours[modelMonth{r.AircraftModel, r.SheetMonth}]
		if hours > 0 {
			r.MonthlyAllocation = pool * (r.FlightTimeHours / hours)
		} else {
			r.MonthlyAllocation = 0
		}

		r.Cost = r.FixedCost + r.FuelCost + r.MonthlyAllocation

		if cfg.Capacity > 0 {
			r.Capacity = cfg.Capacity
			if r.Pax > 0 {
				r.LoadFactor = float64(r.Pax) / float64(cfg.Capacity) * 100
			}
		}
	}

	out.Columns.Add(domain.ColCost, domain.ColCapacity, domain.ColLoadFactor)
	return out
}

// CostSummary aggregates the allocated costs for reporting, overall and per
// aircraft model.
func CostSummary(ds *domain.Dataset) domain.CostSummary {
	summary := domain.CostSummary{
		ByAircraft: map[string]domain.AircraftCostSummary{},
	}
	if ds == nil || ds.IsEmpty() {
		return summary
	}

	totalHours := 0.0
	for i := range ds.Records {
		r := &ds.Records[i]
		summary.TotalCost += r.Cost
		summary.TotalFixedCost += r.FixedCost
		summary.TotalFuelCost += r.FuelCost
		summary.TotalMonthlyAllocation += r.MonthlyAllocation
		totalHours += r.FlightTimeHours

		agg := summary.ByAircraft[r.AircraftModel]
		agg.TotalCost += r.Cost
		agg.Flights++
		agg.Hours += r.FlightTimeHours
		summary.ByAircraft[r.AircraftModel] = agg
	}

	summary.AvgCostPerFlight = round2(safeDiv(summary.TotalCost, float64(ds.Len())))
	summary.AvgCostPerHour = round2(safeDiv(summary.TotalCost, totalHours))
	summary.TotalCost = round2(summary.TotalCost)
	summary.TotalFixedCost = round2(summary.TotalFixedCost)
	summary.TotalFuelCost = round2(summary.TotalFuelCost)
	summary.TotalMonthlyAllocation = round2(summary.TotalMonthlyAllocation)

	for model, agg := range summary.ByAircraft {
		agg.AvgCostPerFlight = round2(safeDiv(agg.TotalCost, float64(agg.Flights)))
		agg.AvgCostPerHour = round2(safeDiv(agg.TotalCost, agg.Hours))
		agg.TotalCost = round2(agg.TotalCost)
		agg.Hours = round2(agg.Hours)
		summary.ByAircraft[model] = agg
	}
	return summary
}
