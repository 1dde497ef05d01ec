package domain

import "strconv"

// KPIReport is the full KPI surface computed over the filtered, cost-annotated
// dataset and its category sub-datasets. It is entirely derived: never
// mutated, recomputed on each request.
type KPIReport struct {
	Overview        OverviewKPIs            `json:"overview"`
	Revenue         RevenueKPIs             `json:"revenue"`
	Efficiency      EfficiencyKPIs          `json:"efficiency"`
	Utilization     UtilizationKPIs         `json:"utilization"`
	Profitability   ProfitabilityKPIs       `json:"profitability"`
	ByCategory      map[string]CategoryKPIs `json:"by_category"`
	ByAircraft      map[string]AircraftKPIs `json:"by_aircraft"`
	ByRoute         []RouteKPIs             `json:"by_route"`
	MonthlyTrends   []MonthlyTrend          `json:"monthly_trends"`
	CommercialHours CommercialHoursReport   `json:"commercial_hours"`
	Cumulative      map[string]Cumulative   `json:"cumulative"`
}

// OverviewKPIs summarizes the whole filtered dataset.
type OverviewKPIs struct {
	TotalFlights           int     `json:"total_flights"`
	TotalRevenue           float64 `json:"total_revenue"`
	TotalPassengers        int     `json:"total_passengers"`
	TotalFlightHours       float64 `json:"total_flight_hours"`
	TotalLandings          int     `json:"total_landings"`
	AvgRevenuePerFlight    float64 `json:"avg_revenue_per_flight"`
	AvgPassengersPerFlight float64 `json:"avg_passengers_per_flight"`
	AvgFlightDurationMin   float64 `json:"avg_flight_duration_min"`
}

// RevenueKPIs covers revenue productivity ratios.
type RevenueKPIs struct {
	TotalRevenue          float64 `json:"total_revenue"`
	RevenuePerFlightHour  float64 `json:"revenue_per_flight_hour"`
	RevenuePerPassenger   float64 `json:"revenue_per_passenger"`
	RevenuePerSeatOffered float64 `json:"revenue_per_seat_offered"`
	RevenuePerNM          float64 `json:"revenue_per_nautical_mile"`
	CostPerNM             float64 `json:"cost_per_nautical_mile"`
	TotalNauticalMiles    float64 `json:"total_nautical_miles"`
	AvgTicketPrice        float64 `json:"avg_ticket_price"`
}

// EfficiencyKPIs covers load factor and seat utilization.
type EfficiencyKPIs struct {
	AverageLoadFactor    float64 `json:"average_load_factor"`
	TotalSeatsOffered    int     `json:"total_seats_offered"`
	TotalPassengers      int     `json:"total_passengers"`
	EmptySeats           int     `json:"empty_seats"`
	SeatUtilizationRate  float64 `json:"seat_utilization_rate"`
	FullCabinFlights     int     `json:"full_cabin_flights"`
	FullCabinRate        float64 `json:"full_cabin_rate"`
	PotentialRevenueLost float64 `json:"potential_revenue_lost"`
}

// UtilizationKPIs covers flight-hour distribution.
type UtilizationKPIs struct {
	TotalFlightHours  float64            `json:"total_flight_hours"`
	HoursByModel      map[string]float64 `json:"hours_by_model"`
	HoursByMonth      map[string]float64 `json:"hours_by_month"`
	AvgDailyFlights   float64            `json:"avg_daily_flights"`
	AvgDailyHours     float64            `json:"avg_daily_hours"`
	AvgHoursPerFlight float64            `json:"avg_hours_per_flight"`
}

// CostBreakdown splits total cost into its components.
type CostBreakdown struct {
	FixedCosts        float64 `json:"fixed_costs"`
	FuelCosts         float64 `json:"fuel_costs"`
	MonthlyAllocation float64 `json:"monthly_allocation"`
}

// ProfitabilityKPIs covers cost and margin figures.
type ProfitabilityKPIs struct {
	TotalRevenue        float64       `json:"total_revenue"`
	TotalCost           float64       `json:"total_cost"`
	CostBreakdown       CostBreakdown `json:"cost_breakdown"`
	GrossProfit         float64       `json:"gross_profit"`
	ProfitMarginPercent float64       `json:"profit_margin_percent"`
	RevenuePerCost      float64       `json:"revenue_per_cost"`
	CostPerFlight       float64       `json:"cost_per_flight"`
	ProfitPerFlight     float64       `json:"profit_per_flight"`
}

// CategoryKPIs summarizes one category sub-dataset.
type CategoryKPIs struct {
	Flights             int     `json:"flights"`
	Revenue             float64 `json:"revenue"`
	Passengers          int     `json:"passengers"`
	Hours               float64 `json:"hours"`
	Cost                float64 `json:"cost"`
	Profit              float64 `json:"profit"`
	AvgRevenuePerFlight float64 `json:"avg_revenue_per_flight"`
	AvgLoadFactor       float64 `json:"avg_load_factor"`
	RevenuePerHour      float64 `json:"revenue_per_hour"`
}

// AircraftKPIs summarizes one aircraft model.
type AircraftKPIs struct {
	Flights        int     `json:"flights"`
	Revenue        float64 `json:"revenue"`
	Passengers     int     `json:"passengers"`
	Hours          float64 `json:"hours"`
	Cost           float64 `json:"cost"`
	Profit         float64 `json:"profit"`
	MarginPercent  float64 `json:"margin_percent"`
	RevenuePerHour float64 `json:"revenue_per_hour"`
	CostPerHour    float64 `json:"cost_per_hour"`
	AvgLoadFactor  float64 `json:"avg_load_factor"`
}

// RouteKPIs summarizes one departure→arrival pair.
type RouteKPIs struct {
	Route          string  `json:"route"`
	Flights        int     `json:"flights"`
	Revenue        float64 `json:"revenue"`
	AvgRevenue     float64 `json:"avg_revenue"`
	Passengers     int     `json:"passengers"`
	Hours          float64 `json:"hours"`
	RevenuePerHour float64 `json:"revenue_per_hour"`
}

// MonthlyTrend is one month's aggregate, ordered by ascending numeric month.
// MonthName is a display label only and never participates in sorting.
type MonthlyTrend struct {
	Month         int     `json:"month"`
	MonthName     string  `json:"month_name"`
	Flights       int     `json:"flights"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	Profit        float64 `json:"profit"`
	Passengers    int     `json:"passengers"`
	Hours         float64 `json:"hours"`
	AvgLoadFactor float64 `json:"avg_load_factor"`
}

// CommercialHoursMonth is the commercial/non-commercial hours split for one
// month.
type CommercialHoursMonth struct {
	Month              int     `json:"month"`
	MonthName          string  `json:"month_name"`
	CommercialHours    float64 `json:"commercial_hours"`
	NonCommercialHours float64 `json:"non_commercial_hours"`
}

// CommercialHoursSplit is the commercial/non-commercial hours pair for one
// category in one month.
type CommercialHoursSplit struct {
	Commercial    float64 `json:"commercial"`
	NonCommercial float64 `json:"non_commercial"`
}

// CommercialHoursReport breaks flight hours down by commercial status, per
// month and per category/month.
type CommercialHoursReport struct {
	ByMonth    []CommercialHoursMonth                     `json:"by_month"`
	ByCategory map[string]map[string]CommercialHoursSplit `json:"by_category"`
}

// Cumulative is a running revenue/cost series for one category, ordered by
// month.
type Cumulative struct {
	Months            []string  `json:"months"`
	RevenueCumulative []float64 `json:"revenue_cumulative"`
	CostCumulative    []float64 `json:"cost_cumulative"`
}

// CostSummary aggregates allocated costs over a dataset.
type CostSummary struct {
	TotalCost              float64                        `json:"total_cost"`
	TotalFixedCost         float64                        `json:"total_fixed_cost"`
	TotalFuelCost          float64                        `json:"total_fuel_cost"`
	TotalMonthlyAllocation float64                        `json:"total_monthly_allocation"`
	AvgCostPerFlight       float64                        `json:"avg_cost_per_flight"`
	AvgCostPerHour         float64                        `json:"avg_cost_per_hour"`
	ByAircraft             map[string]AircraftCostSummary `json:"by_aircraft"`
}

// AircraftCostSummary is the cost summary for one aircraft model.
type AircraftCostSummary struct {
	TotalCost        float64 `json:"total_cost"`
	Flights          int     `json:"flights"`
	Hours            float64 `json:"hours"`
	AvgCostPerFlight float64 `json:"avg_cost_per_flight"`
	AvgCostPerHour   float64 `json:"avg_cost_per_hour"`
}

// MonthName returns the fixed display label for a month index, or the numeric
// text when the index is out of range. Display only: sorting always uses the
// numeric month.
func MonthName(month int) string {
	names := [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	if month >= 1 && month <= 12 {
		return names[month-1]
	}
	return strconv.Itoa(month)
}
