package domain

// CategorySummary is one row of the per-category summary statistics.
type CategorySummary struct {
	Flights             int     `json:"flights"`
	Passengers          int     `json:"passengers"`
	Revenue             float64 `json:"revenue"`
	AvgRevenuePerFlight float64 `json:"avg_revenue_per_flight"`
	AvgLoadFactor       float64 `json:"avg_load_factor"`
	TotalHours          float64 `json:"total_hours"`
}

// ShuttleRouteStats summarizes one named shuttle route.
type ShuttleRouteStats struct {
	Name                string  `json:"name"`
	Flights             int     `json:"flights"`
	Revenue             float64 `json:"revenue"`
	Passengers          int     `json:"passengers"`
	AvgLoadFactor       float64 `json:"avg_load_factor"`
	AvgRevenuePerFlight float64 `json:"avg_revenue_per_flight"`
}

// ShuttleTotal is the aggregate over all shuttle flights.
type ShuttleTotal struct {
	Flights    int     `json:"flights"`
	Revenue    float64 `json:"revenue"`
	Passengers int     `json:"passengers"`
}

// ShuttleBreakdown splits shuttle activity by named route.
type ShuttleBreakdown struct {
	Routes       []ShuttleRouteStats `json:"routes"`
	TotalShuttle ShuttleTotal        `json:"total_shuttle"`
}

// IdleSummary is the fleet-wide idle/utilization aggregate.
type IdleSummary struct {
	UniqueAircraft      int     `json:"unique_aircraft"`
	TotalDays           int     `json:"total_days"`
	TotalAvailableHours float64 `json:"total_available_hours"`
	TotalFlownHours     float64 `json:"total_flown_hours"`
	TotalIdleHours      float64 `json:"total_idle_hours"`
	UtilizationRate     float64 `json:"utilization_rate"`
}

// IdleDaily holds the per-day mean flown/idle hours series, aligned by index.
type IdleDaily struct {
	Dates         []string  `json:"dates"`
	AvgHoursFlown []float64 `json:"avg_hours_flown"`
	AvgIdleHours  []float64 `json:"avg_idle_hours"`
}

// IdleMonth is one month's idle/utilization aggregate. Month is formatted as
// YYYY-MM.
type IdleMonth struct {
	Month           string  `json:"month"`
	HoursFlown      float64 `json:"hours_flown"`
	Days            int     `json:"days"`
	AvailableHours  float64 `json:"available_hours"`
	IdleHours       float64 `json:"idle_hours"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// IdleAnalysis is the full idle-time report. Idle hours are never negative:
// days flying past the productive budget report zero idle, not a deficit.
type IdleAnalysis struct {
	Summary IdleSummary `json:"summary"`
	Daily   IdleDaily   `json:"daily"`
	Monthly []IdleMonth `json:"monthly"`
}
