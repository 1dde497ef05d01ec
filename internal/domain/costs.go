package domain

// CostConfig holds the operating cost parameters for one aircraft model.
type CostConfig struct {
	// FixedCostPerHour is the non-fuel direct cost per flight hour.
	FixedCostPerHour float64 `json:"fixed_cost_per_hour"`

	// FuelCostPerHour is the fuel cost per flight hour.
	FuelCostPerHour float64 `json:"fuel_cost_per_hour"`

	// MonthlyFixedCost is the fixed cost per airframe per month, allocated
	// across that model's flights proportionally to flight hours.
	MonthlyFixedCost float64 `json:"monthly_fixed_cost"`

	// Capacity is the passenger capacity of the model.
	Capacity int `json:"capacity"`
}

// CostTable maps aircraft model to its cost configuration.
type CostTable map[string]CostConfig

// DefaultCostTable returns the cost table seeded with the known fleet models.
// Cost figures start at zero and are set through explicit updates; capacity
// reflects the cabin layout of each model.
func DefaultCostTable() CostTable {
	return CostTable{
		"EC135": {Capacity: 5},
		"EC155": {Capacity: 8},
		"H145":  {Capacity: 5},
	}
}

// Clone returns an independent copy of the table.
func (t CostTable) Clone() CostTable {
	out := make(CostTable, len(t))
	for model, cfg := range t {
		out[model] = cfg
	}
	return out
}

// CostUpdate carries a partial update for one aircraft model. Nil fields are
// left unchanged.
type CostUpdate struct {
	FixedCostPerHour *float64 `json:"fixed_cost_per_hour,omitempty"`
	FuelCostPerHour  *float64 `json:"fuel_cost_per_hour,omitempty"`
	MonthlyFixedCost *float64 `json:"monthly_fixed_cost,omitempty"`
	Capacity         *int     `json:"capacity,omitempty"`
}

// Validate rejects negative cost figures and non-positive capacities.
func (u *CostUpdate) Validate() error {
	if u.FixedCostPerHour != nil && *u.FixedCostPerHour < 0 {
		return WrapCostConfig("fixed_cost_per_hour must not be negative, got %v", *u.FixedCostPerHour)
	}
	if u.FuelCostPerHour != nil && *u.FuelCostPerHour < 0 {
		return WrapCostConfig("fuel_cost_per_hour must not be negative, got %v", *u.FuelCostPerHour)
	}
	if u.MonthlyFixedCost != nil && *u.MonthlyFixedCost < 0 {
		return WrapCostConfig("monthly_fixed_cost must not be negative, got %v", *u.MonthlyFixedCost)
	}
	if u.Capacity != nil && *u.Capacity < 1 {
		return WrapCostConfig("capacity must be at least 1, got %d", *u.Capacity)
	}
	return nil
}

// Apply merges the update into the table, auto-creating a default entry when
// the model is unknown. Returns the resulting configuration.
func (t CostTable) Apply(model string, u CostUpdate) CostConfig {
	cfg, ok := t[model]
	if !ok {
		// Unknown models get a default entry rather than an error.
		cfg = CostConfig{Capacity: 5}
	}
	if u.FixedCostPerHour != nil {
		cfg.FixedCostPerHour = *u.FixedCostPerHour
	}
	if u.FuelCostPerHour != nil {
		cfg.FuelCostPerHour = *u.FuelCostPerHour
	}
	if u.MonthlyFixedCost != nil {
		cfg.MonthlyFixedCost = *u.MonthlyFixedCost
	}
	if u.Capacity != nil {
		cfg.Capacity = *u.Capacity
	}
	t[model] = cfg
	return cfg
}
