package domain

import "time"

// FilterSpec defines the working-subset selection over the canonical dataset.
//
// Semantics:
//   - An empty inclusion set is a no-op (never "exclude everything").
//   - A nil bound is a no-op; set bounds are inclusive.
//   - IncludeEmptyLeg / IncludeHangarFlight default to true; false excludes
//     records whose type-of-flight text matches the category substring.
//
// All filters combine by conjunction.
type FilterSpec struct {
	// Inclusion filters: a record matches when its field value is a member,
	// or trivially when the set is empty.
	FlightTypes      []string `json:"flight_types,omitempty"`
	AircraftModels   []string `json:"aircraft_models,omitempty"`
	AircraftPrefixes []string `json:"aircraft_prefixes,omitempty"`
	SalesModels      []string `json:"sales_models,omitempty"`
	Classifications  []string `json:"classifications,omitempty"`
	Months           []int    `json:"months,omitempty"`

	// Boolean category exclusions.
	IncludeEmptyLeg     bool `json:"include_empty_leg"`
	IncludeHangarFlight bool `json:"include_hangar_flight"`

	// Optional inclusive bounds.
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`

	HourStart *float64 `json:"hour_start,omitempty"`
	HourEnd   *float64 `json:"hour_end,omitempty"`

	PaxMin *int `json:"pax_min,omitempty"`
	PaxMax *int `json:"pax_max,omitempty"`

	RevenueMin *float64 `json:"revenue_min,omitempty"`
	RevenueMax *float64 `json:"revenue_max,omitempty"`

	LandingsMin *int `json:"landings_min,omitempty"`
	LandingsMax *int `json:"landings_max,omitempty"`
}

// DefaultFilterSpec returns the all-pass filter specification.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		IncludeEmptyLeg:     true,
		IncludeHangarFlight: true,
	}
}

// IsAllPass reports whether the spec filters nothing.
func (f *FilterSpec) IsAllPass() bool {
	return len(f.FlightTypes) == 0 &&
		len(f.AircraftModels) == 0 &&
		len(f.AircraftPrefixes) == 0 &&
		len(f.SalesModels) == 0 &&
		len(f.Classifications) == 0 &&
		len(f.Months) == 0 &&
		f.IncludeEmptyLeg &&
		f.IncludeHangarFlight &&
		f.DateStart == nil && f.DateEnd == nil &&
		f.HourStart == nil && f.HourEnd == nil &&
		f.PaxMin == nil && f.PaxMax == nil &&
		f.RevenueMin == nil && f.RevenueMax == nil &&
		f.LandingsMin == nil && f.LandingsMax == nil
}

// Validate checks the spec for bounds that can never be satisfied or that
// fall outside their domain. Returns a wrapped ErrInvalidFilter on failure.
func (f *FilterSpec) Validate() error {
	if f.DateStart != nil && f.DateEnd != nil && f.DateStart.After(*f.DateEnd) {
		return WrapInvalidFilter("date_start %s is after date_end %s",
			f.DateStart.Format("2006-01-02"), f.DateEnd.Format("2006-01-02"))
	}
	if f.HourStart != nil && (*f.HourStart < 0 || *f.HourStart > 24) {
		return WrapInvalidFilter("hour_start must be within [0, 24], got %v", *f.HourStart)
	}
	if f.HourEnd != nil && (*f.HourEnd < 0 || *f.HourEnd > 24) {
		return WrapInvalidFilter("hour_end must be within [0, 24], got %v", *f.HourEnd)
	}
	if f.HourStart != nil && f.HourEnd != nil && *f.HourStart > *f.HourEnd {
		return WrapInvalidFilter("hour_start %v is greater than hour_end %v", *f.HourStart, *f.HourEnd)
	}
	if f.PaxMin != nil && f.PaxMax != nil && *f.PaxMin > *f.PaxMax {
		return WrapInvalidFilter("pax_min %d is greater than pax_max %d", *f.PaxMin, *f.PaxMax)
	}
	if f.RevenueMin != nil && f.RevenueMax != nil && *f.RevenueMin > *f.RevenueMax {
		return WrapInvalidFilter("revenue_min %v is greater than revenue_max %v", *f.RevenueMin, *f.RevenueMax)
	}
	if f.LandingsMin != nil && f.LandingsMax != nil && *f.LandingsMin > *f.LandingsMax {
		return WrapInvalidFilter("landings_min %d is greater than landings_max %d", *f.LandingsMin, *f.LandingsMax)
	}
	for _, m := range f.Months {
		if m < 1 || m > 12 {
			return WrapInvalidFilter("months must contain values within [1, 12], got %d", m)
		}
	}
	return nil
}

// DateRange checks whether t falls within [DateStart, DateEnd], treating nil
// bounds as open. A zero time never matches a bounded range: rows whose date
// failed to parse drop out as soon as a date bound is set.
func (f *FilterSpec) DateRange(t time.Time) bool {
	if f.DateStart == nil && f.DateEnd == nil {
		return true
	}
	if t.IsZero() {
		return false
	}
	if f.DateStart != nil && t.Before(*f.DateStart) {
		return false
	}
	if f.DateEnd != nil && t.After(*f.DateEnd) {
		return false
	}
	return true
}

// FilterOptions lists the distinct values available for each inclusion
// filter, discovered from the canonical dataset.
type FilterOptions struct {
	FlightTypes      []string `json:"flight_types"`
	AircraftModels   []string `json:"aircraft_models"`
	AircraftPrefixes []string `json:"aircraft_prefixes"`
	SalesModels      []string `json:"sales_models"`
	Classifications  []string `json:"classifications"`
	Months           []int    `json:"months"`
}
