// Package domain contains the core business entities and rules for the flight
// KPI engine. These entities are source-format agnostic and form the
// foundation upon which all other components are built.
package domain

import (
	"sort"
	"strings"
	"time"
)

// Column identifies a canonical dataset column. Raw spreadsheet exports use
// inconsistent header names; the dataset builder maps them onto this fixed
// vocabulary and records which columns were actually present so that
// downstream steps can skip logic that depends on absent data.
type Column string

// Canonical columns.
const (
	ColDate           Column = "date"
	ColDeparture      Column = "departure"
	ColArrival        Column = "arrival"
	ColTypeOfFlight   Column = "type_of_flight"
	ColSalesModel     Column = "sales_model"
	ColClassification Column = "classification"
	ColAircraftModel  Column = "aircraft_model"
	ColAircraftPrefix Column = "aircraft_prefix"
	ColSheetMonth     Column = "sheet_month"
	ColRevenue        Column = "revenue"
	ColPax            Column = "pax"
	ColFlightHours    Column = "flight_time_hours"
	ColLandings       Column = "landings"
	ColCapacity       Column = "aircraft_capacity"
	ColDistanceNM     Column = "distance_nm"
	ColStartHour      Column = "start_hour"
	ColLoadFactor     Column = "load_factor"

	// Derived columns added by the classifier and the cost allocator.
	ColIsCommercial   Column = "is_commercial"
	ColFlightCategory Column = "flight_category"
	ColCost           Column = "cost"
)

// ColumnSet tracks which canonical columns a dataset carries.
type ColumnSet map[Column]struct{}

// NewColumnSet creates a ColumnSet containing the given columns.
func NewColumnSet(cols ...Column) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the column is present.
func (s ColumnSet) Has(c Column) bool {
	_, ok := s[c]
	return ok
}

// Add marks a column as present.
func (s ColumnSet) Add(cols ...Column) {
	for _, c := range cols {
		s[c] = struct{}{}
	}
}

// Clone returns an independent copy of the set.
func (s ColumnSet) Clone() ColumnSet {
	out := make(ColumnSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Union returns a new set containing columns from both sets.
func (s ColumnSet) Union(other ColumnSet) ColumnSet {
	out := s.Clone()
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// MarshalBinary encodes the set as sorted newline-separated column names so
// the set round-trips through gob snapshots.
func (s ColumnSet) MarshalBinary() ([]byte, error) {
	names := make([]string, 0, len(s))
	for c := range s {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return []byte(strings.Join(names, "\n")), nil
}

// UnmarshalBinary restores a set encoded by MarshalBinary.
func (s *ColumnSet) UnmarshalBinary(data []byte) error {
	out := ColumnSet{}
	if len(data) > 0 {
		for _, name := range strings.Split(string(data), "\n") {
			out[Column(name)] = struct{}{}
		}
	}
	*s = out
	return nil
}

// FlightRecord is one normalized row of the canonical dataset.
//
// Numeric fields are never "missing" after normalization: an absent or
// unparsable value is zero (one for Landings) so that aggregate arithmetic
// stays well-defined regardless of which source columns existed. The
// companion ColumnSet on the Dataset says which fields carry real data.
type FlightRecord struct {
	// ID is a unique identifier assigned when the record enters the
	// canonical dataset.
	ID string `json:"id"`

	// Sheet is the name of the source worksheet this row came from.
	Sheet string `json:"sheet"`

	// Date is the parsed flight date; the zero value means the source cell
	// was absent or unparsable. DateRaw preserves the original cell text.
	Date    time.Time `json:"date"`
	DateRaw string    `json:"date_raw,omitempty"`

	// Departure and Arrival are the route endpoints as free text
	// (ICAO codes or heliport names, depending on the export).
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`

	// AircraftModel and AircraftPrefix identify the airframe.
	AircraftModel  string `json:"aircraft_model"`
	AircraftPrefix string `json:"aircraft_prefix"`

	// Raw categorical fields used by the classifier.
	SalesModel     string `json:"sales_model"`
	Classification string `json:"classification"`
	TypeOfFlight   string `json:"type_of_flight"`

	// SheetMonth is the month index (1-12) this row belongs to.
	SheetMonth int `json:"sheet_month"`

	Revenue         float64 `json:"revenue"`
	Pax             int     `json:"pax"`
	FlightTimeHours float64 `json:"flight_time_hours"`
	Landings        int     `json:"landings"`
	Capacity        int     `json:"aircraft_capacity"`
	DistanceNM      float64 `json:"distance_nm"`
	StartHour       float64 `json:"start_hour"`
	LoadFactor      float64 `json:"load_factor"`

	// Derived by the classifier.
	IsCommercial   bool     `json:"is_commercial"`
	FlightCategory Category `json:"flight_category"`

	// Derived by the cost allocator.
	FixedCost         float64 `json:"fixed_cost"`
	FuelCost          float64 `json:"fuel_cost"`
	MonthlyAllocation float64 `json:"monthly_cost_allocation"`
	Cost              float64 `json:"cost"`
}

// Route returns the departure and arrival concatenated for route grouping.
func (r *FlightRecord) Route() string {
	return r.Departure + " - " + r.Arrival
}

// Dataset is an ordered collection of flight records sharing a schema.
type Dataset struct {
	Records []FlightRecord `json:"records"`
	Columns ColumnSet      `json:"columns"`
}

// NewDataset creates an empty dataset with the given columns present.
func NewDataset(cols ...Column) *Dataset {
	return &Dataset{
		Records: []FlightRecord{},
		Columns: NewColumnSet(cols...),
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty reports whether the dataset holds no records.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Has reports whether the dataset carries the given column.
func (d *Dataset) Has(c Column) bool {
	if d == nil {
		return false
	}
	return d.Columns.Has(c)
}

// Clone returns a deep copy. Mutating the copy never affects the original,
// which is how filter application and cost allocation keep the canonical
// dataset immutable.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	records := make([]FlightRecord, len(d.Records))
	copy(records, d.Records)
	return &Dataset{
		Records: records,
		Columns: d.Columns.Clone(),
	}
}

// Select returns a new dataset containing the records for which keep returns
// true. The record slice is copied; the column set is shared semantics-wise
// but cloned to keep ownership simple.
func (d *Dataset) Select(keep func(*FlightRecord) bool) *Dataset {
	out := &Dataset{
		Records: make([]FlightRecord, 0, len(d.Records)),
		Columns: d.Columns.Clone(),
	}
	for i := range d.Records {
		if keep(&d.Records[i]) {
			out.Records = append(out.Records, d.Records[i])
		}
	}
	return out
}

// RawRow is one untyped row from a source sheet: column header to arbitrary
// scalar (string, number, bool, time or nil).
type RawRow map[string]any

// RawSheet is one table of untyped rows plus its sheet label, as supplied by
// a raw sheet provider.
type RawSheet struct {
	// Name is the worksheet label (often a month name or index).
	Name string

	// Rows are the data rows in source order, keyed by header text.
	Rows []RawRow
}
