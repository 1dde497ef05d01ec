package domain

import "strings"

// Category is the commercial category of a flight.
type Category string

// Flight categories.
const (
	// CategoryShuttle covers scheduled per-seat shuttle legs.
	CategoryShuttle Category = "Shuttle"

	// CategoryCharter covers full-cabin and ad hoc charter legs.
	CategoryCharter Category = "Charter"

	// CategoryOther is the default for anything else.
	CategoryOther Category = "Other"
)

// IsValid checks if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryShuttle, CategoryCharter, CategoryOther:
		return true
	default:
		return false
	}
}

// Classification rules, evaluated in order. A later category rule overwrites
// an earlier match, so a record matching both the Shuttle and the Charter
// patterns ends up Charter. That ordering is load-bearing: changing it would
// change historical KPI output.
//
// Commercial rules:
//   - default commercial
//   - sales model containing "Marketing" or "Courtesy"  -> non-commercial
//   - type of flight containing "Empty Leg" or "Hangar" -> non-commercial
//
// Category rules:
//   - default Other
//   - type of flight containing "Shuttle"  -> Shuttle
//   - type of flight containing "Charter"
//     or sales model containing "Full Cabin" -> Charter
//
// All matching is case-insensitive substring matching; absent source columns
// behave as empty text, so classification never fails.
func Classify(salesModel, classification, typeOfFlight string) (bool, Category) {
	_ = classification // reserved: no classification-text rule exists today

	sales := strings.ToLower(salesModel)
	flight := strings.ToLower(typeOfFlight)

	commercial := true
	if strings.Contains(sales, "marketing") || strings.Contains(sales, "courtesy") {
		commercial = false
	}
	if strings.Contains(flight, "empty leg") || strings.Contains(flight, "hangar") {
		commercial = false
	}

	category := CategoryOther
	if strings.Contains(flight, "shuttle") {
		category = CategoryShuttle
	}
	if strings.Contains(flight, "charter") || strings.Contains(sales, "full cabin") {
		category = CategoryCharter
	}

	return commercial, category
}

// ClassifyRecord applies the classification rules to a record in place.
func ClassifyRecord(r *FlightRecord) {
	r.IsCommercial, r.FlightCategory = Classify(r.SalesModel, r.Classification, r.TypeOfFlight)
}

// ContainsFold reports whether s contains substr, case-insensitively.
// Shared by the category predicates and the filter evaluator's
// empty-leg/hangar exclusions.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
