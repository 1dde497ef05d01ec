// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// FloatPtr returns a pointer to the given float64.
func FloatPtr(v float64) *float64 { return &v }

// IntPtr returns a pointer to the given int.
func IntPtr(v int) *int { return &v }

// TimePtr returns a pointer to the given time.
func TimePtr(v time.Time) *time.Time { return &v }

// ShuttleRow builds a raw row shaped like a shuttle flight from a typical
// operations export.
func ShuttleRow(date, departure, arrival string) domain.RawRow {
	return domain.RawRow{
		"Date":           date,
		"Departure":      departure,
		"Arrival":        arrival,
		"Type of Flight": "Shuttle " + arrival,
		"Sales Model":    "Per Seat",
		"Aircraft Model": "EC135",
		"Prefix":         "PR-ABC",
		"Revenue":        "1000",
		"Pax":            "4",
		"Flight Time":    "0.5",
		"Landings":       "1",
	}
}

// CharterRow builds a raw row shaped like a charter flight.
func CharterRow(date, departure, arrival string) domain.RawRow {
	return domain.RawRow{
		"Date":           date,
		"Departure":      departure,
		"Arrival":        arrival,
		"Type of Flight": "Charter",
		"Sales Model":    "Full Aircraft",
		"Classification": "Charter",
		"Aircraft Model": "EC155",
		"Prefix":         "PR-XYZ",
		"Revenue":        "5000",
		"Pax":            "6",
		"Flight Time":    "1.2",
		"Landings":       "1",
	}
}

// Sheet wraps rows in a named raw sheet.
func Sheet(name string, rows ...domain.RawRow) domain.RawSheet {
	return domain.RawSheet{Name: name, Rows: rows}
}
