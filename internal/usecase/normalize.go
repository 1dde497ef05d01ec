// Package usecase provides the business logic for the flight KPI engine:
// dataset building, filter evaluation, cost allocation, and KPI aggregation.
package usecase

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// CoerceFloat converts an arbitrary raw cell value to a float64.
// Returns false when the value is absent or unparsable; a single bad cell
// never produces an error.
//
// Accepted string shapes, in the formats seen in real exports:
//
//	"1234.5"      plain decimal
//	"1.234,56"    thousands dot, decimal comma
//	"1,234.56"    thousands comma, decimal dot
//	"1234,56"     decimal comma
//	"R$ 1.500"    currency prefix
func CoerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case float32:
		return CoerceFloat(float64(val))
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case time.Time:
		return 0, false
	case string:
		return parseNumericText(val)
	default:
		return 0, false
	}
}

// CoerceInt converts a raw cell value to an int, truncating any fraction.
func CoerceInt(v any) (int, bool) {
	f, ok := CoerceFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// parseNumericText parses a numeric string that may carry currency symbols,
// spaces, and mixed thousands/decimal separators.
func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// Last separator wins as the decimal mark.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) == 2 {
			// 1234,56
			s = parts[0] + "." + parts[1]
		} else {
			// comma as thousands separator
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceString converts a raw cell value to trimmed text; nil becomes "".
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return ""
	}
}

// dateLayouts are tried in order when parsing raw date cells.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"01-02-2006",
	"02-01-2006",
	time.RFC3339,
}

// CoerceDate parses a raw cell into a date. The zero time with ok=false
// signals an absent or unparsable cell.
func CoerceDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Normalize enforces the numeric-safety contract over a dataset in place:
// every declared numeric field is a finite number, integer fields carry no
// fraction, and landings default to one per flight when the source column is
// absent. Applying it twice produces the same result as once, and it is safe
// on datasets whose values are already normalized.
func Normalize(ds *domain.Dataset) {
	if ds == nil {
		return
	}
	landingsPresent := ds.Has(domain.ColLandings)
	for i := range ds.Records {
		r := &ds.Records[i]
		r.Revenue = sanitize(r.Revenue)
		r.FlightTimeHours = sanitize(r.FlightTimeHours)
		r.DistanceNM = sanitize(r.DistanceNM)
		r.StartHour = sanitize(r.StartHour)
		r.LoadFactor = sanitize(r.LoadFactor)
		r.FixedCost = sanitize(r.FixedCost)
		r.FuelCost = sanitize(r.FuelCost)
		r.MonthlyAllocation = sanitize(r.MonthlyAllocation)
		r.Cost = sanitize(r.Cost)
		if r.Pax < 0 {
			r.Pax = 0
		}
		if r.SheetMonth < 0 {
			r.SheetMonth = 0
		}
		if !landingsPresent {
			r.Landings = 1
		} else if r.Landings < 0 {
			r.Landings = 0
		}
		if r.Capacity < 0 {
			r.Capacity = 0
		}
	}
}

// sanitize maps NaN and infinities to zero so aggregates stay well-defined.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
