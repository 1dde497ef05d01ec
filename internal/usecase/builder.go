package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// totalRowPattern matches the identifying-column text of total/subtotal rows
// introduced by spreadsheet exports.
var totalRowPattern = regexp.MustCompile(`(?i)TOTAL|SOMA|SUM|TOTAIS|GERAL|GRAND|SUBTOTAL`)

// columnAliases maps the raw header spellings seen in exports onto canonical
// columns. Matching is case-insensitive on the trimmed header.
var columnAliases = map[string]domain.Column{
	"date":                    domain.ColDate,
	"data":                    domain.ColDate,
	"departure":               domain.ColDeparture,
	"origem":                  domain.ColDeparture,
	"arrival":                 domain.ColArrival,
	"destino":                 domain.ColArrival,
	"type of flight":          domain.ColTypeOfFlight,
	"tipo de voo":             domain.ColTypeOfFlight,
	"sales model":             domain.ColSalesModel,
	"classification":          domain.ColClassification,
	"aircraft_model":          domain.ColAircraftModel,
	"aircraft model":          domain.ColAircraftModel,
	"modelo":                  domain.ColAircraftModel,
	"aircraft_prefix":         domain.ColAircraftPrefix,
	"aircraft prefix":         domain.ColAircraftPrefix,
	"prefix":                  domain.ColAircraftPrefix,
	"prefixo":                 domain.ColAircraftPrefix,
	"sheet_month":             domain.ColSheetMonth,
	"month":                   domain.ColSheetMonth,
	"revenue":                 domain.ColRevenue,
	"receita":                 domain.ColRevenue,
	"pax":                     domain.ColPax,
	"passengers":              domain.ColPax,
	"passageiros":             domain.ColPax,
	"flight_time_hours":       domain.ColFlightHours,
	"flight_time":             domain.ColFlightHours,
	"flight time":             domain.ColFlightHours,
	"hours":                   domain.ColFlightHours,
	"horas":                   domain.ColFlightHours,
	"landings":                domain.ColLandings,
	"pousos":                  domain.ColLandings,
	"aircraft_capacity":       domain.ColCapacity,
	"capacity":                domain.ColCapacity,
	"distance_nm":             domain.ColDistanceNM,
	"distance_nautical_miles": domain.ColDistanceNM,
	"estimated_distance_nm":   domain.ColDistanceNM,
	"start_hour":              domain.ColStartHour,
	"load_factor":             domain.ColLoadFactor,
}

// monthNames resolves sheet labels like "Nov" or "Novembro" to a month index.
// Both English and Portuguese three-letter prefixes appear in real workbooks.
var monthNames = map[string]int{
	"jan": 1, "feb": 2, "fev": 2, "mar": 3, "apr": 4, "abr": 4,
	"may": 5, "mai": 5, "jun": 6, "jul": 7, "aug": 8, "ago": 8,
	"sep": 9, "set": 9, "oct": 10, "out": 10, "nov": 11, "dec": 12, "dez": 12,
}

// Builder turns raw sheets into the canonical dataset. It owns the cleaning
// pipeline: total-row stripping, sheet tagging, concatenation, classification,
// and numeric normalization.
type Builder struct{}

// NewBuilder creates a dataset builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build converts the raw sheets into a new canonical dataset.
//
// Pipeline, per sheet: strip total/subtotal rows, drop fully empty rows, tag
// rows with the sheet name. Sheets are then concatenated preserving row
// order, stripped once more (totals can appear at concatenation boundaries),
// classified, and normalized.
//
// Returns ErrNoUsableData when zero rows survive cleaning; the caller's prior
// canonical dataset must be left untouched in that case.
func (b *Builder) Build(sheets []domain.RawSheet) (*domain.Dataset, error) {
	type taggedRow struct {
		sheet string
		month int
		row   domain.RawRow
	}

	var rows []taggedRow
	columns := domain.NewColumnSet()

	for _, sheet := range sheets {
		sheetMonth := monthFromSheetName(sheet.Name)
		for _, raw := range sheet.Rows {
			if isTotalRow(raw) || isEmptyRow(raw) {
				continue
			}
			rows = append(rows, taggedRow{sheet: sheet.Name, month: sheetMonth, row: raw})
			for header := range raw {
				if col, ok := canonicalColumn(header); ok {
					columns.Add(col)
				}
			}
		}
	}

	// Second strip over the concatenated rows. Per-sheet stripping already
	// ran, so this only catches totals that survive the first pass.
	kept := rows[:0]
	for _, tr := range rows {
		if !isTotalRow(tr.row) {
			kept = append(kept, tr)
		}
	}
	rows = kept

	if len(rows) == 0 {
		return nil, domain.WrapNoUsableData("%d sheets produced no rows", len(sheets))
	}

	columns.Add(domain.ColSheetMonth)

	ds := &domain.Dataset{
		Records: make([]domain.FlightRecord, 0, len(rows)),
		Columns: columns,
	}
	for _, tr := range rows {
		rec := buildRecord(tr.row, tr.sheet, tr.month)
		domain.ClassifyRecord(&rec)
		ds.Records = append(ds.Records, rec)
	}
	ds.Columns.Add(domain.ColIsCommercial, domain.ColFlightCategory)

	Normalize(ds)
	return ds, nil
}

// Append merges new raw sheets into an existing canonical dataset.
//
// Schema alignment is the union of columns; records coming from either side
// already carry type-appropriate defaults for columns they lack. Existing
// rows for replaceMonth are removed before the new rows are inserted, so
// re-uploading a month never duplicates it. When replaceMonth is zero, every
// month present in the incoming data is replaced.
//
// Returns ErrNoUsableData (existing untouched) when the new sheets clean down
// to zero rows.
func (b *Builder) Append(existing *domain.Dataset, sheets []domain.RawSheet, replaceMonth int) (*domain.Dataset, error) {
	incoming, err := b.Build(sheets)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.IsEmpty() {
		return incoming, nil
	}

	replaced := map[int]bool{}
	if replaceMonth > 0 {
		replaced[replaceMonth] = true
	} else {
		for i := range incoming.Records {
			if m := incoming.Records[i].SheetMonth; m > 0 {
				replaced[m] = true
			}
		}
	}

	merged := &domain.Dataset{
		Records: make([]domain.FlightRecord, 0, existing.Len()+incoming.Len()),
		Columns: existing.Columns.Union(incoming.Columns),
	}
	for i := range existing.Records {
		if !replaced[existing.Records[i].SheetMonth] {
			merged.Records = append(merged.Records, existing.Records[i])
		}
	}
	merged.Records = append(merged.Records, incoming.Records...)

	for i := range merged.Records {
		domain.ClassifyRecord(&merged.Records[i])
	}
	Normalize(merged)
	return merged, nil
}

// buildRecord maps one raw row onto a FlightRecord with defaults for absent
// or unparsable cells.
func buildRecord(raw domain.RawRow, sheet string, sheetMonth int) domain.FlightRecord {
	rec := domain.FlightRecord{
		ID:         uuid.New().String(),
		Sheet:      sheet,
		SheetMonth: sheetMonth,
		Landings:   1,
	}

	for header, value := range raw {
		col, ok := canonicalColumn(header)
		if !ok {
			continue
		}
		switch col {
		case domain.ColDate:
			rec.DateRaw = CoerceString(value)
			if t, ok := CoerceDate(value); ok {
				rec.Date = t
				if rec.SheetMonth == 0 {
					rec.SheetMonth = int(t.Month())
				}
			}
		case domain.ColDeparture:
			rec.Departure = CoerceString(value)
		case domain.ColArrival:
			rec.Arrival = CoerceString(value)
		case domain.ColTypeOfFlight:
			rec.TypeOfFlight = CoerceString(value)
		case domain.ColSalesModel:
			rec.SalesModel = CoerceString(value)
		case domain.ColClassification:
			rec.Classification = CoerceString(value)
		case domain.ColAircraftModel:
			rec.AircraftModel = CoerceString(value)
		case domain.ColAircraftPrefix:
			rec.AircraftPrefix = CoerceString(value)
		case domain.ColSheetMonth:
			if m, ok := CoerceInt(value); ok {
				rec.SheetMonth = m
			}
		case domain.ColRevenue:
			rec.Revenue, _ = CoerceFloat(value)
		case domain.ColPax:
			rec.Pax, _ = CoerceInt(value)
		case domain.ColFlightHours:
			rec.FlightTimeHours, _ = CoerceFloat(value)
		case domain.ColLandings:
			if n, ok := CoerceInt(value); ok {
				rec.Landings = n
			}
		case domain.ColCapacity:
			rec.Capacity, _ = CoerceInt(value)
		case domain.ColDistanceNM:
			rec.DistanceNM, _ = CoerceFloat(value)
		case domain.ColStartHour:
			rec.StartHour, _ = CoerceFloat(value)
		case domain.ColLoadFactor:
			rec.LoadFactor, _ = CoerceFloat(value)
		}
	}
	return rec
}

// canonicalColumn resolves a raw header to its canonical column.
func canonicalColumn(header string) (domain.Column, bool) {
	col, ok := columnAliases[strings.ToLower(strings.TrimSpace(header))]
	return col, ok
}

// isTotalRow reports whether any identifying column of the raw row matches
// the total/subtotal pattern.
func isTotalRow(raw domain.RawRow) bool {
	for header, value := range raw {
		col, ok := canonicalColumn(header)
		if !ok {
			continue
		}
		switch col {
		case domain.ColDate, domain.ColDeparture, domain.ColArrival, domain.ColTypeOfFlight:
			if totalRowPattern.MatchString(CoerceString(value)) {
				return true
			}
		}
	}
	return false
}

// isEmptyRow reports whether every cell of the row is empty.
func isEmptyRow(raw domain.RawRow) bool {
	for _, value := range raw {
		if CoerceString(value) != "" {
			return false
		}
	}
	return true
}

// monthFromSheetName derives a month index from a worksheet label such as
// "11", "Nov", "Novembro" or "Nov 2025". Returns 0 when the label carries no
// month.
func monthFromSheetName(name string) int {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return 0
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '/'
	})
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil && n >= 1 && n <= 12 {
			return n
		}
		if len(f) >= 3 {
			if m, ok := monthNames[f[:3]]; ok {
				return m
			}
		}
	}
	return 0
}
