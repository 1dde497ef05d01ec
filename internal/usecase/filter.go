package usecase

import (
	"sort"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// ShuttleRouteNames are the named shuttle sub-routes broken out in the
// shuttle analysis, matched against the type-of-flight route text.
var ShuttleRouteNames = []string{"FBV", "Baronesa", "Laranjeiras", "Alphaville", "Catarina"}

// FilteredBundle is the output of filter evaluation: the filtered dataset and
// its category sub-datasets, each a read-only projection of Filtered. The
// whole bundle is rebuilt whenever filters or the canonical dataset change;
// readers hold a consistent snapshot.
type FilteredBundle struct {
	Filtered *domain.Dataset

	Shuttle          *domain.Dataset
	ShuttleFullCabin *domain.Dataset
	Charter          *domain.Dataset
	Marketing        *domain.Dataset
	Courtesy         *domain.Dataset
	EmptyLegs        *domain.Dataset
	HangarFlights    *domain.Dataset

	// ShuttleRoutes maps each named shuttle sub-route to its slice.
	ShuttleRoutes map[string]*domain.Dataset
}

// ApplyFilters rebuilds the filtered dataset from the canonical one.
//
// Behavior:
//   - Never mutates the canonical dataset.
//   - Reclassifies when the derived category columns are absent.
//   - Normalizes numerics before any comparison and once more at the end.
//   - Applies filters by conjunction in a fixed order: inclusion sets, date
//     range, numeric ranges, hour range, boolean category exclusions.
//   - A filter step whose source column is absent is silently skipped.
//   - Idempotent: re-applying the same spec to its own output is a no-op.
func ApplyFilters(canonical *domain.Dataset, spec domain.FilterSpec) *FilteredBundle {
	if canonical == nil {
		return newBundle(domain.NewDataset())
	}

	ds := canonical.Clone()
	if !ds.Has(domain.ColIsCommercial) || !ds.Has(domain.ColFlightCategory) {
		for i := range ds.Records {
			domain.ClassifyRecord(&ds.Records[i])
		}
		ds.Columns.Add(domain.ColIsCommercial, domain.ColFlightCategory)
	}
	Normalize(ds)

	// Prebuilt lookup sets give O(1) membership checks.
	flightTypes := stringSet(spec.FlightTypes)
	models := stringSet(spec.AircraftModels)
	prefixes := stringSet(spec.AircraftPrefixes)
	salesModels := stringSet(spec.SalesModels)
	classifications := stringSet(spec.Classifications)
	months := intSet(spec.Months)

	ds = ds.Select(func(r *domain.FlightRecord) bool {
		// Inclusion filters.
		if len(flightTypes) > 0 && ds.Has(domain.ColTypeOfFlight) && !member(flightTypes, r.TypeOfFlight) {
			return false
		}
		if len(models) > 0 && ds.Has(domain.ColAircraftModel) && !member(models, r.AircraftModel) {
			return false
		}
		if len(prefixes) > 0 && ds.Has(domain.ColAircraftPrefix) && !member(prefixes, r.AircraftPrefix) {
			return false
		}
		if len(salesModels) > 0 && ds.Has(domain.ColSalesModel) && !member(salesModels, r.SalesModel) {
			return false
		}
		if len(classifications) > 0 && ds.Has(domain.ColClassification) && !member(classifications, r.Classification) {
			return false
		}
		if len(months) > 0 && ds.Has(domain.ColSheetMonth) {
			if _, ok := months[r.SheetMonth]; !ok {
				return false
			}
		}

		// Date range.
		if ds.Has(domain.ColDate) && !spec.DateRange(r.Date) {
			return false
		}

		// Numeric ranges.
		if ds.Has(domain.ColRevenue) {
			if spec.RevenueMin != nil && r.Revenue < *spec.RevenueMin {
				return false
			}
			if spec.RevenueMax != nil && r.Revenue > *spec.RevenueMax {
				return false
			}
		}
		if ds.Has(domain.ColPax) {
			if spec.PaxMin != nil && r.Pax < *spec.PaxMin {
				return false
			}
			if spec.PaxMax != nil && r.Pax > *spec.PaxMax {
				return false
			}
		}
		if ds.Has(domain.ColLandings) {
			if spec.LandingsMin != nil && r.Landings < *spec.LandingsMin {
				return false
			}
			if spec.LandingsMax != nil && r.Landings > *spec.LandingsMax {
				return false
			}
		}

		// Hour range.
		if ds.Has(domain.ColStartHour) {
			if spec.HourStart != nil && r.StartHour < *spec.HourStart {
				return false
			}
			if spec.HourEnd != nil && r.StartHour > *spec.HourEnd {
				return false
			}
		}

		// Boolean category exclusions.
		if ds.Has(domain.ColTypeOfFlight) {
			if !spec.IncludeEmptyLeg && domain.ContainsFold(r.TypeOfFlight, "Empty Leg") {
				return false
			}
			if !spec.IncludeHangarFlight && domain.ContainsFold(r.TypeOfFlight, "Hangar") {
				return false
			}
		}

		return true
	})

	// Final pass guarantees downstream numeric safety.
	Normalize(ds)
	return newBundle(ds)
}

// newBundle slices the filtered dataset into its category sub-datasets using
// the classification predicates.
func newBundle(filtered *domain.Dataset) *FilteredBundle {
	b := &FilteredBundle{
		Filtered: filtered,
		Shuttle: filtered.Select(func(r *domain.FlightRecord) bool {
			return r.FlightCategory == domain.CategoryShuttle
		}),
		ShuttleFullCabin: filtered.Select(func(r *domain.FlightRecord) bool {
			return domain.ContainsFold(r.TypeOfFlight, "Shuttle") && domain.ContainsFold(r.SalesModel, "Full Cabin")
		}),
		Charter: filtered.Select(func(r *domain.FlightRecord) bool {
			return r.FlightCategory == domain.CategoryCharter
		}),
		Marketing: filtered.Select(func(r *domain.FlightRecord) bool {
			return domain.ContainsFold(r.SalesModel, "Marketing")
		}),
		Courtesy: filtered.Select(func(r *domain.FlightRecord) bool {
			return domain.ContainsFold(r.SalesModel, "Courtesy")
		}),
		EmptyLegs: filtered.Select(func(r *domain.FlightRecord) bool {
			return domain.ContainsFold(r.TypeOfFlight, "Empty Leg")
		}),
		HangarFlights: filtered.Select(func(r *domain.FlightRecord) bool {
			return domain.ContainsFold(r.TypeOfFlight, "Hangar")
		}),
		ShuttleRoutes: make(map[string]*domain.Dataset, len(ShuttleRouteNames)),
	}

	for _, route := range ShuttleRouteNames {
		name := route
		b.ShuttleRoutes[name] = filtered.Select(func(r *domain.FlightRecord) bool {
			return r.FlightCategory == domain.CategoryShuttle && domain.ContainsFold(r.TypeOfFlight, name)
		})
	}
	return b
}

// DiscoverFilterOptions extracts the distinct, sorted values available for
// each inclusion filter from the canonical dataset.
func DiscoverFilterOptions(ds *domain.Dataset) domain.FilterOptions {
	opts := domain.FilterOptions{
		FlightTypes:      []string{},
		AircraftModels:   []string{},
		AircraftPrefixes: []string{},
		SalesModels:      []string{},
		Classifications:  []string{},
		Months:           []int{},
	}
	if ds == nil || ds.IsEmpty() {
		return opts
	}

	opts.FlightTypes = distinctStrings(ds, func(r *domain.FlightRecord) string { return r.TypeOfFlight })
	opts.AircraftModels = distinctStrings(ds, func(r *domain.FlightRecord) string { return r.AircraftModel })
	opts.AircraftPrefixes = distinctStrings(ds, func(r *domain.FlightRecord) string { return r.AircraftPrefix })
	opts.SalesModels = distinctStrings(ds, func(r *domain.FlightRecord) string { return r.SalesModel })
	opts.Classifications = distinctStrings(ds, func(r *domain.FlightRecord) string { return r.Classification })

	seen := map[int]bool{}
	for i := range ds.Records {
		if m := ds.Records[i].SheetMonth; m > 0 && !seen[m] {
			seen[m] = true
			opts.Months = append(opts.Months, m)
		}
	}
	sort.Ints(opts.Months)
	return opts
}

// distinctStrings collects the sorted distinct non-empty values of one field.
func distinctStrings(ds *domain.Dataset, field func(*domain.FlightRecord) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for i := range ds.Records {
		v := field(&ds.Records[i])
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// stringSet builds a membership set from a slice.
func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// intSet builds a membership set from a slice.
func intSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// member checks set membership.
func member(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
