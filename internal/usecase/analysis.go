package usecase

import (
	"sort"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// DefaultProductiveHours is the assumed productive flight-hour budget per
// aircraft per day.
const DefaultProductiveHours = 8.0

// SummaryStatistics computes the per-category summary rows. Every category
// is always present; empty ones report zeros.
func SummaryStatistics(bundle *FilteredBundle) map[string]domain.CategorySummary {
	out := map[string]domain.CategorySummary{}
	if bundle == nil {
		return out
	}

	shuttleOnly := bundle.Shuttle.Select(func(r *domain.FlightRecord) bool {
		return !domain.ContainsFold(r.SalesModel, "Full Cabin")
	})
	fcCharter := bundle.Filtered.Select(func(r *domain.FlightRecord) bool {
		if r.FlightCategory == domain.CategoryCharter {
			return true
		}
		return domain.ContainsFold(r.TypeOfFlight, "Shuttle") && domain.ContainsFold(r.SalesModel, "Full Cabin")
	})

	for name, sub := range map[string]*domain.Dataset{
		"Shuttle":       shuttleOnly,
		"Shuttle FC":    bundle.ShuttleFullCabin,
		"Shuttle Total": bundle.Shuttle,
		"Charter":       bundle.Charter,
		"FC + Charter":  fcCharter,
	} {
		out[name] = categorySummary(sub)
	}
	return out
}

func categorySummary(ds *domain.Dataset) domain.CategorySummary {
	var (
		s       domain.CategorySummary
		lfSum   float64
		lfCount int
	)
	if ds == nil {
		return s
	}
	for i := range ds.Records {
		r := &ds.Records[i]
		s.Flights++
		s.Passengers += r.Pax
		s.Revenue += r.Revenue
		s.TotalHours += r.FlightTimeHours
		if r.Capacity > 0 {
			lfSum += r.LoadFactor
			lfCount++
		}
	}
	s.AvgRevenuePerFlight = round2(safeDiv(s.Revenue, float64(s.Flights)))
	s.AvgLoadFactor = round1(safeDiv(lfSum, float64(lfCount)))
	s.Revenue = round2(s.Revenue)
	s.TotalHours = round1(s.TotalHours)
	return s
}

// ShuttleBreakdown splits shuttle activity by the named shuttle routes.
// Routes with no flights are omitted; ordering follows ShuttleRouteNames.
func ShuttleBreakdown(bundle *FilteredBundle) domain.ShuttleBreakdown {
	out := domain.ShuttleBreakdown{Routes: []domain.ShuttleRouteStats{}}
	if bundle == nil {
		return out
	}

	for i := range bundle.Shuttle.Records {
		r := &bundle.Shuttle.Records[i]
		out.TotalShuttle.Flights++
		out.TotalShuttle.Revenue += r.Revenue
		out.TotalShuttle.Passengers += r.Pax
	}
	out.TotalShuttle.Revenue = round2(out.TotalShuttle.Revenue)

	for _, name := range ShuttleRouteNames {
		ds := bundle.ShuttleRoutes[name]
		if ds.IsEmpty() {
			continue
		}
		var (
			stats   domain.ShuttleRouteStats
			lfSum   float64
			lfCount int
		)
		stats.Name = name
		for i := range ds.Records {
			r := &ds.Records[i]
			stats.Flights++
			stats.Revenue += r.Revenue
			stats.Passengers += r.Pax
			if r.Capacity > 0 {
				lfSum += r.LoadFactor
				lfCount++
			}
		}
		stats.AvgLoadFactor = round1(safeDiv(lfSum, float64(lfCount)))
		stats.AvgRevenuePerFlight = round2(safeDiv(stats.Revenue, float64(stats.Flights)))
		stats.Revenue = round2(stats.Revenue)
		out.Routes = append(out.Routes, stats)
	}
	return out
}

// ComputeIdleAnalysis derives the fleet idle-time report from the filtered
// dataset. Only records with a parsed date, a non-empty prefix, and positive
// flight hours participate; productiveHours is the assumed daily budget per
// aircraft, falling back to DefaultProductiveHours when non-positive.
// Returns ErrNoUsableData when no record qualifies.
func ComputeIdleAnalysis(ds *domain.Dataset, productiveHours float64) (domain.IdleAnalysis, error) {
	if productiveHours <= 0 {
		productiveHours = DefaultProductiveHours
	}
	var out domain.IdleAnalysis
	if ds == nil || !ds.Has(domain.ColDate) || !ds.Has(domain.ColAircraftPrefix) {
		return out, domain.WrapSchema("idle analysis requires date and aircraft prefix columns")
	}

	valid := ds.Select(func(r *domain.FlightRecord) bool {
		return !r.Date.IsZero() && r.AircraftPrefix != "" && r.FlightTimeHours > 0
	})
	if valid.IsEmpty() {
		return out, domain.WrapNoUsableData("no valid rows for idle analysis")
	}

	type dayAircraft struct{ day, aircraft string }
	perDayAircraft := map[dayAircraft]float64{}
	prefixes := map[string]struct{}{}
	totalFlown := 0.0
	for i := range valid.Records {
		r := &valid.Records[i]
		day := r.Date.Format("2006-01-02")
		perDayAircraft[dayAircraft{day, r.AircraftPrefix}] += r.FlightTimeHours
		prefixes[r.AircraftPrefix] = struct{}{}
		totalFlown += r.FlightTimeHours
	}

	// Mean flown hours per aircraft, per day.
	daySums := map[string]float64{}
	dayCounts := map[string]int{}
	for key, hours := range perDayAircraft {
		daySums[key.day] += hours
		dayCounts[key.day]++
	}
	days := make([]string, 0, len(daySums))
	for day := range daySums {
		days = append(days, day)
	}
	sort.Strings(days)

	out.Daily = domain.IdleDaily{
		Dates:         make([]string, 0, len(days)),
		AvgHoursFlown: make([]float64, 0, len(days)),
		AvgIdleHours:  make([]float64, 0, len(days)),
	}
	for _, day := range days {
		avg := daySums[day] / float64(dayCounts[day])
		idle := productiveHours - avg
		if idle < 0 {
			idle = 0
		}
		out.Daily.Dates = append(out.Daily.Dates, day)
		out.Daily.AvgHoursFlown = append(out.Daily.AvgHoursFlown, round2(avg))
		out.Daily.AvgIdleHours = append(out.Daily.AvgIdleHours, round2(idle))
	}

	fleet := len(prefixes)
	available := float64(fleet) * productiveHours * float64(len(days))
	idleTotal := available - totalFlown
	if idleTotal < 0 {
		idleTotal = 0
	}
	out.Summary = domain.IdleSummary{
		UniqueAircraft:      fleet,
		TotalDays:           len(days),
		TotalAvailableHours: round1(available),
		TotalFlownHours:     round1(totalFlown),
		TotalIdleHours:      round1(idleTotal),
		UtilizationRate:     round1(safeDiv(totalFlown*100, available)),
	}

	// Monthly rollup keyed by YYYY-MM.
	type monthAcc struct {
		hours float64
		days  map[string]struct{}
	}
	byMonth := map[string]*monthAcc{}
	for i := range valid.Records {
		r := &valid.Records[i]
		key := r.Date.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &monthAcc{days: map[string]struct{}{}}
			byMonth[key] = a
		}
		a.hours += r.FlightTimeHours
		a.days[r.Date.Format("2006-01-02")] = struct{}{}
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out.Monthly = make([]domain.IdleMonth, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		monthAvailable := float64(len(a.days)) * float64(fleet) * productiveHours
		monthIdle := monthAvailable - a.hours
		if monthIdle < 0 {
			monthIdle = 0
		}
		out.Monthly = append(out.Monthly, domain.IdleMonth{
			Month:           m,
			HoursFlown:      round1(a.hours),
			Days:            len(a.days),
			AvailableHours:  round1(monthAvailable),
			IdleHours:       round1(monthIdle),
			UtilizationRate: round1(safeDiv(a.hours*100, monthAvailable)),
		})
	}
	return out, nil
}
