package usecase

import (
	"math"
	"sort"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// DefaultTopRoutes bounds the by-route ranking when no limit is configured.
const DefaultTopRoutes = 20

// ComputeKPIs derives the full KPI report from a filtered bundle. The bundle
// is read-only input; every call recomputes from scratch. topRoutes bounds
// the by-route section, falling back to DefaultTopRoutes when non-positive.
func ComputeKPIs(bundle *FilteredBundle, topRoutes int) domain.KPIReport {
	if topRoutes <= 0 {
		topRoutes = DefaultTopRoutes
	}
	report := domain.KPIReport{
		ByCategory: map[string]domain.CategoryKPIs{},
		ByAircraft: map[string]domain.AircraftKPIs{},
		ByRoute:    []domain.RouteKPIs{},
		Cumulative: map[string]domain.Cumulative{},
	}
	if bundle == nil || bundle.Filtered.IsEmpty() {
		return report
	}
	ds := bundle.Filtered

	report.Overview = overviewKPIs(ds)
	report.Revenue = revenueKPIs(ds)
	report.Efficiency = efficiencyKPIs(ds)
	report.Utilization = utilizationKPIs(ds)
	report.Profitability = profitabilityKPIs(ds)

	for name, sub := range map[string]*domain.Dataset{
		"Shuttle":            bundle.Shuttle,
		"Shuttle Full Cabin": bundle.ShuttleFullCabin,
		"Charter":            bundle.Charter,
		"Marketing":          bundle.Marketing,
		"Courtesy":           bundle.Courtesy,
		"Empty Legs":         bundle.EmptyLegs,
		"Hangar Flights":     bundle.HangarFlights,
	} {
		if !sub.IsEmpty() {
			report.ByCategory[name] = categoryKPIs(sub)
		}
	}

	report.ByAircraft = aircraftKPIs(ds)
	report.ByRoute = routeKPIs(ds, topRoutes)
	report.MonthlyTrends = monthlyTrends(ds)
	report.CommercialHours = commercialHours(ds)
	report.Cumulative = map[string]domain.Cumulative{
		"Shuttle": cumulative(bundle.Shuttle),
		"Charter": cumulative(bundle.Charter),
	}
	return report
}

func overviewKPIs(ds *domain.Dataset) domain.OverviewKPIs {
	var o domain.OverviewKPIs
	for i := range ds.Records {
		r := &ds.Records[i]
		o.TotalFlights++
		o.TotalRevenue += r.Revenue
		o.TotalPassengers += r.Pax
		o.TotalFlightHours += r.FlightTimeHours
		o.TotalLandings += r.Landings
	}
	n := float64(o.TotalFlights)
	o.AvgRevenuePerFlight = round2(safeDiv(o.TotalRevenue, n))
	o.AvgPassengersPerFlight = round1(safeDiv(float64(o.TotalPassengers), n))
	o.AvgFlightDurationMin = round1(safeDiv(o.TotalFlightHours*60, n))
	o.TotalRevenue = round2(o.TotalRevenue)
	o.TotalFlightHours = round1(o.TotalFlightHours)
	return o
}

func revenueKPIs(ds *domain.Dataset) domain.RevenueKPIs {
	var (
		rev, hours, nm, cost float64
		pax, seats, commPax  int
		commRevenue          float64
	)
	for i := range ds.Records {
		r := &ds.Records[i]
		rev += r.Revenue
		hours += r.FlightTimeHours
		nm += r.DistanceNM
		cost += r.Cost
		pax += r.Pax
		seats += r.Capacity
		if r.IsCommercial {
			commRevenue += r.Revenue
			commPax += r.Pax
		}
	}
	return domain.RevenueKPIs{
		TotalRevenue:          round2(rev),
		RevenuePerFlightHour:  round2(safeDiv(rev, hours)),
		RevenuePerPassenger:   round2(safeDiv(rev, float64(pax))),
		RevenuePerSeatOffered: round2(safeDiv(rev, float64(seats))),
		RevenuePerNM:          round2(safeDiv(rev, nm)),
		CostPerNM:             round2(safeDiv(cost, nm)),
		TotalNauticalMiles:    round1(nm),
		AvgTicketPrice:        round2(safeDiv(commRevenue, float64(commPax))),
	}
}

func efficiencyKPIs(ds *domain.Dataset) domain.EfficiencyKPIs {
	var (
		e           domain.EfficiencyKPIs
		lfSum       float64
		lfCount     int
		commRevenue float64
		commPax     int
	)
	for i := range ds.Records {
		r := &ds.Records[i]
		e.TotalSeatsOffered += r.Capacity
		e.TotalPassengers += r.Pax
		if r.Capacity > 0 {
			lfSum += r.LoadFactor
			lfCount++
		}
		if domain.ContainsFold(r.SalesModel, "Full Cabin") {
			e.FullCabinFlights++
		}
		if r.IsCommercial {
			commRevenue += r.Revenue
			commPax += r.Pax
		}
	}
	e.AverageLoadFactor = round1(safeDiv(lfSum, float64(lfCount)))
	e.EmptySeats = e.TotalSeatsOffered - e.TotalPassengers
	if e.EmptySeats < 0 {
		e.EmptySeats = 0
	}
	e.SeatUtilizationRate = round1(safeDiv(float64(e.TotalPassengers)*100, float64(e.TotalSeatsOffered)))
	e.FullCabinRate = round1(safeDiv(float64(e.FullCabinFlights)*100, float64(ds.Len())))
	avgTicket := safeDiv(commRevenue, float64(commPax))
	e.PotentialRevenueLost = round2(float64(e.EmptySeats) * avgTicket)
	return e
}

func utilizationKPIs(ds *domain.Dataset) domain.UtilizationKPIs {
	u := domain.UtilizationKPIs{
		HoursByModel: map[string]float64{},
		HoursByMonth: map[string]float64{},
	}
	days := map[string]struct{}{}
	for i := range ds.Records {
		r := &ds.Records[i]
		u.TotalFlightHours += r.FlightTimeHours
		if r.AircraftModel != "" {
			u.HoursByModel[r.AircraftModel] += r.FlightTimeHours
		}
		u.HoursByMonth[domain.MonthName(r.SheetMonth)] += r.FlightTimeHours
		if !r.Date.IsZero() {
			days[r.Date.Format("2006-01-02")] = struct{}{}
		}
	}
	for k, v := range u.HoursByModel {
		u.HoursByModel[k] = round1(v)
	}
	for k, v := range u.HoursByMonth {
		u.HoursByMonth[k] = round1(v)
	}
	dayCount := float64(len(days))
	u.AvgDailyFlights = round1(safeDiv(float64(ds.Len()), dayCount))
	u.AvgDailyHours = round1(safeDiv(u.TotalFlightHours, dayCount))
	u.AvgHoursPerFlight = round2(safeDiv(u.TotalFlightHours, float64(ds.Len())))
	u.TotalFlightHours = round1(u.TotalFlightHours)
	return u
}

func profitabilityKPIs(ds *domain.Dataset) domain.ProfitabilityKPIs {
	var p domain.ProfitabilityKPIs
	for i := range ds.Records {
		r := &ds.Records[i]
		p.TotalRevenue += r.Revenue
		p.TotalCost += r.Cost
		p.CostBreakdown.FixedCosts += r.FixedCost
		p.CostBreakdown.FuelCosts += r.FuelCost
		p.CostBreakdown.MonthlyAllocation += r.MonthlyAllocation
	}
	p.GrossProfit = p.TotalRevenue - p.TotalCost
	p.ProfitMarginPercent = round1(safeDiv(p.GrossProfit*100, p.TotalRevenue))
	p.RevenuePerCost = round2(safeDiv(p.TotalRevenue, p.TotalCost))
	n := float64(ds.Len())
	p.CostPerFlight = round2(safeDiv(p.TotalCost, n))
	p.ProfitPerFlight = round2(safeDiv(p.GrossProfit, n))
	p.TotalRevenue = round2(p.TotalRevenue)
	p.TotalCost = round2(p.TotalCost)
	p.GrossProfit = round2(p.GrossProfit)
	p.CostBreakdown.FixedCosts = round2(p.CostBreakdown.FixedCosts)
	p.CostBreakdown.FuelCosts = round2(p.CostBreakdown.FuelCosts)
	p.CostBreakdown.MonthlyAllocation = round2(p.CostBreakdown.MonthlyAllocation)
	return p
}

func categoryKPIs(ds *domain.Dataset) domain.CategoryKPIs {
	var (
		c       domain.CategoryKPIs
		lfSum   float64
		lfCount int
	)
	for i := range ds.Records {
		r := &ds.Records[i]
		c.Flights++
		c.Revenue += r.Revenue
		c.Passengers += r.Pax
		c.Hours += r.FlightTimeHours
		c.Cost += r.Cost
		if r.Capacity > 0 {
			lfSum += r.LoadFactor
			lfCount++
		}
	}
	c.Profit = round2(c.Revenue - c.Cost)
	c.AvgRevenuePerFlight = round2(safeDiv(c.Revenue, float64(c.Flights)))
	c.AvgLoadFactor = round1(safeDiv(lfSum, float64(lfCount)))
	c.RevenuePerHour = round2(safeDiv(c.Revenue, c.Hours))
	c.Revenue = round2(c.Revenue)
	c.Hours = round1(c.Hours)
	c.Cost = round2(c.Cost)
	return c
}

func aircraftKPIs(ds *domain.Dataset) map[string]domain.AircraftKPIs {
	type acc struct {
		flights    int
		revenue    float64
		passengers int
		hours      float64
		cost       float64
		lfSum      float64
		lfCount    int
	}
	byModel := map[string]*acc{}
	for i := range ds.Records {
		r := &ds.Records[i]
		if r.AircraftModel == "" {
			continue
		}
		a, ok := byModel[r.AircraftModel]
		if !ok {
			a = &acc{}
			byModel[r.AircraftModel] = a
		}
		a.flights++
		a.revenue += r.Revenue
		a.passengers += r.Pax
		a.hours += r.FlightTimeHours
		a.cost += r.Cost
		if r.Capacity > 0 {
			a.lfSum += r.LoadFactor
			a.lfCount++
		}
	}

	out := make(map[string]domain.AircraftKPIs, len(byModel))
	for model, a := range byModel {
		profit := a.revenue - a.cost
		out[model] = domain.AircraftKPIs{
			Flights:        a.flights,
			Revenue:        round2(a.revenue),
			Passengers:     a.passengers,
			Hours:          round1(a.hours),
			Cost:           round2(a.cost),
			Profit:         round2(profit),
			MarginPercent:  round1(safeDiv(profit*100, a.revenue)),
			RevenuePerHour: round2(safeDiv(a.revenue, a.hours)),
			CostPerHour:    round2(safeDiv(a.cost, a.hours)),
			AvgLoadFactor:  round1(safeDiv(a.lfSum, float64(a.lfCount))),
		}
	}
	return out
}

// routeKPIs ranks routes by descending flight count, then by route name so
// equal counts order deterministically, and keeps the top n.
func routeKPIs(ds *domain.Dataset, n int) []domain.RouteKPIs {
	type acc struct {
		flights    int
		revenue    float64
		passengers int
		hours      float64
	}
	byRoute := map[string]*acc{}
	for i := range ds.Records {
		r := &ds.Records[i]
		route := r.Route()
		if route == "" {
			continue
		}
		a, ok := byRoute[route]
		if !ok {
			a = &acc{}
			byRoute[route] = a
		}
		a.flights++
		a.revenue += r.Revenue
		a.passengers += r.Pax
		a.hours += r.FlightTimeHours
	}

	out := make([]domain.RouteKPIs, 0, len(byRoute))
	for route, a := range byRoute {
		out = append(out, domain.RouteKPIs{
			Route:          route,
			Flights:        a.flights,
			Revenue:        round2(a.revenue),
			AvgRevenue:     round2(safeDiv(a.revenue, float64(a.flights))),
			Passengers:     a.passengers,
			Hours:          round1(a.hours),
			RevenuePerHour: round2(safeDiv(a.revenue, a.hours)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Flights != out[j].Flights {
			return out[i].Flights > out[j].Flights
		}
		return out[i].Route < out[j].Route
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func monthlyTrends(ds *domain.Dataset) []domain.MonthlyTrend {
	type acc struct {
		flights    int
		revenue    float64
		cost       float64
		passengers int
		hours      float64
		lfSum      float64
		lfCount    int
	}
	byMonth := map[int]*acc{}
	for i := range ds.Records {
		r := &ds.Records[i]
		a, ok := byMonth[r.SheetMonth]
		if !ok {
			a = &acc{}
			byMonth[r.SheetMonth] = a
		}
		a.flights++
		a.revenue += r.Revenue
		a.cost += r.Cost
		a.passengers += r.Pax
		a.hours += r.FlightTimeHours
		if r.Capacity > 0 {
			a.lfSum += r.LoadFactor
			a.lfCount++
		}
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	out := make([]domain.MonthlyTrend, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		out = append(out, domain.MonthlyTrend{
			Month:         m,
			MonthName:     domain.MonthName(m),
			Flights:       a.flights,
			Revenue:       round2(a.revenue),
			Cost:          round2(a.cost),
			Profit:        round2(a.revenue - a.cost),
			Passengers:    a.passengers,
			Hours:         round1(a.hours),
			AvgLoadFactor: round1(safeDiv(a.lfSum, float64(a.lfCount))),
		})
	}
	return out
}

func commercialHours(ds *domain.Dataset) domain.CommercialHoursReport {
	type split struct{ commercial, nonCommercial float64 }
	byMonth := map[int]*split{}
	byCategory := map[string]map[int]*split{}
	for i := range ds.Records {
		r := &ds.Records[i]
		s, ok := byMonth[r.SheetMonth]
		if !ok {
			s = &split{}
			byMonth[r.SheetMonth] = s
		}
		cat := string(r.FlightCategory)
		catMonths, ok := byCategory[cat]
		if !ok {
			catMonths = map[int]*split{}
			byCategory[cat] = catMonths
		}
		cs, ok := catMonths[r.SheetMonth]
		if !ok {
			cs = &split{}
			catMonths[r.SheetMonth] = cs
		}
		if r.IsCommercial {
			s.commercial += r.FlightTimeHours
			cs.commercial += r.FlightTimeHours
		} else {
			s.nonCommercial += r.FlightTimeHours
			cs.nonCommercial += r.FlightTimeHours
		}
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	report := domain.CommercialHoursReport{
		ByMonth:    make([]domain.CommercialHoursMonth, 0, len(months)),
		ByCategory: map[string]map[string]domain.CommercialHoursSplit{},
	}
	for _, m := range months {
		s := byMonth[m]
		report.ByMonth = append(report.ByMonth, domain.CommercialHoursMonth{
			Month:              m,
			MonthName:          domain.MonthName(m),
			CommercialHours:    round1(s.commercial),
			NonCommercialHours: round1(s.nonCommercial),
		})
	}
	for cat, catMonths := range byCategory {
		report.ByCategory[cat] = map[string]domain.CommercialHoursSplit{}
		for m, s := range catMonths {
			report.ByCategory[cat][domain.MonthName(m)] = domain.CommercialHoursSplit{
				Commercial:    round1(s.commercial),
				NonCommercial: round1(s.nonCommercial),
			}
		}
	}
	return report
}

// cumulative builds the running revenue and cost series for one category,
// ordered by ascending month.
func cumulative(ds *domain.Dataset) domain.Cumulative {
	c := domain.Cumulative{
		Months:            []string{},
		RevenueCumulative: []float64{},
		CostCumulative:    []float64{},
	}
	if ds.IsEmpty() {
		return c
	}
	type acc struct{ revenue, cost float64 }
	byMonth := map[int]*acc{}
	for i := range ds.Records {
		r := &ds.Records[i]
		a, ok := byMonth[r.SheetMonth]
		if !ok {
			a = &acc{}
			byMonth[r.SheetMonth] = a
		}
		a.revenue += r.Revenue
		a.cost += r.Cost
	}
	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	var runRevenue, runCost float64
	for _, m := range months {
		runRevenue += byMonth[m].revenue
		runCost += byMonth[m].cost
		c.Months = append(c.Months, domain.MonthName(m))
		c.RevenueCumulative = append(c.RevenueCumulative, round2(runRevenue))
		c.CostCumulative = append(c.CostCumulative, round2(runCost))
	}
	return c
}

// safeDiv divides, returning 0 for a zero denominator.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
