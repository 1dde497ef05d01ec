package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightops/flight-kpi-engine/internal/domain"
	"github.com/flightops/flight-kpi-engine/test/testutil"
)

// kpiBundle builds a filtered, cost-annotated bundle from three flights:
// two October shuttles and one November charter.
func kpiBundle(t *testing.T) *FilteredBundle {
	t.Helper()

	ds, err := NewBuilder().Build([]domain.RawSheet{
		testutil.Sheet("Oct",
			testutil.ShuttleRow("2024-10-01", "SBSP", "FBV"),
			testutil.ShuttleRow("2024-10-01", "FBV", "SBSP"),
		),
		testutil.Sheet("Nov",
			testutil.CharterRow("2024-11-05", "SBSP", "SDCO"),
		),
	})
	require.NoError(t, err)

	table := domain.CostTable{
		"EC135": {FixedCostPerHour: 1000, FuelCostPerHour: 500, Capacity: 5},
		"EC155": {FixedCostPerHour: 2000, FuelCostPerHour: 1000, Capacity: 8},
	}
	bundle := ApplyFilters(ds, domain.DefaultFilterSpec())
	return newBundle(AllocateCosts(bundle.Filtered, table))
}

func TestComputeKPIs_Overview(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	o := report.Overview
	assert.Equal(t, 3, o.TotalFlights)
	assert.InDelta(t, 7000.0, o.TotalRevenue, 1e-9)
	assert.Equal(t, 14, o.TotalPassengers)
	assert.InDelta(t, 2.2, o.TotalFlightHours, 1e-9)
	assert.Equal(t, 3, o.TotalLandings)
	assert.InDelta(t, 2333.33, o.AvgRevenuePerFlight, 1e-9)
	assert.InDelta(t, 4.7, o.AvgPassengersPerFlight, 1e-9)
	assert.InDelta(t, 44.0, o.AvgFlightDurationMin, 1e-9)
}

func TestComputeKPIs_Revenue(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	r := report.Revenue
	assert.InDelta(t, 7000.0, r.TotalRevenue, 1e-9)
	// 7000 / 2.2 hours.
	assert.InDelta(t, 3181.82, r.RevenuePerFlightHour, 1e-9)
	assert.InDelta(t, 500.0, r.RevenuePerPassenger, 1e-9)
	// All three flights are commercial, so the avg ticket equals rev/pax.
	assert.InDelta(t, 500.0, r.AvgTicketPrice, 1e-9)
}

func TestComputeKPIs_Efficiency(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	e := report.Efficiency
	// Seats: 5 + 5 + 8. Pax: 4 + 4 + 6.
	assert.Equal(t, 18, e.TotalSeatsOffered)
	assert.Equal(t, 14, e.TotalPassengers)
	assert.Equal(t, 4, e.EmptySeats)
	// Load factors: 80, 80, 75.
	assert.InDelta(t, 78.3, e.AverageLoadFactor, 1e-9)
	assert.InDelta(t, 77.8, e.SeatUtilizationRate, 1e-9)
	assert.Zero(t, e.FullCabinFlights)
	assert.InDelta(t, 2000.0, e.PotentialRevenueLost, 1e-9)
}

func TestComputeKPIs_Utilization(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	u := report.Utilization
	assert.InDelta(t, 2.2, u.TotalFlightHours, 1e-9)
	assert.InDelta(t, 1.0, u.HoursByModel["EC135"], 1e-9)
	assert.InDelta(t, 1.2, u.HoursByModel["EC155"], 1e-9)
	assert.InDelta(t, 1.0, u.HoursByMonth["Oct"], 1e-9)
	// Two distinct flight dates.
	assert.InDelta(t, 1.5, u.AvgDailyFlights, 1e-9)
}

func TestComputeKPIs_Profitability(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	p := report.Profitability
	// EC135: 1h x 1500. EC155: 1.2h x 3000.
	assert.InDelta(t, 5100.0, p.TotalCost, 1e-9)
	assert.InDelta(t, 1900.0, p.GrossProfit, 1e-9)
	assert.InDelta(t, 3400.0, p.CostBreakdown.FixedCosts, 1e-9)
	assert.InDelta(t, 1700.0, p.CostBreakdown.FuelCosts, 1e-9)
	assert.InDelta(t, 27.1, p.ProfitMarginPercent, 1e-9)
}

func TestComputeKPIs_Categories(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	require.Contains(t, report.ByCategory, "Shuttle")
	require.Contains(t, report.ByCategory, "Charter")
	assert.NotContains(t, report.ByCategory, "Marketing")

	shuttle := report.ByCategory["Shuttle"]
	assert.Equal(t, 2, shuttle.Flights)
	assert.InDelta(t, 2000.0, shuttle.Revenue, 1e-9)
	assert.InDelta(t, 1000.0, shuttle.AvgRevenuePerFlight, 1e-9)
}

func TestComputeKPIs_Aircraft(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	require.Contains(t, report.ByAircraft, "EC135")
	ec135 := report.ByAircraft["EC135"]
	assert.Equal(t, 2, ec135.Flights)
	assert.InDelta(t, 2000.0, ec135.Revenue, 1e-9)
	assert.InDelta(t, 1.0, ec135.Hours, 1e-9)
	assert.InDelta(t, 1500.0, ec135.Cost, 1e-9)
	assert.InDelta(t, 80.0, ec135.AvgLoadFactor, 1e-9)
}

func TestComputeKPIs_Routes(t *testing.T) {
	ds, err := NewBuilder().Build([]domain.RawSheet{
		testutil.Sheet("Oct",
			testutil.ShuttleRow("2024-10-01", "SBSP", "FBV"),
			testutil.ShuttleRow("2024-10-02", "SBSP", "FBV"),
			testutil.ShuttleRow("2024-10-03", "FBV", "SBSP"),
			testutil.CharterRow("2024-10-04", "SBSP", "SDCO"),
		),
	})
	require.NoError(t, err)
	bundle := ApplyFilters(ds, domain.DefaultFilterSpec())

	report := ComputeKPIs(bundle, 2)

	require.Len(t, report.ByRoute, 2)
	assert.Equal(t, "SBSP - FBV", report.ByRoute[0].Route)
	assert.Equal(t, 2, report.ByRoute[0].Flights)
	// Equal counts order by route name.
	assert.Equal(t, "FBV - SBSP", report.ByRoute[1].Route)
}

func TestComputeKPIs_MonthlyTrends(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	require.Len(t, report.MonthlyTrends, 2)
	assert.Equal(t, 10, report.MonthlyTrends[0].Month)
	assert.Equal(t, "Oct", report.MonthlyTrends[0].MonthName)
	assert.Equal(t, 2, report.MonthlyTrends[0].Flights)
	assert.Equal(t, 11, report.MonthlyTrends[1].Month)
	assert.InDelta(t, 5000.0, report.MonthlyTrends[1].Revenue, 1e-9)
}

func TestComputeKPIs_CommercialHours(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	require.Len(t, report.CommercialHours.ByMonth, 2)
	oct := report.CommercialHours.ByMonth[0]
	assert.Equal(t, "Oct", oct.MonthName)
	assert.InDelta(t, 1.0, oct.CommercialHours, 1e-9)
	assert.Zero(t, oct.NonCommercialHours)

	require.Contains(t, report.CommercialHours.ByCategory, "Charter")
	assert.InDelta(t, 1.2, report.CommercialHours.ByCategory["Charter"]["Nov"].Commercial, 1e-9)
}

func TestComputeKPIs_Cumulative(t *testing.T) {
	report := ComputeKPIs(kpiBundle(t), 0)

	require.Contains(t, report.Cumulative, "Shuttle")
	require.Contains(t, report.Cumulative, "Charter")

	shuttle := report.Cumulative["Shuttle"]
	require.Equal(t, []string{"Oct"}, shuttle.Months)
	assert.Equal(t, []float64{2000}, shuttle.RevenueCumulative)

	charter := report.Cumulative["Charter"]
	require.Equal(t, []string{"Nov"}, charter.Months)
	assert.Equal(t, []float64{5000}, charter.RevenueCumulative)
}

func TestComputeKPIs_Empty(t *testing.T) {
	report := ComputeKPIs(newBundle(domain.NewDataset()), 0)

	assert.Zero(t, report.Overview.TotalFlights)
	assert.NotNil(t, report.ByCategory)
	assert.NotNil(t, report.ByRoute)
	assert.Empty(t, report.MonthlyTrends)
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 0.0, safeDiv(10, 0))
	assert.Equal(t, 2.5, safeDiv(5, 2))
}
