package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightops/flight-kpi-engine/internal/adapter/http/response"
	"github.com/flightops/flight-kpi-engine/internal/domain"
	"github.com/flightops/flight-kpi-engine/internal/usecase"
	"github.com/flightops/flight-kpi-engine/test/mock"
	"github.com/flightops/flight-kpi-engine/test/testutil"
)

// newServer wires an echo instance with a fresh store and the given sheet
// provider, mirroring the production route table.
func newServer(t *testing.T, sheets *mock.SheetProvider) (*echo.Echo, *usecase.AnalyticsStore) {
	t.Helper()

	store := usecase.NewAnalyticsStore(usecase.StoreOptions{}, nil, zerolog.Nop())
	handler := NewAnalyticsHandler(store, sheets, 10<<20)

	e := echo.New()
	RegisterRoutes(e, handler)
	return e, store
}

// uploadRequest builds a multipart POST with a dummy workbook payload.
func uploadRequest(t *testing.T, path string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "data.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("workbook bytes"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func defaultSheets() *mock.SheetProvider {
	return mock.NewSheetProvider().WithSheets(
		testutil.Sheet("Oct",
			testutil.ShuttleRow("2024-10-01", "SBSP", "FBV"),
			testutil.CharterRow("2024-10-02", "SBSP", "SDCO"),
		),
	)
}

func buildStore(t *testing.T, store *usecase.AnalyticsStore) {
	t.Helper()
	_, err := store.Build(context.Background(), []domain.RawSheet{
		testutil.Sheet("Oct",
			testutil.ShuttleRow("2024-10-01", "SBSP", "FBV"),
			testutil.CharterRow("2024-10-02", "SBSP", "SDCO"),
		),
	})
	require.NoError(t, err)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func TestHealth(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUploadData(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/upload", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dataset built", resp.Message)
	assert.Equal(t, 2, resp.Records)
	assert.Equal(t, []int{10}, resp.Months)
}

func TestUploadData_MissingFile(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/data/upload", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeError(t, rec).Code)
}

func TestUploadData_TooLarge(t *testing.T) {
	store := usecase.NewAnalyticsStore(usecase.StoreOptions{}, nil, zerolog.Nop())
	handler := NewAnalyticsHandler(store, defaultSheets(), 4)
	e := echo.New()
	RegisterRoutes(e, handler)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/upload", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "too large")
}

func TestUploadData_NoUsableRows(t *testing.T) {
	sheets := mock.NewSheetProvider().WithSheets(
		testutil.Sheet("Oct", domain.RawRow{"Date": "TOTAL"}),
	)
	e, _ := newServer(t, sheets)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/upload", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, response.CodeNoUsableData, decodeError(t, rec).Code)
}

func TestUploadData_UnreadableWorkbook(t *testing.T) {
	sheets := mock.NewSheetProvider().WithError(domain.WrapSchema("failed to open workbook"))
	e, _ := newServer(t, sheets)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/upload", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, response.CodeSchemaError, decodeError(t, rec).Code)
}

func TestAppendData(t *testing.T) {
	november := mock.NewSheetProvider().WithSheets(
		testutil.Sheet("Nov", testutil.ShuttleRow("2024-11-05", "SBSP", "FBV")),
	)
	e, store := newServer(t, november)
	buildStore(t, store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/append", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dataset appended", resp.Message)
	assert.Equal(t, 3, resp.Records)
	assert.Equal(t, []int{10, 11}, resp.Months)
}

func TestAppendData_InvalidReplaceMonth(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/append", map[string]string{"replace_month": "13"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "replace_month")
}

func TestDataStatus(t *testing.T) {
	e, store := newServer(t, defaultSheets())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var st usecase.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.Loaded)

	buildStore(t, store)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/data/status", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.True(t, st.Loaded)
	assert.Equal(t, 2, st.TotalRecords)
}

func TestGetFilters(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FiltersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 2, resp.FilteredCount)
	assert.True(t, resp.Filters.IncludeEmptyLeg)
	assert.True(t, resp.Filters.IncludeHangarFlight)
}

func TestApplyFilters(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	body := `{"aircraft_models":["EC135"],"include_empty_leg":true,"include_hangar_flight":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/filters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FiltersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 1, resp.FilteredCount)
	assert.Equal(t, []string{"EC135"}, resp.Filters.AircraftModels)
}

func TestApplyFilters_Invalid(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	body := `{"pax_min":6,"pax_max":2,"include_empty_leg":true,"include_hangar_flight":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/filters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeValidationError, decodeError(t, rec).Code)
}

func TestApplyFilters_NoData(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	body := `{"include_empty_leg":true,"include_hangar_flight":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/filters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeNoData, decodeError(t, rec).Code)
}

func TestResetFilters(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	spec := domain.DefaultFilterSpec()
	spec.AircraftModels = []string{"EC135"}
	_, err := store.SetFilters(context.Background(), spec)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/filters/reset", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp FiltersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.FilteredCount)
	assert.Empty(t, resp.Filters.AircraftModels)
}

func TestFilterOptions(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filters/options", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var opts domain.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"EC135", "EC155"}, opts.AircraftModels)
	assert.Equal(t, []int{10}, opts.Months)
}

func TestGetCosts(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/costs", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var table domain.CostTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Contains(t, table, "EC135")
}

func TestUpdateCost(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	body := `{"fixed_cost_per_hour":1200,"fuel_cost_per_hour":600}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/costs/EC135", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var table domain.CostTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, 1200.0, table["EC135"].FixedCostPerHour)
	assert.Equal(t, 600.0, table["EC135"].FuelCostPerHour)
}

func TestUpdateCost_Invalid(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	body := `{"fixed_cost_per_hour":-5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/costs/EC135", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeValidationError, decodeError(t, rec).Code)
}

func TestUpdateCost_MalformedBody(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/costs/EC135", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeError(t, rec).Code)
}

func TestCostSummary(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)
	_, err := store.UpdateCost(context.Background(), "EC135", domain.CostUpdate{
		FixedCostPerHour: testutil.FloatPtr(1000),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/costs/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary domain.CostSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.InDelta(t, 500.0, summary.TotalCost, 1e-6)
}

func TestGetKPIs(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/kpis", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.KPIReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Overview.TotalFlights)
	assert.InDelta(t, 6000.0, report.Overview.TotalRevenue, 1e-6)
}

func TestGetKPIs_NoData(t *testing.T) {
	e, _ := newServer(t, defaultSheets())

	for _, path := range []string{
		"/api/v1/kpis",
		"/api/v1/kpis/overview",
		"/api/v1/kpis/monthly",
		"/api/v1/kpis/routes",
		"/api/v1/kpis/categories",
		"/api/v1/analysis/idle",
		"/api/v1/analysis/summary",
		"/api/v1/analysis/shuttle",
		"/api/v1/filters/options",
		"/api/v1/costs/summary",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, response.CodeNoData, decodeError(t, rec).Code, path)
	}
}

func TestKPISections(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	t.Run("overview", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/kpis/overview", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var overview domain.OverviewKPIs
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
		assert.Equal(t, 2, overview.TotalFlights)
	})

	t.Run("monthly", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/kpis/monthly", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var trends []domain.MonthlyTrend
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trends))
		require.Len(t, trends, 1)
		assert.Equal(t, "Oct", trends[0].MonthName)
	})

	t.Run("routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/kpis/routes", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var routes []domain.RouteKPIs
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &routes))
		require.Len(t, routes, 2)
	})

	t.Run("categories", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/kpis/categories", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var categories map[string]domain.CategoryKPIs
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
		assert.Contains(t, categories, "Shuttle")
		assert.Contains(t, categories, "Charter")
	})
}

func TestAnalysisEndpoints(t *testing.T) {
	e, store := newServer(t, defaultSheets())
	buildStore(t, store)

	t.Run("idle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analysis/idle", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var idle domain.IdleAnalysis
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idle))
		assert.Equal(t, 2, idle.Summary.UniqueAircraft)
	})

	t.Run("summary", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analysis/summary", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var summary map[string]domain.CategorySummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Contains(t, summary, "Shuttle")
		assert.Contains(t, summary, "FC + Charter")
	})

	t.Run("shuttle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analysis/shuttle", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var breakdown domain.ShuttleBreakdown
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &breakdown))
		assert.Equal(t, 1, breakdown.TotalShuttle.Flights)
		require.Len(t, breakdown.Routes, 1)
		assert.Equal(t, "FBV", breakdown.Routes[0].Name)
	})
}

func TestHandleError_Unexpected(t *testing.T) {
	sheets := mock.NewSheetProvider().WithError(errors.New("disk on fire"))
	e, _ := newServer(t, sheets)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "/api/v1/data/upload", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, response.CodeInternalError, decodeError(t, rec).Code)
}
