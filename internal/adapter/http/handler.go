package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flightops/flight-kpi-engine/internal/adapter/http/response"
	"github.com/flightops/flight-kpi-engine/internal/adapter/sheet"
	"github.com/flightops/flight-kpi-engine/internal/domain"
	"github.com/flightops/flight-kpi-engine/internal/usecase"
)

// AnalyticsHandler handles HTTP requests for the flight KPI endpoints.
type AnalyticsHandler struct {
	store          *usecase.AnalyticsStore
	sheets         sheet.Provider
	maxUploadBytes int64
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(store *usecase.AnalyticsStore, sheets sheet.Provider, maxUploadBytes int64) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:          store,
		sheets:         sheets,
		maxUploadBytes: maxUploadBytes,
	}
}

// Health handles GET /health
//
// @Summary Health check
// @Description Returns the service health status
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *AnalyticsHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// UploadData handles POST /api/v1/data/upload
//
// @Summary Upload a flight data workbook
// @Description Replaces the dataset with one built from the uploaded xlsx workbook
// @Tags data
// @Accept mpfd
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} response.ErrorDetail "Invalid upload"
// @Failure 422 {object} response.ErrorDetail "No usable rows"
// @Router /api/v1/data/upload [post]
func (h *AnalyticsHandler) UploadData(c echo.Context) error {
	sheets, err := h.parseUpload(c)
	if err != nil {
		return h.handleError(c, err)
	}

	st, err := h.store.Build(c.Request().Context(), sheets)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, &UploadResponse{
		Message: "dataset built",
		Records: st.TotalRecords,
		Months:  st.Months,
	})
}

// AppendData handles POST /api/v1/data/append
//
// @Summary Append a flight data workbook
// @Description Merges the uploaded workbook into the dataset, replacing overlapping months. The optional replace_month form field restricts replacement to one month.
// @Tags data
// @Accept mpfd
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Param replace_month formData int false "Month (1-12) to replace"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} response.ErrorDetail "Invalid upload"
// @Failure 422 {object} response.ErrorDetail "No usable rows"
// @Router /api/v1/data/append [post]
func (h *AnalyticsHandler) AppendData(c echo.Context) error {
	sheets, err := h.parseUpload(c)
	if err != nil {
		return h.handleError(c, err)
	}

	replaceMonth := 0
	if raw := c.FormValue("replace_month"); raw != "" {
		replaceMonth, err = strconv.Atoi(raw)
		if err != nil || replaceMonth < 1 || replaceMonth > 12 {
			return response.BadRequest(c, "replace_month must be an integer between 1 and 12")
		}
	}

	st, err := h.store.Append(c.Request().Context(), sheets, replaceMonth)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, &UploadResponse{
		Message: "dataset appended",
		Records: st.TotalRecords,
		Months:  st.Months,
	})
}

// DataStatus handles GET /api/v1/data/status
//
// @Summary Dataset status
// @Description Reports whether data is loaded and its shape
// @Tags data
// @Produce json
// @Success 200 {object} usecase.Status
// @Router /api/v1/data/status [get]
func (h *AnalyticsHandler) DataStatus(c echo.Context) error {
	return response.OK(c, h.store.Status(c.Request().Context()))
}

// GetFilters handles GET /api/v1/filters
//
// @Summary Active filters
// @Description Returns the active filter spec and the resulting record counts
// @Tags filters
// @Produce json
// @Success 200 {object} FiltersResponse
// @Router /api/v1/filters [get]
func (h *AnalyticsHandler) GetFilters(c echo.Context) error {
	ctx := c.Request().Context()
	st := h.store.Status(ctx)
	return response.OK(c, &FiltersResponse{
		Filters:       h.store.Filters(ctx),
		TotalRecords:  st.TotalRecords,
		FilteredCount: st.FilteredCount,
	})
}

// ApplyFilters handles POST /api/v1/filters
//
// @Summary Apply filters
// @Description Validates and applies a new filter spec, recomputing the filtered dataset
// @Tags filters
// @Accept json
// @Produce json
// @Param request body domain.FilterSpec true "Filter spec"
// @Success 200 {object} FiltersResponse
// @Failure 400 {object} response.ErrorDetail "Invalid filter"
// @Router /api/v1/filters [post]
func (h *AnalyticsHandler) ApplyFilters(c echo.Context) error {
	spec := domain.DefaultFilterSpec()
	if err := c.Bind(&spec); err != nil {
		return response.InvalidRequestBody(c)
	}

	ctx := c.Request().Context()
	st, err := h.store.SetFilters(ctx, spec)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, &FiltersResponse{
		Filters:       h.store.Filters(ctx),
		TotalRecords:  st.TotalRecords,
		FilteredCount: st.FilteredCount,
	})
}

// ResetFilters handles POST /api/v1/filters/reset
//
// @Summary Reset filters
// @Description Restores the default all-pass filter spec
// @Tags filters
// @Produce json
// @Success 200 {object} FiltersResponse
// @Router /api/v1/filters/reset [post]
func (h *AnalyticsHandler) ResetFilters(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := h.store.ResetFilters(ctx)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, &FiltersResponse{
		Filters:       h.store.Filters(ctx),
		TotalRecords:  st.TotalRecords,
		FilteredCount: st.FilteredCount,
	})
}

// FilterOptions handles GET /api/v1/filters/options
//
// @Summary Filter options
// @Description Lists the distinct values available for each inclusion filter
// @Tags filters
// @Produce json
// @Success 200 {object} domain.FilterOptions
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/filters/options [get]
func (h *AnalyticsHandler) FilterOptions(c echo.Context) error {
	opts, err := h.store.FilterOptions(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, opts)
}

// GetCosts handles GET /api/v1/costs
//
// @Summary Cost configuration
// @Description Returns the cost table for all aircraft models
// @Tags costs
// @Produce json
// @Success 200 {object} domain.CostTable
// @Router /api/v1/costs [get]
func (h *AnalyticsHandler) GetCosts(c echo.Context) error {
	return response.OK(c, h.store.Costs(c.Request().Context()))
}

// UpdateCost handles PUT /api/v1/costs/:model
//
// @Summary Update cost configuration
// @Description Applies a partial cost update for one aircraft model and reallocates costs
// @Tags costs
// @Accept json
// @Produce json
// @Param model path string true "Aircraft model"
// @Param request body UpdateCostRequest true "Cost update"
// @Success 200 {object} domain.CostTable
// @Failure 400 {object} response.ErrorDetail "Invalid cost figures"
// @Router /api/v1/costs/{model} [put]
func (h *AnalyticsHandler) UpdateCost(c echo.Context) error {
	model := c.Param("model")
	if model == "" {
		return response.BadRequest(c, "aircraft model is required")
	}

	var req UpdateCostRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	table, err := h.store.UpdateCost(c.Request().Context(), model, req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, table)
}

// CostSummary handles GET /api/v1/costs/summary
//
// @Summary Cost summary
// @Description Aggregates allocated costs over the filtered dataset, overall and per model
// @Tags costs
// @Produce json
// @Success 200 {object} domain.CostSummary
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/costs/summary [get]
func (h *AnalyticsHandler) CostSummary(c echo.Context) error {
	summary, err := h.store.CostSummary(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, summary)
}

// GetKPIs handles GET /api/v1/kpis
//
// @Summary Full KPI report
// @Description Computes the full KPI report over the filtered dataset
// @Tags kpis
// @Produce json
// @Success 200 {object} domain.KPIReport
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/kpis [get]
func (h *AnalyticsHandler) GetKPIs(c echo.Context) error {
	report, err := h.store.KPIs(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, report)
}

// KPIOverview handles GET /api/v1/kpis/overview
//
// @Summary Overview KPIs
// @Tags kpis
// @Produce json
// @Success 200 {object} domain.OverviewKPIs
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/kpis/overview [get]
func (h *AnalyticsHandler) KPIOverview(c echo.Context) error {
	report, err := h.store.KPIs(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, report.Overview)
}

// KPIMonthly handles GET /api/v1/kpis/monthly
//
// @Summary Monthly trend KPIs
// @Tags kpis
// @Produce json
// @Success 200 {array} domain.MonthlyTrend
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/kpis/monthly [get]
func (h *AnalyticsHandler) KPIMonthly(c echo.Context) error {
	report, err := h.store.KPIs(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, report.MonthlyTrends)
}

// KPIRoutes handles GET /api/v1/kpis/routes
//
// @Summary Top route KPIs
// @Tags kpis
// @Produce json
// @Success 200 {array} domain.RouteKPIs
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/kpis/routes [get]
func (h *AnalyticsHandler) KPIRoutes(c echo.Context) error {
	report, err := h.store.KPIs(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, report.ByRoute)
}

// KPICategories handles GET /api/v1/kpis/categories
//
// @Summary Per-category KPIs
// @Tags kpis
// @Produce json
// @Success 200 {object} map[string]domain.CategoryKPIs
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/kpis/categories [get]
func (h *AnalyticsHandler) KPICategories(c echo.Context) error {
	report, err := h.store.KPIs(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, report.ByCategory)
}

// IdleAnalysis handles GET /api/v1/analysis/idle
//
// @Summary Idle time analysis
// @Description Reports fleet idle and utilization hours, daily and monthly
// @Tags analysis
// @Produce json
// @Success 200 {object} domain.IdleAnalysis
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Failure 422 {object} response.ErrorDetail "No usable rows"
// @Router /api/v1/analysis/idle [get]
func (h *AnalyticsHandler) IdleAnalysis(c echo.Context) error {
	report, err := h.store.IdleAnalysis(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, report)
}

// SummaryAnalysis handles GET /api/v1/analysis/summary
//
// @Summary Per-category summary statistics
// @Tags analysis
// @Produce json
// @Success 200 {object} map[string]domain.CategorySummary
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/analysis/summary [get]
func (h *AnalyticsHandler) SummaryAnalysis(c echo.Context) error {
	summary, err := h.store.Summary(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, summary)
}

// ShuttleBreakdown handles GET /api/v1/analysis/shuttle
//
// @Summary Shuttle route breakdown
// @Tags analysis
// @Produce json
// @Success 200 {object} domain.ShuttleBreakdown
// @Failure 400 {object} response.ErrorDetail "No data loaded"
// @Router /api/v1/analysis/shuttle [get]
func (h *AnalyticsHandler) ShuttleBreakdown(c echo.Context) error {
	breakdown, err := h.store.ShuttleBreakdown(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, breakdown)
}

// parseUpload extracts and parses the uploaded workbook from the multipart
// form, enforcing the upload size limit.
func (h *AnalyticsHandler) parseUpload(c echo.Context) ([]domain.RawSheet, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errUploadMissing
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", errUploadTooLarge, fh.Size, h.maxUploadBytes)
	}

	src, err := openUpload(fh)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return h.sheets.Parse(src)
}

// openUpload opens the multipart file; split out so tests can exercise the
// handler with synthetic headers.
func openUpload(fh *multipart.FileHeader) (multipart.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	return src, nil
}

// Upload-specific errors mapped to 400 responses.
var (
	errUploadMissing  = errors.New(`multipart field "file" is required`)
	errUploadTooLarge = errors.New("uploaded file is too large")
)

// handleError maps domain errors to appropriate HTTP responses.
func (h *AnalyticsHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errUploadMissing), errors.Is(err, errUploadTooLarge):
		return response.BadRequest(c, err.Error())
	case domain.IsInvalidFilter(err), domain.IsCostConfig(err):
		return response.ValidationErrorWithMessage(c, err.Error())
	case domain.IsNoData(err):
		return response.NoData(c)
	case domain.IsNoUsableData(err):
		return response.NoUsableData(c, err.Error())
	case errors.Is(err, domain.ErrSchema):
		return response.SchemaError(c, err.Error())
	default:
		return response.InternalServerError(c)
	}
}
