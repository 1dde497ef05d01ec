// Package http provides the HTTP handler layer for the flight KPI API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight KPI API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *AnalyticsHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	data := api.Group("/data")
	data.POST("/upload", h.UploadData)
	data.POST("/append", h.AppendData)
	data.GET("/status", h.DataStatus)

	filters := api.Group("/filters")
	filters.GET("", h.GetFilters)
	filters.POST("", h.ApplyFilters)
	filters.GET("/options", h.FilterOptions)
	filters.POST("/reset", h.ResetFilters)

	costs := api.Group("/costs")
	costs.GET("", h.GetCosts)
	costs.GET("/summary", h.CostSummary)
	costs.PUT("/:model", h.UpdateCost)

	kpis := api.Group("/kpis")
	kpis.GET("", h.GetKPIs)
	kpis.GET("/overview", h.KPIOverview)
	kpis.GET("/monthly", h.KPIMonthly)
	kpis.GET("/routes", h.KPIRoutes)
	kpis.GET("/categories", h.KPICategories)

	analysis := api.Group("/analysis")
	analysis.GET("/idle", h.IdleAnalysis)
	analysis.GET("/summary", h.SummaryAnalysis)
	analysis.GET("/shuttle", h.ShuttleBreakdown)
}
