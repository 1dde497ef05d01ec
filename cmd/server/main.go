// Package main is the entry point for the flight KPI engine.
//
//	@title						Flight KPI Engine API
//	@version					1.0.0
//	@description				A flight data normalization and KPI aggregation service that ingests operational spreadsheets and serves filtered KPI reports.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flightops/flight-kpi-engine/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flightops/flight-kpi-engine/docs"

	// Application layers
	kpihttp "github.com/flightops/flight-kpi-engine/internal/adapter/http"
	"github.com/flightops/flight-kpi-engine/internal/adapter/http/middleware"
	"github.com/flightops/flight-kpi-engine/internal/adapter/sheet"
	"github.com/flightops/flight-kpi-engine/internal/config"
	"github.com/flightops/flight-kpi-engine/internal/infrastructure/distance"
	"github.com/flightops/flight-kpi-engine/internal/infrastructure/logger"
	"github.com/flightops/flight-kpi-engine/internal/infrastructure/snapshot"
	"github.com/flightops/flight-kpi-engine/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	appLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-kpi-engine",
	})
	logger.SetGlobal(appLogger)

	appLogger.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Analytics store with distance enrichment
	store := usecase.NewAnalyticsStore(usecase.StoreOptions{
		ProductiveHours: cfg.Analysis.ProductiveHoursPerDay,
		TopRoutes:       cfg.Analysis.TopRoutes,
	}, distance.NewCoordTable(nil), appLogger.WithComponent("store").Logger)

	// Restore persisted state and cost config, if any
	setupPersistence(cfg, store, appLogger)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware; production keeps panic stacks out of the log stream
	middleware.SetupWithConfig(e, appLogger.Logger, middleware.RecoveryConfig{
		DisablePrintStack: cfg.IsProduction(),
	})

	// Setup routes
	provider := sheet.NewExcelProvider(appLogger.WithComponent("sheet").Logger)
	maxUpload := int64(cfg.Storage.MaxUploadMB) << 20
	handler := kpihttp.NewAnalyticsHandler(store, provider, maxUpload)
	kpihttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		appLogger.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e)
}

// setupPersistence wires snapshot persistence into the store and restores any
// previously saved state. Persistence failures are logged, never fatal: the
// engine still runs, just without durability.
func setupPersistence(cfg *config.Config, store *usecase.AnalyticsStore, appLogger *logger.Logger) {
	manager, err := snapshot.NewManager(cfg.Storage.SnapshotDir, appLogger.WithComponent("snapshot").Logger)
	if err != nil {
		appLogger.Warn().Err(err).Msg("Snapshot persistence disabled")
		return
	}
	stateStore := snapshot.NewStateStore(manager)

	ctx := context.Background()
	if costs, ok, err := stateStore.LoadCosts(); err != nil {
		appLogger.Warn().Err(err).Msg("Failed to load cost config")
	} else if ok {
		store.ReplaceCosts(ctx, costs)
	}
	if state, ok, err := stateStore.LoadState(); err != nil {
		appLogger.Warn().Err(err).Msg("Failed to load state snapshot")
	} else if ok {
		if err := store.Restore(ctx, state); err != nil {
			appLogger.Warn().Err(err).Msg("Failed to restore state snapshot")
		}
	}

	store.SetPersister(stateStore)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
