// Package mock provides test doubles for the flight KPI engine.
// These mocks are designed for handler and integration testing where we need
// configurable behavior (errors, specific sheets, fixed distances).
package mock

import (
	"io"
	"sync"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// SheetProvider is a configurable mock implementation of sheet.Provider.
// It ignores the uploaded bytes and returns the configured sheets or error.
type SheetProvider struct {
	sheets    []domain.RawSheet
	err       error
	callCount int
	mu        sync.Mutex
}

// NewSheetProvider creates a new mock sheet provider.
// The provider is configured using the builder pattern methods.
func NewSheetProvider() *SheetProvider {
	return &SheetProvider{}
}

// WithSheets configures the provider to return the given sheets.
func (p *SheetProvider) WithSheets(sheets ...domain.RawSheet) *SheetProvider {
	p.sheets = sheets
	return p
}

// WithError configures the provider to return the given error.
func (p *SheetProvider) WithError(err error) *SheetProvider {
	p.err = err
	return p
}

// Parse implements sheet.Provider.
func (p *SheetProvider) Parse(r io.Reader) ([]domain.RawSheet, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	// Drain the upload like a real parser would.
	_, _ = io.Copy(io.Discard, r)

	if p.err != nil {
		return nil, p.err
	}
	return p.sheets, nil
}

// CallCount returns the number of Parse calls.
func (p *SheetProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Distance is a mock distance provider returning a fixed value for every
// route.
type Distance struct {
	NM float64
}

// DistanceNM implements usecase.DistanceProvider.
func (d *Distance) DistanceNM(origin, destination string) float64 {
	return d.NM
}
