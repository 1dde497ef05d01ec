package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// StoreOptions tunes the derived analytics.
type StoreOptions struct {
	// ProductiveHours is the assumed productive flight-hour budget per
	// aircraft per day used by the idle analysis.
	ProductiveHours float64
	// TopRoutes bounds the by-route KPI ranking.
	TopRoutes int
}

// DistanceProvider resolves the nautical-mile distance between two location
// labels, 0 when unknown.
type DistanceProvider interface {
	DistanceNM(origin, destination string) float64
}

// Persister saves store state after successful mutations. Implementations
// must be safe for concurrent use; saves are best-effort and never fail the
// mutation that triggered them.
type Persister interface {
	SaveState(state StoreState) error
	SaveCosts(table domain.CostTable) error
}

// StoreState is the serializable snapshot of the store: the canonical inputs
// from which everything else is derived. Derived artifacts are recomputed on
// restore, never persisted.
type StoreState struct {
	Canonical *domain.Dataset
	Spec      domain.FilterSpec
	Costs     domain.CostTable
	BuiltAt   time.Time
	Sources   []string
}

// Status reports the store's current shape without exposing its data.
type Status struct {
	Loaded        bool      `json:"loaded"`
	TotalRecords  int       `json:"total_records"`
	FilteredCount int       `json:"filtered_count"`
	Months        []int     `json:"months"`
	Columns       []string  `json:"columns"`
	Sources       []string  `json:"sources"`
	BuiltAt       time.Time `json:"built_at,omitempty"`
}

// AnalyticsStore owns the canonical dataset and everything derived from it.
//
// Writers (Build, Append, SetFilters, ResetFilters, UpdateCost) serialize on
// the mutex and atomically swap in a freshly derived snapshot. Readers take
// the snapshot pointer under a read lock and then work lock-free, so a long
// KPI computation never observes a half-applied update.
type AnalyticsStore struct {
	mu       sync.RWMutex
	logger   zerolog.Logger
	opts     StoreOptions
	distance DistanceProvider
	persist  Persister

	canonical *domain.Dataset
	spec      domain.FilterSpec
	costs     domain.CostTable
	builtAt   time.Time
	sources   []string

	// bundle is derived from canonical+spec+costs; replaced wholesale.
	bundle *FilteredBundle
}

// NewAnalyticsStore builds an empty store with default filters and the
// default cost table. distance may be nil to skip distance enrichment.
func NewAnalyticsStore(opts StoreOptions, distance DistanceProvider, logger zerolog.Logger) *AnalyticsStore {
	if opts.ProductiveHours <= 0 {
		opts.ProductiveHours = DefaultProductiveHours
	}
	if opts.TopRoutes <= 0 {
		opts.TopRoutes = DefaultTopRoutes
	}
	return &AnalyticsStore{
		logger:   logger.With().Str("component", "analytics_store").Logger(),
		opts:     opts,
		distance: distance,
		spec:     domain.DefaultFilterSpec(),
		costs:    domain.DefaultCostTable(),
	}
}

// SetPersister attaches a persister; subsequent mutations save through it.
// Call before serving requests.
func (s *AnalyticsStore) SetPersister(p Persister) {
	s.persist = p
}

// persistState saves the canonical state best-effort.
func (s *AnalyticsStore) persistState(ctx context.Context) {
	if s.persist == nil {
		return
	}
	state, err := s.State(ctx)
	if err != nil {
		return
	}
	if err := s.persist.SaveState(state); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist state")
	}
}

// persistCosts saves the cost table best-effort.
func (s *AnalyticsStore) persistCosts(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveCosts(s.Costs(ctx)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist cost config")
	}
}

// enrichDistances fills missing route distances from the provider. Callers
// must hold the write lock.
func (s *AnalyticsStore) enrichDistances() {
	if s.distance == nil || s.canonical == nil {
		return
	}
	for i := range s.canonical.Records {
		r := &s.canonical.Records[i]
		if r.DistanceNM == 0 && r.Departure != "" && r.Arrival != "" {
			r.DistanceNM = s.distance.DistanceNM(r.Departure, r.Arrival)
		}
	}
	s.canonical.Columns.Add(domain.ColDistanceNM)
}

// recompute derives the filtered, cost-annotated bundle from the canonical
// state. Callers must hold the write lock.
func (s *AnalyticsStore) recompute() {
	filtered := ApplyFilters(s.canonical, s.spec)
	costed := AllocateCosts(filtered.Filtered, s.costs)
	s.bundle = newBundle(costed)
}

// Build replaces the canonical dataset with one built from the given sheets.
// On error the previous state is left untouched.
func (s *AnalyticsStore) Build(ctx context.Context, sheets []domain.RawSheet) (Status, error) {
	names := sheetNames(sheets)
	ds, err := NewBuilder().Build(sheets)
	if err != nil {
		s.logger.Warn().Err(err).Strs("sheets", names).Msg("build failed")
		return Status{}, err
	}

	s.mu.Lock()
	s.canonical = ds
	s.builtAt = time.Now().UTC()
	s.sources = names
	s.enrichDistances()
	s.recompute()
	st := s.statusLocked()
	s.mu.Unlock()

	s.logger.Info().
		Int("records", st.TotalRecords).
		Ints("months", st.Months).
		Strs("sheets", names).
		Msg("dataset built")
	s.persistState(ctx)
	return st, nil
}

// Append merges newly built sheets into the canonical dataset, replacing
// overlapping months. replaceMonth > 0 replaces only that month; otherwise
// every month present in the incoming data is replaced. On error the previous
// state is left untouched.
func (s *AnalyticsStore) Append(ctx context.Context, sheets []domain.RawSheet, replaceMonth int) (Status, error) {
	names := sheetNames(sheets)

	s.mu.Lock()
	merged, err := NewBuilder().Append(s.canonical, sheets, replaceMonth)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn().Err(err).Strs("sheets", names).Msg("append failed")
		return Status{}, err
	}
	s.canonical = merged
	s.builtAt = time.Now().UTC()
	s.sources = append(s.sources, names...)
	s.enrichDistances()
	s.recompute()
	st := s.statusLocked()
	s.mu.Unlock()

	s.logger.Info().
		Int("records", st.TotalRecords).
		Int("replace_month", replaceMonth).
		Strs("sheets", names).
		Msg("dataset appended")
	s.persistState(ctx)
	return st, nil
}

// Restore loads a previously captured state and rederives everything from it.
func (s *AnalyticsStore) Restore(ctx context.Context, state StoreState) error {
	if state.Canonical == nil || state.Canonical.IsEmpty() {
		return domain.WrapNoUsableData("snapshot holds no records")
	}
	if err := state.Spec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.canonical = state.Canonical
	s.spec = state.Spec
	if state.Costs != nil {
		s.costs = state.Costs
	}
	s.builtAt = state.BuiltAt
	s.sources = state.Sources
	s.recompute()
	records := s.canonical.Len()
	s.mu.Unlock()

	s.logger.Info().Int("records", records).Msg("state restored")
	return nil
}

// State captures the canonical inputs for persistence.
func (s *AnalyticsStore) State(ctx context.Context) (StoreState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.canonical == nil {
		return StoreState{}, domain.ErrNoData
	}
	return StoreState{
		Canonical: s.canonical,
		Spec:      s.spec,
		Costs:     s.costs.Clone(),
		BuiltAt:   s.builtAt,
		Sources:   append([]string(nil), s.sources...),
	}, nil
}

// SetFilters validates and applies a new filter spec.
func (s *AnalyticsStore) SetFilters(ctx context.Context, spec domain.FilterSpec) (Status, error) {
	if err := spec.Validate(); err != nil {
		return Status{}, err
	}

	s.mu.Lock()
	if s.canonical == nil {
		s.mu.Unlock()
		return Status{}, domain.ErrNoData
	}
	s.spec = spec
	s.recompute()
	st := s.statusLocked()
	s.mu.Unlock()

	s.logger.Info().Int("filtered", st.FilteredCount).Msg("filters applied")
	s.persistState(ctx)
	return st, nil
}

// ResetFilters restores the default all-pass filter spec.
func (s *AnalyticsStore) ResetFilters(ctx context.Context) (Status, error) {
	return s.SetFilters(ctx, domain.DefaultFilterSpec())
}

// Filters returns the active filter spec.
func (s *AnalyticsStore) Filters(ctx context.Context) domain.FilterSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec
}

// FilterOptions lists the distinct values available for each inclusion
// filter, drawn from the canonical dataset so options never shrink as
// filters narrow.
func (s *AnalyticsStore) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	s.mu.RLock()
	canonical := s.canonical
	s.mu.RUnlock()
	if canonical == nil {
		return domain.FilterOptions{}, domain.ErrNoData
	}
	return DiscoverFilterOptions(canonical), nil
}

// Costs returns a copy of the active cost table.
func (s *AnalyticsStore) Costs(ctx context.Context) domain.CostTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.costs.Clone()
}

// UpdateCost applies a partial cost-config update for one aircraft model and
// reallocates. Unknown models get a default entry first.
func (s *AnalyticsStore) UpdateCost(ctx context.Context, model string, update domain.CostUpdate) (domain.CostTable, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.costs.Apply(model, update)
	if s.canonical != nil {
		s.recompute()
	}
	table := s.costs.Clone()
	s.mu.Unlock()

	s.logger.Info().Str("model", model).Msg("cost config updated")
	s.persistCosts(ctx)
	return table, nil
}

// ReplaceCosts swaps in a full cost table, as loaded from a persisted costs
// file, and reallocates.
func (s *AnalyticsStore) ReplaceCosts(ctx context.Context, table domain.CostTable) {
	if len(table) == 0 {
		return
	}
	s.mu.Lock()
	s.costs = table.Clone()
	if s.canonical != nil {
		s.recompute()
	}
	s.mu.Unlock()
	s.logger.Info().Int("models", len(table)).Msg("cost config replaced")
}

// KPIs computes the full KPI report over the current filtered snapshot.
func (s *AnalyticsStore) KPIs(ctx context.Context) (domain.KPIReport, error) {
	bundle, err := s.snapshot()
	if err != nil {
		return domain.KPIReport{}, err
	}
	return ComputeKPIs(bundle, s.opts.TopRoutes), nil
}

// CostSummary aggregates allocated costs over the current filtered snapshot.
func (s *AnalyticsStore) CostSummary(ctx context.Context) (domain.CostSummary, error) {
	bundle, err := s.snapshot()
	if err != nil {
		return domain.CostSummary{}, err
	}
	return CostSummary(bundle.Filtered), nil
}

// IdleAnalysis computes the idle-time report over the current filtered
// snapshot.
func (s *AnalyticsStore) IdleAnalysis(ctx context.Context) (domain.IdleAnalysis, error) {
	bundle, err := s.snapshot()
	if err != nil {
		return domain.IdleAnalysis{}, err
	}
	return ComputeIdleAnalysis(bundle.Filtered, s.opts.ProductiveHours)
}

// Summary computes the per-category summary statistics over the current
// filtered snapshot.
func (s *AnalyticsStore) Summary(ctx context.Context) (map[string]domain.CategorySummary, error) {
	bundle, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return SummaryStatistics(bundle), nil
}

// ShuttleBreakdown splits shuttle activity by named route over the current
// filtered snapshot.
func (s *AnalyticsStore) ShuttleBreakdown(ctx context.Context) (domain.ShuttleBreakdown, error) {
	bundle, err := s.snapshot()
	if err != nil {
		return domain.ShuttleBreakdown{}, err
	}
	return ShuttleBreakdown(bundle), nil
}

// Status reports the store's current shape.
func (s *AnalyticsStore) Status(ctx context.Context) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

func (s *AnalyticsStore) statusLocked() Status {
	st := Status{
		Months:  []int{},
		Columns: []string{},
		Sources: append([]string{}, s.sources...),
	}
	if s.canonical == nil {
		return st
	}
	st.Loaded = true
	st.TotalRecords = s.canonical.Len()
	st.BuiltAt = s.builtAt
	if s.bundle != nil {
		st.FilteredCount = s.bundle.Filtered.Len()
	}

	monthSet := map[int]struct{}{}
	for i := range s.canonical.Records {
		if m := s.canonical.Records[i].SheetMonth; m > 0 {
			monthSet[m] = struct{}{}
		}
	}
	for m := range monthSet {
		st.Months = append(st.Months, m)
	}
	sort.Ints(st.Months)

	for col := range s.canonical.Columns {
		st.Columns = append(st.Columns, string(col))
	}
	sort.Strings(st.Columns)
	return st
}

// snapshot returns the current derived bundle, or ErrNoData before the first
// successful build.
func (s *AnalyticsStore) snapshot() (*FilteredBundle, error) {
	s.mu.RLock()
	bundle := s.bundle
	s.mu.RUnlock()
	if bundle == nil {
		return nil, domain.ErrNoData
	}
	return bundle, nil
}

func sheetNames(sheets []domain.RawSheet) []string {
	names := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		names = append(names, sh.Name)
	}
	return names
}
