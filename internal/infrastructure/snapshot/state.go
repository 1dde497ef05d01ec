package snapshot

import (
	"github.com/flightops/flight-kpi-engine/internal/domain"
	"github.com/flightops/flight-kpi-engine/internal/usecase"
)

// Snapshot file names within the snapshot directory. The state file is an
// opaque gob blob; the costs file is JSON so operators can edit it.
const (
	StateFile = "state.gob"
	CostsFile = "costs.json"
)

// StateStore persists analytics state through a Manager.
type StateStore struct {
	m *Manager
}

var _ usecase.Persister = (*StateStore)(nil)

// NewStateStore wraps a Manager with the engine's file layout.
func NewStateStore(m *Manager) *StateStore {
	return &StateStore{m: m}
}

// SaveState writes the canonical analytics state.
func (s *StateStore) SaveState(state usecase.StoreState) error {
	return s.m.SaveGob(StateFile, state)
}

// LoadState reads a previously saved analytics state. The second return is
// false when no snapshot exists.
func (s *StateStore) LoadState() (usecase.StoreState, bool, error) {
	var state usecase.StoreState
	ok, err := s.m.LoadGob(StateFile, &state)
	return state, ok, err
}

// SaveCosts writes the cost table as editable JSON.
func (s *StateStore) SaveCosts(table domain.CostTable) error {
	return s.m.SaveJSON(CostsFile, table)
}

// LoadCosts reads the cost table. The second return is false when no costs
// file exists.
func (s *StateStore) LoadCosts() (domain.CostTable, bool, error) {
	table := domain.CostTable{}
	ok, err := s.m.LoadJSON(CostsFile, &table)
	return table, ok, err
}
