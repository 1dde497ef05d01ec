// Package snapshot persists engine state across restarts: an opaque gob
// snapshot of the analytics state and a human-editable JSON file for the
// cost configuration.
package snapshot

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Manager writes and reads snapshot files under a single directory. Writes
// go through a temp file and rename so a crash never leaves a torn file.
type Manager struct {
	dir    string
	logger zerolog.Logger
}

// NewManager creates the snapshot directory if needed.
func NewManager(dir string, logger zerolog.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir %s: %w", dir, err)
	}
	return &Manager{
		dir:    dir,
		logger: logger.With().Str("component", "snapshot").Logger(),
	}, nil
}

// SaveGob gob-encodes v into the named file.
func (m *Manager) SaveGob(name string, v interface{}) error {
	return m.save(name, func(f *os.File) error {
		return gob.NewEncoder(f).Encode(v)
	})
}

// LoadGob decodes the named gob file into v. The second return is false when
// the file does not exist.
func (m *Manager) LoadGob(name string, v interface{}) (bool, error) {
	return m.load(name, func(f *os.File) error {
		return gob.NewDecoder(f).Decode(v)
	})
}

// SaveJSON writes v as indented JSON into the named file.
func (m *Manager) SaveJSON(name string, v interface{}) error {
	return m.save(name, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// LoadJSON decodes the named JSON file into v. The second return is false
// when the file does not exist.
func (m *Manager) LoadJSON(name string, v interface{}) (bool, error) {
	return m.load(name, func(f *os.File) error {
		return json.NewDecoder(f).Decode(v)
	})
}

func (m *Manager) save(name string, write func(*os.File) error) error {
	path := filepath.Join(m.dir, name)
	tmp, err := os.CreateTemp(m.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	m.logger.Debug().Str("file", path).Msg("snapshot saved")
	return nil
}

func (m *Manager) load(name string, read func(*os.File) error) (bool, error) {
	path := filepath.Join(m.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if err := read(f); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}
