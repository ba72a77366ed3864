// Package winstate persists the main window's geometry across restarts.
//
// The read path is fail-safe: Load never returns an error, every failure
// degrades to the fallback geometry. The write path is fail-visible: Save
// reports which stage failed so the caller can log it. Neither path may
// ever block the window from opening or closing.
package winstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fc8/wereader-app/internal/configdir"
)

// StateFileName is the geometry file name inside the config directory.
const StateFileName = "window_state.json"

// Save failure stages, distinguishable with errors.Is.
var (
	ErrConfigDirUnavailable = errors.New("config directory unavailable")
	ErrDirectoryCreate      = errors.New("failed to create config directory")
	ErrSerialization        = errors.New("failed to encode window state")
	ErrFileWrite            = errors.New("failed to write window state")
)

// Geometry is the persisted window geometry record. A negative X or Y
// means "position unset": the window should be centered instead of
// placed explicitly.
type Geometry struct {
	Width  uint `json:"width"`
	Height uint `json:"height"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
}

// Default returns the first-run geometry: 800x1200, position unset.
func Default() Geometry {
	return Geometry{Width: 800, Height: 1200, X: -1, Y: -1}
}

// HasPosition reports whether the record carries an explicit position.
func (g Geometry) HasPosition() bool {
	return g.X >= 0 && g.Y >= 0
}

// Store reads and writes the geometry file underneath the directory
// provided by the injected resolver.
type Store struct {
	resolver configdir.Resolver
	fallback Geometry
}

// NewStore creates a store. fallback is returned by Load whenever the
// stored record cannot be produced; pass Default() unless the shell
// config overrides the first-run size.
func NewStore(resolver configdir.Resolver, fallback Geometry) *Store {
	return &Store{resolver: resolver, fallback: fallback}
}

// Load returns the persisted geometry, or the fallback if the config
// directory cannot be resolved, the state file cannot be read, or its
// content does not parse as a complete record. Load never fails.
func (s *Store) Load() Geometry {
	dir, err := s.resolver.Dir()
	if err != nil {
		return s.fallback
	}

	data, err := os.ReadFile(filepath.Join(dir, StateFileName))
	if err != nil {
		return s.fallback
	}

	geom, ok := parseGeometry(data)
	if !ok {
		return s.fallback
	}
	return geom
}

// parseGeometry decodes a stored record. All four fields are required;
// a record missing any of them is treated the same as malformed JSON.
func parseGeometry(data []byte) (Geometry, bool) {
	var raw struct {
		Width  *uint `json:"width"`
		Height *uint `json:"height"`
		X      *int  `json:"x"`
		Y      *int  `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Geometry{}, false
	}
	if raw.Width == nil || raw.Height == nil || raw.X == nil || raw.Y == nil {
		return Geometry{}, false
	}
	return Geometry{Width: *raw.Width, Height: *raw.Height, X: *raw.X, Y: *raw.Y}, true
}

// Save persists the geometry, fully replacing any previous record. The
// config directory is created if absent. Every failure is surfaced with
// the stage it occurred at; callers log it and move on.
func (s *Store) Save(geom Geometry) error {
	dir, err := s.resolver.Dir()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigDirUnavailable, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
	}

	data, err := json.MarshalIndent(geom, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	path := filepath.Join(dir, StateFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	return nil
}
