package winstate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fc8/wereader-app/internal/configdir"
)

// failingResolver simulates an environment with no config directory.
type failingResolver struct{}

func (failingResolver) Dir() (string, error) {
	return "", errors.New("no home directory")
}

func TestLoad_ResolverFailureReturnsFallback(t *testing.T) {
	store := NewStore(failingResolver{}, Default())

	got := store.Load()
	if got != Default() {
		t.Fatalf("Load() = %+v, want default %+v", got, Default())
	}
}

func TestLoad_MissingFileReturnsFallback(t *testing.T) {
	store := NewStore(configdir.Fixed(t.TempDir()), Default())

	got := store.Load()
	if got != Default() {
		t.Fatalf("Load() = %+v, want default %+v", got, Default())
	}
}

func TestLoad_MalformedContentReturnsFallback(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "certainly { not json"},
		{"empty file", ""},
		{"json null", "null"},
		{"empty object", "{}"},
		{"missing width", `{"height": 600, "x": 10, "y": 20}`},
		{"missing position", `{"width": 800, "height": 600}`},
		{"wrong type", `{"width": "800", "height": 600, "x": 10, "y": 20}`},
		{"negative width", `{"width": -5, "height": 600, "x": 10, "y": 20}`},
		{"array", `[800, 600, 10, 20]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, StateFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write state file: %v", err)
			}

			store := NewStore(configdir.Fixed(dir), Default())
			got := store.Load()
			if got != Default() {
				t.Errorf("Load() = %+v, want default %+v", got, Default())
			}
		})
	}
}

func TestLoad_UsesConfiguredFallback(t *testing.T) {
	fallback := Geometry{Width: 1024, Height: 768, X: -1, Y: -1}
	store := NewStore(configdir.Fixed(t.TempDir()), fallback)

	if got := store.Load(); got != fallback {
		t.Fatalf("Load() = %+v, want fallback %+v", got, fallback)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
	}{
		{"positioned", Geometry{Width: 1280, Height: 720, X: 100, Y: 50}},
		{"position unset", Geometry{Width: 800, Height: 1200, X: -1, Y: -1}},
		{"origin", Geometry{Width: 1, Height: 1, X: 0, Y: 0}},
		{"negative y only", Geometry{Width: 640, Height: 480, X: 30, Y: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(configdir.Fixed(t.TempDir()), Default())

			if err := store.Save(tt.geom); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if got := store.Load(); got != tt.geom {
				t.Errorf("Load() = %+v, want %+v", got, tt.geom)
			}
		})
	}
}

func TestSave_CreatesConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "wereader")
	store := NewStore(configdir.Fixed(dir), Default())

	if err := store.Save(Geometry{Width: 800, Height: 600, X: 1, Y: 2}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, StateFileName)); err != nil {
		t.Fatalf("state file missing after save: %v", err)
	}
}

func TestSave_OverwriteKeepsOnlyLastRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(configdir.Fixed(dir), Default())

	first := Geometry{Width: 800, Height: 600, X: 0, Y: 0}
	second := Geometry{Width: 1920, Height: 1080, X: 200, Y: 100}

	if err := store.Save(first); err != nil {
		t.Fatalf("Save(first) error: %v", err)
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save(second) error: %v", err)
	}

	if got := store.Load(); got != second {
		t.Errorf("Load() = %+v, want %+v", got, second)
	}
}

func TestSave_ResolverFailure(t *testing.T) {
	store := NewStore(failingResolver{}, Default())

	err := store.Save(Default())
	if !errors.Is(err, ErrConfigDirUnavailable) {
		t.Fatalf("Save() error = %v, want ErrConfigDirUnavailable", err)
	}
}

func TestSave_DirectoryCreateFailure(t *testing.T) {
	parent := t.TempDir()
	// A file where the config directory should be makes MkdirAll fail.
	blocked := filepath.Join(parent, "wereader")
	if err := os.WriteFile(blocked, []byte("in the way"), 0644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	store := NewStore(configdir.Fixed(blocked), Default())
	err := store.Save(Default())
	if !errors.Is(err, ErrDirectoryCreate) {
		t.Fatalf("Save() error = %v, want ErrDirectoryCreate", err)
	}
}

func TestSave_WriteFailureLeavesPreviousStateIntact(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	store := NewStore(configdir.Fixed(dir), Default())

	kept := Geometry{Width: 800, Height: 600, X: 5, Y: 6}
	if err := store.Save(kept); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatalf("failed to make dir read-only: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	err := store.Save(Geometry{Width: 1, Height: 1, X: 0, Y: 0})
	if !errors.Is(err, ErrFileWrite) {
		t.Fatalf("Save() error = %v, want ErrFileWrite", err)
	}

	if got := store.Load(); got != kept {
		t.Errorf("Load() after failed save = %+v, want %+v", got, kept)
	}
}

func TestHasPosition(t *testing.T) {
	tests := []struct {
		geom Geometry
		want bool
	}{
		{Geometry{X: 0, Y: 0}, true},
		{Geometry{X: 100, Y: 50}, true},
		{Geometry{X: -1, Y: -1}, false},
		{Geometry{X: -1, Y: 50}, false},
		{Geometry{X: 100, Y: -1}, false},
	}

	for _, tt := range tests {
		if got := tt.geom.HasPosition(); got != tt.want {
			t.Errorf("HasPosition() for x=%d y=%d = %v, want %v",
				tt.geom.X, tt.geom.Y, got, tt.want)
		}
	}
}
