// Package config loads the application shell's own settings from
// config.yaml in the config directory. This is host-application
// configuration (title, WM class, first-run size, log level); the
// persisted window geometry lives in winstate, not here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the shell config file name inside the config directory.
const FileName = "config.yaml"

// Config holds the effective shell configuration.
type Config struct {
	Window   WindowConfig `yaml:"window"`
	LogLevel string       `yaml:"log_level"`
}

// WindowConfig configures the main window's static properties.
type WindowConfig struct {
	Title string `yaml:"title"`
	AppID string `yaml:"app_id"`

	// DefaultWidth/DefaultHeight override the built-in first-run size.
	// They only matter when no geometry has been persisted yet.
	DefaultWidth  uint `yaml:"default_width"`
	DefaultHeight uint `yaml:"default_height"`
}

// DefaultConfig returns the configuration used when no config.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "WeReader",
			AppID: "wereader",
		},
		LogLevel: "info",
	}
}

// Load reads config.yaml from dir. A missing file yields the defaults;
// an unreadable or invalid file is an error, surfaced at startup. Unlike
// the geometry store, shell config failures are loud: a typo in
// config.yaml should be seen, not silently shadowed by defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	// A zero default size means "use the built-in default"; setting only
	// one of the pair is ambiguous.
	if (c.Window.DefaultWidth == 0) != (c.Window.DefaultHeight == 0) {
		return fmt.Errorf("window.default_width and window.default_height must be set together")
	}
	return nil
}
