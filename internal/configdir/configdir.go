package configdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "wereader"

// Resolver resolves the per-user configuration directory for the
// application. Implementations may fail (e.g. no home directory in the
// environment); callers decide whether that is fatal.
type Resolver interface {
	Dir() (string, error)
}

// XDG resolves the config directory following the XDG base directory
// convention. Priority:
// 1) $XDG_CONFIG_HOME/wereader (if XDG_CONFIG_HOME is set)
// 2) ~/.config/wereader
//
// The directory is resolved, not created; creation is the writer's job.
type XDG struct{}

func (XDG) Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDirName), nil
}

// Fixed is a Resolver pinned to a specific directory. Used by tests and
// by the -config-dir override in main.
type Fixed string

func (f Fixed) Dir() (string, error) {
	if f == "" {
		return "", fmt.Errorf("config directory is empty")
	}
	return string(f), nil
}
