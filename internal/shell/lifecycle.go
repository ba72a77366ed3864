// Package shell wires the window geometry store into the main window's
// lifecycle: restore geometry before the window is shown, capture and
// persist it when the window is asked to close.
package shell

import (
	"log/slog"

	"github.com/fc8/wereader-app/internal/platform"
	"github.com/fc8/wereader-app/internal/winstate"
)

// Lifecycle drives the load/apply/capture/save cycle for one window.
// Every step is best-effort: geometry handling must never keep the
// window from opening or closing.
type Lifecycle struct {
	win    platform.WindowHandle
	store  *winstate.Store
	logger *slog.Logger
}

func New(win platform.WindowHandle, store *winstate.Store, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{win: win, store: store, logger: logger}
}

// Restore loads the persisted geometry and applies it to the window.
// A failed resize is logged and startup proceeds. A record without a
// stored position centers the window; a failed explicit placement falls
// back to centering once.
func (l *Lifecycle) Restore() {
	geom := l.store.Load()

	if err := l.win.SetSize(geom.Width, geom.Height); err != nil {
		l.logger.Warn("failed to apply window size",
			"width", geom.Width, "height", geom.Height, "error", err)
	}

	if !geom.HasPosition() {
		if err := l.win.Center(); err != nil {
			l.logger.Warn("failed to center window", "error", err)
		}
		return
	}

	if err := l.win.SetPosition(geom.X, geom.Y); err != nil {
		l.logger.Warn("failed to apply window position, centering instead",
			"x", geom.X, "y", geom.Y, "error", err)
		if err := l.win.Center(); err != nil {
			l.logger.Warn("failed to center window", "error", err)
		}
	}
}

// InstallCloseHandler registers the single-shot close callback that
// captures the live geometry and persists it. The close itself is never
// blocked on the save outcome.
func (l *Lifecycle) InstallCloseHandler() {
	l.win.OnCloseRequested(l.captureAndSave)
}

func (l *Lifecycle) captureAndSave() {
	size, err := l.win.InnerSize()
	if err != nil {
		// Without a size there is nothing worth saving; the previously
		// persisted state stays untouched.
		l.logger.Warn("failed to read window size, skipping state save", "error", err)
		return
	}

	geom := winstate.Geometry{Width: size.Width, Height: size.Height, X: -1, Y: -1}
	if pos, err := l.win.InnerPosition(); err != nil {
		l.logger.Debug("failed to read window position, saving size only", "error", err)
	} else {
		geom.X = pos.X
		geom.Y = pos.Y
	}

	if err := l.store.Save(geom); err != nil {
		l.logger.Warn("failed to save window state", "error", err)
	}
}
