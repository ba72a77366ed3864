package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/fc8/wereader-app/internal/platform"
)

// Window is the application's top-level X11 window. It implements
// platform.WindowHandle.
type Window struct {
	conn      *Connection
	win       *xwindow.Window
	closeOnce sync.Once
}

var _ platform.WindowHandle = (*Window)(nil)

// NewWindow creates and titles the main window. The window is not mapped
// until Show is called, so geometry can be restored before it appears.
func NewWindow(conn *Connection, title, appID string, width, height uint) (*Window, error) {
	win, err := xwindow.Generate(conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate window id: %w", err)
	}

	err = win.CreateChecked(conn.Root, 0, 0, int(width), int(height),
		xproto.CwBackPixel, conn.XUtil.Screen().WhitePixel)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := ewmh.WmNameSet(conn.XUtil, win.Id, title); err != nil {
		// Title is cosmetic; an untitled window still works.
		icccm.WmNameSet(conn.XUtil, win.Id, title)
	}
	icccm.WmClassSet(conn.XUtil, win.Id, &icccm.WmClass{
		Instance: appID,
		Class:    appID,
	})

	return &Window{conn: conn, win: win}, nil
}

// Show maps the window. Call after geometry has been applied.
func (w *Window) Show() {
	w.win.Map()
}

// ID returns the X11 window identifier.
func (w *Window) ID() xproto.Window {
	return w.win.Id
}

// SetSize resizes the client area. Maximized state is dropped first so
// the window manager honors the request; EWMH resize is preferred with a
// direct configure as fallback for non-EWMH window managers.
func (w *Window) SetSize(width, height uint) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("refusing to resize window to %dx%d", width, height)
	}

	w.unmaximize()

	if err := w.win.WMResize(int(width), int(height)); err != nil {
		w.win.Resize(int(width), int(height))
	}
	return nil
}

// SetPosition moves the window so its client area starts at (x, y).
func (w *Window) SetPosition(x, y int) error {
	w.unmaximize()

	if err := w.win.WMMove(x, y); err != nil {
		w.win.Move(x, y)
	}
	return nil
}

// Center places the window in the middle of the active monitor's work
// area.
func (w *Window) Center() error {
	mon, err := w.conn.ActiveMonitor()
	if err != nil {
		return fmt.Errorf("failed to determine active monitor: %w", err)
	}

	size, err := w.InnerSize()
	if err != nil {
		return fmt.Errorf("failed to read window size: %w", err)
	}

	x := mon.X + (mon.Width-int(size.Width))/2
	y := mon.Y + (mon.Height-int(size.Height))/2
	// An oversized window pins to the work area origin instead of
	// drifting off-screen.
	if x < mon.X {
		x = mon.X
	}
	if y < mon.Y {
		y = mon.Y
	}

	return w.SetPosition(x, y)
}

// InnerSize reports the client area dimensions.
func (w *Window) InnerSize() (platform.Size, error) {
	geom, err := w.win.Geometry()
	if err != nil {
		return platform.Size{}, fmt.Errorf("failed to read window geometry: %w", err)
	}
	return platform.Size{Width: uint(geom.Width()), Height: uint(geom.Height())}, nil
}

// InnerPosition reports the client area origin in root coordinates.
func (w *Window) InnerPosition() (platform.Position, error) {
	translate, err := xproto.TranslateCoordinates(
		w.conn.XUtil.Conn(), w.win.Id, w.conn.Root, 0, 0).Reply()
	if err != nil {
		return platform.Position{}, fmt.Errorf("failed to translate window coordinates: %w", err)
	}
	return platform.Position{X: int(translate.DstX), Y: int(translate.DstY)}, nil
}

// OnCloseRequested wires fn to the WM_DELETE_WINDOW protocol. fn runs at
// most once, on the event loop goroutine, before the window is destroyed
// and the event loop is told to quit. The close is never blocked on fn's
// outcome.
func (w *Window) OnCloseRequested(fn func()) {
	w.win.WMGracefulClose(func(xw *xwindow.Window) {
		w.closeOnce.Do(fn)

		xevent.Detach(xw.X, xw.Id)
		xw.Destroy()
		xevent.Quit(xw.X)
	})
}

// unmaximize removes EWMH maximized state. Some windows never carry it;
// errors are ignored.
func (w *Window) unmaximize() {
	states, err := ewmh.WmStateGet(w.conn.XUtil, w.win.Id)
	if err != nil {
		return
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(w.conn.XUtil, w.win.Id, 0, state)
		}
	}
}
