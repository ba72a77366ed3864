package platform

// Size describes a window's inner dimensions in pixels.
type Size struct {
	Width  uint
	Height uint
}

// Position describes a window's top-left corner in screen coordinates.
// Values may be negative on multi-monitor setups.
type Position struct {
	X int
	Y int
}

// WindowHandle abstracts the geometry operations of the main application
// window across window systems. All mutators are best-effort from the
// caller's point of view: a failed call must never prevent the window
// from opening or closing.
type WindowHandle interface {
	// SetSize resizes the window's client area.
	SetSize(width, height uint) error

	// SetPosition moves the window so its client area starts at (x, y)
	// in root coordinates.
	SetPosition(x, y int) error

	// Center places the window in the middle of the active display's
	// usable work area.
	Center() error

	// InnerSize reports the current client area dimensions.
	InnerSize() (Size, error)

	// InnerPosition reports the client area origin in root coordinates.
	InnerPosition() (Position, error)

	// OnCloseRequested registers fn to run when the user asks the window
	// to close. The callback fires at most once; the close itself is not
	// blocked on whatever fn does.
	OnCloseRequested(fn func())
}
