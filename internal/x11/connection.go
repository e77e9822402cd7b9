// Package x11 is the legacy-protocol connection layer: it owns the
// X server connection, the pre-resolved atom table, and the property
// and window requests the bridge issues. Property reads are
// asynchronous; everything else is fire-and-forget.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	atoms  Atoms
	logger *slog.Logger
}

// NewConnection connects to the X server on the given display (the
// DISPLAY environment variable when empty) and interns the atom
// table.
func NewConnection(display string, logger *slog.Logger) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	atoms, err := internAtoms(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	return &Connection{
		xu:     xu,
		root:   xu.RootWin(),
		atoms:  atoms,
		logger: logger,
	}, nil
}

// Atoms returns the pre-resolved atom table.
func (c *Connection) Atoms() Atoms {
	return c.atoms
}

// Root returns the root window of the default screen.
func (c *Connection) Root() xproto.Window {
	return c.root
}

// SelectWMEvents claims window-manager event delivery on the root
// window. Fails if another window manager is already running.
func (c *Connection) SelectWMEvents() error {
	err := xproto.ChangeWindowAttributesChecked(
		c.xu.Conn(),
		c.root,
		xproto.CwEventMask,
		[]uint32{xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to select WM events on root (another WM running?): %w", err)
	}
	return nil
}

// WatchWindow subscribes to property and focus changes on a client
// window.
func (c *Connection) WatchWindow(win xproto.Window) {
	xproto.ChangeWindowAttributes(
		c.xu.Conn(),
		win,
		xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange | xproto.EventMaskFocusChange},
	)
}

// WindowExists reports whether the window is still known to the
// server. Used by the reconciler to detect stale bridges.
func (c *Connection) WindowExists(win xproto.Window) bool {
	_, err := xproto.GetWindowAttributes(c.xu.Conn(), win).Reply()
	return err == nil
}

// ConfigureWindowSize resizes a window to the given extents.
func (c *Connection) ConfigureWindowSize(win xproto.Window, width, height uint32) {
	xproto.ConfigureWindow(
		c.xu.Conn(),
		win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{width, height},
	)
}

// MapWindow grants a map request, making the window viewable.
// Intercepted map requests never reach the server on their own while
// substructure redirection is claimed, so the window manager must
// reissue them.
func (c *Connection) MapWindow(win xproto.Window) {
	xproto.MapWindow(c.xu.Conn(), win)
}

// DestroyWindow asks the server to destroy a client window.
func (c *Connection) DestroyWindow(win xproto.Window) {
	xproto.DestroyWindow(c.xu.Conn(), win)
}

// Flush forces queued requests out to the server.
func (c *Connection) Flush() {
	c.xu.Sync()
}

// Close disconnects from the X server. Any blocked event wait
// returns once the socket is gone.
func (c *Connection) Close() {
	c.xu.Conn().Close()
}
