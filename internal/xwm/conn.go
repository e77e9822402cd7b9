package xwm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/Happy-Ferret/mir/internal/x11"
)

// Conn is the slice of the X11 connection the bridge consumes.
// *x11.Connection implements it; tests substitute a recording fake.
//
// Property reads are asynchronous: the continuation runs on another
// goroutine when the reply arrives, possibly after the bridge that
// asked is already closed. A late write into a closed bridge's
// property cache is a harmless no-op.
type Conn interface {
	Atoms() x11.Atoms
	ReadStringProperty(win xproto.Window, prop xproto.Atom, cont func(string))
	ReadAtomListProperty(win xproto.Window, prop xproto.Atom, cont func([]xproto.Atom))
	SetTypedProperty(win xproto.Window, prop, typ xproto.Atom, values ...uint32)
	SetCardinal32Property(win xproto.Window, prop xproto.Atom, values ...uint32)
	SetAtomListProperty(win xproto.Window, prop xproto.Atom, list []xproto.Atom)
	DeleteProperty(win xproto.Window, prop xproto.Atom)
	ConfigureWindowSize(win xproto.Window, width, height uint32)
	MapWindow(win xproto.Window)
	DestroyWindow(win xproto.Window)
	WatchWindow(win xproto.Window)
	Flush()
}
