package xwm

import (
	"slices"

	"github.com/BurntSushi/xgb/xproto"
)

// Properties is the cached snapshot of a window's X11 properties.
// Refreshes overwrite fields one asynchronous reply at a time, but
// each field has exactly one source per refresh (WM_NAME and
// _NET_WM_NAME both feed Title; last reply wins, which is correct
// because a client uses one or the other), so the struct is
// consistent once a refresh's replies have drained.
type Properties struct {
	Title                string
	ApplicationID        string
	SupportsCloseRequest bool
}

// MarkPropertiesDirty flags the cache for refresh. Bursts of property
// change notifications collapse into a single round of reads on the
// next RefreshProperties call.
func (b *Bridge) MarkPropertiesDirty() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.propsDirty = true
}

// RefreshProperties re-reads the window's properties if they are
// dirty, and is a cheap no-op otherwise. The reads are fire-and-
// forget; each continuation writes its field into the cache under the
// lock when its reply arrives. Replies may land out of order and
// independently of each other.
func (b *Bridge) RefreshProperties() {
	b.mu.Lock()
	if !b.propsDirty {
		b.mu.Unlock()
		return
	}
	b.propsDirty = false
	b.props.SupportsCloseRequest = false
	atoms := b.conn.Atoms()
	b.mu.Unlock()

	b.conn.ReadStringProperty(b.window, xproto.AtomWmClass, func(value string) {
		b.mu.Lock()
		b.props.ApplicationID = value
		b.mu.Unlock()
	})

	b.conn.ReadStringProperty(b.window, xproto.AtomWmName, func(value string) {
		b.mu.Lock()
		b.props.Title = value
		b.mu.Unlock()
	})

	b.conn.ReadStringProperty(b.window, atoms.NetWMName, func(value string) {
		b.mu.Lock()
		b.props.Title = value
		b.mu.Unlock()
	})

	b.conn.ReadAtomListProperty(b.window, atoms.WMProtocols, func(protocols []xproto.Atom) {
		supported := slices.Contains(protocols, atoms.WMDeleteWindow)
		b.mu.Lock()
		b.props.SupportsCloseRequest = supported
		b.mu.Unlock()
	})
}

// Properties returns the current property snapshot.
func (b *Bridge) Properties() Properties {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.props
}
