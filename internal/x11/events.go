package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// EventHandler receives the window-manager events the bridge cares
// about. Calls arrive on the connection's event goroutine.
type EventHandler interface {
	WindowCreated(ev xproto.CreateNotifyEvent)
	WindowDestroyed(win xproto.Window)
	PropertyChanged(win xproto.Window, prop xproto.Atom)
	ClientMessage(ev xproto.ClientMessageEvent)
	MapRequested(win xproto.Window)
	WindowUnmapped(win xproto.Window)
}

// Run pumps X events to the handler until the connection is closed.
// Blocking; meant to be the caller's event goroutine.
func (c *Connection) Run(h EventHandler) {
	for {
		ev, err := c.xu.Conn().WaitForEvent()
		if ev == nil && err == nil {
			return // connection closed
		}
		if err != nil {
			c.logger.Warn("x11 event error", "error", err)
			continue
		}
		switch e := ev.(type) {
		case xproto.CreateNotifyEvent:
			h.WindowCreated(e)
		case xproto.DestroyNotifyEvent:
			h.WindowDestroyed(e.Window)
		case xproto.PropertyNotifyEvent:
			h.PropertyChanged(e.Window, e.Atom)
		case xproto.ClientMessageEvent:
			h.ClientMessage(e)
		case xproto.MapRequestEvent:
			h.MapRequested(e.Window)
		case xproto.UnmapNotifyEvent:
			h.WindowUnmapped(e.Window)
		}
	}
}
