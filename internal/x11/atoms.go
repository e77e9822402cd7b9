package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Atoms holds the pre-resolved atom identifiers the bridge works
// with. All of them are interned once at connection setup.
type Atoms struct {
	WMState        xproto.Atom
	WMChangeState  xproto.Atom
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom

	NetWMName               xproto.Atom
	NetWMState              xproto.Atom
	NetWMStateHidden        xproto.Atom
	NetWMStateMaximizedHorz xproto.Atom
	NetWMStateMaximizedVert xproto.Atom
	NetWMStateFullscreen    xproto.Atom
	NetWMMoveresize         xproto.Atom
	NetWMDesktop            xproto.Atom

	UTF8String xproto.Atom
}

func internAtoms(xu *xgbutil.XUtil) (Atoms, error) {
	var a Atoms
	for _, entry := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_STATE", &a.WMState},
		{"WM_CHANGE_STATE", &a.WMChangeState},
		{"WM_PROTOCOLS", &a.WMProtocols},
		{"WM_DELETE_WINDOW", &a.WMDeleteWindow},
		{"_NET_WM_NAME", &a.NetWMName},
		{"_NET_WM_STATE", &a.NetWMState},
		{"_NET_WM_STATE_HIDDEN", &a.NetWMStateHidden},
		{"_NET_WM_STATE_MAXIMIZED_HORZ", &a.NetWMStateMaximizedHorz},
		{"_NET_WM_STATE_MAXIMIZED_VERT", &a.NetWMStateMaximizedVert},
		{"_NET_WM_STATE_FULLSCREEN", &a.NetWMStateFullscreen},
		{"_NET_WM_MOVERESIZE", &a.NetWMMoveresize},
		{"_NET_WM_DESKTOP", &a.NetWMDesktop},
		{"UTF8_STRING", &a.UTF8String},
	} {
		atom, err := xprop.Atm(xu, entry.name)
		if err != nil {
			return Atoms{}, fmt.Errorf("failed to intern %s: %w", entry.name, err)
		}
		*entry.dst = atom
	}
	return a, nil
}
