package xwm

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/Happy-Ferret/mir/internal/scene"
	"github.com/Happy-Ferret/mir/internal/x11"
)

// WindowState is the four-bit visibility record of an X11 window. All
// four flags are retained independently so that un-withdrawing a
// window restores its prior minimized/maximized/fullscreen
// combination; Withdrawn only takes priority when the state is
// advertised externally.
type WindowState struct {
	Withdrawn  bool
	Minimized  bool
	Maximized  bool
	Fullscreen bool
}

func (s WindowState) String() string {
	if s.Withdrawn {
		return "withdrawn"
	}
	var parts []string
	if s.Minimized {
		parts = append(parts, "minimized")
	}
	if s.Maximized {
		parts = append(parts, "maximized")
	}
	if s.Fullscreen {
		parts = append(parts, "fullscreen")
	}
	if len(parts) == 0 {
		return "restored"
	}
	return strings.Join(parts, "+")
}

// StateAction is the verb of a _NET_WM_STATE client message.
// See EWMH 1.3, "Application Window Properties".
type StateAction uint32

const (
	StateRemove StateAction = 0
	StateAdd    StateAction = 1
	StateToggle StateAction = 2
)

// IcccmState is a WM_STATE / WM_CHANGE_STATE state code.
// See ICCCM 4.1.3.1.
type IcccmState uint32

const (
	IcccmWithdrawn IcccmState = 0
	IcccmNormal    IcccmState = 1
	IcccmIconic    IcccmState = 3
)

func (s IcccmState) String() string {
	switch s {
	case IcccmWithdrawn:
		return "withdrawn"
	case IcccmNormal:
		return "normal"
	case IcccmIconic:
		return "iconic"
	default:
		return "invalid"
	}
}

// applyStateMessage folds one _NET_WM_STATE request into the state.
// Atoms the bridge does not support are legal to request and simply
// ignored; a zero atom means the message carried only one target.
func (s WindowState) applyStateMessage(action StateAction, targets [2]xproto.Atom, atoms x11.Atoms) WindowState {
	next := s
	for _, target := range targets {
		if target == 0 {
			continue
		}

		var flag *bool
		switch target {
		case atoms.NetWMStateHidden:
			flag = &next.Minimized
		case atoms.NetWMStateMaximizedHorz:
			// Clients set horz and vert together; vert alone is ignored.
			flag = &next.Maximized
		case atoms.NetWMStateFullscreen:
			flag = &next.Fullscreen
		default:
			continue
		}

		switch action {
		case StateRemove:
			*flag = false
		case StateAdd:
			*flag = true
		case StateToggle:
			*flag = !*flag
		}
	}
	return next
}

// applyChangeState folds a WM_CHANGE_STATE request into the state.
// ICCCM defines no legal requested value besides Normal and Iconic
// for this message, so anything else leaves the state untouched.
func (s WindowState) applyChangeState(requested IcccmState) WindowState {
	next := s
	switch requested {
	case IcccmNormal:
		next.Minimized = false
	case IcccmIconic:
		next.Minimized = true
	}
	return next
}

// withSurfaceState merges a compositor state-attribute change into
// the window state. Withdrawn is never set by this path; it is owned
// by the X11 side.
func (s WindowState) withSurfaceState(attr scene.SurfaceState) WindowState {
	next := s
	switch attr {
	case scene.StateMinimized, scene.StateHidden:
		next.Minimized = true
	case scene.StateFullscreen:
		next.Minimized = false
		next.Fullscreen = true
	case scene.StateMaximized, scene.StateVertMaximized, scene.StateHorizMaximized:
		next.Minimized = false
		next.Maximized = true
		next.Fullscreen = false
	case scene.StateRestored, scene.StateUnknown, scene.StateAttached:
		next.Minimized = false
		next.Maximized = false
		next.Fullscreen = false
	}
	return next
}

// surfaceState maps the window state onto the compositor's single
// state attribute, in strict priority order: withdrawn, minimized,
// fullscreen, maximized, restored.
func (s WindowState) surfaceState() scene.SurfaceState {
	switch {
	case s.Withdrawn:
		return scene.StateHidden
	case s.Minimized:
		return scene.StateMinimized
	case s.Fullscreen:
		return scene.StateFullscreen
	case s.Maximized:
		return scene.StateMaximized
	default:
		return scene.StateRestored
	}
}

// wireState produces the external-protocol representation: the ICCCM
// WM_STATE code plus the ordered _NET_WM_STATE atom list. A withdrawn
// window advertises none of its other flags; otherwise the list order
// is fixed (hidden, maximized_horz, maximized_vert, fullscreen)
// because some clients are order-sensitive.
func (s WindowState) wireState(atoms x11.Atoms) (IcccmState, []xproto.Atom) {
	var wmState IcccmState
	switch {
	case s.Withdrawn:
		wmState = IcccmWithdrawn
	case s.Minimized:
		wmState = IcccmIconic
	default:
		wmState = IcccmNormal
	}

	if s.Withdrawn {
		return wmState, nil
	}

	var netStates []xproto.Atom
	if s.Minimized {
		netStates = append(netStates, atoms.NetWMStateHidden)
	}
	if s.Maximized {
		netStates = append(netStates, atoms.NetWMStateMaximizedHorz, atoms.NetWMStateMaximizedVert)
	}
	if s.Fullscreen {
		netStates = append(netStates, atoms.NetWMStateFullscreen)
	}
	return wmState, netStates
}
