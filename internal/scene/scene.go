// Package scene models the compositor-side collaborators of the X11
// bridge: the renderable scene surface, its owning session, and the
// observer registry through which surface events flow back out.
//
// The bridge never owns a scene surface outright; it shares it with
// the compositor's own surface registry, and whichever holder lives
// longest keeps it alive.
package scene

import (
	"github.com/Happy-Ferret/mir/internal/geometry"
)

// SurfaceState is the compositor's single window-state attribute.
type SurfaceState int

const (
	StateUnknown SurfaceState = iota
	StateRestored
	StateMinimized
	StateMaximized
	StateVertMaximized
	StateHorizMaximized
	StateFullscreen
	StateHidden
	StateAttached
)

func (s SurfaceState) String() string {
	switch s {
	case StateRestored:
		return "restored"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateVertMaximized:
		return "vertmaximized"
	case StateHorizMaximized:
		return "horizmaximized"
	case StateFullscreen:
		return "fullscreen"
	case StateHidden:
		return "hidden"
	case StateAttached:
		return "attached"
	default:
		return "unknown"
	}
}

// SurfaceType classifies a surface for placement policy.
type SurfaceType int

const (
	TypeNormal SurfaceType = iota
	// TypeFreestyle surfaces opt out of the shell's normal placement
	// rules; the bridge always creates X11 windows as freestyle.
	TypeFreestyle
)

// Session is the client session a surface belongs to. Every windowing
// surface resolves to exactly one session by protocol construction.
type Session interface {
	Name() string
}

// SurfaceObserver receives scene-surface events. Implementations must
// not call back into the surface from within a notification.
type SurfaceObserver interface {
	// StateChanged reports a new value of the surface state attribute.
	StateChanged(state SurfaceState)
	// ContentResized reports the new surface extents.
	ContentResized(size geometry.Size)
	// CloseRequested reports that the shell wants the surface closed.
	CloseRequested()
	// InputEvent reports the timestamp of an input event delivered to
	// the surface, in nanoseconds.
	InputEvent(timestampNS uint64)
}

// Surface is the compositor's renderable surface object.
type Surface interface {
	Session() Session
	// AddObserver registers an observer. Registries retain observers
	// that implement Referenced and release them on removal.
	AddObserver(o SurfaceObserver)
	RemoveObserver(o SurfaceObserver)
}

// StreamSpecification describes one content stream contributed by the
// client's windowing surface.
type StreamSpecification struct {
	StreamID     uint32
	Displacement geometry.Point
}

// SurfaceCreationParameters is the once-only bundle consumed when a
// scene surface is instantiated.
type SurfaceCreationParameters struct {
	Type                SurfaceType
	Name                string
	ApplicationID       string
	TopLeft             geometry.Point
	Size                geometry.Size
	Streams             []StreamSpecification
	InputShape          []geometry.Rectangle
	OverrideRedirect    bool
	ServerSideDecorated bool
}
