// Package shell defines the compositor shell interface the bridge
// forwards policy decisions to. The shell decides placement and
// decoration; the bridge only keeps state synchronized.
package shell

import (
	"github.com/Happy-Ferret/mir/internal/scene"
)

// ResizeEdge names the edge or corner an interactive resize grabs.
type ResizeEdge int

const (
	EdgeNorth ResizeEdge = iota
	EdgeNorthEast
	EdgeEast
	EdgeSouthEast
	EdgeSouth
	EdgeSouthWest
	EdgeWest
	EdgeNorthWest
)

func (e ResizeEdge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeNorthEast:
		return "northeast"
	case EdgeEast:
		return "east"
	case EdgeSouthEast:
		return "southeast"
	case EdgeSouth:
		return "south"
	case EdgeSouthWest:
		return "southwest"
	case EdgeWest:
		return "west"
	case EdgeNorthWest:
		return "northwest"
	default:
		return "unknown"
	}
}

// SurfaceSpecification carries the attributes of a modify-surface
// request. Only the state attribute is driven by the X11 bridge.
type SurfaceSpecification struct {
	State scene.SurfaceState
}

// Shell is consumed by the bridge. All methods are fire-and-forget
// from the bridge's point of view: there is no failure response to
// act on, so none of them is retried.
type Shell interface {
	CreateSurface(session scene.Session, params scene.SurfaceCreationParameters, observer scene.SurfaceObserver) (scene.Surface, error)
	DestroySurface(session scene.Session, surface scene.Surface)
	ModifySurface(session scene.Session, surface scene.Surface, spec SurfaceSpecification)
	RequestMove(session scene.Session, surface scene.Surface, timestampNS uint64)
	RequestResize(session scene.Session, surface scene.Surface, timestampNS uint64, edge ResizeEdge)
}
