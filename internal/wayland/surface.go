// Package wayland defines the contract of the client's buffer-bearing
// windowing surface, which carries committed pixel content before a
// scene surface exists for it.
//
// Windowing surfaces are compositor-serialized protocol objects: they
// must only be touched from the compositor's dispatch loop.
package wayland

import (
	"github.com/Happy-Ferret/mir/internal/geometry"
	"github.com/Happy-Ferret/mir/internal/scene"
)

// Surface is the windowing surface an X11 window is paired with.
type Surface interface {
	// Session resolves the owning client session, or nil if the
	// surface has no session. A surface must always belong to a
	// session by protocol construction; nil indicates a broken peer.
	Session() scene.Session

	// HasCommittedBuffer reports whether the surface already carries
	// committed content.
	HasCommittedBuffer() bool

	// SurfaceData returns the current content streams and input shape
	// for scene-surface creation.
	SurfaceData() (streams []scene.StreamSpecification, inputShape []geometry.Rectangle)

	// OnDestroyed registers a callback invoked when the underlying
	// protocol resource is destroyed.
	OnDestroyed(fn func())
}
