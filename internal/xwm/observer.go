package xwm

import (
	"sync/atomic"

	"github.com/Happy-Ferret/mir/internal/geometry"
	"github.com/Happy-Ferret/mir/internal/scene"
)

// surfaceObserver is the bridge's ear on its scene surface. It
// forwards surface events back into the bridge and records the
// latest input-event timestamp for interactive move/resize requests.
//
// Its lifetime is refcounted: the bridge holds one reference from
// creation until Close, and the scene surface's observer registry
// holds another while the observer is registered. Close verifies that
// relinquishing the bridge's hold leaves no other holder.
type surfaceObserver struct {
	scene.RefCount
	bridge *Bridge

	timestampNS atomic.Uint64
}

var _ scene.SurfaceObserver = (*surfaceObserver)(nil)

func newSurfaceObserver(b *Bridge) *surfaceObserver {
	o := &surfaceObserver{bridge: b}
	o.Retain() // the bridge's own hold
	return o
}

func (o *surfaceObserver) StateChanged(state scene.SurfaceState) {
	o.bridge.SceneSurfaceStateChanged(state)
}

func (o *surfaceObserver) ContentResized(size geometry.Size) {
	o.bridge.SceneSurfaceResized(size)
}

func (o *surfaceObserver) CloseRequested() {
	o.bridge.SceneSurfaceCloseRequested()
}

func (o *surfaceObserver) InputEvent(timestampNS uint64) {
	o.timestampNS.Store(timestampNS)
}

// latestInputTimestamp returns the timestamp of the most recent input
// event, in nanoseconds, or zero if none has been seen.
func (o *surfaceObserver) latestInputTimestamp() uint64 {
	return o.timestampNS.Load()
}
