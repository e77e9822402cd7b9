package xwm

import (
	"github.com/Happy-Ferret/mir/internal/scene"
)

// creationGate tracks the preconditions for instantiating the scene
// surface and guarantees it is built at most once. It moves through
// three phases: empty, captured (a windowing surface is attached and
// its creation inputs are held), and created. The gate itself is not
// locked; the owning bridge's mutex serializes access.
type creationGate struct {
	params   *scene.SurfaceCreationParameters
	observer *surfaceObserver
	session  scene.Session
	created  bool
}

// capture records the creation inputs. Returns false without effect
// if the gate has already left the empty phase; attaching a second
// windowing surface to the same window is a caller bug.
func (g *creationGate) capture(params *scene.SurfaceCreationParameters, observer *surfaceObserver, session scene.Session) bool {
	if g.created || g.params != nil || g.observer != nil {
		return false
	}
	g.params = params
	g.observer = observer
	g.session = session
	return true
}

// cancel discards any captured inputs and bars creation for good.
// Used at bridge teardown so a commit that races close cannot
// materialize a surface for a dead bridge.
func (g *creationGate) cancel() {
	g.params = nil
	g.observer = nil
	g.session = nil
	g.created = true
}

// take hands out the creation inputs exactly once, and only when
// every precondition holds: inputs captured, session resolved, not
// yet created. Safe to call speculatively from every buffer commit;
// until the preconditions hold, and forever after the first success,
// it reports false.
func (g *creationGate) take() (scene.SurfaceCreationParameters, *surfaceObserver, scene.Session, bool) {
	if g.created || g.params == nil || g.observer == nil || g.session == nil {
		return scene.SurfaceCreationParameters{}, nil, nil, false
	}
	params := *g.params
	g.params = nil
	g.created = true
	return params, g.observer, g.session, true
}
