package xwm

import (
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/Happy-Ferret/mir/internal/geometry"
	"github.com/Happy-Ferret/mir/internal/scene"
	"github.com/Happy-Ferret/mir/internal/shell"
	"github.com/Happy-Ferret/mir/internal/wayland"
)

// _NET_WM_MOVERESIZE detail codes. See EWMH 1.3, "_NET_WM_MOVERESIZE".
const (
	moveresizeSizeTopLeft     = 0
	moveresizeSizeTop         = 1
	moveresizeSizeTopRight    = 2
	moveresizeSizeRight       = 3
	moveresizeSizeBottomRight = 4
	moveresizeSizeBottom      = 5
	moveresizeSizeBottomLeft  = 6
	moveresizeSizeLeft        = 7
	moveresizeMove            = 8
)

func resizeEdgeFor(detail uint32) (shell.ResizeEdge, bool) {
	switch detail {
	case moveresizeSizeTop:
		return shell.EdgeNorth, true
	case moveresizeSizeBottom:
		return shell.EdgeSouth, true
	case moveresizeSizeLeft:
		return shell.EdgeWest, true
	case moveresizeSizeTopLeft:
		return shell.EdgeNorthWest, true
	case moveresizeSizeBottomLeft:
		return shell.EdgeSouthWest, true
	case moveresizeSizeRight:
		return shell.EdgeEast, true
	case moveresizeSizeTopRight:
		return shell.EdgeNorthEast, true
	case moveresizeSizeBottomRight:
		return shell.EdgeSouthEast, true
	default:
		return 0, false
	}
}

// Bridge keeps one X11 top-level window and its compositor scene
// surface consistent under concurrent mutation from both sides. Its
// identity is the X11 window id, stable for the window's lifetime.
//
// One mutex protects all bridge state. Every operation holds it for a
// short read/modify section only and releases it before calling any
// collaborator (the shell, the X11 connection or the scene surface),
// so the bridge can never deadlock against a collaborator-held lock
// and the compositor domain never blocks on X11 I/O.
type Bridge struct {
	window xproto.Window
	conn   Conn
	shell  shell.Shell
	logger *slog.Logger

	// Window-creation geometry, consumed by scene-surface creation.
	initialFrame     geometry.Rectangle
	overrideRedirect bool

	mu           sync.Mutex
	state        WindowState
	lastPushed   scene.SurfaceState // suppresses redundant modify-surface round trips
	props        Properties
	propsDirty   bool
	gate         creationGate
	observer     *surfaceObserver
	session      scene.Session
	sceneSurface scene.Surface
}

// NewBridge builds the bridge for a freshly created X11 window. The
// property cache starts dirty so the first refresh does real work.
func NewBridge(conn Conn, sh shell.Shell, logger *slog.Logger, win xproto.Window, frame geometry.Rectangle, overrideRedirect bool) *Bridge {
	return &Bridge{
		window:           win,
		conn:             conn,
		shell:            sh,
		logger:           logger,
		initialFrame:     frame,
		overrideRedirect: overrideRedirect,
		propsDirty:       true,
		lastPushed:       scene.StateUnknown,
	}
}

// Window returns the X11 window id the bridge is keyed by.
func (b *Bridge) Window() xproto.Window {
	return b.window
}

// Map clears the withdrawn flag and propagates the state to both
// sides.
func (b *Bridge) Map() {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()

	state.Withdrawn = false
	b.setWindowState(state)
}

// Unmap withdraws the window. The other flags are retained so a
// later Map restores them.
func (b *Bridge) Unmap() {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()

	state.Withdrawn = true
	b.setWindowState(state)
}

// HandleNetWMStateMessage processes a _NET_WM_STATE client message:
// an action verb, up to two target atoms, and a source indication we
// do not distinguish on.
func (b *Bridge) HandleNetWMStateMessage(data [5]uint32) {
	action := StateAction(data[0])
	targets := [2]xproto.Atom{xproto.Atom(data[1]), xproto.Atom(data[2])}

	b.mu.Lock()
	next := b.state.applyStateMessage(action, targets, b.conn.Atoms())
	b.mu.Unlock()

	b.setWindowState(next)
}

// HandleWMChangeStateMessage processes a WM_CHANGE_STATE client
// message (ICCCM 4.1.4).
func (b *Bridge) HandleWMChangeStateMessage(data [5]uint32) {
	requested := IcccmState(data[0])

	b.mu.Lock()
	next := b.state.applyChangeState(requested)
	b.mu.Unlock()

	b.setWindowState(next)
}

// AttachSurface pairs the bridge with the client's windowing surface.
// Must run on the compositor dispatch loop. Exactly one windowing
// surface may ever be attached to a bridge; a second attach, or a
// surface that cannot resolve its session, is a lifetime invariant
// violation.
//
// If the surface already carries committed content the scene surface
// is created immediately; otherwise creation waits for the next
// commit notification.
func (b *Bridge) AttachSurface(ws wayland.Surface) {
	session := ws.Session()
	if session == nil {
		fatalf("xwm: windowing surface for window %#x has no session", b.window)
		return
	}

	observer := newSurfaceObserver(b)
	streams, inputShape := ws.SurfaceData()
	params := &scene.SurfaceCreationParameters{
		TopLeft:          b.initialFrame.TopLeft,
		Size:             b.initialFrame.Size,
		OverrideRedirect: b.overrideRedirect,
		Streams:          streams,
		InputShape:       inputShape,
	}

	b.mu.Lock()
	captured := b.gate.capture(params, observer, session)
	if captured {
		b.observer = observer
		b.session = session
	}
	b.mu.Unlock()

	if !captured {
		fatalf("xwm: surface attached twice to window %#x", b.window)
		return
	}

	ws.OnDestroyed(b.Close)

	if ws.HasCommittedBuffer() {
		b.SurfaceCommitted()
	}
}

// SurfaceCommitted is the buffer-commit notification. The first
// commit after attach materializes the scene surface; later commits
// are no-ops here.
func (b *Bridge) SurfaceCommitted() {
	b.tryCreateSceneSurface()
}

func (b *Bridge) tryCreateSceneSurface() {
	b.mu.Lock()
	if b.sceneSurface != nil {
		b.mu.Unlock()
		return
	}
	params, observer, session, ok := b.gate.take()
	if !ok {
		b.mu.Unlock()
		return
	}

	// Deferred overrides, applied immediately before creation so the
	// freshest property reads win.
	params.Type = scene.TypeFreestyle
	if b.props.Title != "" {
		params.Name = b.props.Title
	}
	if b.props.ApplicationID != "" {
		params.ApplicationID = b.props.ApplicationID
	}
	params.Size = b.initialFrame.Size
	params.ServerSideDecorated = true
	b.mu.Unlock()

	surface, err := b.shell.CreateSurface(session, params, observer)
	if err != nil {
		// Not retried; the window stays surfaceless until destroyed.
		b.logger.Error("xwm: scene surface creation failed",
			"window", b.window, "error", err)
		return
	}

	b.mu.Lock()
	b.sceneSurface = surface
	b.mu.Unlock()

	b.logger.Debug("xwm: scene surface created", "window", b.window)
}

// MoveOrResizeRequested processes a _NET_WM_MOVERESIZE detail code:
// the move sentinel forwards a move request, the eight compass codes
// forward a resize with that edge, anything else is ignored.
func (b *Bridge) MoveOrResizeRequested(detail uint32) {
	b.mu.Lock()
	surface := b.sceneSurface
	timestamp := b.latestInputTimestampLocked()
	b.mu.Unlock()

	if surface == nil {
		return
	}

	if detail == moveresizeMove {
		b.shell.RequestMove(surface.Session(), surface, timestamp)
		return
	}
	if edge, ok := resizeEdgeFor(detail); ok {
		b.shell.RequestResize(surface.Session(), surface, timestamp, edge)
		return
	}
	b.logger.Warn("xwm: move-resize request with unknown detail",
		"window", b.window, "detail", detail)
}

// SceneSurfaceStateChanged reacts to the compositor changing the
// surface's state attribute. An attribute equal to the last one
// pushed is a redundant round trip and dropped; otherwise the change
// is folded into the window state and propagated through the unified
// routine. The shell hears the folded attribute back once, and the
// entry check stops the exchange from ping-ponging.
func (b *Bridge) SceneSurfaceStateChanged(attr scene.SurfaceState) {
	b.mu.Lock()
	if attr == b.lastPushed {
		b.mu.Unlock()
		return
	}
	next := b.state.withSurfaceState(attr)
	b.mu.Unlock()

	b.setWindowState(next)
}

// SceneSurfaceResized forwards new extents to the X11 side as a
// configure request. No bridge state changes.
func (b *Bridge) SceneSurfaceResized(size geometry.Size) {
	b.conn.ConfigureWindowSize(b.window, uint32(size.Width), uint32(size.Height))
	b.conn.Flush()
}

// SceneSurfaceCloseRequested forwards the shell's close request to
// the X11 side. The bridge itself is torn down later, when the
// window's destroy notification arrives.
func (b *Bridge) SceneSurfaceCloseRequested() {
	b.conn.DestroyWindow(b.window)
	b.conn.Flush()
}

// SetWorkspace publishes the window's virtual desktop. A negative
// workspace deletes the property.
func (b *Bridge) SetWorkspace(workspace int) {
	atoms := b.conn.Atoms()
	if workspace >= 0 {
		b.conn.SetCardinal32Property(b.window, atoms.NetWMDesktop, uint32(workspace))
	} else {
		b.conn.DeleteProperty(b.window, atoms.NetWMDesktop)
	}
	b.conn.Flush()
}

// Close tears the bridge down: it takes sole custody of the scene
// surface reference and the observer, removes the observer from the
// surface before asking the shell to destroy it, and then verifies
// the observer has no holder left. Idempotent: a second call finds
// nothing to take and changes nothing.
func (b *Bridge) Close() {
	b.mu.Lock()
	surface := b.sceneSurface
	b.sceneSurface = nil
	observer := b.observer
	b.observer = nil
	// A commit racing close on the dispatch loop must not be able to
	// materialize a surface for a dead bridge.
	b.gate.cancel()
	b.mu.Unlock()

	if surface != nil && observer != nil {
		surface.RemoveObserver(observer)
	}

	if surface != nil {
		b.shell.DestroySurface(surface.Session(), surface)
		// The compositor's registry may keep the surface alive; that
		// shared ownership is expected.
	}

	if observer != nil {
		if refs := observer.Release(); refs != 0 {
			fatalf("xwm: surface observer for window %#x still has %d holders after close", b.window, refs)
		}
	}
}

// State returns the current window state.
func (b *Bridge) State() WindowState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// HasSceneSurface reports whether the scene surface has been created
// and not yet released by Close.
func (b *Bridge) HasSceneSurface() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sceneSurface != nil
}

// setWindowState is the unified propagation routine: record the new
// state, rewrite the window's WM_STATE and _NET_WM_STATE properties,
// and push a modify-surface request to the shell when the equivalent
// compositor attribute actually changed. Wire properties are written
// before the shell hears anything, and both happen outside the lock.
func (b *Bridge) setWindowState(next WindowState) {
	atoms := b.conn.Atoms()
	wmState, netStates := next.wireState(atoms)

	// Two-word WM_STATE record: (state, icon window = None).
	b.conn.SetTypedProperty(b.window, atoms.WMState, atoms.WMState, uint32(wmState), uint32(xproto.WindowNone))

	if next.Withdrawn {
		b.conn.DeleteProperty(b.window, atoms.NetWMState)
	} else {
		b.conn.SetAtomListProperty(b.window, atoms.NetWMState, netStates)
	}

	attr := next.surfaceState()

	b.mu.Lock()
	b.state = next
	push := attr != b.lastPushed
	if push {
		b.lastPushed = attr
	}
	surface := b.sceneSurface
	b.mu.Unlock()

	if push && surface != nil {
		b.shell.ModifySurface(surface.Session(), surface, shell.SurfaceSpecification{State: attr})
	}
}

func (b *Bridge) latestInputTimestampLocked() uint64 {
	if b.observer == nil {
		b.logger.Warn("xwm: no surface observer to take an input timestamp from", "window", b.window)
		return 0
	}
	return b.observer.latestInputTimestamp()
}
