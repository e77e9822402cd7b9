package xwm

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/Happy-Ferret/mir/internal/dispatch"
	"github.com/Happy-Ferret/mir/internal/geometry"
	"github.com/Happy-Ferret/mir/internal/shell"
	"github.com/Happy-Ferret/mir/internal/wayland"
)

// Manager owns the per-window bridge table and routes X11 events to
// bridges. X events arrive on the connection's event goroutine;
// windowing-surface pairing is marshalled onto the compositor
// dispatch loop, the only place compositor protocol objects may be
// touched.
type Manager struct {
	conn   Conn
	shell  shell.Shell
	exec   *dispatch.Loop
	logger *slog.Logger

	mu      sync.Mutex
	bridges map[xproto.Window]*Bridge
}

// WindowInfo is a diagnostic snapshot of one bridged window.
type WindowInfo struct {
	Window               xproto.Window
	Title                string
	ApplicationID        string
	SupportsCloseRequest bool
	State                WindowState
	HasSceneSurface      bool
}

func NewManager(conn Conn, sh shell.Shell, exec *dispatch.Loop, logger *slog.Logger) *Manager {
	return &Manager{
		conn:    conn,
		shell:   sh,
		exec:    exec,
		logger:  logger,
		bridges: make(map[xproto.Window]*Bridge),
	}
}

func (m *Manager) bridge(win xproto.Window) *Bridge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bridges[win]
}

// WindowCreated adopts a new X11 window: builds its bridge and
// subscribes to its property changes.
func (m *Manager) WindowCreated(ev xproto.CreateNotifyEvent) {
	frame := geometry.Rectangle{
		TopLeft: geometry.Point{X: int(ev.X), Y: int(ev.Y)},
		Size:    geometry.Size{Width: int(ev.Width), Height: int(ev.Height)},
	}
	b := NewBridge(m.conn, m.shell, m.logger, ev.Window, frame, ev.OverrideRedirect)

	m.mu.Lock()
	m.bridges[ev.Window] = b
	m.mu.Unlock()

	m.conn.WatchWindow(ev.Window)
	// Newly adopted windows land on the first workspace.
	b.SetWorkspace(0)
	m.logger.Debug("xwm: window created", "window", ev.Window, "frame", frame)
}

// WindowDestroyed drops the window's bridge and closes it.
func (m *Manager) WindowDestroyed(win xproto.Window) {
	m.mu.Lock()
	b := m.bridges[win]
	delete(m.bridges, win)
	m.mu.Unlock()

	if b == nil {
		return
	}
	b.Close()
	m.logger.Debug("xwm: window destroyed", "window", win)
}

// PropertyChanged marks the window's property cache dirty. Which
// property changed does not matter; the next refresh re-reads them
// all.
func (m *Manager) PropertyChanged(win xproto.Window, prop xproto.Atom) {
	if b := m.bridge(win); b != nil {
		b.MarkPropertiesDirty()
	}
}

// ClientMessage routes a client message to the window's bridge.
// Messages for unknown windows or of unknown types are dropped.
func (m *Manager) ClientMessage(ev xproto.ClientMessageEvent) {
	b := m.bridge(ev.Window)
	if b == nil {
		return
	}

	var data [5]uint32
	copy(data[:], ev.Data.Data32)

	atoms := m.conn.Atoms()
	switch ev.Type {
	case atoms.NetWMState:
		b.HandleNetWMStateMessage(data)
	case atoms.WMChangeState:
		b.HandleWMChangeStateMessage(data)
	case atoms.NetWMMoveresize:
		b.MoveOrResizeRequested(data[2])
	default:
		m.logger.Debug("xwm: unhandled client message", "window", ev.Window, "type", ev.Type)
	}
}

// MapRequested maps the window: its properties are refreshed, the
// withdrawn flag cleared, and the intercepted map request granted by
// reissuing it to the server.
func (m *Manager) MapRequested(win xproto.Window) {
	b := m.bridge(win)
	if b == nil {
		return
	}
	b.RefreshProperties()
	b.Map()
	m.conn.MapWindow(win)
	m.conn.Flush()
}

// WindowUnmapped withdraws the window.
func (m *Manager) WindowUnmapped(win xproto.Window) {
	if b := m.bridge(win); b != nil {
		b.Unmap()
	}
}

// AttachSurface pairs a window with its windowing surface on the
// compositor dispatch loop. Called from the protocol side when the
// client announces the association.
func (m *Manager) AttachSurface(win xproto.Window, ws wayland.Surface) {
	b := m.bridge(win)
	if b == nil {
		m.logger.Warn("xwm: surface association for unknown window", "window", win)
		return
	}
	m.exec.Post(func() {
		b.AttachSurface(ws)
	})
}

// Windows returns the bridged window ids, sorted for stable output.
func (m *Manager) Windows() []xproto.Window {
	m.mu.Lock()
	wins := make([]xproto.Window, 0, len(m.bridges))
	for win := range m.bridges {
		wins = append(wins, win)
	}
	m.mu.Unlock()

	sort.Slice(wins, func(i, j int) bool { return wins[i] < wins[j] })
	return wins
}

// CloseWindow force-closes a bridge, as if its window had been
// destroyed. Used by the reconciler when a window has vanished
// without a destroy notification reaching us.
func (m *Manager) CloseWindow(win xproto.Window) {
	m.WindowDestroyed(win)
}

// Snapshot reports the current bridge table for diagnostics.
func (m *Manager) Snapshot() []WindowInfo {
	var infos []WindowInfo
	for _, win := range m.Windows() {
		b := m.bridge(win)
		if b == nil {
			continue
		}
		props := b.Properties()
		infos = append(infos, WindowInfo{
			Window:               win,
			Title:                props.Title,
			ApplicationID:        props.ApplicationID,
			SupportsCloseRequest: props.SupportsCloseRequest,
			State:                b.State(),
			HasSceneSurface:      b.HasSceneSurface(),
		})
	}
	return infos
}

// CloseAll tears down every bridge, e.g. at daemon shutdown.
func (m *Manager) CloseAll() {
	for _, win := range m.Windows() {
		m.WindowDestroyed(win)
	}
}
