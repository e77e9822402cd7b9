package daemon

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

type fakeBridgeTable struct {
	mu      sync.Mutex
	windows []xproto.Window
	closed  []xproto.Window
}

func (f *fakeBridgeTable) Windows() []xproto.Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]xproto.Window(nil), f.windows...)
}

func (f *fakeBridgeTable) CloseWindow(win xproto.Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, win)
	for i, w := range f.windows {
		if w == win {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			break
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconcileClosesOrphanedBridges(t *testing.T) {
	table := &fakeBridgeTable{windows: []xproto.Window{0x1, 0x2, 0x3}}
	alive := map[xproto.Window]bool{0x1: true, 0x3: true}

	r := NewReconciler(ReconcilerConfig{Logger: discardLogger()}, table, func(win xproto.Window) bool {
		return alive[win]
	})
	r.ReconcileNow()

	if len(table.closed) != 1 || table.closed[0] != 0x2 {
		t.Errorf("closed = %v, want [0x2]", table.closed)
	}
	if len(table.Windows()) != 2 {
		t.Errorf("windows = %v, want the two live ones", table.Windows())
	}
}

func TestReconcileKeepsLiveBridges(t *testing.T) {
	table := &fakeBridgeTable{windows: []xproto.Window{0x1, 0x2}}

	r := NewReconciler(ReconcilerConfig{Logger: discardLogger()}, table, func(xproto.Window) bool {
		return true
	})
	r.ReconcileNow()

	if len(table.closed) != 0 {
		t.Errorf("closed = %v, want none", table.closed)
	}
}

func TestReconcileRecoversFromPanic(t *testing.T) {
	table := &fakeBridgeTable{windows: []xproto.Window{0x1}}

	r := NewReconciler(ReconcilerConfig{Logger: discardLogger()}, table, func(xproto.Window) bool {
		panic("X connection gone")
	})

	// Must not propagate.
	r.ReconcileNow()
}

func TestDefaultInterval(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{Logger: discardLogger()}, &fakeBridgeTable{}, nil)
	if r.interval != 10*time.Second {
		t.Errorf("interval = %v, want 10s", r.interval)
	}

	r = NewReconciler(ReconcilerConfig{Interval: time.Minute, Logger: discardLogger()}, &fakeBridgeTable{}, nil)
	if r.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", r.interval)
	}
}
