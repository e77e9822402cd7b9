// Package daemon runs the bridge's periodic drift correction.
package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// BridgeTable is the slice of the window manager the reconciler
// drives. Implemented by *xwm.Manager.
type BridgeTable interface {
	Windows() []xproto.Window
	CloseWindow(win xproto.Window)
}

// WindowChecker reports whether a window still exists on the X
// server.
type WindowChecker func(win xproto.Window) bool

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically closes bridges whose X11 window has
// vanished without a destroy notification reaching us, such as a
// crashed client or events lost while the daemon was wedged.
type Reconciler struct {
	interval time.Duration
	bridges  BridgeTable
	exists   WindowChecker
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, bridges BridgeTable, exists WindowChecker) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Reconciler{
		interval: interval,
		bridges:  bridges,
		exists:   exists,
		logger:   cfg.Logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	for _, win := range r.bridges.Windows() {
		if r.exists(win) {
			continue
		}
		r.logger.Info("reconciler: orphaned bridge detected", "window", win)
		r.bridges.CloseWindow(win)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
