package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "auto" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "auto")
	}
	if !cfg.Reconciler.Enabled {
		t.Error("Reconciler.Enabled = false, want true")
	}
	if cfg.Reconciler.IntervalSeconds != 10 {
		t.Errorf("Reconciler.IntervalSeconds = %d, want 10", cfg.Reconciler.IntervalSeconds)
	}
	if !cfg.IPC.Enabled {
		t.Error("IPC.Enabled = false, want true")
	}
	if cfg.Display != "" {
		t.Errorf("Display = %q, want empty", cfg.Display)
	}
}

func TestLoadFileMissingYieldsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadFile(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
display: ":2"
logging:
  level: debug
reconciler:
  enabled: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Display != ":2" {
		t.Errorf("Display = %q, want %q", cfg.Display, ":2")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Reconciler.Enabled {
		t.Error("Reconciler.Enabled = true, want false")
	}
	// Untouched sections keep their defaults.
	if cfg.Logging.Format != "auto" {
		t.Errorf("Logging.Format = %q, want default %q", cfg.Logging.Format, "auto")
	}
	if !cfg.IPC.Enabled {
		t.Error("IPC.Enabled = false, want default true")
	}
}

func TestLoadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile(garbage) error = nil, want parse error")
	}
}

func TestReconcileInterval(t *testing.T) {
	cfg := Default()
	if got := cfg.ReconcileInterval(); got != 10*time.Second {
		t.Errorf("ReconcileInterval() = %v, want 10s", got)
	}
	cfg.Reconciler.IntervalSeconds = 30
	if got := cfg.ReconcileInterval(); got != 30*time.Second {
		t.Errorf("ReconcileInterval() = %v, want 30s", got)
	}
	cfg.Reconciler.IntervalSeconds = 0
	if got := cfg.ReconcileInterval(); got != 10*time.Second {
		t.Errorf("ReconcileInterval() with zero = %v, want fallback 10s", got)
	}
}
