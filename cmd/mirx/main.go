// Command mirx is the X11 window-manager bridge daemon: it adopts X11
// top-level windows and keeps their ICCCM/EWMH state in sync with the
// compositor's scene-surface model.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Happy-Ferret/mir/internal/config"
	"github.com/Happy-Ferret/mir/internal/daemon"
	"github.com/Happy-Ferret/mir/internal/dispatch"
	"github.com/Happy-Ferret/mir/internal/ipc"
	"github.com/Happy-Ferret/mir/internal/runtimepath"
	"github.com/Happy-Ferret/mir/internal/shell"
	"github.com/Happy-Ferret/mir/internal/x11"
	"github.com/Happy-Ferret/mir/internal/xwm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mirx <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run      Start the bridge daemon")
	fmt.Fprintln(w, "  status   Show daemon status")
	fmt.Fprintln(w, "  windows  List bridged windows")
	fmt.Fprintln(w, "  mcp      MCP diagnostics server")
	fmt.Fprintln(w, "  config   Show the effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'mirx <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path (default ~/.config/mirx/config.yaml)")
	display := fs.String("display", "", "X display to manage (overrides config and $DISPLAY)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *display != "" {
		cfg.Display = *display
	}

	logger, cleanup, err := setupLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer cleanup()

	conn, err := x11.NewConnection(cfg.Display, logger)
	if err != nil {
		logger.Error("failed to connect to X server", "error", err)
		return 1
	}
	defer conn.Close()

	if err := conn.SelectWMEvents(); err != nil {
		logger.Error("failed to become window manager", "error", err)
		return 1
	}

	exec := dispatch.New()
	defer exec.Stop()

	sh := shell.NewHeadless(logger)
	mgr := xwm.NewManager(conn, sh, exec, logger)
	defer mgr.CloseAll()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IPC.Enabled {
		socketPath, err := runtimepath.SocketPath()
		if err != nil {
			logger.Error("failed to resolve IPC socket path", "error", err)
			return 1
		}
		server := ipc.NewServer(socketPath, managerReporter{mgr}, cfg.Display, logger)
		if err := server.Start(); err != nil {
			logger.Error("failed to start IPC server", "error", err)
			return 1
		}
		defer server.Stop()
	}

	if cfg.Reconciler.Enabled {
		rec := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: cfg.ReconcileInterval(),
			Logger:   logger,
		}, mgr, conn.WindowExists)
		go rec.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig)
		cancel()
		// Closing the connection unblocks the event loop.
		conn.Close()
	}()

	logger.Info("mirx running", "display", cfg.Display)
	conn.Run(mgr)
	return 0
}

// managerReporter adapts the window manager's snapshot to the IPC
// wire type.
type managerReporter struct {
	mgr *xwm.Manager
}

func (r managerReporter) Snapshot() []ipc.WindowData {
	infos := r.mgr.Snapshot()
	windows := make([]ipc.WindowData, 0, len(infos))
	for _, info := range infos {
		windows = append(windows, ipc.WindowData{
			ID:                   uint32(info.Window),
			Title:                info.Title,
			ApplicationID:        info.ApplicationID,
			State:                info.State.String(),
			HasSceneSurface:      info.HasSceneSurface,
			SupportsCloseRequest: info.SupportsCloseRequest,
		})
	}
	return windows
}

func runStatus(args []string) int {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stdout, "Usage: mirx status")
		return 0
	}

	status, err := ipc.NewClient().Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Daemon:   running\n")
	fmt.Printf("Display:  %s\n", displayOrDefault(status.Display))
	fmt.Printf("Windows:  %d\n", status.WindowCount)
	fmt.Printf("Uptime:   %ds\n", status.UptimeSeconds)
	return 0
}

func runWindows(args []string) int {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stdout, "Usage: mirx windows")
		return 0
	}

	windows, err := ipc.NewClient().Windows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if len(windows) == 0 {
		fmt.Println("No bridged windows.")
		return 0
	}
	for _, w := range windows {
		surface := "no surface"
		if w.HasSceneSurface {
			surface = "surface"
		}
		fmt.Printf("0x%08x  %-12s %-10s %q (%s)\n", w.ID, w.State, surface, w.Title, w.ApplicationID)
	}
	return 0
}

func runConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path (default ~/.config/mirx/config.yaml)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(out)
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func setupLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	out := io.Writer(os.Stderr)
	cleanup := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		cleanup = func() { f.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default: // "auto": text on a terminal, JSON when redirected
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			handler = slog.NewTextHandler(out, opts)
		} else {
			handler = slog.NewJSONHandler(out, opts)
		}
	}
	return slog.New(handler), cleanup, nil
}

func displayOrDefault(display string) string {
	if display != "" {
		return display
	}
	if env := os.Getenv("DISPLAY"); env != "" {
		return env
	}
	return "(default)"
}

func wantsHelp(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}
