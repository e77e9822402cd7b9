// Package mcp exposes the bridge daemon's window table to MCP
// clients as read-only diagnostic tools. The server talks to the
// running daemon over its IPC socket.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Happy-Ferret/mir/internal/ipc"
)

const (
	ServerName    = "mirx"
	ServerVersion = "0.1.0"
)

// DaemonClient is the slice of the IPC client the tools consume.
type DaemonClient interface {
	Status() (*ipc.StatusData, error)
	Windows() ([]ipc.WindowData, error)
}

// Server is the MCP diagnostics server.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    DaemonClient
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by the daemon's IPC
// socket.
func NewServer(daemon DaemonClient, logger *slog.Logger) *Server {
	s := &Server{
		daemon: daemon,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "daemon_status",
		Description: "Report whether the bridge daemon is running, which X display it manages, and how many windows it bridges.",
	}, s.handleDaemonStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the X11 windows currently bridged into the compositor, with their window-manager state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window",
		Description: "Look up one bridged window by X11 window id.",
	}, s.handleGetWindow)
}

func (s *Server) handleDaemonStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ DaemonStatusInput) (*mcpsdk.CallToolResult, DaemonStatusOutput, error) {
	status, err := s.daemon.Status()
	if err != nil {
		return nil, DaemonStatusOutput{}, err
	}
	return nil, DaemonStatusOutput{
		Running:       status.DaemonRunning,
		Display:       status.Display,
		WindowCount:   status.WindowCount,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.daemon.Windows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(windows))}
	for _, w := range windows {
		out.Windows = append(out.Windows, summarize(w))
	}
	return nil, out, nil
}

func (s *Server) handleGetWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args GetWindowInput) (*mcpsdk.CallToolResult, WindowSummary, error) {
	windows, err := s.daemon.Windows()
	if err != nil {
		return nil, WindowSummary{}, err
	}
	for _, w := range windows {
		if w.ID == args.ID {
			return nil, summarize(w), nil
		}
	}
	return nil, WindowSummary{}, fmt.Errorf("no bridged window with id %#x", args.ID)
}

func summarize(w ipc.WindowData) WindowSummary {
	return WindowSummary{
		ID:                   w.ID,
		Title:                w.Title,
		ApplicationID:        w.ApplicationID,
		State:                w.State,
		HasSceneSurface:      w.HasSceneSurface,
		SupportsCloseRequest: w.SupportsCloseRequest,
	}
}
