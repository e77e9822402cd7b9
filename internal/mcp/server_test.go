package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Happy-Ferret/mir/internal/ipc"
)

type fakeDaemon struct {
	status  *ipc.StatusData
	windows []ipc.WindowData
	err     error
}

func (f *fakeDaemon) Status() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

func (f *fakeDaemon) Windows() ([]ipc.WindowData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows, nil
}

func newTestServer(daemon DaemonClient) *Server {
	return NewServer(daemon, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDaemonStatusTool(t *testing.T) {
	s := newTestServer(&fakeDaemon{status: &ipc.StatusData{
		DaemonRunning: true,
		Display:       ":0",
		WindowCount:   3,
		UptimeSeconds: 60,
	}})

	_, out, err := s.handleDaemonStatus(context.Background(), nil, DaemonStatusInput{})
	if err != nil {
		t.Fatalf("handleDaemonStatus() error = %v", err)
	}
	if !out.Running || out.Display != ":0" || out.WindowCount != 3 || out.UptimeSeconds != 60 {
		t.Errorf("output = %+v", out)
	}
}

func TestDaemonStatusToolPropagatesError(t *testing.T) {
	s := newTestServer(&fakeDaemon{err: errors.New("daemon not running")})

	if _, _, err := s.handleDaemonStatus(context.Background(), nil, DaemonStatusInput{}); err == nil {
		t.Error("handleDaemonStatus() error = nil, want daemon error")
	}
}

func TestListWindowsTool(t *testing.T) {
	s := newTestServer(&fakeDaemon{windows: []ipc.WindowData{
		{ID: 0x42, Title: "Editor", State: "restored", HasSceneSurface: true},
		{ID: 0x43, State: "withdrawn"},
	}})

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("handleListWindows() error = %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("len(Windows) = %d, want 2", len(out.Windows))
	}
	if out.Windows[0].ID != 0x42 || out.Windows[0].Title != "Editor" {
		t.Errorf("Windows[0] = %+v", out.Windows[0])
	}
}

func TestGetWindowTool(t *testing.T) {
	s := newTestServer(&fakeDaemon{windows: []ipc.WindowData{
		{ID: 0x42, Title: "Editor"},
	}})

	_, out, err := s.handleGetWindow(context.Background(), nil, GetWindowInput{ID: 0x42})
	if err != nil {
		t.Fatalf("handleGetWindow() error = %v", err)
	}
	if out.ID != 0x42 || out.Title != "Editor" {
		t.Errorf("output = %+v", out)
	}

	if _, _, err := s.handleGetWindow(context.Background(), nil, GetWindowInput{ID: 0x99}); err == nil {
		t.Error("handleGetWindow(unknown) error = nil, want not-found error")
	}
}
