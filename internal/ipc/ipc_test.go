package ipc

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

type staticReporter struct {
	windows []WindowData
}

func (r staticReporter) Snapshot() []WindowData { return r.windows }

func startTestServer(t *testing.T, reporter WindowReporter) *Client {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "mirx.sock")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := NewServer(socketPath, reporter, ":0", logger)
	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(server.Stop)

	return NewClientForSocket(socketPath)
}

func TestStatusRoundTrip(t *testing.T) {
	reporter := staticReporter{windows: []WindowData{{ID: 1}, {ID: 2}}}
	client := startTestServer(t, reporter)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.DaemonRunning {
		t.Error("DaemonRunning = false, want true")
	}
	if status.Display != ":0" {
		t.Errorf("Display = %q, want %q", status.Display, ":0")
	}
	if status.WindowCount != 2 {
		t.Errorf("WindowCount = %d, want 2", status.WindowCount)
	}
}

func TestWindowsRoundTrip(t *testing.T) {
	reporter := staticReporter{windows: []WindowData{
		{
			ID:                   0x42,
			Title:                "Editor",
			ApplicationID:        "editor",
			State:                "maximized",
			HasSceneSurface:      true,
			SupportsCloseRequest: true,
		},
	}}
	client := startTestServer(t, reporter)

	windows, err := client.Windows()
	if err != nil {
		t.Fatalf("Windows() error = %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("len(windows) = %d, want 1", len(windows))
	}
	got := windows[0]
	if got != reporter.windows[0] {
		t.Errorf("window = %+v, want %+v", got, reporter.windows[0])
	}
}

func TestWindowsEmptyTable(t *testing.T) {
	client := startTestServer(t, staticReporter{})

	windows, err := client.Windows()
	if err != nil {
		t.Fatalf("Windows() error = %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("len(windows) = %d, want 0", len(windows))
	}
}

func TestUnknownCommandIsAnError(t *testing.T) {
	client := startTestServer(t, staticReporter{})

	if _, err := client.sendRequest(&Request{Command: "BOGUS"}); err == nil {
		t.Error("sendRequest(BOGUS) error = nil, want daemon error")
	}
}

func TestClientErrorsWithoutDaemon(t *testing.T) {
	client := NewClientForSocket(filepath.Join(t.TempDir(), "absent.sock"))
	if _, err := client.Status(); err == nil {
		t.Error("Status() without a daemon should fail")
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"GET_STATUS"}` + "\n"))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Command != CommandGetStatus {
		t.Errorf("Command = %q, want %q", req.Command, CommandGetStatus)
	}

	if _, err := ParseRequest([]byte("{")); err == nil {
		t.Error("ParseRequest(invalid) error = nil, want parse error")
	}
}
