// Package ipc is the JSON-over-unix-socket status channel between the
// bridge daemon and the CLI.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types.
type CommandType string

const (
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandGetWindows CommandType = "GET_WINDOWS"
)

// Request represents an IPC request from client to server.
type Request struct {
	Command CommandType `json:"command"`
}

// Response represents an IPC response from server to client.
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is the payload of GET_STATUS.
type StatusData struct {
	DaemonRunning bool   `json:"daemon_running"`
	Display       string `json:"display"`
	WindowCount   int    `json:"window_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// WindowData describes one bridged window.
type WindowData struct {
	ID                   uint32 `json:"id"`
	Title                string `json:"title"`
	ApplicationID        string `json:"application_id"`
	State                string `json:"state"`
	HasSceneSurface      bool   `json:"has_scene_surface"`
	SupportsCloseRequest bool   `json:"supports_close_request"`
}

// WindowsData is the payload of GET_WINDOWS.
type WindowsData struct {
	Windows []WindowData `json:"windows"`
}

// NewOKResponse creates a successful response with optional data.
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message.
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
