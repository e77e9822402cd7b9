package mcp

type DaemonStatusInput struct{}

type DaemonStatusOutput struct {
	Running       bool   `json:"running"`
	Display       string `json:"display,omitempty"`
	WindowCount   int    `json:"window_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type ListWindowsInput struct{}

type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

type GetWindowInput struct {
	ID uint32 `json:"id" jsonschema:"required,The X11 window id (as reported by list_windows)"`
}

type WindowSummary struct {
	ID                   uint32 `json:"id"`
	Title                string `json:"title,omitempty"`
	ApplicationID        string `json:"application_id,omitempty"`
	State                string `json:"state"`
	HasSceneSurface      bool   `json:"has_scene_surface"`
	SupportsCloseRequest bool   `json:"supports_close_request"`
}
