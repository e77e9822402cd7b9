package shell

import (
	"log/slog"
	"sync"

	"github.com/Happy-Ferret/mir/internal/scene"
)

// Headless is a Shell without a rendering backend: surfaces are real
// (observer registry and all) but placement requests are only logged.
// It lets the bridge daemon run against live X11 clients before a
// compositor backend is wired in, and doubles as the shell for
// end-to-end tests.
type Headless struct {
	logger *slog.Logger

	mu       sync.Mutex
	surfaces map[*scene.BasicSurface]scene.SurfaceState
}

var _ Shell = (*Headless)(nil)

func NewHeadless(logger *slog.Logger) *Headless {
	return &Headless{
		logger:   logger,
		surfaces: make(map[*scene.BasicSurface]scene.SurfaceState),
	}
}

func (h *Headless) CreateSurface(session scene.Session, params scene.SurfaceCreationParameters, observer scene.SurfaceObserver) (scene.Surface, error) {
	surface := scene.NewBasicSurface(session)
	surface.AddObserver(observer)

	h.mu.Lock()
	h.surfaces[surface] = scene.StateRestored
	h.mu.Unlock()

	h.logger.Info("shell: surface created",
		"name", params.Name,
		"application_id", params.ApplicationID,
		"size", params.Size,
		"server_side_decorated", params.ServerSideDecorated)
	return surface, nil
}

func (h *Headless) DestroySurface(session scene.Session, surface scene.Surface) {
	if basic, ok := surface.(*scene.BasicSurface); ok {
		h.mu.Lock()
		delete(h.surfaces, basic)
		h.mu.Unlock()
	}
	h.logger.Info("shell: surface destroyed")
}

func (h *Headless) ModifySurface(session scene.Session, surface scene.Surface, spec SurfaceSpecification) {
	if basic, ok := surface.(*scene.BasicSurface); ok {
		h.mu.Lock()
		h.surfaces[basic] = spec.State
		h.mu.Unlock()
	}
	h.logger.Info("shell: surface modified", "state", spec.State)
}

func (h *Headless) RequestMove(session scene.Session, surface scene.Surface, timestampNS uint64) {
	h.logger.Info("shell: move requested", "timestamp_ns", timestampNS)
}

func (h *Headless) RequestResize(session scene.Session, surface scene.Surface, timestampNS uint64, edge ResizeEdge) {
	h.logger.Info("shell: resize requested", "timestamp_ns", timestampNS, "edge", edge)
}

// SurfaceCount reports how many surfaces are alive, for diagnostics.
func (h *Headless) SurfaceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}
