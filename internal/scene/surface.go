package scene

import (
	"sync"

	"github.com/Happy-Ferret/mir/internal/geometry"
)

// BasicSurface is a minimal Surface implementation with a working
// observer registry. The headless shell hands these out; rendering
// backends provide richer ones.
type BasicSurface struct {
	session Session

	mu        sync.Mutex
	observers []SurfaceObserver
}

var _ Surface = (*BasicSurface)(nil)

func NewBasicSurface(session Session) *BasicSurface {
	return &BasicSurface{session: session}
}

func (s *BasicSurface) Session() Session {
	return s.session
}

func (s *BasicSurface) AddObserver(o SurfaceObserver) {
	if ref, ok := o.(Referenced); ok {
		ref.Retain()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *BasicSurface) RemoveObserver(o SurfaceObserver) {
	s.mu.Lock()
	removed := false
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		if ref, ok := o.(Referenced); ok {
			ref.Release()
		}
	}
}

func (s *BasicSurface) snapshot() []SurfaceObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SurfaceObserver(nil), s.observers...)
}

// NotifyStateChanged fans a state-attribute change out to observers.
func (s *BasicSurface) NotifyStateChanged(state SurfaceState) {
	for _, o := range s.snapshot() {
		o.StateChanged(state)
	}
}

// NotifyResized fans new extents out to observers.
func (s *BasicSurface) NotifyResized(size geometry.Size) {
	for _, o := range s.snapshot() {
		o.ContentResized(size)
	}
}

// NotifyCloseRequested fans a close request out to observers.
func (s *BasicSurface) NotifyCloseRequested() {
	for _, o := range s.snapshot() {
		o.CloseRequested()
	}
}

// NotifyInput reports an input-event timestamp to observers.
func (s *BasicSurface) NotifyInput(timestampNS uint64) {
	for _, o := range s.snapshot() {
		o.InputEvent(timestampNS)
	}
}
