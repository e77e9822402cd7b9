package xwm

import (
	"reflect"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/Happy-Ferret/mir/internal/scene"
	"github.com/Happy-Ferret/mir/internal/x11"
)

// testAtoms returns a distinct fake atom table. The values are
// arbitrary; only identity matters to the state logic.
func testAtoms() x11.Atoms {
	return x11.Atoms{
		WMState:                 101,
		WMChangeState:           102,
		WMProtocols:             103,
		WMDeleteWindow:          104,
		NetWMName:               105,
		NetWMState:              106,
		NetWMStateHidden:        107,
		NetWMStateMaximizedHorz: 108,
		NetWMStateMaximizedVert: 109,
		NetWMStateFullscreen:    110,
		NetWMMoveresize:         111,
		NetWMDesktop:            112,
		UTF8String:              113,
	}
}

func TestWindowStateString(t *testing.T) {
	tests := []struct {
		state WindowState
		want  string
	}{
		{WindowState{}, "restored"},
		{WindowState{Withdrawn: true}, "withdrawn"},
		{WindowState{Withdrawn: true, Maximized: true}, "withdrawn"},
		{WindowState{Minimized: true}, "minimized"},
		{WindowState{Maximized: true}, "maximized"},
		{WindowState{Fullscreen: true}, "fullscreen"},
		{WindowState{Minimized: true, Maximized: true, Fullscreen: true}, "minimized+maximized+fullscreen"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestApplyStateMessage(t *testing.T) {
	atoms := testAtoms()

	tests := []struct {
		name    string
		start   WindowState
		action  StateAction
		targets [2]xproto.Atom
		want    WindowState
	}{
		{
			name:    "add hidden minimizes",
			action:  StateAdd,
			targets: [2]xproto.Atom{atoms.NetWMStateHidden, 0},
			want:    WindowState{Minimized: true},
		},
		{
			name:    "add maximized horz maximizes",
			action:  StateAdd,
			targets: [2]xproto.Atom{atoms.NetWMStateMaximizedHorz, 0},
			want:    WindowState{Maximized: true},
		},
		{
			name:    "vert alone is ignored",
			action:  StateAdd,
			targets: [2]xproto.Atom{atoms.NetWMStateMaximizedVert, 0},
			want:    WindowState{},
		},
		{
			name:    "both maximize atoms fold to one flag",
			action:  StateAdd,
			targets: [2]xproto.Atom{atoms.NetWMStateMaximizedHorz, atoms.NetWMStateMaximizedVert},
			want:    WindowState{Maximized: true},
		},
		{
			name:    "add fullscreen",
			action:  StateAdd,
			targets: [2]xproto.Atom{atoms.NetWMStateFullscreen, 0},
			want:    WindowState{Fullscreen: true},
		},
		{
			name:    "remove fullscreen",
			start:   WindowState{Fullscreen: true},
			action:  StateRemove,
			targets: [2]xproto.Atom{atoms.NetWMStateFullscreen, 0},
			want:    WindowState{},
		},
		{
			name:    "toggle flips",
			start:   WindowState{Minimized: true},
			action:  StateToggle,
			targets: [2]xproto.Atom{atoms.NetWMStateHidden, atoms.NetWMStateFullscreen},
			want:    WindowState{Fullscreen: true},
		},
		{
			name:    "unknown atom is ignored",
			action:  StateAdd,
			targets: [2]xproto.Atom{999, 0},
			want:    WindowState{},
		},
		{
			name:    "unknown atom next to a known one",
			action:  StateAdd,
			targets: [2]xproto.Atom{999, atoms.NetWMStateFullscreen},
			want:    WindowState{Fullscreen: true},
		},
		{
			name:    "withdrawn flag is untouched",
			start:   WindowState{Withdrawn: true},
			action:  StateAdd,
			targets: [2]xproto.Atom{atoms.NetWMStateFullscreen, 0},
			want:    WindowState{Withdrawn: true, Fullscreen: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.applyStateMessage(tt.action, tt.targets, atoms)
			if got != tt.want {
				t.Errorf("applyStateMessage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyChangeState(t *testing.T) {
	tests := []struct {
		name      string
		start     WindowState
		requested IcccmState
		want      WindowState
	}{
		{"iconic minimizes", WindowState{}, IcccmIconic, WindowState{Minimized: true}},
		{"normal restores", WindowState{Minimized: true}, IcccmNormal, WindowState{}},
		{"normal keeps maximized", WindowState{Minimized: true, Maximized: true}, IcccmNormal, WindowState{Maximized: true}},
		{"withdrawn request is ignored", WindowState{Maximized: true}, IcccmWithdrawn, WindowState{Maximized: true}},
		{"garbage is ignored", WindowState{Fullscreen: true}, IcccmState(7), WindowState{Fullscreen: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.applyChangeState(tt.requested); got != tt.want {
				t.Errorf("applyChangeState(%v) = %+v, want %+v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestWithSurfaceState(t *testing.T) {
	tests := []struct {
		name  string
		start WindowState
		attr  scene.SurfaceState
		want  WindowState
	}{
		{"minimized sets minimized", WindowState{}, scene.StateMinimized, WindowState{Minimized: true}},
		{"hidden sets minimized", WindowState{}, scene.StateHidden, WindowState{Minimized: true}},
		{"minimized keeps maximized", WindowState{Maximized: true}, scene.StateMinimized, WindowState{Minimized: true, Maximized: true}},
		{"fullscreen unminimizes", WindowState{Minimized: true}, scene.StateFullscreen, WindowState{Fullscreen: true}},
		{"fullscreen keeps maximized", WindowState{Maximized: true}, scene.StateFullscreen, WindowState{Maximized: true, Fullscreen: true}},
		{"maximized clears fullscreen", WindowState{Fullscreen: true}, scene.StateMaximized, WindowState{Maximized: true}},
		{"vert maximized folds to maximized", WindowState{}, scene.StateVertMaximized, WindowState{Maximized: true}},
		{"horiz maximized folds to maximized", WindowState{}, scene.StateHorizMaximized, WindowState{Maximized: true}},
		{"restored clears everything", WindowState{Minimized: true, Maximized: true, Fullscreen: true}, scene.StateRestored, WindowState{}},
		{"withdrawn is owned by the x11 side", WindowState{Withdrawn: true}, scene.StateRestored, WindowState{Withdrawn: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.withSurfaceState(tt.attr); got != tt.want {
				t.Errorf("withSurfaceState(%v) = %+v, want %+v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestSurfaceStatePriority(t *testing.T) {
	tests := []struct {
		state WindowState
		want  scene.SurfaceState
	}{
		{WindowState{}, scene.StateRestored},
		{WindowState{Withdrawn: true, Minimized: true, Maximized: true, Fullscreen: true}, scene.StateHidden},
		{WindowState{Minimized: true, Fullscreen: true, Maximized: true}, scene.StateMinimized},
		{WindowState{Fullscreen: true, Maximized: true}, scene.StateFullscreen},
		{WindowState{Maximized: true}, scene.StateMaximized},
	}
	for _, tt := range tests {
		if got := tt.state.surfaceState(); got != tt.want {
			t.Errorf("%+v.surfaceState() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestWireState(t *testing.T) {
	atoms := testAtoms()

	tests := []struct {
		name      string
		state     WindowState
		wantState IcccmState
		wantAtoms []xproto.Atom
	}{
		{
			name:      "restored",
			state:     WindowState{},
			wantState: IcccmNormal,
			wantAtoms: nil,
		},
		{
			name:      "withdrawn advertises nothing",
			state:     WindowState{Withdrawn: true, Minimized: true, Maximized: true, Fullscreen: true},
			wantState: IcccmWithdrawn,
			wantAtoms: nil,
		},
		{
			name:      "minimized",
			state:     WindowState{Minimized: true},
			wantState: IcccmIconic,
			wantAtoms: []xproto.Atom{atoms.NetWMStateHidden},
		},
		{
			name:      "maximized emits horz then vert",
			state:     WindowState{Maximized: true},
			wantState: IcccmNormal,
			wantAtoms: []xproto.Atom{atoms.NetWMStateMaximizedHorz, atoms.NetWMStateMaximizedVert},
		},
		{
			name:      "everything in fixed order",
			state:     WindowState{Minimized: true, Maximized: true, Fullscreen: true},
			wantState: IcccmIconic,
			wantAtoms: []xproto.Atom{
				atoms.NetWMStateHidden,
				atoms.NetWMStateMaximizedHorz,
				atoms.NetWMStateMaximizedVert,
				atoms.NetWMStateFullscreen,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotAtoms := tt.state.wireState(atoms)
			if gotState != tt.wantState {
				t.Errorf("wireState() state = %v, want %v", gotState, tt.wantState)
			}
			if !reflect.DeepEqual(gotAtoms, tt.wantAtoms) {
				t.Errorf("wireState() atoms = %v, want %v", gotAtoms, tt.wantAtoms)
			}
		})
	}
}

func TestIcccmStateString(t *testing.T) {
	tests := []struct {
		state IcccmState
		want  string
	}{
		{IcccmWithdrawn, "withdrawn"},
		{IcccmNormal, "normal"},
		{IcccmIconic, "iconic"},
		{IcccmState(2), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("IcccmState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
