package xwm

import (
	"fmt"
	"log/slog"
)

// fatalf reports a lifetime invariant violation: a double surface
// attach, an observer that outlived its last legitimate holder, a
// windowing surface with no session. Continuing would touch protocol
// objects whose ownership is already wrong, so it logs and panics.
// Tests swap it out to assert on the violation instead of dying.
var fatalf = func(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Error(msg)
	panic(msg)
}
