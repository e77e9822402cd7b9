// Package dispatch implements the compositor's serialized execution
// domain: a single goroutine that drains a queue of work functions.
// All mutation of compositor-visible protocol objects happens on it,
// and Post is the only sanctioned way for the X11 side to touch them.
package dispatch

import "sync"

// Loop is a serialized executor. Work posted to it runs on one
// goroutine in submission order.
type Loop struct {
	add  chan func()
	done chan struct{}
	stop sync.Once
}

func New() *Loop {
	l := &Loop{
		add:  make(chan func()),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	var pending []func()
	for {
		if len(pending) == 0 {
			select {
			case fn := <-l.add:
				pending = append(pending, fn)
			case <-l.done:
				return
			}
		}
		select {
		case fn := <-l.add:
			pending = append(pending, fn)
		case <-l.done:
			return
		default:
			fn := pending[0]
			pending = pending[1:]
			fn()
		}
	}
}

// Post schedules fn to run on the loop. It never blocks on the work
// itself; after Stop it is a no-op.
func (l *Loop) Post(fn func()) {
	select {
	case l.add <- fn:
	case <-l.done:
	}
}

// PostWait schedules fn and blocks until it has run, or until the
// loop stops. Must not be called from the loop itself.
func (l *Loop) PostWait(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Stop shuts the loop down. Pending work that has not started is
// dropped. Safe to call more than once.
func (l *Loop) Stop() {
	l.stop.Do(func() {
		close(l.done)
	})
}
