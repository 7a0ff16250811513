package xdgshell

import (
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/internal/slist"
)

// signal is a safely-iterable list of listeners for one compositor-
// facing event. Listeners may unsubscribe, or destroy the object the
// signal hangs off, from inside their own callback — slist.Emit
// tolerates both.
type signal[T any] struct {
	l slist.List[func(T)]
}

// On registers fn as a listener, returning a handle usable with Off.
func (s *signal[T]) On(fn func(T)) *slist.Entry[func(T)] {
	return s.l.Add(fn)
}

// Off unregisters a listener previously returned by On.
func (s *signal[T]) Off(e *slist.Entry[func(T)]) {
	s.l.Remove(e)
}

func (s *signal[T]) emit(v T) {
	slist.Emit(&s.l, func(fn func(T)) { fn(v) })
}

// NewSurfaceEvent is emitted by Shell the first time a role-bearing
// surface completes its first configure/ack/commit round trip.
type NewSurfaceEvent struct{ Surface *Surface }

// DestroyEvent is emitted by a Surface during its own destruction,
// after role-specific teardown has already run and before the surface
// is unlinked from its client.
type DestroyEvent struct{ Surface *Surface }

// PingTimeoutEvent is emitted on every surface owned by a client
// whose ping timer expired without a matching pong.
type PingTimeoutEvent struct{ Surface *Surface }

// NewPopupEvent is emitted on a parent surface (toplevel or popup)
// when a popup is created against it.
type NewPopupEvent struct {
	Parent *Surface
	Popup  *Surface
}

// RequestMoveEvent carries a validated xdg_toplevel.move request.
type RequestMoveEvent struct {
	Surface *Surface
	Seat    collab.Seat
	Serial  uint32
}

// RequestResizeEvent carries a validated xdg_toplevel.resize request.
type RequestResizeEvent struct {
	Surface *Surface
	Seat    collab.Seat
	Serial  uint32
	Edges   uint32
}

// RequestShowWindowMenuEvent carries a validated
// xdg_toplevel.show_window_menu request.
type RequestShowWindowMenuEvent struct {
	Surface *Surface
	Seat    collab.Seat
	Serial  uint32
	X, Y    int32
}

// RequestMaximizeEvent carries an xdg_toplevel.set_maximized or
// unset_maximized request.
type RequestMaximizeEvent struct {
	Surface   *Surface
	Maximized bool
}

// RequestFullscreenEvent carries an xdg_toplevel.set_fullscreen or
// unset_fullscreen request.
type RequestFullscreenEvent struct {
	Surface    *Surface
	Fullscreen bool
	Output     collab.Output
}

// RequestMinimizeEvent carries an xdg_toplevel.set_minimized request.
// wlroots' xdg_toplevel_request_minimize event has no further
// payload, so this carries only the surface.
type RequestMinimizeEvent struct{ Surface *Surface }
