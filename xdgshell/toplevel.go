package xdgshell

import (
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/wire"
)

// toplevelSnapshot is one atomic value of a toplevel's state triple:
// current (committed), next (acked, not yet committed), or pending
// (the compositor's in-flight intent).
type toplevelSnapshot struct {
	Activated  bool
	Fullscreen bool
	Maximized  bool
	Resizing   bool
	W, H       int32
	MinW, MinH int32
	MaxW, MaxH int32
	Parent     *Surface
}

// toplevelRole is the role substate embedded in a Surface once it
// has been assigned the toplevel role.
type toplevelRole struct {
	surface *Surface
	id      uint32

	current, next, pending toplevelSnapshot

	// added distinguishes the initial zero-dimension configure from
	// later ones; unrelated to Surface.added.
	added bool

	onRequestMaximize       signal[RequestMaximizeEvent]
	onRequestFullscreen     signal[RequestFullscreenEvent]
	onRequestMinimize       signal[RequestMinimizeEvent]
	onRequestMove           signal[RequestMoveEvent]
	onRequestResize         signal[RequestResizeEvent]
	onRequestShowWindowMenu signal[RequestShowWindowMenuEvent]
}

// Toplevel is a handle to a surface's toplevel role.
type Toplevel struct{ s *Surface }

// GetToplevel assigns the surface the toplevel role. id is the
// resource id the dispatcher allocated for get_toplevel. A surface
// whose role slot isn't None is a protocol error.
func (s *Surface) GetToplevel(id uint32) (*Toplevel, error) {
	if s.role != RoleNone {
		return nil, s.client.wmBaseError(wire.WMBaseErrorRole,
			"xdg_surface.get_toplevel: surface already has a role")
	}
	s.role = RoleToplevel
	s.toplevel = &toplevelRole{surface: s, id: id}
	return &Toplevel{s: s}, nil
}

// Surface returns the underlying xdg_surface.
func (t *Toplevel) Surface() *Surface { return t.s }

// Current returns the state triple's committed value.
func (t *Toplevel) Current() toplevelSnapshot { return t.s.toplevel.current }

func (t *Toplevel) role() *toplevelRole { return t.s.toplevel }

// --- client wire requests (§4.2) ---

// SetParent sets the toplevel's parent. Unlike the size/activation
// fields, parent is not carried by any configure event, so it is
// applied directly without scheduling a configure.
func (t *Toplevel) SetParent(parent *Toplevel) {
	var p *Surface
	if parent != nil {
		p = parent.s
	}
	t.role().pending.Parent = p
	t.role().next.Parent = p
	t.role().current.Parent = p
}

// SetTitle copies title defensively; Go's garbage-collected strings
// make the teacher stack's "allocation failure is silent" unreachable
// here, so this can never fail.
func (t *Toplevel) SetTitle(title string) { t.s.title = title }

// SetAppId copies appID defensively, same caveat as SetTitle.
func (t *Toplevel) SetAppId(appID string) { t.s.appID = appID }

func (t *Toplevel) requireConstructed(what string) bool {
	if !t.s.configured {
		t.s.surfaceError(wire.SurfaceErrorNotConstructed, what+" before the surface was first configured")
		return false
	}
	return true
}

// ShowWindowMenu validates serial against the seat's current input
// serial and, if valid, emits RequestShowWindowMenuEvent. An invalid
// serial is logged and dropped, not a protocol error.
func (t *Toplevel) ShowWindowMenu(seat collab.Seat, serial uint32, x, y int32) {
	if !t.requireConstructed("xdg_toplevel.show_window_menu") {
		return
	}
	if !seat.ValidateSerial(serial) {
		t.s.shell.log.WithField("surface", t.s.id).Warn("xdg_toplevel.show_window_menu: stale serial, dropping")
		return
	}
	t.role().onRequestShowWindowMenu.emit(RequestShowWindowMenuEvent{Surface: t.s, Seat: seat, Serial: serial, X: x, Y: y})
}

// Move validates serial and, if valid, emits RequestMoveEvent.
func (t *Toplevel) Move(seat collab.Seat, serial uint32) {
	if !t.requireConstructed("xdg_toplevel.move") {
		return
	}
	if !seat.ValidateSerial(serial) {
		t.s.shell.log.WithField("surface", t.s.id).Warn("xdg_toplevel.move: stale serial, dropping")
		return
	}
	t.role().onRequestMove.emit(RequestMoveEvent{Surface: t.s, Seat: seat, Serial: serial})
}

// Resize validates serial and, if valid, emits RequestResizeEvent.
func (t *Toplevel) Resize(seat collab.Seat, serial uint32, edges uint32) {
	if !t.requireConstructed("xdg_toplevel.resize") {
		return
	}
	if !seat.ValidateSerial(serial) {
		t.s.shell.log.WithField("surface", t.s.id).Warn("xdg_toplevel.resize: stale serial, dropping")
		return
	}
	t.role().onRequestResize.emit(RequestResizeEvent{Surface: t.s, Seat: seat, Serial: serial, Edges: edges})
}

// SetMinSize buffers the client's minimum size constraint into next,
// which the next buffered commit copies into current. An
// ack_configure handled before that commit replaces next with the
// acked snapshot, and this value with it.
func (t *Toplevel) SetMinSize(w, h int32) {
	t.role().next.MinW, t.role().next.MinH = w, h
}

// SetMaxSize buffers the client's maximum size constraint into next.
func (t *Toplevel) SetMaxSize(w, h int32) {
	t.role().next.MaxW, t.role().next.MaxH = w, h
}

// RequestMaximize handles xdg_toplevel.set_maximized: it records the
// client's desire into next and asks the compositor to act on it.
func (t *Toplevel) RequestMaximize() {
	t.role().next.Maximized = true
	t.role().onRequestMaximize.emit(RequestMaximizeEvent{Surface: t.s, Maximized: true})
}

// RequestUnmaximize handles xdg_toplevel.unset_maximized.
func (t *Toplevel) RequestUnmaximize() {
	t.role().next.Maximized = false
	t.role().onRequestMaximize.emit(RequestMaximizeEvent{Surface: t.s, Maximized: false})
}

// RequestFullscreen handles xdg_toplevel.set_fullscreen.
func (t *Toplevel) RequestFullscreen(output collab.Output) {
	t.role().next.Fullscreen = true
	t.role().onRequestFullscreen.emit(RequestFullscreenEvent{Surface: t.s, Fullscreen: true, Output: output})
}

// RequestUnfullscreen handles xdg_toplevel.unset_fullscreen.
func (t *Toplevel) RequestUnfullscreen() {
	t.role().next.Fullscreen = false
	t.role().onRequestFullscreen.emit(RequestFullscreenEvent{Surface: t.s, Fullscreen: false})
}

// RequestMinimize handles xdg_toplevel.set_minimized. Minimized state
// isn't part of the configure triple — wlroots' corresponding event
// has no further payload — so this only emits the signal.
func (t *Toplevel) RequestMinimize() {
	t.role().onRequestMinimize.emit(RequestMinimizeEvent{Surface: t.s})
}

// --- signal registration ---

func (t *Toplevel) OnRequestMaximize(fn func(RequestMaximizeEvent))     { t.role().onRequestMaximize.On(fn) }
func (t *Toplevel) OnRequestFullscreen(fn func(RequestFullscreenEvent)) { t.role().onRequestFullscreen.On(fn) }
func (t *Toplevel) OnRequestMinimize(fn func(RequestMinimizeEvent))     { t.role().onRequestMinimize.On(fn) }
func (t *Toplevel) OnRequestMove(fn func(RequestMoveEvent))             { t.role().onRequestMove.On(fn) }
func (t *Toplevel) OnRequestResize(fn func(RequestResizeEvent))         { t.role().onRequestResize.On(fn) }
func (t *Toplevel) OnRequestShowWindowMenu(fn func(RequestShowWindowMenuEvent)) {
	t.role().onRequestShowWindowMenu.On(fn)
}

// --- compositor mutator API (§4.5/§6), named after wlroots'
// wlr_xdg_toplevel_set_* convention ---

// SetSize sets pending.(w,h) and schedules a configure. Returns the
// reserved serial, or 0 if no configure was needed.
func (t *Toplevel) SetSize(w, h int32) uint32 {
	t.role().pending.W, t.role().pending.H = w, h
	return t.s.scheduleConfigure()
}

// SetActivated sets pending.activated and schedules a configure.
func (t *Toplevel) SetActivated(activated bool) uint32 {
	t.role().pending.Activated = activated
	return t.s.scheduleConfigure()
}

// SetMaximized sets pending.maximized and schedules a configure.
func (t *Toplevel) SetMaximized(maximized bool) uint32 {
	t.role().pending.Maximized = maximized
	return t.s.scheduleConfigure()
}

// SetFullscreen sets pending.fullscreen and schedules a configure.
func (t *Toplevel) SetFullscreen(fullscreen bool) uint32 {
	t.role().pending.Fullscreen = fullscreen
	return t.s.scheduleConfigure()
}

// SetResizing sets pending.resizing and schedules a configure.
func (t *Toplevel) SetResizing(resizing bool) uint32 {
	t.role().pending.Resizing = resizing
	return t.s.scheduleConfigure()
}

// SendClose dispatches xdg_toplevel.close, once per call. Safe to call
// after the surface has been destroyed, where it is a no-op.
func (t *Toplevel) SendClose() {
	if t.s.destroyed {
		return
	}
	t.s.shell.sink.ToplevelClose(t.role().id)
}

// --- internals used by surface.go ---

func (r *toplevelRole) ack(entry configureEntry) {
	r.next = entry.toplevel
	r.pending.W, r.pending.H = 0, 0
}

// pendingSame implements the §4.4 "pending_same" check for toplevels.
// Before the surface's first ack_configure, there is no meaningful
// baseline to compare against — current and pending are both still
// zero-valued, which would otherwise compare equal and wrongly
// suppress the mandatory initial configure — so this guards on
// s.configured, matching wlr_xdg_surface_toplevel_state_compare's own
// !state->base->configured guard.
//
// Known deviation, preserved deliberately: when the queue is empty,
// the authoritative baseline's height is read from the surface's
// committed geometry *width*, matching wlroots' own
// configured.height = surface->current->width bug (see spec §9). Not
// fixed.
func (r *toplevelRole) pendingSame(s *Surface) bool {
	if !s.configured {
		return false
	}

	var authoritative toplevelSnapshot
	if n := len(s.queue); n > 0 {
		authoritative = s.queue[n-1].toplevel
	} else {
		authoritative = r.current
		authoritative.W = s.geometry.W
		authoritative.H = s.geometry.W // known deviation, not a typo
	}

	pending := r.pending
	if pending.W == 0 && pending.H == 0 {
		pending.W, pending.H = authoritative.W, authoritative.H
	}

	return pending == authoritative
}

// sendConfigure serializes pending state into the wire format: a
// states array built in {MAXIMIZED, FULLSCREEN, RESIZING, ACTIVATED}
// order, plus (w,h) — falling back to the committed window geometry
// when pending is the (0,0) "use last geometry" sentinel.
func (r *toplevelRole) sendConfigure(s *Surface, serial uint32) {
	w, h := r.pending.W, r.pending.H
	if w == 0 && h == 0 {
		w, h = s.geometry.W, s.geometry.H
	}

	var states []uint32
	if r.pending.Maximized {
		states = append(states, wire.ToplevelStateMaximized)
	}
	if r.pending.Fullscreen {
		states = append(states, wire.ToplevelStateFullscreen)
	}
	if r.pending.Resizing {
		states = append(states, wire.ToplevelStateResizing)
	}
	if r.pending.Activated {
		states = append(states, wire.ToplevelStateActivated)
	}

	s.shell.sink.ToplevelConfigure(r.id, w, h, states)
}
