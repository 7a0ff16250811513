// Package collab defines the contracts this handler expects from its
// neighbors in the display server: the wire dispatcher, the generic
// surface primitive, the seat (input focus and grabs), the event
// loop, and output objects. None of these are implemented here beyond
// a minimal in-memory reference (see the loop, memseat and
// basesurface packages) — the real implementations live in the
// embedding compositor.
package collab

// ErrorPoster is satisfied by the wire dispatcher. Posting an error
// marks the named resource (and, per the Wayland wire protocol, the
// whole client connection) as dead; the dispatcher is expected to
// tear the connection down after delivery.
type ErrorPoster interface {
	PostError(resourceID uint32, code uint32, message string)
}

// Surface is the generic surface primitive: it owns the pixel buffer
// and the surface's other double-buffered state (damage, opaque
// region, and so on), none of which this handler is concerned with.
// The handler only needs to know whether a buffer is currently
// attached and to be notified when a commit happens.
type Surface interface {
	ID() uint32

	// HasBuffer reports whether a buffer is currently attached,
	// i.e. whether this commit (or the last one) carried pixels.
	HasBuffer() bool

	// OnCommit registers a callback invoked every time the client
	// commits this surface. hasBuffer mirrors HasBuffer at the time
	// of the commit.
	OnCommit(fn func(hasBuffer bool))

	// OnDestroy registers a callback invoked when the underlying
	// surface primitive is destroyed, reactively driving destruction
	// of anything layered on top of it.
	OnDestroy(fn func())
}

// IdleHandle identifies a scheduled idle task; it can be passed back
// to Loop.CancelIdle. The zero value means "no task scheduled".
type IdleHandle uint64

// TimerHandle identifies an armed one-shot timer. The zero value
// means "no timer armed".
type TimerHandle uint64

// Loop is the event loop primitive: idle tasks coalesce same-turn
// work (scheduling a configure multiple times in one turn still only
// sends one message), and timers back ping timeouts.
type Loop interface {
	// Idle schedules fn to run once, on a later turn of the event
	// loop. Returns a handle usable with CancelIdle.
	Idle(fn func()) IdleHandle

	// CancelIdle cancels a previously scheduled idle task. A no-op
	// if the task already ran or the handle is zero.
	CancelIdle(h IdleHandle)

	// AfterFunc arms a one-shot timer. Returns a handle usable with
	// StopTimer.
	AfterFunc(millis int, fn func()) TimerHandle

	// StopTimer disarms a previously armed timer. A no-op if the
	// timer already fired or the handle is zero.
	StopTimer(h TimerHandle)
}

// PointerGrabHandlers is installed into the seat's single pointer
// grab slot for the duration of a popup grab chain's lifetime.
type PointerGrabHandlers struct {
	Enter     func(surfaceClient ClientID)
	Motion    func(x, y float64)
	Button    func(serial uint32, button uint32, pressed bool) (defaultSerial uint32)
	Axis      func(axis uint32, value float64)
	Modifiers func()
	Cancel    func()
}

// KeyboardGrabHandlers is installed into the seat's single keyboard
// grab slot for the duration of a popup grab chain's lifetime.
type KeyboardGrabHandlers struct {
	Enter  func()
	Key    func(key uint32, pressed bool)
	Cancel func()
}

// ClientID identifies a client connection as tracked by the seat /
// dispatcher, independent of any particular surface or resource.
type ClientID uint32

// Seat is the seat subsystem: pointer/keyboard focus, grab
// installation, and serial validation.
type Seat interface {
	// ValidateSerial reports whether serial is the seat's current
	// input serial. Request-class toplevel operations (move, resize,
	// show_window_menu) use this to decide whether to honor a
	// request or silently drop it.
	ValidateSerial(serial uint32) bool

	// ClientOf resolves which client currently has a surface bound,
	// used by the pointer grab's Enter handler to decide whether to
	// pass an enter event through or clear focus.
	ClientOf(surfaceID uint32) ClientID

	// PointerGrabStart installs the given handlers into the seat's
	// single pointer grab slot. Returns an error if the slot is
	// already occupied.
	PointerGrabStart(h PointerGrabHandlers) error

	// PointerGrabEnd releases the pointer grab slot, if this caller
	// holds it.
	PointerGrabEnd()

	// KeyboardGrabStart installs the given handlers into the seat's
	// single keyboard grab slot.
	KeyboardGrabStart(h KeyboardGrabHandlers) error

	// KeyboardGrabEnd releases the keyboard grab slot.
	KeyboardGrabEnd()

	// DefaultPointerButton runs the seat's normal, non-grabbed
	// pointer button dispatch — whatever the focused client would
	// have received had no grab been installed — and returns the
	// serial it generated, or 0 if no client is currently focused.
	// The popup grab chain's Button handler forwards here and tears
	// the grab down when it gets back 0.
	DefaultPointerButton(button uint32, pressed bool) (serial uint32)
}

// Output is an opaque output identifier, passed through
// set_fullscreen(output) untouched; this handler has no output
// management policy of its own.
type Output uint32

// EventSink is satisfied by the wire dispatcher on the outgoing side:
// every server->client event this handler produces is hand off here
// as plain values, already computed. The dispatcher owns framing the
// event onto the wire for the resource id given; this handler never
// touches a socket.
type EventSink interface {
	// WmBasePing corresponds to xdg_wm_base.ping.
	WmBasePing(wmBaseID uint32, serial uint32)

	// XdgSurfaceConfigure corresponds to xdg_surface.configure, sent
	// once per queued configure regardless of role.
	XdgSurfaceConfigure(surfaceID uint32, serial uint32)

	// ToplevelConfigure corresponds to xdg_toplevel.configure.
	// states is built in {MAXIMIZED, FULLSCREEN, RESIZING, ACTIVATED}
	// order, restricted to whichever are set.
	ToplevelConfigure(toplevelID uint32, width, height int32, states []uint32)

	// ToplevelClose corresponds to xdg_toplevel.close.
	ToplevelClose(toplevelID uint32)

	// PopupConfigure corresponds to xdg_popup.configure.
	PopupConfigure(popupID uint32, x, y, width, height int32)

	// PopupRepositioned corresponds to xdg_popup.repositioned (stable
	// protocol addition, not part of the v6 baseline).
	PopupRepositioned(popupID uint32, token uint32)

	// PopupDone corresponds to xdg_popup.popup_done.
	PopupDone(popupID uint32)
}
