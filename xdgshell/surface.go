package xdgshell

import (
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/internal/slist"
	"github.com/elliotmr/xdgshell/wire"
)

// Role identifies which role-specific substate, if any, a Surface
// carries. A surface transitions role exactly once: None -> Toplevel
// or None -> Popup.
type Role int

const (
	RoleNone Role = iota
	RoleToplevel
	RolePopup
)

// configureEntry is one outstanding, unacknowledged configure: the
// serial it was sent with, and the role-specific snapshot that was
// serialized into it (so ack-configure can apply it without
// recomputing anything).
type configureEntry struct {
	serial   uint32
	toplevel toplevelSnapshot
	popup    Rect
}

// Surface is the xdg_surface: role, double-buffered window geometry,
// the outstanding configure queue, and the bridge to the generic
// surface primitive's commit/destroy notifications.
type Surface struct {
	shell  *Shell
	client *Client
	id     uint32
	base   collab.Surface

	clientEntry *slist.Entry[*Surface]

	role     Role
	toplevel *toplevelRole
	popup    *popupRole

	// childPopups holds the popups currently placed against this
	// surface as their parent, bottom-to-top in creation order. This
	// is the "membership links in the parent's popup list" the data
	// model calls for; PopupAt walks it to hit-test the popup tree.
	childPopups []*Surface

	title, appID string

	geometry        Rect
	nextGeometry    Rect
	hasNextGeometry bool

	configured      bool
	added           bool
	configureSerial uint32

	queue      []configureEntry
	idleHandle collab.IdleHandle
	nextSerial uint32

	destroyed bool

	onDestroy     signal[DestroyEvent]
	onPingTimeout signal[PingTimeoutEvent]
	onNewPopup    signal[NewPopupEvent]
}

// ID returns the xdg_surface resource id.
func (s *Surface) ID() uint32 { return s.id }

// Role reports which role, if any, this surface currently carries.
func (s *Surface) Role() Role { return s.role }

// Configured reports whether the client has ever acknowledged a
// configure on this surface.
func (s *Surface) Configured() bool { return s.configured }

// PendingConfigureSerials returns the serials still outstanding
// (sent, not yet acked), oldest first. Exposed for tests and for a
// dispatcher driving this handler synchronously, where there is no
// other way to learn which serial a just-flushed idle task actually
// sent.
func (s *Surface) PendingConfigureSerials() []uint32 {
	out := make([]uint32, len(s.queue))
	for i, e := range s.queue {
		out[i] = e.serial
	}
	return out
}

// Geometry returns the window geometry last committed.
func (s *Surface) Geometry() Rect { return s.geometry }

// OnDestroy registers a compositor listener fired when this surface
// is destroyed, whether by explicit client request or reactively by
// destruction of the underlying surface primitive.
func (s *Surface) OnDestroy(fn func(DestroyEvent)) { s.onDestroy.On(fn) }

// OnPingTimeout registers a compositor listener fired when this
// surface's client fails to respond to a ping in time.
func (s *Surface) OnPingTimeout(fn func(PingTimeoutEvent)) { s.onPingTimeout.On(fn) }

// OnNewPopup registers a compositor listener fired when a popup is
// created against this surface as its parent.
func (s *Surface) OnNewPopup(fn func(NewPopupEvent)) { s.onNewPopup.On(fn) }

func (s *Surface) surfaceError(code uint32, message string) *ProtocolError {
	return s.shell.post(&ProtocolError{Resource: s.id, Code: code, Message: message})
}

// SetWindowGeometry buffers the window geometry to take effect on the
// next commit.
func (s *Surface) SetWindowGeometry(x, y, w, h int32) {
	s.nextGeometry = Rect{X: x, Y: y, W: w, H: h}
	s.hasNextGeometry = true
}

// AckConfigure handles xdg_surface.ack_configure. Acknowledging
// serial implicitly acks every smaller serial still queued.
func (s *Surface) AckConfigure(serial uint32) error {
	if s.role == RoleNone {
		return s.surfaceError(wire.SurfaceErrorNotConstructed,
			"xdg_surface.ack_configure before a role was assigned")
	}

	var matched *configureEntry
	i := 0
	for ; i < len(s.queue); i++ {
		if s.queue[i].serial == serial {
			matched = &s.queue[i]
			i++
			break
		}
		if s.queue[i].serial > serial {
			break
		}
	}
	if matched == nil {
		return s.post(wire.WMBaseErrorInvalidSurfaceState,
			"xdg_surface.ack_configure: unknown serial")
	}
	s.queue = s.queue[i:]

	if s.role == RoleToplevel {
		s.toplevel.ack(*matched)
	}

	s.configured = true
	s.configureSerial = serial
	return nil
}

// post is a convenience for errors namespaced under the client's
// xdg_wm_base object (INVALID_SURFACE_STATE is defined there even
// though it is raised by an xdg_surface request).
func (s *Surface) post(code uint32, message string) *ProtocolError {
	return s.client.wmBaseError(code, message)
}

// scheduleConfigure is invoked whenever pending state changes. It
// coalesces same-turn state changes into a single outstanding idle
// task and returns the serial that task will send, or 0 if nothing
// needs sending.
func (s *Surface) scheduleConfigure() uint32 {
	same := s.pendingSame()

	if s.idleHandle != 0 {
		if same {
			s.shell.loop.CancelIdle(s.idleHandle)
			s.idleHandle = 0
			s.nextSerial = 0
			return 0
		}
		return s.nextSerial
	}

	if same {
		return 0
	}

	serial := s.shell.serial.Next()
	s.nextSerial = serial
	s.idleHandle = s.shell.loop.Idle(func() { s.sendConfigure() })
	return serial
}

// pendingSame reports whether the role's pending state already
// matches the authoritative baseline (the tail of the queue if one is
// outstanding, otherwise current/committed state), meaning a further
// configure would be redundant.
func (s *Surface) pendingSame() bool {
	switch s.role {
	case RoleToplevel:
		return s.toplevel.pendingSame(s)
	case RolePopup:
		// A popup has no further back-and-forth after the initial
		// placement is sent; every explicit schedule (initial map or
		// a reposition) is a genuine change.
		return false
	default:
		return false
	}
}

// sendConfigure is the idle task body: it serializes pending state
// into a queue entry and the wire event(s) described by §4.2/§4.4.
func (s *Surface) sendConfigure() {
	serial := s.nextSerial
	s.idleHandle = 0
	s.nextSerial = 0

	entry := configureEntry{serial: serial}
	switch s.role {
	case RoleToplevel:
		entry.toplevel = s.toplevel.pending
		s.toplevel.sendConfigure(s, serial)
	case RolePopup:
		entry.popup = s.popup.geometry
		s.shell.sink.PopupConfigure(s.popup.id, entry.popup.X, entry.popup.Y, entry.popup.W, entry.popup.H)
		if s.popup.repositionToken != nil {
			s.shell.sink.PopupRepositioned(s.popup.id, *s.popup.repositionToken)
			s.popup.repositionToken = nil
		}
	}
	s.queue = append(s.queue, entry)
	s.shell.sink.XdgSurfaceConfigure(s.id, serial)
}

// onCommit is the bridge from the generic surface primitive's commit
// notification into the role-bearing state machine.
func (s *Surface) onCommit(hasBuffer bool) {
	if hasBuffer && !s.configured {
		s.surfaceError(wire.SurfaceErrorUnconfiguredBuffer,
			"commit with a buffer attached before the first ack_configure")
		return
	}

	if s.hasNextGeometry {
		s.geometry = s.nextGeometry
		s.hasNextGeometry = false
	}

	switch s.role {
	case RoleNone:
		s.surfaceError(wire.SurfaceErrorNotConstructed, "commit on a surface with no role")
		return
	case RoleToplevel:
		t := s.toplevel
		if !hasBuffer {
			if !t.added {
				s.scheduleConfigure()
				t.added = true
			}
			break
		}
		t.current = t.next
	case RolePopup:
		p := s.popup
		if !p.committed {
			p.committed = true
			s.scheduleConfigure()
		}
	}

	if s.configured && !s.added {
		s.added = true
		s.shell.onNewSurface.emit(NewSurfaceEvent{Surface: s})
	}
}

// PopupAt descends the popup tree rooted at this surface to hit-test
// point (x,y), given in this surface's window-geometry-relative
// coordinates. It returns the deepest popup whose placement rectangle
// contains the point, or nil if none does. Input regions proper are
// owned by the generic surface primitive and out of scope here; this
// treats a popup's positioner-computed geometry as its hit area, which
// is the same rectangle the compositor already renders it at.
func (s *Surface) PopupAt(x, y int32) *Surface {
	for i := len(s.childPopups) - 1; i >= 0; i-- {
		child := s.childPopups[i]
		g := child.popup.geometry
		if x < g.X || x >= g.X+g.W || y < g.Y || y >= g.Y+g.H {
			continue
		}
		if hit := child.PopupAt(x-g.X, y-g.Y); hit != nil {
			return hit
		}
		return child
	}
	return nil
}

// unlinkFromParent removes this surface from its popup parent's child
// list, if it has one. Called once, from Destroy.
func (s *Surface) unlinkFromParent() {
	if s.role != RolePopup || s.popup.parent == nil {
		return
	}
	parent := s.popup.parent
	for i, c := range parent.childPopups {
		if c == s {
			parent.childPopups = append(parent.childPopups[:i], parent.childPopups[i+1:]...)
			return
		}
	}
}

// Destroy tears down this surface: any armed idle task is canceled,
// an active popup grab is released, the destroy signal fires, and the
// surface is unlinked from its client. Safe to call more than once.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true

	if s.idleHandle != 0 {
		s.shell.loop.CancelIdle(s.idleHandle)
		s.idleHandle = 0
	}

	if s.role == RolePopup && s.popup.seat != nil {
		if chain, ok := s.shell.grabChains[s.popup.seat]; ok {
			chain.forceRemove(s)
		}
	}

	s.unlinkFromParent()
	s.onDestroy.emit(DestroyEvent{Surface: s})

	if s.clientEntry != nil {
		s.client.surfaces.Remove(s.clientEntry)
		s.clientEntry = nil
	}
}
