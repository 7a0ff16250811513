package xdgshell

import (
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/wire"
)

// popupRole is the role substate embedded in a Surface once it has
// been assigned the popup role.
type popupRole struct {
	surface *Surface
	id      uint32

	parent   *Surface
	geometry Rect

	committed bool
	seat      collab.Seat

	// repositionToken, when non-nil, is sent via PopupRepositioned
	// immediately after the next PopupConfigure goes out.
	repositionToken *uint32
}

// Popup is a handle to a surface's popup role.
type Popup struct{ s *Surface }

// GetPopup assigns the surface the popup role, placed against parent
// using positioner. id is the resource id the dispatcher allocated
// for get_popup. parent must already be a role-bearing surface.
func (s *Surface) GetPopup(id uint32, parent *Surface, positioner *Positioner) (*Popup, error) {
	if s.role != RoleNone {
		return nil, s.client.wmBaseError(wire.WMBaseErrorRole,
			"xdg_surface.get_popup: surface already has a role")
	}
	if !positioner.valid() {
		return nil, s.client.wmBaseError(wire.WMBaseErrorInvalidPositioner,
			"xdg_surface.get_popup: positioner size and anchor_rect must be positive")
	}

	s.role = RolePopup
	s.popup = &popupRole{surface: s, id: id, parent: parent, geometry: positioner.Geometry()}

	if parent != nil {
		parent.childPopups = append(parent.childPopups, s)
		parent.onNewPopup.emit(NewPopupEvent{Parent: parent, Popup: s})
	}

	return &Popup{s: s}, nil
}

// Surface returns the underlying xdg_surface.
func (p *Popup) Surface() *Surface { return p.s }

// Parent returns the surface this popup was placed against.
func (p *Popup) Parent() *Surface { return p.s.popup.parent }

// Geometry returns the positioner-computed placement, relative to the
// parent's window geometry.
func (p *Popup) Geometry() Rect { return p.s.popup.geometry }

func (p *Popup) role() *popupRole { return p.s.popup }

// Grab installs a pointer and keyboard grab for this popup's seat,
// enforcing the strict nesting rule: the parent must already be the
// topmost popup of that seat's chain, or — if the chain is empty — a
// toplevel.
func (p *Popup) Grab(seat collab.Seat, serial uint32) error {
	r := p.role()
	if r.committed {
		return p.s.client.shell.post(&ProtocolError{
			Resource: r.id,
			Code:     wire.PopupErrorInvalidGrab,
			Message:  "xdg_popup.grab: popup is already mapped",
		})
	}

	chain := p.s.shell.grabChain(seat)
	topmost := chain.topmost()

	switch {
	case topmost == nil:
		if r.parent == nil || r.parent.role != RoleToplevel {
			return p.notTopmost()
		}
	case topmost != r.parent:
		return p.notTopmost()
	}

	r.seat = seat
	chain.push(p.s)
	return nil
}

func (p *Popup) notTopmost() *ProtocolError {
	return p.s.client.shell.post(&ProtocolError{
		Resource: p.s.client.wmBaseID,
		Code:     wire.WMBaseErrorNotTheTopmostPopup,
		Message:  "xdg_popup.grab: parent is not the topmost popup",
	})
}

// Reposition recomputes geometry from a fresh positioner and
// schedules a configure carrying token back to the client via
// repositioned(token), without touching the grab chain or committed
// state. Stable-protocol addition, supplementing the v6 baseline.
func (p *Popup) Reposition(positioner *Positioner, token uint32) error {
	if !positioner.valid() {
		return p.s.client.wmBaseError(wire.WMBaseErrorInvalidPositioner,
			"xdg_popup.reposition: positioner size and anchor_rect must be positive")
	}
	r := p.role()
	r.geometry = positioner.Geometry()
	r.repositionToken = &token
	p.s.scheduleConfigure()
	return nil
}

// Destroy handles xdg_popup.destroy. A popup may only be destroyed
// while it is topmost in its grab chain; otherwise the client
// receives NOT_THE_TOPMOST_POPUP and the popup is left untouched.
func (p *Popup) Destroy() error {
	r := p.role()
	if r.seat != nil {
		chain, ok := p.s.shell.grabChains[r.seat]
		if ok && chain.topmost() != p.s {
			return p.notTopmost()
		}
		if ok {
			chain.pop(p.s)
		}
	}
	p.s.Destroy()
	return nil
}

// SendPopupDone dispatches xdg_popup.popup_done for this surface's
// popup role, used by the grab chain's teardown to tell every popup
// still in it to close without going through a *Popup handle.
func (s *Surface) SendPopupDone() {
	s.shell.sink.PopupDone(s.popup.id)
}
