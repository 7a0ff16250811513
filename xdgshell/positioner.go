package xdgshell

import "github.com/elliotmr/xdgshell/wire"

// Positioner accumulates placement parameters for a not-yet-created
// popup. It is mutable until consumed by Surface.GetPopup; nothing
// about it is tied to any particular surface.
type Positioner struct {
	shell *Shell
	id    uint32

	anchorRect           Rect
	size                 Size
	offset               Point
	anchor               Anchor
	gravity              Gravity
	constraintAdjustment ConstraintAdjustment
}

// CreatePositioner builds a Positioner for the given resource id. id
// is whatever the wire dispatcher allocated for the create_positioner
// request; the core never mints its own resource ids.
func (s *Shell) CreatePositioner(id uint32) *Positioner {
	return &Positioner{shell: s, id: id}
}

func (p *Positioner) invalidInput(message string) *ProtocolError {
	return p.shell.post(&ProtocolError{
		Resource: p.id,
		Code:     wire.PositionerErrorInvalidInput,
		Message:  message,
	})
}

// SetSize sets the popup's size. Both dimensions must be strictly
// positive.
func (p *Positioner) SetSize(w, h int32) error {
	if w < 1 || h < 1 {
		return p.invalidInput("xdg_positioner.set_size: width and height must be positive")
	}
	p.size = Size{W: w, H: h}
	return nil
}

// SetAnchorRect sets the rectangle, relative to the parent's window
// geometry, that the popup is anchored against.
func (p *Positioner) SetAnchorRect(x, y, w, h int32) error {
	if w < 1 || h < 1 {
		return p.invalidInput("xdg_positioner.set_anchor_rect: width and height must be positive")
	}
	p.anchorRect = Rect{X: x, Y: y, W: w, H: h}
	return nil
}

// SetAnchor sets which edge, corner, or center of the anchor
// rectangle the popup's anchor point sits on.
func (p *Positioner) SetAnchor(a Anchor) error {
	if !a.valid() {
		return p.invalidInput("xdg_positioner.set_anchor: invalid anchor value")
	}
	p.anchor = a
	return nil
}

// SetGravity sets the direction the popup grows away from its anchor
// point.
func (p *Positioner) SetGravity(g Gravity) error {
	if !g.valid() {
		return p.invalidInput("xdg_positioner.set_gravity: invalid gravity value")
	}
	p.gravity = g
	return nil
}

// SetConstraintAdjustment sets the bitmask of adjustments the client
// permits the compositor to apply. The core never interprets
// individual bits; it is surfaced to Shell.ConstraintAdjuster
// verbatim.
func (p *Positioner) SetConstraintAdjustment(mask ConstraintAdjustment) {
	p.constraintAdjustment = mask
}

// SetOffset sets the offset added to the anchor point after anchor
// and gravity have been applied.
func (p *Positioner) SetOffset(x, y int32) {
	p.offset = Point{X: x, Y: y}
}

// valid reports whether this positioner satisfies the precondition
// for consumption at popup creation: a positive size and a positive
// anchor rectangle.
func (p *Positioner) valid() bool {
	return p.size.W > 0 && p.size.H > 0 && p.anchorRect.W > 0 && p.anchorRect.H > 0
}

// Geometry computes the popup's placement relative to its parent's
// window geometry. It is a pure function of the positioner's own
// fields — the anchor rectangle is already expressed in
// parent-relative coordinates by protocol convention, so no external
// parent rectangle is needed.
func (p *Positioner) Geometry() Rect {
	x, y := p.offset.X, p.offset.Y
	w, h := p.size.W, p.size.H

	switch {
	case p.anchor&AnchorTop != 0:
		y += p.anchorRect.Y
	case p.anchor&AnchorBottom != 0:
		y += p.anchorRect.Y + p.anchorRect.H
	default:
		y += p.anchorRect.Y + p.anchorRect.H/2
	}

	switch {
	case p.anchor&AnchorLeft != 0:
		x += p.anchorRect.X
	case p.anchor&AnchorRight != 0:
		x += p.anchorRect.X + p.anchorRect.W
	default:
		x += p.anchorRect.X + p.anchorRect.W/2
	}

	switch {
	case p.gravity&GravityTop != 0:
		y -= h
	case p.gravity&GravityBottom != 0:
		// unchanged
	default:
		y -= h / 2
	}

	switch {
	case p.gravity&GravityLeft != 0:
		x -= w
	case p.gravity&GravityRight != 0:
		// unchanged
	default:
		x -= w / 2
	}

	rect := Rect{X: x, Y: y, W: w, H: h}
	if p.constraintAdjustment != ConstraintAdjustmentNone && p.shell != nil && p.shell.ConstraintAdjuster != nil {
		return p.shell.ConstraintAdjuster(rect, p, p.anchorRect)
	}
	return rect
}
