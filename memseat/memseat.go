// Package memseat is a minimal, in-process collab.Seat: enough serial
// tracking, single-slot pointer/keyboard grabs and client-of-surface
// bookkeeping to drive the xdgshell package's tests and the reference
// driver, without pulling in a real input backend.
package memseat

import (
	"fmt"

	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/wire"
)

// Seat is a single-seat, in-memory collab.Seat. It is not safe for
// concurrent use from multiple goroutines without external
// synchronization, matching the single-threaded event loop this
// handler assumes throughout.
type Seat struct {
	serial *wire.Serial

	currentSerial uint32
	focusedClient collab.ClientID
	focusedSurf   uint32

	pointer  *collab.PointerGrabHandlers
	keyboard *collab.KeyboardGrabHandlers
}

// New builds a Seat backed by serial, which should be the same
// *wire.Serial the owning Shell was configured with so pointer/
// keyboard serials and configure serials share one counter, matching
// how a real compositor mints them.
func New(serial *wire.Serial) *Seat {
	return &Seat{serial: serial}
}

// Focus sets which client and surface currently have pointer/keyboard
// focus, used by tests to drive ValidateSerial/ClientOf scenarios and
// by the reference driver to give its demo client focus.
func (s *Seat) Focus(client collab.ClientID, surfaceID uint32) {
	s.focusedClient = client
	s.focusedSurf = surfaceID
}

// NextSerial mints a fresh input serial and records it as current,
// the way a real seat does for every pointer/keyboard event it emits.
func (s *Seat) NextSerial() uint32 {
	s.currentSerial = s.serial.Next()
	return s.currentSerial
}

// ValidateSerial implements collab.Seat.
func (s *Seat) ValidateSerial(serial uint32) bool {
	return serial == s.currentSerial
}

// ClientOf implements collab.Seat.
func (s *Seat) ClientOf(surfaceID uint32) collab.ClientID {
	if surfaceID != s.focusedSurf {
		return 0
	}
	return s.focusedClient
}

// PointerGrabStart implements collab.Seat.
func (s *Seat) PointerGrabStart(h collab.PointerGrabHandlers) error {
	if s.pointer != nil {
		return fmt.Errorf("memseat: pointer grab slot already occupied")
	}
	s.pointer = &h
	if s.pointer.Enter != nil {
		s.pointer.Enter(s.focusedClient)
	}
	return nil
}

// PointerGrabEnd implements collab.Seat.
func (s *Seat) PointerGrabEnd() { s.pointer = nil }

// KeyboardGrabStart implements collab.Seat.
func (s *Seat) KeyboardGrabStart(h collab.KeyboardGrabHandlers) error {
	if s.keyboard != nil {
		return fmt.Errorf("memseat: keyboard grab slot already occupied")
	}
	s.keyboard = &h
	if s.keyboard.Enter != nil {
		s.keyboard.Enter()
	}
	return nil
}

// KeyboardGrabEnd implements collab.Seat.
func (s *Seat) KeyboardGrabEnd() { s.keyboard = nil }

// DefaultPointerButton implements collab.Seat: with no real input
// backend behind this seat, it mints and returns a fresh serial when
// a client has focus (set via Focus), and returns 0 when no client is
// focused, which is the case that makes the grab chain tear down.
func (s *Seat) DefaultPointerButton(button uint32, pressed bool) uint32 {
	if s.focusedClient == 0 {
		return 0
	}
	return s.NextSerial()
}

// PointerButton drives the currently installed pointer grab's Button
// handler, if one is installed, returning the serial it reports back.
// Used by tests to simulate a click while a popup grab chain is
// active.
func (s *Seat) PointerButton(button uint32, pressed bool) uint32 {
	if s.pointer == nil || s.pointer.Button == nil {
		return s.DefaultPointerButton(button, pressed)
	}
	serial := s.NextSerial()
	return s.pointer.Button(serial, button, pressed)
}

// PointerCancel drives the currently installed pointer grab's Cancel
// handler, if one is installed. A no-op otherwise.
func (s *Seat) PointerCancel() {
	if s.pointer != nil && s.pointer.Cancel != nil {
		s.pointer.Cancel()
	}
}

// KeyboardCancel drives the currently installed keyboard grab's
// Cancel handler, if one is installed. A no-op otherwise.
func (s *Seat) KeyboardCancel() {
	if s.keyboard != nil && s.keyboard.Cancel != nil {
		s.keyboard.Cancel()
	}
}

// HasPointerGrab reports whether a pointer grab is currently
// installed, used by tests asserting the chain released its slot.
func (s *Seat) HasPointerGrab() bool { return s.pointer != nil }

// HasKeyboardGrab reports whether a keyboard grab is currently
// installed.
func (s *Seat) HasKeyboardGrab() bool { return s.keyboard != nil }
