package xdgshell

import "github.com/elliotmr/xdgshell/collab"

// PopupGrabChain is the per-seat stack of active popup grabs. Only
// one chain exists per seat per shell at a time; it owns the seat's
// single pointer and keyboard grab slot for its entire lifetime.
type PopupGrabChain struct {
	shell *Shell
	seat  collab.Seat

	// popups is ordered bottom-to-top; popups[len-1] is topmost.
	popups []*Surface

	installed bool
}

// Popups returns the chain's stack, bottom-to-top. Exposed for tests
// and for compositors that want to cross-check Surface.PopupAt's
// result against which popup is actually receiving grabbed input.
func (g *PopupGrabChain) Popups() []*Surface {
	out := make([]*Surface, len(g.popups))
	copy(out, g.popups)
	return out
}

func (g *PopupGrabChain) topmost() *Surface {
	if len(g.popups) == 0 {
		return nil
	}
	return g.popups[len(g.popups)-1]
}

// client returns the client that owns the bottommost (first-grabbed)
// popup, i.e. the chain's originating client. Grab handlers restrict
// focus to this client regardless of which popup is currently
// topmost.
func (g *PopupGrabChain) client() *Client {
	if len(g.popups) == 0 {
		return nil
	}
	return g.popups[0].client
}

func (g *PopupGrabChain) push(s *Surface) {
	g.popups = append(g.popups, s)
	if !g.installed {
		g.install()
	}
}

// pop removes s, which must already be topmost, from the chain. If
// the chain becomes empty it releases the grab slot without sending
// popup_done — this path is reached from an explicit, successful
// client destroy, not a compositor-driven cancellation.
func (g *PopupGrabChain) pop(s *Surface) {
	n := len(g.popups)
	if n == 0 || g.popups[n-1] != s {
		return
	}
	g.popups = g.popups[:n-1]
	if len(g.popups) == 0 {
		g.release()
	}
}

// forceRemove drops s from the chain regardless of position, used
// when the underlying surface primitive is destroyed reactively
// rather than via an explicit, ordered xdg_popup.destroy. If s was
// not topmost, every popup above it is no longer reachable in a
// consistent nesting order, so the chain above it is torn down too.
func (g *PopupGrabChain) forceRemove(s *Surface) {
	idx := -1
	for i, p := range g.popups {
		if p == s {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	above := g.popups[idx+1:]
	g.popups = g.popups[:idx]
	for _, p := range above {
		p.SendPopupDone()
	}
	if len(g.popups) == 0 {
		g.release()
	}
}

// install registers the chain's pointer and keyboard grab handlers
// with the seat. Called once, when the first popup is pushed.
func (g *PopupGrabChain) install() {
	g.installed = true

	if err := g.seat.PointerGrabStart(collab.PointerGrabHandlers{
		Enter: func(surfaceClient collab.ClientID) {
			c := g.client()
			if c != nil && surfaceClient == c.id {
				return // pass through
			}
			// clear pointer focus: the seat implementation owns
			// actually clearing it; this grab has nothing further to
			// do once it declines to pass the enter through.
		},
		Motion:    func(x, y float64) {},
		Axis:      func(axis uint32, value float64) {},
		Modifiers: func() {},
		Button: func(serial uint32, button uint32, pressed bool) uint32 {
			defaultSerial := g.seat.DefaultPointerButton(button, pressed)
			if defaultSerial == 0 {
				g.Teardown()
			}
			return defaultSerial
		},
		Cancel: func() { g.Teardown() },
	}); err != nil {
		g.shell.log.WithField("seat", g.seat).WithError(err).Warn("popup grab chain: pointer grab start failed")
	}

	if err := g.seat.KeyboardGrabStart(collab.KeyboardGrabHandlers{
		Enter:  func() {},
		Key:    func(key uint32, pressed bool) {},
		Cancel: func() { g.Teardown() },
	}); err != nil {
		g.shell.log.WithField("seat", g.seat).WithError(err).Warn("popup grab chain: keyboard grab start failed")
	}

	g.shell.log.WithField("seat", g.seat).Debug("popup grab chain installed")
}

func (g *PopupGrabChain) release() {
	g.seat.PointerGrabEnd()
	g.seat.KeyboardGrabEnd()
	g.installed = false
	g.shell.dropGrabChain(g)
	g.shell.log.WithField("seat", g.seat).Debug("popup grab chain released")
}

// Teardown sends popup_done to every popup still in the chain, then
// ends both grabs at the seat. Driven by pointer.button returning no
// default serial, or by pointer.cancel / keyboard.cancel.
func (g *PopupGrabChain) Teardown() {
	for _, s := range g.popups {
		s.SendPopupDone()
	}
	g.popups = nil
	g.release()
}
