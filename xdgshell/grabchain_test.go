package xdgshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildGrabbedPopup wires a toplevel and a single popup grabbed against
// it on seat, returning the popup and the shell's grab chain for it.
func buildGrabbedPopup(t *testing.T, h *harness, seat *testSeat) (*Popup, *PopupGrabChain) {
	t.Helper()

	client := h.shell.NewClient(1, 100)
	toplevelBase := newTestSurface(200)
	toplevelSurface, err := client.NewXdgSurface(201, toplevelBase)
	require.NoError(t, err)
	_, err = toplevelSurface.GetToplevel(202)
	require.NoError(t, err)

	p := h.shell.CreatePositioner(300)
	require.NoError(t, p.SetSize(10, 10))
	require.NoError(t, p.SetAnchorRect(0, 0, 100, 100))

	popupBase := newTestSurface(400)
	popupSurface, err := client.NewXdgSurface(401, popupBase)
	require.NoError(t, err)
	popup, err := popupSurface.GetPopup(402, toplevelSurface, p)
	require.NoError(t, err)

	require.NoError(t, popup.Grab(seat, 1))

	return popup, h.shell.grabChain(seat)
}

// A pointer button that yields no default serial (nothing else claims
// the press) tears the chain down: every grabbed popup gets popup_done,
// the chain empties, and both grab slots are released at the seat.
func TestGrabChainButtonWithNoDefaultSerialTearsDown(t *testing.T) {
	h := newHarness()
	seat := newTestSeat()

	popup, chain := buildGrabbedPopup(t, h, seat)

	require.NotNil(t, seat.pointer)
	require.NotNil(t, seat.keyboard)
	require.Equal(t, []*Surface{popup.Surface()}, chain.Popups())

	seat.defaultButtonSerial = 0
	serial := seat.pointer.Button(9, 1, true)

	require.Zero(t, serial)
	require.Equal(t, []uint32{popup.role().id}, h.sink.popupDones)
	require.Empty(t, chain.Popups())
	require.Nil(t, seat.pointer)
	require.Nil(t, seat.keyboard)
	_, stillTracked := h.shell.grabChains[seat]
	require.False(t, stillTracked)
}

// A button press that some other handler already claimed (a non-zero
// default serial) passes through without tearing the chain down.
func TestGrabChainButtonWithDefaultSerialPassesThrough(t *testing.T) {
	h := newHarness()
	seat := newTestSeat()

	popup, chain := buildGrabbedPopup(t, h, seat)

	seat.defaultButtonSerial = 42
	serial := seat.pointer.Button(9, 1, true)

	require.EqualValues(t, 42, serial)
	require.Empty(t, h.sink.popupDones)
	require.Equal(t, []*Surface{popup.Surface()}, chain.Popups())
	require.NotNil(t, seat.pointer)
}

// Pointer cancellation (e.g. the seat lost its device) tears the chain
// down the same way an unclaimed button press does.
func TestGrabChainPointerCancelTearsDown(t *testing.T) {
	h := newHarness()
	seat := newTestSeat()

	popup, chain := buildGrabbedPopup(t, h, seat)

	seat.pointer.Cancel()

	require.Equal(t, []uint32{popup.role().id}, h.sink.popupDones)
	require.Empty(t, chain.Popups())
	require.Nil(t, seat.pointer)
	require.Nil(t, seat.keyboard)
}

// Keyboard cancellation tears the chain down identically.
func TestGrabChainKeyboardCancelTearsDown(t *testing.T) {
	h := newHarness()
	seat := newTestSeat()

	popup, chain := buildGrabbedPopup(t, h, seat)

	seat.keyboard.Cancel()

	require.Equal(t, []uint32{popup.role().id}, h.sink.popupDones)
	require.Empty(t, chain.Popups())
	require.Nil(t, seat.pointer)
	require.Nil(t, seat.keyboard)
}

// forceRemove (a mid-chain surface reactively destroyed) sends
// popup_done to every popup above it, then leaves the chain installed
// if any survive underneath, or releases it if none do.
func TestGrabChainForceRemoveTearsDownAboveOnly(t *testing.T) {
	h := newHarness()
	seat := newTestSeat()
	client := h.shell.NewClient(1, 100)

	toplevelBase := newTestSurface(200)
	toplevelSurface, err := client.NewXdgSurface(201, toplevelBase)
	require.NoError(t, err)
	_, err = toplevelSurface.GetToplevel(202)
	require.NoError(t, err)

	p1 := h.shell.CreatePositioner(300)
	require.NoError(t, p1.SetSize(10, 10))
	require.NoError(t, p1.SetAnchorRect(0, 0, 100, 100))
	p1Base := newTestSurface(400)
	p1Surface, err := client.NewXdgSurface(401, p1Base)
	require.NoError(t, err)
	popup1, err := p1Surface.GetPopup(402, toplevelSurface, p1)
	require.NoError(t, err)
	require.NoError(t, popup1.Grab(seat, 1))

	p2 := h.shell.CreatePositioner(500)
	require.NoError(t, p2.SetSize(10, 10))
	require.NoError(t, p2.SetAnchorRect(0, 0, 100, 100))
	p2Base := newTestSurface(600)
	p2Surface, err := client.NewXdgSurface(601, p2Base)
	require.NoError(t, err)
	popup2, err := p2Surface.GetPopup(602, p1Surface, p2)
	require.NoError(t, err)
	require.NoError(t, popup2.Grab(seat, 2))

	chain := h.shell.grabChain(seat)
	require.Equal(t, []*Surface{p1Surface, p2Surface}, chain.Popups())

	p1Base.destroy() // reactive destruction of the bottommost popup

	require.Equal(t, []uint32{popup2.role().id}, h.sink.popupDones)
	require.Empty(t, chain.Popups())
	require.Nil(t, seat.pointer)
	require.Nil(t, seat.keyboard)
}
