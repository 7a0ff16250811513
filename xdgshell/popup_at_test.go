package xdgshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A popup nested inside another popup is only found by PopupAt through
// its parent, at coordinates relative to the parent's own placement.
func TestPopupAtDescendsNestedPopups(t *testing.T) {
	h := newHarness()
	client := h.shell.NewClient(1, 100)

	toplevelBase := newTestSurface(200)
	toplevelSurface, err := client.NewXdgSurface(201, toplevelBase)
	require.NoError(t, err)
	_, err = toplevelSurface.GetToplevel(202)
	require.NoError(t, err)

	p1 := h.shell.CreatePositioner(300)
	require.NoError(t, p1.SetSize(50, 50))
	require.NoError(t, p1.SetAnchorRect(0, 0, 10, 10))
	p1.SetOffset(10, 10)

	p1Base := newTestSurface(400)
	p1Surface, err := client.NewXdgSurface(401, p1Base)
	require.NoError(t, err)
	popup1, err := p1Surface.GetPopup(402, toplevelSurface, p1)
	require.NoError(t, err)

	p2 := h.shell.CreatePositioner(500)
	require.NoError(t, p2.SetSize(10, 10))
	require.NoError(t, p2.SetAnchorRect(0, 0, 10, 10))
	p2.SetOffset(5, 5)

	p2Base := newTestSurface(600)
	p2Surface, err := client.NewXdgSurface(601, p2Base)
	require.NoError(t, err)
	popup2, err := p2Surface.GetPopup(602, p1Surface, p2)
	require.NoError(t, err)

	g1 := popup1.Geometry()
	g2 := popup2.Geometry()

	// A point inside popup1 but outside the nested popup2's rectangle
	// resolves to popup1 itself.
	require.Equal(t, p1Surface, toplevelSurface.PopupAt(g1.X, g1.Y))

	// A point inside popup2's rectangle (expressed in popup1-relative
	// coordinates, since popup2's geometry is relative to its parent)
	// resolves to popup2, the deepest match.
	require.Equal(t, p2Surface, toplevelSurface.PopupAt(g1.X+g2.X, g1.Y+g2.Y))

	// Outside every popup's rectangle, nothing is hit.
	require.Nil(t, toplevelSurface.PopupAt(-1000, -1000))

	// Destroying the nested popup removes it from the parent's child
	// list; the point that used to hit it now resolves to nothing
	// deeper than popup1.
	require.NoError(t, popup2.Destroy())
	require.Equal(t, p1Surface, toplevelSurface.PopupAt(g1.X+g2.X, g1.Y+g2.Y))
}
