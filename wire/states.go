package wire

// xdg_toplevel state wire values. The configure event carries these
// as a uint32 array, one slot per active state, rather than a
// bitmask.
const (
	ToplevelStateMaximized  uint32 = 1
	ToplevelStateFullscreen uint32 = 2
	ToplevelStateResizing   uint32 = 3
	ToplevelStateActivated  uint32 = 4
)
