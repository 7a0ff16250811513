package wire

// Protocol error codes, namespaced by the resource that posts them.
// These mirror the xdg-shell wire protocol's error enums; a client
// that triggers one of these is in violation of the protocol and the
// embedding dispatcher is expected to tear down the connection after
// the error is posted.
const (
	WMBaseErrorRole                = 0
	WMBaseErrorDefunctSurfaces     = 1
	WMBaseErrorNotTheTopmostPopup  = 2
	WMBaseErrorInvalidPopupParent  = 3
	WMBaseErrorInvalidSurfaceState = 4
	WMBaseErrorInvalidPositioner   = 5
)

const (
	SurfaceErrorNotConstructed     = 1
	SurfaceErrorAlreadyConstructed = 2
	SurfaceErrorUnconfiguredBuffer = 3
)

const (
	PositionerErrorInvalidInput = 0
)

const (
	PopupErrorInvalidGrab = 0
)
