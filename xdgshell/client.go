package xdgshell

import (
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/internal/slist"
	"github.com/elliotmr/xdgshell/wire"
)

// Client is the per-connection state this handler tracks: the set of
// live xdg_surface objects it created, and its single outstanding
// ping.
type Client struct {
	shell    *Shell
	id       collab.ClientID
	wmBaseID uint32

	surfaces slist.List[*Surface]

	pingSerial uint32
	pingTimer  collab.TimerHandle
}

// ID returns the client identifier this Client was registered under.
func (c *Client) ID() collab.ClientID { return c.id }

func (c *Client) wmBaseError(code uint32, message string) *ProtocolError {
	return c.shell.post(&ProtocolError{Resource: c.wmBaseID, Code: code, Message: message})
}

// NewXdgSurface wraps a generic surface primitive with xdg_surface
// state. id is the resource id the dispatcher allocated for the
// get_xdg_surface request. It is a protocol error to do this over a
// base surface that already has a buffer attached.
func (c *Client) NewXdgSurface(id uint32, base collab.Surface) (*Surface, error) {
	if base.HasBuffer() {
		return nil, c.wmBaseError(wire.SurfaceErrorUnconfiguredBuffer,
			"xdg_wm_base.get_xdg_surface: surface already has a buffer attached")
	}

	s := &Surface{
		shell:  c.shell,
		client: c,
		id:     id,
		base:   base,
		role:   RoleNone,
	}
	s.clientEntry = c.surfaces.Add(s)

	base.OnCommit(func(hasBuffer bool) { s.onCommit(hasBuffer) })
	base.OnDestroy(func() { s.Destroy() })

	return s, nil
}

// Ping reserves a serial, arms the ping timer and sends ping(serial)
// to the client. A ping already in flight is replaced.
func (c *Client) Ping() {
	if c.pingTimer != 0 {
		c.shell.loop.StopTimer(c.pingTimer)
	}
	c.pingSerial = c.shell.serial.Next()
	c.pingTimer = c.shell.loop.AfterFunc(c.shell.pingTimeoutMS, func() { c.onPingTimeout() })
	c.shell.sink.WmBasePing(c.wmBaseID, c.pingSerial)
}

// Pong handles an xdg_wm_base.pong request. A serial that doesn't
// match the outstanding ping is silently ignored, per the wire
// protocol's tolerance for stale pongs.
func (c *Client) Pong(serial uint32) {
	if c.pingTimer == 0 || serial != c.pingSerial {
		return
	}
	c.shell.loop.StopTimer(c.pingTimer)
	c.pingTimer = 0
}

func (c *Client) onPingTimeout() {
	c.pingTimer = 0
	c.shell.log.WithField("client", c.id).Warn("xdg_wm_base ping timed out")
	slist.Emit(&c.surfaces, func(s *Surface) {
		s.onPingTimeout.emit(PingTimeoutEvent{Surface: s})
	})
}

// Destroy tears down every surface the client owns and disarms its
// ping timer. Safe to call more than once.
func (c *Client) Destroy() {
	if c.pingTimer != 0 {
		c.shell.loop.StopTimer(c.pingTimer)
		c.pingTimer = 0
	}
	slist.Emit(&c.surfaces, func(s *Surface) { s.Destroy() })
	c.shell.log.WithField("client", c.id).Debug("client destroyed")
}
