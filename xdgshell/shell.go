package xdgshell

import (
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/wire"
	"github.com/sirupsen/logrus"
)

// DefaultPingTimeoutMS matches the teacher stack's convention of a
// generous, double-digit-second grace period before a client is
// presumed wedged.
const DefaultPingTimeoutMS = 10000

// ConstraintAdjuster is the pluggable hook for popup placement
// policy. The core computes an unconstrained rectangle and, only when
// the positioner's constraint mask is non-zero, hands it to this
// callback together with the positioner and its anchor rectangle.
// Returning the candidate unchanged is always a valid policy.
type ConstraintAdjuster func(candidate Rect, p *Positioner, anchorRect Rect) Rect

// Shell is the per-compositor global: it owns the serial source, the
// wire event sink, the event loop, and the set of live popup grab
// chains (one per seat that currently has a popup grabbing it).
type Shell struct {
	log  logrus.FieldLogger
	loop collab.Loop
	sink collab.EventSink
	errp collab.ErrorPoster

	serial        *wire.Serial
	pingTimeoutMS int

	// ConstraintAdjuster is consulted by Positioner.Geometry whenever
	// a positioner's constraint_adjustment mask is non-zero. Nil
	// means "no policy configured" — the unconstrained geometry is
	// returned unchanged, which is also the correct behavior per the
	// core's non-goals.
	ConstraintAdjuster ConstraintAdjuster

	onNewSurface signal[NewSurfaceEvent]

	grabChains map[collab.Seat]*PopupGrabChain
}

// Config carries the collaborators and tunables a Shell needs. Loop
// and Sink are required; ErrorPoster, Serial, Log and PingTimeoutMS
// have usable defaults (a nil ErrorPoster simply never posts, a nil
// Serial is replaced by a fresh counter, Log falls back to
// logrus.StandardLogger(), a zero PingTimeoutMS becomes
// DefaultPingTimeoutMS).
type Config struct {
	Loop          collab.Loop
	Sink          collab.EventSink
	ErrorPoster   collab.ErrorPoster
	Serial        *wire.Serial
	Log           logrus.FieldLogger
	PingTimeoutMS int
}

// NewShell wires up a Shell from its collaborators.
func NewShell(cfg Config) *Shell {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	serial := cfg.Serial
	if serial == nil {
		serial = &wire.Serial{}
	}
	timeout := cfg.PingTimeoutMS
	if timeout == 0 {
		timeout = DefaultPingTimeoutMS
	}
	return &Shell{
		log:           log,
		loop:          cfg.Loop,
		sink:          cfg.Sink,
		errp:          cfg.ErrorPoster,
		serial:        serial,
		pingTimeoutMS: timeout,
		grabChains:    make(map[collab.Seat]*PopupGrabChain),
	}
}

// NewClient registers a newly bound client. wmBaseID is the resource
// id of that client's xdg_wm_base object — wm_base-namespaced
// protocol errors (ROLE, INVALID_POSITIONER, NOT_THE_TOPMOST_POPUP,
// INVALID_SURFACE_STATE) are posted against it.
func (s *Shell) NewClient(id collab.ClientID, wmBaseID uint32) *Client {
	s.log.WithFields(logrus.Fields{"client": id, "wm_base": wmBaseID}).Debug("xdg_wm_base bound")
	return &Client{shell: s, id: id, wmBaseID: wmBaseID}
}

// OnNewSurface registers a listener fired the first time any
// role-bearing surface created by this shell completes its first
// configure/ack/commit round trip.
func (s *Shell) OnNewSurface(fn func(NewSurfaceEvent)) { s.onNewSurface.On(fn) }

func (s *Shell) grabChain(seat collab.Seat) *PopupGrabChain {
	chain, ok := s.grabChains[seat]
	if !ok {
		chain = &PopupGrabChain{shell: s, seat: seat}
		s.grabChains[seat] = chain
	}
	return chain
}

func (s *Shell) dropGrabChain(chain *PopupGrabChain) {
	delete(s.grabChains, chain.seat)
}
