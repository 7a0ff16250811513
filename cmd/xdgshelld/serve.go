package main

import (
	"github.com/spf13/cobra"

	"github.com/elliotmr/xdgshell/xdgshell"
	"github.com/elliotmr/xdgshell/basesurface"
	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/config"
	"github.com/elliotmr/xdgshell/loop"
	"github.com/elliotmr/xdgshell/memseat"
	"github.com/elliotmr/xdgshell/wire"
)

// runServe loads configuration, wires a Shell to the in-process loop
// and seat, and drives one synthetic client through mapping a
// toplevel and a child popup — standing in for what a real wire
// dispatcher would do on every client connection. There is no actual
// Wayland socket here; this exists so the handler can be exercised
// end to end outside of the test suite.
func runServe(cmd *cobra.Command, _ []string) error {
	log := newLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if traceWire {
		cfg.TraceWire = true
	}

	serial := &wire.Serial{}
	l := loop.New()
	sink := &logSink{log: log, tracer: wire.NewTracer(log, cfg.TraceWire)}

	shell := xdgshell.NewShell(xdgshell.Config{
		Loop:          l,
		Sink:          sink,
		ErrorPoster:   sink,
		Serial:        serial,
		Log:           log,
		PingTimeoutMS: cfg.PingTimeoutMS,
	})

	shell.OnNewSurface(func(ev xdgshell.NewSurfaceEvent) {
		log.WithField("surface", ev.Surface.ID()).Info("surface mapped")
	})

	seat := memseat.New(serial)

	client := shell.NewClient(collab.ClientID(1), 100)

	toplevelBase := basesurface.New(200)
	toplevelSurface, err := client.NewXdgSurface(201, toplevelBase)
	if err != nil {
		return err
	}
	toplevel, err := toplevelSurface.GetToplevel(202)
	if err != nil {
		return err
	}
	toplevel.SetTitle("xdgshelld demo window")
	toplevel.SetAppId("org.example.xdgshelld")

	toplevelBase.Commit() // initial null-commit, requests the first configure
	l.Run()
	ackLatest(toplevelSurface)

	toplevel.SetSize(640, 480)
	toplevel.SetActivated(true)
	l.Run()
	ackLatest(toplevelSurface)

	toplevelBase.AttachBuffer()
	toplevelBase.Commit()

	seat.Focus(client.ID(), toplevelSurface.ID())

	positioner := shell.CreatePositioner(300)
	_ = positioner.SetSize(120, 80)
	_ = positioner.SetAnchorRect(0, 0, toplevel.Current().W, toplevel.Current().H)
	_ = positioner.SetAnchor(xdgshell.AnchorBottom)
	_ = positioner.SetGravity(xdgshell.GravityBottom)

	popupBase := basesurface.New(400)
	popupSurface, err := client.NewXdgSurface(401, popupBase)
	if err != nil {
		return err
	}
	popup, err := popupSurface.GetPopup(402, toplevelSurface, positioner)
	if err != nil {
		return err
	}

	// grab before the popup's first commit: once mapped, a grab is
	// refused with INVALID_GRAB.
	if err := popup.Grab(seat, seat.NextSerial()); err != nil {
		log.WithError(err).Warn("popup grab denied")
	}

	popupBase.Commit()
	l.Run()
	ackLatest(popupSurface)

	popupBase.AttachBuffer()
	popupBase.Commit()

	client.Ping()
	client.Pong(sink.lastPingSerial())

	log.Info("demo sequence complete, tearing down")
	client.Destroy()

	return nil
}

// ackLatest acknowledges every configure currently outstanding on s,
// standing in for the client's own xdg_surface.ack_configure request.
func ackLatest(s *xdgshell.Surface) {
	pending := s.PendingConfigureSerials()
	if len(pending) == 0 {
		return
	}
	_ = s.AckConfigure(pending[len(pending)-1])
}
