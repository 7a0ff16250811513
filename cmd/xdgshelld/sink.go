package main

import (
	"github.com/sirupsen/logrus"

	"github.com/elliotmr/xdgshell/wire"
)

// Synthetic opcodes for the trace helper below. The real dispatcher
// this package stands in for would assign these from the xdg-shell
// protocol XML; without one, these only need to be distinct enough
// for the hex dump to tell events apart.
const (
	opPing              uint16 = 0
	opSurfaceConfigure  uint16 = 1
	opToplevelConfigure uint16 = 2
	opToplevelClose     uint16 = 3
	opPopupConfigure    uint16 = 4
	opPopupRepositioned uint16 = 5
	opPopupDone         uint16 = 6
)

// logSink is a collab.EventSink/collab.ErrorPoster that logs every
// outgoing event instead of framing it onto a real socket — standing
// in for the wire dispatcher this handler treats as out of scope. It
// also frames a synthetic header for each event through wire.Tracer,
// demonstrating the header codec a real dispatcher would use to
// actually put bytes on the wire.
type logSink struct {
	log    logrus.FieldLogger
	tracer *wire.Tracer

	pingSerial uint32
}

// lastPingSerial returns the serial of the most recent ping this sink
// observed, for the demo sequence to hand back through Client.Pong
// standing in for a real client's response.
func (s *logSink) lastPingSerial() uint32 { return s.pingSerial }

func (s *logSink) trace(id uint32, opcode uint16, args ...uint32) {
	if !s.tracer.Enabled() {
		return
	}
	buf := make([]byte, 8+4*len(args))
	wire.EncodeHeader(buf, id, opcode, len(buf))
	for i, a := range args {
		wire.HostByteOrder().PutUint32(buf[8+4*i:], a)
	}
	s.tracer.Event(id, opcode, buf)
}

func (s *logSink) WmBasePing(wmBaseID uint32, serial uint32) {
	s.pingSerial = serial
	s.log.WithFields(logrus.Fields{"wm_base": wmBaseID, "serial": serial}).Debugln("-> ping")
	s.trace(wmBaseID, opPing, serial)
}

func (s *logSink) XdgSurfaceConfigure(surfaceID uint32, serial uint32) {
	s.log.WithFields(logrus.Fields{"surface": surfaceID, "serial": serial}).Debugln("-> xdg_surface.configure")
	s.trace(surfaceID, opSurfaceConfigure, serial)
}

func (s *logSink) ToplevelConfigure(toplevelID uint32, width, height int32, states []uint32) {
	s.log.WithFields(logrus.Fields{
		"toplevel": toplevelID, "width": width, "height": height, "states": states,
	}).Debugln("-> xdg_toplevel.configure")
	args := append([]uint32{uint32(width), uint32(height)}, states...)
	s.trace(toplevelID, opToplevelConfigure, args...)
}

func (s *logSink) ToplevelClose(toplevelID uint32) {
	s.log.WithField("toplevel", toplevelID).Debugln("-> xdg_toplevel.close")
	s.trace(toplevelID, opToplevelClose)
}

func (s *logSink) PopupConfigure(popupID uint32, x, y, width, height int32) {
	s.log.WithFields(logrus.Fields{
		"popup": popupID, "x": x, "y": y, "width": width, "height": height,
	}).Debugln("-> xdg_popup.configure")
	s.trace(popupID, opPopupConfigure, uint32(x), uint32(y), uint32(width), uint32(height))
}

func (s *logSink) PopupRepositioned(popupID uint32, token uint32) {
	s.log.WithFields(logrus.Fields{"popup": popupID, "token": token}).Debugln("-> xdg_popup.repositioned")
	s.trace(popupID, opPopupRepositioned, token)
}

func (s *logSink) PopupDone(popupID uint32) {
	s.log.WithField("popup", popupID).Debugln("-> xdg_popup.popup_done")
	s.trace(popupID, opPopupDone)
}

func (s *logSink) PostError(resourceID uint32, code uint32, message string) {
	s.log.WithFields(logrus.Fields{"resource": resourceID, "code": code}).Errorln(message)
}
