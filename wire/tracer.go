package wire

import (
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// Tracer logs request/event traffic the way the reference dispatcher
// used to dump it straight to stdout with hex.Dump; here it is routed
// through a structured logger so it can be turned on or off per shell
// without recompiling.
type Tracer struct {
	log     logrus.FieldLogger
	enabled bool
}

// NewTracer builds a Tracer. A nil logger falls back to the standard
// logrus logger.
func NewTracer(log logrus.FieldLogger, enabled bool) *Tracer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracer{log: log, enabled: enabled}
}

// Enabled reports whether wire tracing is switched on.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// Event logs an outgoing server->client message.
func (t *Tracer) Event(objectID uint32, opcode uint16, payload []byte) {
	if !t.Enabled() {
		return
	}
	t.log.WithFields(logrus.Fields{
		"object": objectID,
		"opcode": opcode,
		"bytes":  len(payload),
	}).Debugf("event\n%s", hex.Dump(payload))
}

// Request logs an incoming client->server message.
func (t *Tracer) Request(objectID uint32, opcode uint16, payload []byte) {
	if !t.Enabled() {
		return
	}
	t.log.WithFields(logrus.Fields{
		"object": objectID,
		"opcode": opcode,
		"bytes":  len(payload),
	}).Debugf("request\n%s", hex.Dump(payload))
}
