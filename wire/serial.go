package wire

import "sync/atomic"

// Serial is the shared, monotonically increasing counter the display
// draws request/event correlation serials from. A single Serial is
// shared across every protocol object in a shell; configure serials,
// grab serials and ping serials are all drawn from the same source so
// that "serial S happened before serial S+1" holds globally.
type Serial struct {
	last uint32
}

// Next reserves and returns the next serial value. Never returns 0,
// so callers may use 0 as a sentinel for "no serial reserved".
func (s *Serial) Next() uint32 {
	return atomic.AddUint32(&s.last, 1)
}
