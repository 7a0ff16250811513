// Package wire holds the low-level conventions shared by whatever wire
// dispatcher embeds this handler: host byte order, fixed-point
// coordinate conversion, and message header framing. The dispatcher
// itself (socket I/O, opcode routing, resource identifier tracking) is
// out of scope for this module and lives entirely in the embedder.
package wire

import (
	"encoding/binary"
	"unsafe"
)

// hostByteOrder matches the running architecture, same as the Wayland
// wire format requires (messages are native-endian, not fixed endian).
var hostByteOrder binary.ByteOrder

func init() {
	var endianCheck uint32 = 0x1
	b := (*[4]byte)(unsafe.Pointer(&endianCheck))
	if b[0] == 1 {
		hostByteOrder = binary.LittleEndian
	} else {
		hostByteOrder = binary.BigEndian
	}
}

// HostByteOrder returns the byte order a dispatcher should use when
// framing messages for this process.
func HostByteOrder() binary.ByteOrder {
	return hostByteOrder
}

// FixedToFloat64 converts a wire "fixed" (24.8 signed fixed-point)
// value, as used by pointer motion and axis events, into a float64.
func FixedToFloat64(fixed int32) float64 {
	return float64(fixed) / 256.0
}

// Float64ToFixed is the inverse of FixedToFloat64.
func Float64ToFixed(f float64) int32 {
	return int32(f * 256.0)
}

// DecodeHeader splits a raw 8-byte wire message header into the
// object id it targets, the opcode, and the total message size
// (including the header itself).
func DecodeHeader(buf []byte) (id uint32, opcode uint16, size int) {
	id = hostByteOrder.Uint32(buf[:4])
	arg2 := hostByteOrder.Uint32(buf[4:8])
	opcode = uint16(arg2 & 0xFFFF)
	size = int(arg2 >> 16)
	return
}

// EncodeHeader writes an 8-byte wire message header for an outgoing
// event or request.
func EncodeHeader(buf []byte, id uint32, opcode uint16, size int) {
	hostByteOrder.PutUint32(buf[0:4], id)
	hostByteOrder.PutUint32(buf[4:8], uint32(size)<<16|uint32(opcode))
}
