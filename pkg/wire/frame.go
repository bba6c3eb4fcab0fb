package wire

import "fmt"

// Header layout constants. The header is a fixed 8-byte prefix:
// 4 magic bytes followed by a big-endian uint32 body length.
const (
	// HeaderLen is the size of the fixed frame header in bytes.
	HeaderLen = 8

	// MaxFrameLen is the maximum body length a reader will accept.
	// Larger declared lengths are rejected before any allocation.
	MaxFrameLen = 8 * 1024 * 1024 // 8 MiB
)

// Magic is the fixed byte sequence that starts every frame header.
// A mismatch means the stream is desynchronized or corrupted.
var Magic = [4]byte{'N', 'W', 'D', '1'}

// Frame is a discrete message carried by the framing layer. The framing
// layer treats the payload as opaque; after a frame is returned from a
// read it is owned solely by the caller.
type Frame struct {
	// ID identifies the originating entity on the network.
	ID NetID

	// Kind tags the payload's message type. The framing layer assigns
	// no meaning to it.
	Kind uint8

	// Ver is the payload schema version.
	Ver uint8

	// Payload is the opaque message content.
	Payload []byte
}

// NetID is a packed 64-bit network identifier:
// 16-bit space, 16-bit node, 32-bit sequence.
type NetID uint64

// MakeNetID packs a space, node, and sequence number into a NetID.
func MakeNetID(space, node uint16, seq uint32) NetID {
	return NetID(uint64(space)<<48 | uint64(node)<<32 | uint64(seq))
}

// Space returns the 16-bit space component.
func (id NetID) Space() uint16 { return uint16(id >> 48) }

// Node returns the 16-bit node component.
func (id NetID) Node() uint16 { return uint16(id >> 32) }

// Seq returns the 32-bit sequence component.
func (id NetID) Seq() uint32 { return uint32(id) }

// Raw returns the packed 64-bit value.
func (id NetID) Raw() uint64 { return uint64(id) }

// String renders the ID as space/node/seq for logs.
func (id NetID) String() string {
	return fmt.Sprintf("%d/%d/%d", id.Space(), id.Node(), id.Seq())
}
