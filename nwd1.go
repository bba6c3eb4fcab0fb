// Package nwd1 is the public facade for the nwd1 length-prefixed frame
// protocol.
//
// Example usage over any reliable ordered byte stream:
//
//	codec := nwd1.NewBinaryCodec()
//	if err := nwd1.SendFrame(conn, codec, &nwd1.Frame{
//	    ID:      nwd1.MakeNetID(1, 7, 42),
//	    Kind:    1,
//	    Ver:     1,
//	    Payload: []byte("ping"),
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := nwd1.RecvFrame(conn, codec)
//	if err == io.EOF {
//	    // peer finished cleanly at a frame boundary
//	}
//
// The full protocol lives in [pkg/wire]; QUIC integration lives in
// [pkg/quicwire].
package nwd1

import (
	"io"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

// Frame is a discrete message with identifier, kind, version, and opaque
// payload bytes.
type Frame = wire.Frame

// NetID is a packed 64-bit network identifier.
type NetID = wire.NetID

// Codec converts between a Frame and its full wire image.
type Codec = wire.Codec

// Stream binds a byte stream to a codec for frame-level use.
type Stream = wire.Stream

// MaxFrameLen is the maximum frame body length accepted by readers.
const MaxFrameLen = wire.MaxFrameLen

// Framing errors, re-exported for errors.Is checks.
var (
	ErrBadMagic       = wire.ErrBadMagic
	ErrFrameTooLarge  = wire.ErrFrameTooLarge
	ErrTruncatedFrame = wire.ErrTruncatedFrame
	ErrDecodeFailed   = wire.ErrDecodeFailed
)

// MakeNetID packs a space, node, and sequence number into a NetID.
func MakeNetID(space, node uint16, seq uint32) NetID {
	return wire.MakeNetID(space, node, seq)
}

// NewBinaryCodec returns the default payload codec.
func NewBinaryCodec() Codec {
	return wire.NewBinaryCodec()
}

// SendFrame writes one frame to w. See [wire.SendFrame].
func SendFrame(w io.Writer, c Codec, f *Frame) error {
	return wire.SendFrame(w, c, f)
}

// RecvFrame reads one frame from r. It returns io.EOF only for a clean
// end-of-stream at a frame boundary. See [wire.RecvFrame].
func RecvFrame(r io.Reader, c Codec) (*Frame, error) {
	return wire.RecvFrame(r, c)
}

// NewStream wraps rw for frame-level use. See [wire.NewStream].
func NewStream(rw io.ReadWriter, opts ...wire.StreamOption) *Stream {
	return wire.NewStream(rw, opts...)
}
