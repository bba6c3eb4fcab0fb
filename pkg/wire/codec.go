package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Codec converts between a structured [Frame] and its full wire image
// (header plus body). Implementations must be safe for use from one
// goroutine per stream direction; they are not required to be safe for
// concurrent use on the same stream.
type Codec interface {
	// Encode serializes the frame into one contiguous byte sequence,
	// header included.
	Encode(f *Frame) ([]byte, error)

	// Decode parses a complete wire image (header plus body) back into
	// a frame. The returned frame must not alias p.
	Decode(p []byte) (*Frame, error)
}

// Body layout of the default codec, after the 8-byte frame header:
//
//	[8 bytes] id, unsigned big-endian
//	[1 byte]  kind
//	[1 byte]  ver
//	[N bytes] payload
const binaryBodyPrefix = 10

// BinaryCodec is the default payload codec. Its body layout is a fixed
// 10-byte prefix (id, kind, ver) followed by the raw payload.
type BinaryCodec struct{}

// NewBinaryCodec returns the default codec.
func NewBinaryCodec() *BinaryCodec {
	return &BinaryCodec{}
}

// Encode serializes f with the default body layout.
func (*BinaryCodec) Encode(f *Frame) ([]byte, error) {
	bodyLen := binaryBodyPrefix + len(f.Payload)
	if bodyLen > MaxFrameLen {
		return nil, ErrFrameTooLarge
	}

	buf := make([]byte, HeaderLen+bodyLen)
	copy(buf[0:4], Magic[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(bodyLen))
	binary.BigEndian.PutUint64(buf[8:16], f.ID.Raw())
	buf[16] = f.Kind
	buf[17] = f.Ver
	copy(buf[HeaderLen+binaryBodyPrefix:], f.Payload)
	return buf, nil
}

// Decode parses a complete wire image produced by Encode.
func (*BinaryCodec) Decode(p []byte) (*Frame, error) {
	if len(p) < HeaderLen {
		return nil, fmt.Errorf("nwd1: short buffer: %d bytes", len(p))
	}
	if !bytes.Equal(p[0:4], Magic[:]) {
		return nil, ErrBadMagic
	}
	bodyLen := binary.BigEndian.Uint32(p[4:8])
	if int(bodyLen) != len(p)-HeaderLen {
		return nil, fmt.Errorf("nwd1: declared body length %d, have %d", bodyLen, len(p)-HeaderLen)
	}
	if bodyLen < binaryBodyPrefix {
		return nil, fmt.Errorf("nwd1: body too short for frame fields: %d bytes", bodyLen)
	}

	payload := make([]byte, len(p)-HeaderLen-binaryBodyPrefix)
	copy(payload, p[HeaderLen+binaryBodyPrefix:])

	return &Frame{
		ID:      NetID(binary.BigEndian.Uint64(p[8:16])),
		Kind:    p[16],
		Ver:     p[17],
		Payload: payload,
	}, nil
}
