package wire

import "io"

// Stream binds a reliable ordered byte stream to a codec so frames can be
// sent and received without threading the codec through every call.
//
// A Stream holds no locks. Reads and writes on one direction are strictly
// sequential: at most one Recv and one Send may be in flight at a time,
// typically from a dedicated reader goroutine and writer goroutine.
// Independent streams are fully independent.
type Stream struct {
	rw     io.ReadWriter
	codec  Codec
	maxLen uint32
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithCodec sets the payload codec. Default: [BinaryCodec].
func WithCodec(c Codec) StreamOption {
	return func(s *Stream) { s.codec = c }
}

// WithMaxFrameLen overrides the receive-side body length cap. The cap is
// still checked strictly before any body buffer is allocated. Values above
// [MaxFrameLen] or zero are ignored.
func WithMaxFrameLen(n uint32) StreamOption {
	return func(s *Stream) {
		if n > 0 && n <= MaxFrameLen {
			s.maxLen = n
		}
	}
}

// NewStream wraps rw for frame-level use.
func NewStream(rw io.ReadWriter, opts ...StreamOption) *Stream {
	s := &Stream{
		rw:     rw,
		codec:  NewBinaryCodec(),
		maxLen: MaxFrameLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recv reads the next frame. See [RecvFrame] for the outcome contract.
func (s *Stream) Recv() (*Frame, error) {
	return recvFrame(s.rw, s.codec, s.maxLen)
}

// Send writes one frame. See [SendFrame].
func (s *Stream) Send(f *Frame) error {
	return SendFrame(s.rw, s.codec, f)
}

// MaxFrameLen returns the stream's receive-side body length cap.
func (s *Stream) MaxFrameLen() uint32 {
	return s.maxLen
}
