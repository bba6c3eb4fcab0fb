package quicwire

import (
	"time"

	"github.com/quic-go/quic-go"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

// Stream is one bidirectional QUIC stream carrying nwd1 frames. Recv and
// Send come from the embedded [wire.Stream]; the frame-level concurrency
// contract applies unchanged (one reader, one writer, each exclusive).
type Stream struct {
	*wire.Stream
	qs quic.Stream
}

// StreamID returns the QUIC stream ID.
func (s *Stream) StreamID() quic.StreamID {
	return s.qs.StreamID()
}

// Close closes the write direction. A peer mid-Recv on this stream observes
// a clean end once all written frames are consumed.
func (s *Stream) Close() error {
	return s.qs.Close()
}

// Abort abandons the stream in both directions without waiting for
// in-flight data. After an abandoned frame operation the stream cursor is
// indeterminate, so this is the only safe way to give up on one.
func (s *Stream) Abort(code quic.StreamErrorCode) {
	s.qs.CancelRead(code)
	s.qs.CancelWrite(code)
}

// SetDeadline bounds both blocking Recv and Send. Expired deadlines surface
// as transport errors, not as truncation.
func (s *Stream) SetDeadline(t time.Time) error {
	return s.qs.SetDeadline(t)
}
