package ports

import (
	"context"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

// Acceptor yields inbound peer sessions.
type Acceptor interface {
	// Accept blocks until the next session arrives, ctx is canceled, or
	// the underlying listener closes.
	Accept(ctx context.Context) (Session, error)

	// Close stops accepting. Established sessions stay open.
	Close() error
}

// Session is one peer connection able to carry multiple frame streams.
type Session interface {
	// ID identifies the session for logging and tracking.
	ID() string

	// AcceptStream blocks until the peer opens a frame stream.
	AcceptStream(ctx context.Context) (FrameStream, error)

	// RemoteAddr describes the peer for logging.
	RemoteAddr() string

	// Close terminates the session and all its streams.
	Close(reason string) error
}

// FrameStream carries discrete frames over one reliable ordered byte
// stream. Implementations hold no locks: the relay runs exactly one reader
// and one writer goroutine per stream.
type FrameStream interface {
	// Recv returns the next frame, io.EOF on a clean end-of-stream, or
	// one of the wire package's framing errors.
	Recv() (*wire.Frame, error)

	// Send writes one frame.
	Send(f *wire.Frame) error

	// Close closes the write direction, signaling a clean end to the peer.
	Close() error
}
