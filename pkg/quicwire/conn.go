package quicwire

import (
	"context"
	"net"

	"github.com/google/uuid"
	"github.com/quic-go/quic-go"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

// Application error codes carried in QUIC CONNECTION_CLOSE frames.
const (
	CloseCodeNormal    quic.ApplicationErrorCode = 0x0
	CloseCodeProtocol  quic.ApplicationErrorCode = 0x1
	CloseCodeFrameSize quic.ApplicationErrorCode = 0x2
)

// Conn is a QUIC connection whose streams carry nwd1 frames. Every Conn is
// assigned a random session ID for logging and tracking.
type Conn struct {
	id   string
	conn quic.Connection
	opts connOptions
}

func newConn(conn quic.Connection, opts connOptions) *Conn {
	return &Conn{
		id:   uuid.New().String(),
		conn: conn,
		opts: opts,
	}
}

// ID returns the locally assigned session identifier.
func (c *Conn) ID() string {
	return c.id
}

// OpenStream opens a new bidirectional frame stream, blocking until the
// peer's stream limits allow it.
func (c *Conn) OpenStream(ctx context.Context) (*Stream, error) {
	s, err := c.conn.OpenStreamSync(ctx)
	if err != nil {
		return nil, err
	}
	return c.wrap(s), nil
}

// AcceptStream blocks until the peer opens a bidirectional frame stream.
func (c *Conn) AcceptStream(ctx context.Context) (*Stream, error) {
	s, err := c.conn.AcceptStream(ctx)
	if err != nil {
		return nil, err
	}
	return c.wrap(s), nil
}

func (c *Conn) wrap(s quic.Stream) *Stream {
	return &Stream{
		Stream: wire.NewStream(s,
			wire.WithCodec(c.opts.codec),
			wire.WithMaxFrameLen(c.opts.maxLen),
		),
		qs: s,
	}
}

// Close terminates the connection with an application error code. All
// streams of the connection become unusable.
func (c *Conn) Close(code quic.ApplicationErrorCode, reason string) error {
	return c.conn.CloseWithError(code, reason)
}

// Context returns a context that is canceled when the connection closes.
func (c *Conn) Context() context.Context {
	return c.conn.Context()
}

// LocalAddr returns the local network address.
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the peer's network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
