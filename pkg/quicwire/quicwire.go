// Package quicwire binds the nwd1 frame protocol to QUIC. Each QUIC
// bidirectional stream carries one independent sequence of frames; the
// connection supplies multiplexing, ordering, and reliability.
package quicwire

import (
	"context"
	"crypto/tls"
	"errors"
	"net"

	"github.com/quic-go/quic-go"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

// ErrListenerClosed is returned by Accept after the listener is closed.
var ErrListenerClosed = errors.New("nwd1: listener closed")

// NextProto is the default ALPN protocol identifier for nwd1 over QUIC.
const NextProto = "nwd1"

// Option configures connections produced by Dial and Listen.
type Option func(*connOptions)

type connOptions struct {
	codec  wire.Codec
	maxLen uint32
}

// WithCodec sets the payload codec for all streams of a connection.
// Default: [wire.BinaryCodec].
func WithCodec(c wire.Codec) Option {
	return func(o *connOptions) { o.codec = c }
}

// WithMaxFrameLen sets the receive-side body length cap for all streams of
// a connection.
func WithMaxFrameLen(n uint32) Option {
	return func(o *connOptions) { o.maxLen = n }
}

func buildOptions(opts []Option) connOptions {
	o := connOptions{
		codec:  wire.NewBinaryCodec(),
		maxLen: wire.MaxFrameLen,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Dial establishes a QUIC connection to addr and wraps it for frame use.
func Dial(ctx context.Context, addr string, tlsConf *tls.Config, quicConf *quic.Config, opts ...Option) (*Conn, error) {
	conn, err := quic.DialAddr(ctx, addr, tlsConf, quicConf)
	if err != nil {
		return nil, err
	}
	return newConn(conn, buildOptions(opts)), nil
}

// Listener accepts QUIC connections and wraps them for frame use.
type Listener struct {
	ln   *quic.Listener
	opts connOptions
}

// Listen starts a QUIC listener on addr.
func Listen(addr string, tlsConf *tls.Config, quicConf *quic.Config, opts ...Option) (*Listener, error) {
	ln, err := quic.ListenAddr(addr, tlsConf, quicConf)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln, opts: buildOptions(opts)}, nil
}

// Accept blocks until the next connection arrives or ctx is canceled.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	conn, err := l.ln.Accept(ctx)
	if err != nil {
		return nil, err
	}
	return newConn(conn, l.opts), nil
}

// Addr returns the listener's local address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Close stops the listener. Established connections stay open.
func (l *Listener) Close() error {
	return l.ln.Close()
}
