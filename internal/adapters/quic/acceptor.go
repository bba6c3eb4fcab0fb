// Package quic adapts the quicwire transport to the relay's ports.
package quic

import (
	"context"

	"github.com/nwd-labs/nwd1/internal/ports"
	"github.com/nwd-labs/nwd1/pkg/quicwire"
)

// Acceptor implements ports.Acceptor over a quicwire listener.
type Acceptor struct {
	ln *quicwire.Listener
}

// NewAcceptor wraps a quicwire listener.
func NewAcceptor(ln *quicwire.Listener) *Acceptor {
	return &Acceptor{ln: ln}
}

// Accept blocks until the next QUIC connection arrives.
func (a *Acceptor) Accept(ctx context.Context) (ports.Session, error) {
	conn, err := a.ln.Accept(ctx)
	if err != nil {
		return nil, err
	}
	return &session{conn: conn}, nil
}

// Close stops the listener.
func (a *Acceptor) Close() error {
	return a.ln.Close()
}

// session implements ports.Session over a quicwire connection.
type session struct {
	conn *quicwire.Conn
}

func (s *session) ID() string {
	return s.conn.ID()
}

func (s *session) AcceptStream(ctx context.Context) (ports.FrameStream, error) {
	st, err := s.conn.AcceptStream(ctx)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *session) Close(reason string) error {
	return s.conn.Close(quicwire.CloseCodeProtocol, reason)
}
