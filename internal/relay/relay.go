// Package relay implements the nwd1 frame relay service: it accepts peer
// sessions from an injected transport, reads frames off each stream, and
// answers them by handler or by echo.
package relay

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/nwd-labs/nwd1/internal/ports"
	"github.com/nwd-labs/nwd1/pkg/log"
	"github.com/nwd-labs/nwd1/pkg/wire"
)

// outboundBuffer is the per-stream reply queue depth. The reader blocks
// once the writer falls this far behind, which backpressures the peer.
const outboundBuffer = 16

// Handler processes one inbound frame and returns the reply frame, or nil
// for no reply. Handlers run on the stream's reader goroutine.
type Handler func(f *wire.Frame) (*wire.Frame, error)

// Relay accepts sessions and serves their frame streams. Each stream gets
// exactly one reader goroutine and one writer goroutine, honoring the
// protocol's one-operation-in-flight-per-direction contract.
type Relay struct {
	acceptor ports.Acceptor
	logger   log.Logger
	metrics  *Metrics
	echo     atomic.Bool

	mu       sync.RWMutex
	handlers map[uint8]Handler

	wg sync.WaitGroup
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l log.Logger) Option {
	return func(r *Relay) { r.logger = l }
}

// WithMetrics sets the metrics set. Default: a set on a private registry.
func WithMetrics(m *Metrics) Option {
	return func(r *Relay) { r.metrics = m }
}

// WithEcho enables or disables echoing frames that no handler claims.
// Default: enabled.
func WithEcho(enabled bool) Option {
	return func(r *Relay) { r.echo.Store(enabled) }
}

// New creates a relay serving sessions from acceptor.
func New(acceptor ports.Acceptor, opts ...Option) *Relay {
	r := &Relay{
		acceptor: acceptor,
		logger:   log.NewNoopLogger(),
		handlers: make(map[uint8]Handler),
	}
	r.echo.Store(true)
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(nil)
	}
	return r
}

// Handle registers a handler for frames of the given kind, replacing any
// previous handler for that kind.
func (r *Relay) Handle(kind uint8, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

// SetEcho toggles echoing at runtime. Used by config hot reload.
func (r *Relay) SetEcho(enabled bool) {
	r.echo.Store(enabled)
}

// Echo reports whether unclaimed frames are echoed.
func (r *Relay) Echo() bool {
	return r.echo.Load()
}

// Run accepts sessions until ctx is canceled or the acceptor fails.
// It returns after all session goroutines have drained.
func (r *Relay) Run(ctx context.Context) error {
	defer r.wg.Wait()

	for {
		sess, err := r.acceptor.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		r.metrics.SessionsTotal.Inc()
		r.metrics.ActiveSessions.Inc()
		r.logger.Info("session accepted",
			log.String("session", sess.ID()),
			log.String("remote", sess.RemoteAddr()),
		)

		r.wg.Add(1)
		go r.serveSession(ctx, sess)
	}
}

func (r *Relay) serveSession(ctx context.Context, sess ports.Session) {
	defer r.wg.Done()
	defer r.metrics.ActiveSessions.Dec()

	// Closing the session on cancel errors out any Recv blocked in a
	// stream goroutine, so shutdown never hangs on a quiet peer.
	var streams sync.WaitGroup
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = sess.Close("shutting down")
		case <-done:
		}
	}()

	for {
		st, err := sess.AcceptStream(ctx)
		if err != nil {
			if ctx.Err() == nil {
				r.logger.Debug("session ended",
					log.String("session", sess.ID()),
					log.Err(err),
				)
			}
			// The session must stay closable until its last stream
			// goroutine finishes.
			streams.Wait()
			close(done)
			return
		}

		r.metrics.ActiveStreams.Inc()
		streams.Add(1)
		go func() {
			defer streams.Done()
			r.serveStream(ctx, sess, st)
		}()
	}
}

// serveStream is the stream's reader goroutine; it spawns the single
// writer goroutine and feeds it through the reply queue.
func (r *Relay) serveStream(ctx context.Context, sess ports.Session, st ports.FrameStream) {
	defer r.metrics.ActiveStreams.Dec()

	out := make(chan *wire.Frame, outboundBuffer)

	var writerWG sync.WaitGroup
	writerWG.Add(1)
	go func() {
		defer writerWG.Done()
		r.writeLoop(sess, st, out)
	}()

	r.readLoop(ctx, sess, st, out)

	close(out)
	writerWG.Wait()
	if err := st.Close(); err != nil {
		r.logger.Debug("stream close", log.String("session", sess.ID()), log.Err(err))
	}
}

func (r *Relay) readLoop(ctx context.Context, sess ports.Session, st ports.FrameStream, out chan<- *wire.Frame) {
	for {
		f, err := st.Recv()
		if err != nil {
			if ctx.Err() != nil {
				// Shutdown closed the session under us.
				return
			}
			r.handleRecvError(sess, err)
			if errors.Is(err, wire.ErrDecodeFailed) {
				// The cursor sits at the next frame boundary; the
				// relay's documented policy is to skip the frame.
				continue
			}
			return
		}

		r.metrics.FramesReceived.Inc()
		r.metrics.BytesReceived.Add(float64(len(f.Payload)))

		resp, err := r.dispatch(f)
		if err != nil {
			r.logger.Warn("handler failed",
				log.String("session", sess.ID()),
				log.Int("kind", int(f.Kind)),
				log.Err(err),
			)
			continue
		}
		if resp == nil {
			continue
		}

		select {
		case out <- resp:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Relay) handleRecvError(sess ports.Session, err error) {
	switch {
	case errors.Is(err, io.EOF):
		// Peer half-closed exactly at a frame boundary.
	case errors.Is(err, wire.ErrDecodeFailed):
		r.metrics.RecvErrors.WithLabelValues("decode").Inc()
		r.logger.Warn("undecodable frame skipped", log.String("session", sess.ID()), log.Err(err))
	case errors.Is(err, wire.ErrBadMagic):
		r.metrics.RecvErrors.WithLabelValues("magic").Inc()
		r.logger.Error("stream desynchronized", log.String("session", sess.ID()), log.Err(err))
		_ = sess.Close("bad magic")
	case errors.Is(err, wire.ErrFrameTooLarge):
		r.metrics.RecvErrors.WithLabelValues("too_large").Inc()
		r.logger.Error("frame over length cap", log.String("session", sess.ID()), log.Err(err))
		_ = sess.Close("frame too large")
	case errors.Is(err, wire.ErrTruncatedFrame):
		r.metrics.RecvErrors.WithLabelValues("truncated").Inc()
		r.logger.Warn("peer ended mid-frame", log.String("session", sess.ID()), log.Err(err))
	default:
		r.metrics.RecvErrors.WithLabelValues("transport").Inc()
		r.logger.Warn("transport read failed", log.String("session", sess.ID()), log.Err(err))
	}
}

func (r *Relay) writeLoop(sess ports.Session, st ports.FrameStream, out <-chan *wire.Frame) {
	var failed bool
	for f := range out {
		if failed {
			// Keep draining so the reader never blocks on the queue.
			continue
		}
		if err := st.Send(f); err != nil {
			failed = true
			r.metrics.SendErrors.Inc()
			r.logger.Warn("frame send failed", log.String("session", sess.ID()), log.Err(err))
			continue
		}
		r.metrics.FramesSent.Inc()
		r.metrics.BytesSent.Add(float64(len(f.Payload)))
	}
}

func (r *Relay) dispatch(f *wire.Frame) (*wire.Frame, error) {
	r.mu.RLock()
	h, ok := r.handlers[f.Kind]
	r.mu.RUnlock()

	if ok {
		return h(f)
	}
	if r.echo.Load() {
		return f, nil
	}
	return nil, nil
}
