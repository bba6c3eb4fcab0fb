package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "nwd1"
	metricsSubsystem = "relay"
)

// Metrics holds the relay's Prometheus instruments.
type Metrics struct {
	SessionsTotal  prometheus.Counter
	ActiveSessions prometheus.Gauge
	ActiveStreams  prometheus.Gauge

	FramesReceived prometheus.Counter
	FramesSent     prometheus.Counter
	BytesReceived  prometheus.Counter
	BytesSent      prometheus.Counter

	// RecvErrors is labeled by error kind:
	// decode, magic, too_large, truncated, transport.
	RecvErrors *prometheus.CounterVec
	SendErrors prometheus.Counter
}

// NewMetrics creates and registers the relay metrics on reg. A nil reg
// registers on a private registry, which keeps tests and embedders that do
// not scrape from colliding with the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		SessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "sessions_total",
			Help:      "Total peer sessions accepted.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "active_sessions",
			Help:      "Peer sessions currently open.",
		}),
		ActiveStreams: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "active_streams",
			Help:      "Frame streams currently being served.",
		}),
		FramesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "frames_received_total",
			Help:      "Complete frames received.",
		}),
		FramesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "frames_sent_total",
			Help:      "Frames written back to peers.",
		}),
		BytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "payload_bytes_received_total",
			Help:      "Payload bytes received in complete frames.",
		}),
		BytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "payload_bytes_sent_total",
			Help:      "Payload bytes written back to peers.",
		}),
		RecvErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "receive_errors_total",
			Help:      "Frame receive failures by error kind.",
		}, []string{"kind"}),
		SendErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "send_errors_total",
			Help:      "Frame send failures.",
		}),
	}
}
