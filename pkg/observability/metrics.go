package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the service. Each collector owns
// its registry, so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Command metrics
	Commands        *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Event bus metrics
	EventsPublished *prometheus.CounterVec
	EventsDelivered prometheus.Counter
	EventsDropped   prometheus.Counter
	HandlerPanics   prometheus.Counter

	// Stream metrics
	ActiveStreams   prometheus.Gauge
	StreamFrames    *prometheus.CounterVec
	StreamOverflows prometheus.Counter

	// Presence metrics
	PresenceUpdates prometheus.Counter
	PresencePruned  prometheus.Counter

	// Snapshot metrics
	SnapshotWrites *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of commands handled",
			},
			[]string{"command", "status"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total number of events published on the bus",
			},
			[]string{"type"},
		),
		EventsDelivered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_delivered_total",
				Help:      "Total number of handler invocations made by the bus",
			},
		),
		EventsDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_dropped_total",
				Help:      "Events dropped because a subscriber queue was full",
			},
		),
		HandlerPanics: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_handler_panics_total",
				Help:      "Subscriber handlers that panicked during delivery",
			},
		),
		ActiveStreams: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_streams",
				Help:      "Number of open event streams",
			},
		),
		StreamFrames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_frames_total",
				Help:      "Frames written to event streams",
			},
			[]string{"kind"},
		),
		StreamOverflows: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_overflows_total",
				Help:      "Streams closed because their queue overflowed",
			},
		),
		PresenceUpdates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "presence_updates_total",
				Help:      "Presence heartbeats received",
			},
		),
		PresencePruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "presence_pruned_total",
				Help:      "Presence records removed after their TTL elapsed",
			},
		),
		SnapshotWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_writes_total",
				Help:      "Snapshot file writes by outcome",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.Commands,
		c.CommandDuration,
		c.EventsPublished,
		c.EventsDelivered,
		c.EventsDropped,
		c.HandlerPanics,
		c.ActiveStreams,
		c.StreamFrames,
		c.StreamOverflows,
		c.PresenceUpdates,
		c.PresencePruned,
		c.SnapshotWrites,
	)

	return c
}

// RecordCommand records the outcome and duration of a command.
func (c *Collector) RecordCommand(command string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.Commands.WithLabelValues(command, status).Inc()
	c.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordSnapshotWrite records the outcome of a snapshot write.
func (c *Collector) RecordSnapshotWrite(err error) {
	if err != nil {
		c.SnapshotWrites.WithLabelValues("failure").Inc()
		return
	}
	c.SnapshotWrites.WithLabelValues("success").Inc()
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
