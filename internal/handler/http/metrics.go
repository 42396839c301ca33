package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "dashsync"

// unmatchedRoute labels requests that matched no route, keeping the label set
// bounded.
const unmatchedRoute = "unmatched"

// metrics holds the server's Prometheus collectors. Each Handler owns its own
// registry.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	snapshotReads    prometheus.Counter
	snapshotWrites   prometheus.Counter
	snapshotBytes    prometheus.Histogram
	snapshotProjects prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		snapshotReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "snapshot",
			Name:      "reads_total",
			Help:      "Snapshots served to clients.",
		}),
		snapshotWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "snapshot",
			Name:      "writes_total",
			Help:      "Snapshots stored by clients.",
		}),
		snapshotBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "snapshot",
			Name:      "response_bytes",
			Help:      "Size of served snapshot bodies.",
			Buckets:   prometheus.ExponentialBuckets(1<<10, 4, 8),
		}),
		snapshotProjects: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "snapshot",
			Name:      "projects",
			Help:      "Number of projects in stored snapshots.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.snapshotReads,
		m.snapshotWrites,
		m.snapshotBytes,
		m.snapshotProjects,
	)
	return m
}

// handler serves the registry. Compression is left to withGZip.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}

func (m *metrics) snapshotRead(bytes int) {
	m.snapshotReads.Inc()
	m.snapshotBytes.Observe(float64(bytes))
}

func (m *metrics) snapshotWritten(projects int) {
	m.snapshotWrites.Inc()
	m.snapshotProjects.Observe(float64(projects))
}
