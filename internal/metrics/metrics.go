// Package metrics holds the Prometheus instrumentation for the
// indicator serving layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the indicator server.
type Metrics struct {
	ComputeDur     prometheus.Histogram
	ComputesTotal  prometheus.Counter
	FramesTotal    prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	AlertsFired    prometheus.Counter
	HTTPRequests   *prometheus.CounterVec // labels: endpoint, status
	WSClients      prometheus.Gauge
	HistoryUpserts prometheus.Counter
}

// New registers and returns all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "indserver_compute_duration_seconds",
			Help:    "Indicator engine compute latency per series",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		ComputesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indserver_computes_total",
			Help: "Total indicator series computations",
		}),
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indserver_frames_total",
			Help: "Total indicator frames produced",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indserver_cache_hits_total",
			Help: "Frame cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indserver_cache_misses_total",
			Help: "Frame cache misses",
		}),
		AlertsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indserver_alerts_fired_total",
			Help: "Indicator threshold alerts delivered",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indserver_http_requests_total",
			Help: "HTTP requests served (by endpoint and status)",
		}, []string{"endpoint", "status"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "indserver_ws_clients",
			Help: "Connected WebSocket clients",
		}),
		HistoryUpserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indserver_history_upserts_total",
			Help: "Daily close samples upserted into the history store",
		}),
	}

	prometheus.MustRegister(
		m.ComputeDur,
		m.ComputesTotal,
		m.FramesTotal,
		m.CacheHits,
		m.CacheMisses,
		m.AlertsFired,
		m.HTTPRequests,
		m.WSClients,
		m.HistoryUpserts,
	)

	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
