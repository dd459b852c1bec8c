package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PersistenceMetrics contadores de cargas, guardados y guardados omitidos de snapshots,
// más las métricas de peticiones HTTP.
type PersistenceMetrics struct {
	registry *prometheus.Registry
	loads    *prometheus.CounterVec
	saves    *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPersistenceMetrics registra las métricas en un registro propio, para que varias
// instancias (tests) no choquen en el registro global.
func NewPersistenceMetrics() *PersistenceMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &PersistenceMetrics{
		registry: registry,
		loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "print3d_snapshot_loads_total",
				Help: "Snapshot loads by result (hit, miss, corrupt, error)",
			},
			[]string{"kind", "result"},
		),
		saves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "print3d_snapshot_saves_total",
				Help: "Snapshot writes by result (ok, error)",
			},
			[]string{"kind", "result"},
		),
		skipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "print3d_snapshot_saves_skipped_total",
				Help: "Saves not performed, by reason (unauthenticated, not_hydrated, suppressed)",
			},
			[]string{"kind", "reason"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "print3d_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "print3d_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *PersistenceMetrics) SnapshotLoaded(kind, result string) {
	m.loads.WithLabelValues(kind, result).Inc()
}

func (m *PersistenceMetrics) SnapshotSaved(kind, result string) {
	m.saves.WithLabelValues(kind, result).Inc()
}

func (m *PersistenceMetrics) SaveSkipped(kind, reason string) {
	m.skipped.WithLabelValues(kind, reason).Inc()
}

// ObserveRequest registra una petición HTTP terminada. route es el patrón, no la URL.
func (m *PersistenceMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (m *PersistenceMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro (tests).
func (m *PersistenceMetrics) Registry() *prometheus.Registry {
	return m.registry
}
