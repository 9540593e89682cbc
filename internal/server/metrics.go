package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported on /metrics.
// Each Server owns its registry, so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	comparisons     *prometheus.CounterVec
	compareDuration prometheus.Histogram
	breakingChanges prometheus.Counter
	cacheHits       prometheus.Counter
	httpRequests    *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "specdiff_comparisons_total",
			Help: "Comparisons run, by result.",
		}, []string{"result"}),
		compareDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "specdiff_comparison_duration_seconds",
			Help:    "Time spent parsing and comparing both documents.",
			Buckets: prometheus.DefBuckets,
		}),
		breakingChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "specdiff_breaking_changes_total",
			Help: "Breaking operation changes reported.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "specdiff_cache_hits_total",
			Help: "Comparisons served from the report cache.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "specdiff_http_requests_total",
			Help: "HTTP requests, by route, method, and status code.",
		}, []string{"route", "method", "code"}),
	}
	m.registry.MustRegister(
		m.comparisons,
		m.compareDuration,
		m.breakingChanges,
		m.cacheHits,
		m.httpRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
