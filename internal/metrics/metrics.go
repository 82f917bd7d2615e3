package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the proxy's collectors on their own registry
type Metrics struct {
	registry *prometheus.Registry

	RequestCount      *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	GenerationLatency prometheus.Histogram
	GenerationErrors  prometheus.Counter
	InFlight          prometheus.Gauge
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "friday_proxy_requests_total",
				Help: "Total number of proxy HTTP requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "friday_proxy_request_duration_seconds",
				Help: "Proxy HTTP request duration in seconds",
			},
			[]string{"method"},
		),
		GenerationLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "friday_generation_latency_seconds",
				Help:    "Model generation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),
		GenerationErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "friday_generation_errors_total",
				Help: "Total number of failed generations",
			},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "friday_proxy_in_flight_requests",
				Help: "Number of prompts currently being answered",
			},
		),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
