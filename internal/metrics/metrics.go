package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors holds the service's own instrumentation plus the demo gauges
// that the sampler keeps fresh so the pipeline has data to query out of the
// box. Registered on a private registry to keep tests isolated.
type Collectors struct {
	RequestCount   *prometheus.CounterVec
	RequestLatency prometheus.Histogram
	CPUUsage       prometheus.Gauge
	MemoryUsage    prometheus.Gauge

	registry *prometheus.Registry
}

func NewCollectors() *Collectors {
	c := &Collectors{
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "endpoint"}),
		RequestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency",
		}),
		CPUUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cpu_usage_percent",
			Help: "CPU usage percentage",
		}),
		MemoryUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memory_usage_bytes",
			Help: "Memory usage in bytes",
		}),
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(c.RequestCount, c.RequestLatency, c.CPUUsage, c.MemoryUsage)
	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
