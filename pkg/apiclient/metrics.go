package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records request pipeline metrics on a Prometheus registry.
type Collector struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sportline_client_requests_total",
			Help: "API requests by method and response status code",
		}, []string{"method", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sportline_client_transport_failures_total",
			Help: "API requests that failed before a response was received",
		}, []string{"method"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sportline_client_request_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.requests, c.failures, c.latency)

	return c
}

func (c *Collector) recordResult(method string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.latency.Observe(duration.Seconds())
}

func (c *Collector) recordFailure(method string, duration time.Duration) {
	c.failures.WithLabelValues(method).Inc()
	c.latency.Observe(duration.Seconds())
}
