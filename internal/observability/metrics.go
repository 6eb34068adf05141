package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	contactSubmissionTotal *prometheus.CounterVec
	contactRelaySeconds    *prometheus.HistogramVec
	activeSessions         prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the site.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "site_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "site_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		contactSubmissionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submit actions by outcome.",
		}, []string{"outcome"})

		contactRelaySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contact_relay_seconds",
			Help:    "Time spent waiting on the mail relay.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"outcome"})

		activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "site_active_sessions",
			Help: "Visitor sessions currently held in memory.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, contactSubmissionTotal, contactRelaySeconds, activeSessions)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ContactSubmissions exposes the counter for contact submit actions.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactSubmissionTotal
}

// ContactRelayLatency exposes the relay latency histogram.
func ContactRelayLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return contactRelaySeconds
}

// ActiveSessions exposes the gauge of in-memory visitor sessions.
func ActiveSessions() prometheus.Gauge {
	RegisterMetrics()
	return activeSessions
}

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	}))
}
