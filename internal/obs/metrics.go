package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the route engine.
type Metrics struct {
	RouteRequestsTotal prometheus.Counter
	RouteOutcomes      *prometheus.CounterVec
	RouteDuration      prometheus.Histogram

	ProviderErrors  *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	Registry *prometheus.Registry
}

// NewMetrics creates and registers the collectors on p.
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		RouteRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyroute_requests_total",
			Help: "Total number of route planning requests",
		}),
		RouteOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skyroute_outcomes_total",
			Help: "Route planning outcomes by kind",
		}, []string{"outcome"}, // direct, connecting, no_route, error
		),
		RouteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skyroute_plan_duration_seconds",
			Help:    "Time spent planning a single route",
			Buckets: prometheus.DefBuckets,
		}),
		ProviderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skyroute_provider_errors_total",
			Help: "Errors returned by each offer provider",
		}, []string{"provider"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skyroute_provider_latency_seconds",
				Help:    "Latency of offer provider calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		Registry: p,
	}

	p.MustRegister(
		m.RouteRequestsTotal,
		m.RouteOutcomes,
		m.RouteDuration,
		m.ProviderErrors,
		m.ProviderLatency,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

func (m *Metrics) IncRouteRequests() { m.RouteRequestsTotal.Inc() }

func (m *Metrics) IncOutcome(outcome string) {
	m.RouteOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePlanDuration(seconds float64) {
	m.RouteDuration.Observe(seconds)
}

func (m *Metrics) IncProviderFailure(provider string) {
	m.ProviderErrors.WithLabelValues(provider).Inc()
}

func (m *Metrics) ObserveProviderLatency(provider string, seconds float64) {
	m.ProviderLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *Metrics) IncHTTPRequestsTotal(method, path, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) ObserveHTTPRequestDuration(method, path, status string, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
