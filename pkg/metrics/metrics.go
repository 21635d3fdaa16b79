// Package metrics exposes the Prometheus collectors of the site API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "committee_site"

// Outcome labels.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
	ResultBusy    = "busy"
	ResultInvalid = "invalid"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	StatOps            *prometheus.CounterVec
	ContactSubmissions *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers every collector on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StatOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stat_operations_total",
			Help:      "Stats counter operations by kind and outcome.",
		}, []string{"op", "result"}),
		ContactSubmissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"result"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Outbound emails by audience and outcome.",
		}, []string{"audience", "result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveStat(op, result string) {
	if m == nil {
		return
	}
	m.StatOps.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObserveContact(result string) {
	if m == nil {
		return
	}
	m.ContactSubmissions.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveNotification(audience, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(audience, result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
