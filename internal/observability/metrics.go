package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the portal's prometheus collectors.
type Metrics struct {
	registry       *prometheus.Registry
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	errorCount     *prometheus.CounterVec
	upstreamCalls  *prometheus.HistogramVec
	slotEvents     *prometheus.CounterVec
}

// NewMetrics registers collectors on a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of portal page requests",
		}, []string{"route", "method", "status"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Time spent serving portal page requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_errors_total",
			Help: "Requests that ended in an application error",
		}, []string{"route", "method", "code"}),
		upstreamCalls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_upstream_call_duration_seconds",
			Help:    "Latency of calls to the community API",
			Buckets: prometheus.ExponentialBuckets(0.01, 2.0, 10),
		}, []string{"op", "outcome"}),
		slotEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_credential_slot_events_total",
			Help: "Credential slot writes and clears",
		}, []string{"slot", "event", "reason"}),
	}
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(route, method, code).Inc()
}

// ObserveUpstream records one community API call.
func (m *Metrics) ObserveUpstream(op string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamCalls.WithLabelValues(op, outcome).Observe(duration.Seconds())
}

// RecordSlotEvent counts a credential slot mutation.
func (m *Metrics) RecordSlotEvent(slot, event, reason string) {
	if m == nil {
		return
	}
	m.slotEvents.WithLabelValues(slot, event, reason).Inc()
}
