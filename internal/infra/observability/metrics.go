package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds Prometheus metrics for the dashboard client.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	sessionClears   prometheus.Counter
	downloadsTotal  *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// client metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_request_duration_seconds",
				Help:    "Duration of bank API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_requests_total",
				Help: "Total bank API calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		sessionClears: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_session_clears_total",
				Help: "Total times the session credential was invalidated.",
			},
		),
		downloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_report_downloads_total",
				Help: "Total report downloads by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// RecordRequestDuration records the duration of a bank API call.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrRequest increments the call counter for an operation with an outcome label.
func (m *Metrics) IncrRequest(operation, outcome string) {
	m.requestsTotal.WithLabelValues(operation, outcome).Inc()
}

// IncrSessionClear increments the session invalidation counter.
func (m *Metrics) IncrSessionClear() {
	m.sessionClears.Inc()
}

// IncrDownload increments the report download counter with an outcome label.
func (m *Metrics) IncrDownload(outcome string) {
	m.downloadsTotal.WithLabelValues(outcome).Inc()
}

// Snapshot is a point-in-time read of the client counters, used for the
// session summary logged on exit and in tests.
type Snapshot struct {
	Requests      float64
	AuthFailures  float64
	SessionClears float64
	Downloads     float64
}

// GetSnapshot gathers current counter values from the registry.
func (m *Metrics) GetSnapshot() Snapshot {
	var s Snapshot

	families, err := m.Registry.Gather()
	if err != nil {
		return s
	}

	for _, fam := range families {
		switch fam.GetName() {
		case "dashboard_requests_total":
			for _, metric := range fam.GetMetric() {
				s.Requests += counterValue(metric)
				if labelValue(metric, "outcome") == "auth_error" {
					s.AuthFailures += counterValue(metric)
				}
			}
		case "dashboard_session_clears_total":
			for _, metric := range fam.GetMetric() {
				s.SessionClears += counterValue(metric)
			}
		case "dashboard_report_downloads_total":
			for _, metric := range fam.GetMetric() {
				s.Downloads += counterValue(metric)
			}
		}
	}
	return s
}

func counterValue(m *dto.Metric) float64 {
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
