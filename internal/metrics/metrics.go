package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Fan-out writes to collaborator copies, by kind (diff|event) and
	// outcome (ok|error). Errors are tolerated but must stay observable.
	FanoutWrites *prometheus.CounterVec

	ProjectsCreated prometheus.Counter
	EventsCreated   prometheus.Counter
}

// New creates and registers the metrics against the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "candour_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "candour_request_duration_seconds",
				Help:    "Duration of HTTP request processing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		FanoutWrites: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "candour_fanout_writes_total",
				Help: "Writes propagated to collaborator project copies",
			},
			[]string{"kind", "outcome"},
		),

		ProjectsCreated: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "candour_projects_created_total",
				Help: "Total number of logical projects created",
			},
		),

		EventsCreated: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "candour_events_created_total",
				Help: "Total number of events created",
			},
		),
	}
}

// ObserveFanout records the outcome of one fan-out write.
func (m *Metrics) ObserveFanout(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FanoutWrites.WithLabelValues(kind, outcome).Inc()
}

// IncProjectsCreated bumps the project creation counter.
func (m *Metrics) IncProjectsCreated() {
	if m != nil {
		m.ProjectsCreated.Inc()
	}
}

// IncEventsCreated bumps the event creation counter.
func (m *Metrics) IncEventsCreated() {
	if m != nil {
		m.EventsCreated.Inc()
	}
}
