// Package metrics exposes Prometheus counters for the core operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the operation counters. A nil *Metrics is valid and
// records nothing, which keeps tests free of global registry state.
type Metrics struct {
	RecordsCreated     *prometheus.CounterVec
	RecordsDeleted     *prometheus.CounterVec
	Registrations      prometheus.Counter
	Assignments        prometheus.Counter
	Searches           prometheus.Counter
	SnapshotSaves      prometheus.Counter
	SnapshotLoads      prometheus.Counter
	LoadSkippedRecords prometheus.Counter
}

// New registers and returns the counters on the default registry.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schoolhub_records_created_total",
			Help: "Total number of records created, by kind",
		}, []string{"kind"}),
		RecordsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schoolhub_records_deleted_total",
			Help: "Total number of records deleted, by kind",
		}, []string{"kind"}),
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolhub_registrations_total",
			Help: "Total number of student-course registrations performed",
		}),
		Assignments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolhub_assignments_total",
			Help: "Total number of instructor-course assignments performed",
		}),
		Searches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolhub_searches_total",
			Help: "Total number of search queries served",
		}),
		SnapshotSaves: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolhub_snapshot_saves_total",
			Help: "Total number of snapshot saves",
		}),
		SnapshotLoads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolhub_snapshot_loads_total",
			Help: "Total number of snapshot loads",
		}),
		LoadSkippedRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolhub_load_skipped_records_total",
			Help: "Total number of records skipped while applying a loaded snapshot",
		}),
	}
}

func (m *Metrics) IncRecordsCreated(kind string) {
	if m != nil {
		m.RecordsCreated.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncRecordsDeleted(kind string) {
	if m != nil {
		m.RecordsDeleted.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncRegistrations() {
	if m != nil {
		m.Registrations.Inc()
	}
}

func (m *Metrics) IncAssignments() {
	if m != nil {
		m.Assignments.Inc()
	}
}

func (m *Metrics) IncSearches() {
	if m != nil {
		m.Searches.Inc()
	}
}

func (m *Metrics) IncSnapshotSaves() {
	if m != nil {
		m.SnapshotSaves.Inc()
	}
}

func (m *Metrics) IncSnapshotLoads() {
	if m != nil {
		m.SnapshotLoads.Inc()
	}
}

func (m *Metrics) AddLoadSkipped(n int) {
	if m != nil {
		m.LoadSkippedRecords.Add(float64(n))
	}
}
