// Package metrics exposes Prometheus counters for record activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	recordsCreated     *prometheus.CounterVec
	statusUpdates      *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	activeWorkspaces   prometheus.Gauge
}

// New registers the collectors on reg. A nil *Recorder is a valid no-op.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		recordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ams_records_created_total",
			Help: "Records created, by entity.",
		}, []string{"entity"}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ams_status_updates_total",
			Help: "Status updates applied, by entity and new status.",
		}, []string{"entity", "status"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ams_validation_failures_total",
			Help: "Rejected create or update requests, by entity.",
		}, []string{"entity"}),
		activeWorkspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ams_active_workspaces",
			Help: "Session workspaces currently held in memory.",
		}),
	}
	reg.MustRegister(r.recordsCreated, r.statusUpdates, r.validationFailures, r.activeWorkspaces)
	return r
}

func (r *Recorder) RecordCreated(entity string) {
	if r == nil {
		return
	}
	r.recordsCreated.WithLabelValues(entity).Inc()
}

func (r *Recorder) StatusUpdated(entity, status string) {
	if r == nil {
		return
	}
	r.statusUpdates.WithLabelValues(entity, status).Inc()
}

func (r *Recorder) ValidationFailed(entity string) {
	if r == nil {
		return
	}
	r.validationFailures.WithLabelValues(entity).Inc()
}

func (r *Recorder) SetActiveWorkspaces(n int) {
	if r == nil {
		return
	}
	r.activeWorkspaces.Set(float64(n))
}
