package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements the domain packages' metrics interfaces on Prometheus.
type Metrics struct {
	CodesIssued      *prometheus.CounterVec
	CodeCollisions   prometheus.Counter
	RequestsCreated  prometheus.Counter
	RequestsResolved *prometheus.CounterVec
	ResolveConflicts prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		CodesIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinship_numeroh_issued_total",
			Help: "Total member codes issued, by role",
		}, []string{"role"}),
		CodeCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinship_numeroh_collisions_total",
			Help: "Total code candidates discarded because of a collision",
		}),
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinship_confirmation_requests_total",
			Help: "Total confirmation requests created",
		}),
		RequestsResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinship_confirmation_resolutions_total",
			Help: "Total confirmation resolutions, by decision",
		}, []string{"decision"}),
		ResolveConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinship_confirmation_conflicts_total",
			Help: "Total resolutions rolled back because the slot was taken",
		}),
	}
}

func (m *Metrics) CodeIssued(role string) {
	m.CodesIssued.WithLabelValues(role).Inc()
}

func (m *Metrics) CodeCollision() {
	m.CodeCollisions.Inc()
}

func (m *Metrics) RequestCreated() {
	m.RequestsCreated.Inc()
}

func (m *Metrics) RequestResolved(decision string) {
	m.RequestsResolved.WithLabelValues(decision).Inc()
}

func (m *Metrics) ResolveConflict() {
	m.ResolveConflicts.Inc()
}
