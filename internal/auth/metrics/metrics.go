package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the auth bridge.
type Metrics struct {
	Logins            *prometheus.CounterVec
	Registrations     *prometheus.CounterVec
	Logouts           *prometheus.CounterVec
	BestEffortFailed  *prometheus.CounterVec
	ReconcileDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_auth_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_auth_registrations_total",
			Help: "Registrations by role and outcome",
		}, []string{"role", "outcome"}),
		Logouts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_auth_logouts_total",
			Help: "Logouts by kind (user, forced)",
		}, []string{"kind"}),
		BestEffortFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_auth_best_effort_failures_total",
			Help: "Swallowed failures of best-effort steps",
		}, []string{"step"}),
		ReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assetdesk_auth_reconcile_duration_seconds",
			Help:    "Duration of cache/backend profile reconciliation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRegistration(role, outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) IncrementLogout(kind string) {
	if m == nil {
		return
	}
	m.Logouts.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementBestEffortFailure(step string) {
	if m == nil {
		return
	}
	m.BestEffortFailed.WithLabelValues(step).Inc()
}

// ObserveReconcile records a reconciliation. Call with time.Now() at the start.
func (m *Metrics) ObserveReconcile(start time.Time) {
	if m == nil {
		return
	}
	m.ReconcileDuration.Observe(time.Since(start).Seconds())
}
