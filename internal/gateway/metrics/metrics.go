package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks outbound calls to the REST backend.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ForcedLogouts   prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_backend_requests_total",
			Help: "Backend calls by method, route and outcome",
		}, []string{"method", "route", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assetdesk_backend_request_duration_seconds",
			Help:    "Backend call latency",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}, []string{"method", "route"}),
		ForcedLogouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "assetdesk_backend_unauthorized_total",
			Help: "Backend 401 responses that forced a logout",
		}),
	}
}

// ObserveRequest records one call. outcome is a status code or "network".
func (m *Metrics) ObserveRequest(method, route, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, route, outcome).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementForcedLogout() {
	if m == nil {
		return
	}
	m.ForcedLogouts.Inc()
}
