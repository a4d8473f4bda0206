package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections *prometheus.CounterVec
	TrackedIPs prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_ratelimit_rejections_total",
			Help: "Requests rejected by the per-IP limiter, by route",
		}, []string{"route"}),
		TrackedIPs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assetdesk_ratelimit_tracked_ips",
			Help: "Client IPs currently holding a token bucket",
		}),
	}
}

func (m *Metrics) IncrementRejections(route string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(route).Inc()
}

func (m *Metrics) SetTrackedIPs(count int) {
	if m == nil {
		return
	}
	m.TrackedIPs.Set(float64(count))
}
