package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for checkout.
type Metrics struct {
	Payments        *prometheus.CounterVec
	PaymentDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Payments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_checkout_payments_total",
			Help: "Payment attempts by outcome (success, or the failing step)",
		}, []string{"outcome"}),
		PaymentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assetdesk_checkout_payment_duration_seconds",
			Help:    "Time from submit to success or error",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
	}
}

// ObservePayment records one attempt. Call with time.Now() at the start.
func (m *Metrics) ObservePayment(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(outcome).Inc()
	m.PaymentDuration.Observe(time.Since(start).Seconds())
}
