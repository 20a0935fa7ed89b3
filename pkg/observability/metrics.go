package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Failure stages.
const (
	StageSerialize = "serialize"
	StageCheck     = "check"
	StageDisplay   = "display"
)

// Metrics groups the collectors shared by the adapter and instrumented sinks.
type Metrics struct {
	Payloads     *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	PayloadBytes *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Payloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "latticenb_payloads_total",
				Help: "Total number of payloads handed to a display sink",
			},
			[]string{"renderer"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "latticenb_failures_total",
				Help: "Total number of failed invocations by stage",
			},
			[]string{"renderer", "stage"},
		),
		PayloadBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "latticenb_payload_bytes",
				Help:    "Size of generated payload scripts",
				Buckets: prometheus.ExponentialBuckets(128, 4, 8),
			},
			[]string{"renderer"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Payloads, m.Failures, m.PayloadBytes)
	}
	return m
}

// ObservePayload records a payload handed to a sink.
func (m *Metrics) ObservePayload(renderer string, size int) {
	if m == nil {
		return
	}
	m.Payloads.WithLabelValues(renderer).Inc()
	m.PayloadBytes.WithLabelValues(renderer).Observe(float64(size))
}

// ObserveFailure records a failure at the given stage.
func (m *Metrics) ObserveFailure(renderer, stage string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(renderer, stage).Inc()
}
