package observability_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/latticenb/pkg/observability"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObservePayload("lattice_plot", 300)
	m.ObservePayload("lattice_plot", 500)
	m.ObserveFailure("icomut", observability.StageSerialize)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Payloads.WithLabelValues("lattice_plot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("icomut", observability.StageSerialize)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PayloadBytes))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObservePayload("lattice_grid", 10)
		m.ObserveFailure("lattice_grid", observability.StageDisplay)
	})
}
