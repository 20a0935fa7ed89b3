package latticenb_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/latticenb"
	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/observability"
)

func newAdapter(t *testing.T, opts ...latticenb.Option) (*latticenb.Adapter, *display.Memory) {
	t.Helper()
	sink := display.NewMemory()
	return latticenb.New(sink, opts...), sink
}

func lastScript(t *testing.T, sink *display.Memory) string {
	t.Helper()
	p, ok := sink.Last()
	require.True(t, ok, "no payload displayed")
	return p.Script.String()
}

func TestDrawPlot(t *testing.T) {
	nb, sink := newAdapter(t)

	err := nb.DrawPlot(context.Background(), map[string]any{"x": []int{1, 2, 3}}, "bar", nil)
	require.NoError(t, err)

	assert.Contains(t, lastScript(t, sink), `lattice_plot(element.get(0), {"x":[1,2,3]}, 'bar', {})`)
}

func TestDrawPlot_ConfigAfterPlotType(t *testing.T) {
	nb, sink := newAdapter(t)

	cfg := domain.RenderConfig{"width": 400, "title": "Counts", "axis": map[string]any{"x": "year"}}
	require.NoError(t, nb.DrawPlot(context.Background(), []float64{1.5, 2}, "scatter", cfg))

	assert.Contains(t, lastScript(t, sink),
		`lattice_plot(element.get(0), [1.5,2], 'scatter', {"axis":{"x":"year"},"title":"Counts","width":400})`)
}

func TestDrawPlot_NilConfigEqualsEmpty(t *testing.T) {
	nb, sink := newAdapter(t)
	ctx := context.Background()
	data := map[string]any{"y": []int{4}}

	require.NoError(t, nb.DrawPlot(ctx, data, "line", nil))
	require.NoError(t, nb.DrawPlot(ctx, data, "line", domain.RenderConfig{}))
	require.NoError(t, nb.DrawLattice(ctx, data, nil))
	require.NoError(t, nb.DrawLattice(ctx, data, domain.RenderConfig{}))

	ps := sink.Payloads()
	require.Len(t, ps, 4)
	assert.Equal(t, ps[0].Script, ps[1].Script)
	assert.Equal(t, ps[2].Script, ps[3].Script)
}

func TestDrawLattice_ModeCarriedByModuleName(t *testing.T) {
	nb, sink := newAdapter(t)

	cfg := domain.RenderConfig{"rows": 2}
	require.NoError(t, nb.DrawLattice(context.Background(), []int{1, 2}, cfg))

	s := lastScript(t, sink)
	assert.Contains(t, s, `require(['lattice_grid'], function(lattice_grid) {`)
	assert.Contains(t, s, `        lattice_grid(element.get(0), [1,2], {"rows":2});`)
	assert.NotContains(t, s, `'lattice'`)
}

func TestPlotICOMut(t *testing.T) {
	nb, sink := newAdapter(t)

	require.NoError(t, nb.PlotICOMut(context.Background(), "data/maf.tsv", "config/icomut.json"))
	assert.Contains(t, lastScript(t, sink), `icomut(element.get(0), 'data/maf.tsv', 'config/icomut.json');`)
}

func TestPlotICOMut_QuotesAreEscaped(t *testing.T) {
	nb, sink := newAdapter(t, latticenb.WithScriptCheck(true))

	require.NoError(t, nb.PlotICOMut(context.Background(), "it's.tsv", `C:\cfg.json`))
	assert.Contains(t, lastScript(t, sink), `icomut(element.get(0), 'it\'s.tsv', 'C:\\cfg.json');`)
}

func TestPathsAreNotJSONEncoded(t *testing.T) {
	nb, sink := newAdapter(t)

	require.NoError(t, nb.PlotICOMut(context.Background(), "a.tsv", "b.json"))
	s := lastScript(t, sink)
	assert.NotContains(t, s, `"a.tsv"`)
	assert.Contains(t, s, `'a.tsv'`)
}

func TestSerializationErrorIsPropagated(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	nb, sink := newAdapter(t, latticenb.WithMetrics(metrics))
	ctx := context.Background()

	cyclic := map[string]any{}
	cyclic["next"] = cyclic

	err := nb.DrawPlot(ctx, cyclic, "bar", nil)
	assert.ErrorIs(t, err, domain.ErrSerialize)

	err = nb.DrawLattice(ctx, []int{1}, domain.RenderConfig{"bad": math.NaN()})
	assert.ErrorIs(t, err, domain.ErrSerialize)

	var serr *domain.SerializationError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "latticeConfig", serr.Arg)

	assert.Empty(t, sink.Payloads(), "nothing may reach the sink on failure")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues("lattice_plot", observability.StageSerialize)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues("lattice_grid", observability.StageSerialize)))
}

func TestSinkErrorIsWrapped(t *testing.T) {
	boom := errors.New("kernel disconnected")
	nb := latticenb.New(display.SinkFunc(func(ctx context.Context, p display.Payload) error {
		return boom
	}))

	err := nb.DrawLattice(context.Background(), []int{1}, nil)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.HasPrefix(err.Error(), "display failed"))
}

func TestWithContainer(t *testing.T) {
	nb, sink := newAdapter(t, latticenb.WithContainer("document.body"))

	require.NoError(t, nb.DrawLattice(context.Background(), []int{}, nil))
	assert.Contains(t, lastScript(t, sink), `lattice_grid(document.body, [], {});`)
}

func TestMetricsCountPayloads(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	nb, _ := newAdapter(t, latticenb.WithMetrics(metrics))
	ctx := context.Background()

	require.NoError(t, nb.DrawPlot(ctx, 1, "bar", nil))
	require.NoError(t, nb.DrawPlot(ctx, 2, "bar", nil))
	require.NoError(t, nb.PlotICOMut(ctx, "a", "b"))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Payloads.WithLabelValues("lattice_plot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Payloads.WithLabelValues("icomut")))
}

func TestLoad(t *testing.T) {
	nb, sink := newAdapter(t)
	assert.False(t, nb.Ready())
	assert.Equal(t, "renderers not loaded", nb.Status().Message)

	require.NoError(t, nb.Load(context.Background()))

	assert.True(t, nb.Ready())
	st := nb.Status()
	assert.Equal(t, domain.Renderers(), st.Renderers)
	assert.False(t, st.LoadedAt.IsZero())

	ps := sink.Payloads()
	require.Len(t, ps, 3)
	for _, p := range ps {
		assert.Contains(t, p.Script.String(), "define('"+string(p.Renderer)+"'")
	}
}

func TestLoad_FailureLeavesAdapterNotReady(t *testing.T) {
	nb := latticenb.New(display.SinkFunc(func(ctx context.Context, p display.Payload) error {
		return errors.New("closed")
	}))

	assert.Error(t, nb.Load(context.Background()))
	assert.False(t, nb.Ready())
}

func TestConcurrentCallsAreIndependent(t *testing.T) {
	nb, sink := newAdapter(t)
	ctx := context.Background()

	done := make(chan error)
	for i := 0; i < 20; i++ {
		go func(i int) {
			done <- nb.DrawPlot(ctx, []int{i}, "bar", nil)
		}(i)
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, <-done)
	}
	assert.Len(t, sink.Payloads(), 20)
}
