package latticenb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/latticenb/internal/logging"
	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/jscall"
	"github.com/aretw0/latticenb/pkg/observability"
)

// Adapter is the high-level entry point for the library.
// It builds renderer invocations and hands the resulting payloads to a display sink.
type Adapter struct {
	sink      display.Sink
	container domain.ContainerRef
	libs      jscall.Libraries
	metrics   *observability.Metrics
	check     bool
	logger    *slog.Logger

	mu     sync.RWMutex
	status Status
}

// Status is the readiness signal a host can query instead of watching for a banner.
type Status struct {
	Ready     bool                  `json:"ready"`
	LoadedAt  time.Time             `json:"loaded_at,omitzero"`
	Renderers []domain.RendererName `json:"renderers,omitempty"`
	Message   string                `json:"message"`
}

// Option defines a functional option for configuring the Adapter.
type Option func(*Adapter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithContainer overrides the container expression passed as the first renderer argument.
func WithContainer(ref domain.ContainerRef) Option {
	return func(a *Adapter) {
		a.container = ref
	}
}

// WithLibraries sets the bundle paths used by Load.
func WithLibraries(libs jscall.Libraries) Option {
	return func(a *Adapter) {
		a.libs = libs
	}
}

// WithMetrics records payloads and failures. The sink is wrapped with display.Instrument.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Adapter) {
		a.metrics = m
	}
}

// WithScriptCheck parses every payload before it reaches the sink.
func WithScriptCheck(enabled bool) Option {
	return func(a *Adapter) {
		a.check = enabled
	}
}

// New creates an Adapter writing to sink.
// A nil sink writes display_data bundles to stdout.
func New(sink display.Sink, opts ...Option) *Adapter {
	a := &Adapter{
		sink:      sink,
		container: domain.DefaultContainer,
		libs:      jscall.DefaultLibraries,
		status:    Status{Message: "renderers not loaded"},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sink == nil {
		a.sink = display.NewWriter(nil, display.FormatBundle)
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	a.sink = display.Instrument(a.sink, a.metrics)
	return a
}

// PlotICOMut draws an iCoMut plot from a data file and a config file.
// Both paths reach the renderer as string literals.
func (a *Adapter) PlotICOMut(ctx context.Context, dataFileInput, configFileInput string) error {
	_, err := a.Emit(ctx, a.BuildPlotICOMut(dataFileInput, configFileInput))
	return err
}

// DrawPlot draws a single lattice.js plot. A nil plotConfig is sent as {}.
func (a *Adapter) DrawPlot(ctx context.Context, data any, plotType string, plotConfig domain.RenderConfig) error {
	_, err := a.Emit(ctx, a.BuildPlot(data, plotType, plotConfig))
	return err
}

// DrawLattice draws a lattice.js grid. A nil latticeConfig is sent as {}.
func (a *Adapter) DrawLattice(ctx context.Context, data any, latticeConfig domain.RenderConfig) error {
	_, err := a.Emit(ctx, a.BuildLattice(data, latticeConfig))
	return err
}

// BuildPlotICOMut returns the invocation PlotICOMut would emit.
func (a *Adapter) BuildPlotICOMut(dataFileInput, configFileInput string) domain.ChartInvocation {
	return domain.ChartInvocation{
		Renderer:  domain.RendererICOMut,
		Container: a.container,
		Args: []domain.Arg{
			domain.LiteralArg("dataFile", dataFileInput),
			domain.LiteralArg("configFile", configFileInput),
		},
	}
}

// BuildPlot returns the invocation DrawPlot would emit.
func (a *Adapter) BuildPlot(data any, plotType string, plotConfig domain.RenderConfig) domain.ChartInvocation {
	return domain.ChartInvocation{
		Renderer:  domain.RendererLatticePlot,
		Container: a.container,
		Args: []domain.Arg{
			domain.JSONArg("data", data),
			domain.LiteralArg("plotType", plotType),
			domain.JSONArg("plotConfig", orEmpty(plotConfig)),
		},
	}
}

// BuildLattice returns the invocation DrawLattice would emit.
// Lattice mode is implied by the lattice_grid module; no mode argument is passed.
func (a *Adapter) BuildLattice(data any, latticeConfig domain.RenderConfig) domain.ChartInvocation {
	return domain.ChartInvocation{
		Renderer:  domain.RendererLatticeGrid,
		Container: a.container,
		Args: []domain.Arg{
			domain.JSONArg("data", data),
			domain.JSONArg("latticeConfig", orEmpty(latticeConfig)),
		},
	}
}

// Render builds the payload for inv without displaying it.
func (a *Adapter) Render(inv domain.ChartInvocation) (display.Payload, error) {
	script, err := jscall.Build(inv)
	if err != nil {
		a.metrics.ObserveFailure(string(inv.Renderer), observability.StageSerialize)
		return display.Payload{}, err
	}
	if a.check {
		if err := jscall.Check(script); err != nil {
			a.metrics.ObserveFailure(string(inv.Renderer), observability.StageCheck)
			return display.Payload{}, fmt.Errorf("%s: %w", inv.Renderer, err)
		}
	}
	return display.NewPayload(inv.Renderer, script), nil
}

// Emit renders inv, hands it to the sink and returns what was displayed.
func (a *Adapter) Emit(ctx context.Context, inv domain.ChartInvocation) (display.Payload, error) {
	p, err := a.Render(inv)
	if err != nil {
		a.logger.Warn("invocation rejected", "renderer", inv.Renderer, "error", err)
		return display.Payload{}, err
	}
	if err := a.sink.Display(ctx, p); err != nil {
		return display.Payload{}, fmt.Errorf("display failed: %w", err)
	}
	a.logger.Debug("payload displayed", "renderer", p.Renderer, "bytes", len(p.Script))
	return p, nil
}

// Load emits the renderer module definitions and marks the adapter ready.
func (a *Adapter) Load(ctx context.Context) error {
	defs := jscall.Definitions(a.libs)
	names := make([]domain.RendererName, 0, len(defs))
	for _, d := range defs {
		if err := a.sink.Display(ctx, display.NewPayload(d.Renderer, d.Script)); err != nil {
			return fmt.Errorf("failed to load renderer %s: %w", d.Renderer, err)
		}
		names = append(names, d.Renderer)
	}

	a.mu.Lock()
	a.status = Status{
		Ready:     true,
		LoadedAt:  time.Now(),
		Renderers: names,
		Message:   "lattice.js and iCoMut renderers loaded",
	}
	a.mu.Unlock()

	a.logger.Info("renderers loaded", "count", len(names), "lattice", a.libs.Lattice, "icomut", a.libs.ICOMut)
	return nil
}

// Ready reports whether Load has completed.
func (a *Adapter) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status.Ready
}

// Status returns a snapshot of the readiness signal.
func (a *Adapter) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	st := a.status
	st.Renderers = append([]domain.RendererName(nil), a.status.Renderers...)
	return st
}

func orEmpty(cfg domain.RenderConfig) domain.RenderConfig {
	if cfg == nil {
		return domain.RenderConfig{}
	}
	return cfg
}
