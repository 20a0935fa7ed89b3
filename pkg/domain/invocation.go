package domain

import "fmt"

// RendererName identifies an external renderer module.
type RendererName string

// Renderers lists the supported renderers in a stable order.
func Renderers() []RendererName {
	return []RendererName{RendererICOMut, RendererLatticePlot, RendererLatticeGrid}
}

// Valid reports whether the name belongs to the supported set.
func (r RendererName) Valid() bool {
	switch r {
	case RendererICOMut, RendererLatticePlot, RendererLatticeGrid:
		return true
	}
	return false
}

// ContainerRef is a JavaScript expression evaluating to the DOM node a chart is drawn into.
type ContainerRef string

// RenderConfig is forwarded to the renderer as-is. A nil RenderConfig encodes as {}.
type RenderConfig map[string]any

// ArgKind selects how an argument is written into the payload.
type ArgKind int

const (
	// ArgJSON values are encoded as JSON.
	ArgJSON ArgKind = iota
	// ArgLiteral values are strings written as single-quoted JavaScript literals.
	ArgLiteral
)

func (k ArgKind) String() string {
	switch k {
	case ArgJSON:
		return "json"
	case ArgLiteral:
		return "literal"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// Arg is one positional argument following the container.
type Arg struct {
	Name  string
	Kind  ArgKind
	Value any
}

// JSONArg builds an argument encoded as JSON.
func JSONArg(name string, v any) Arg {
	return Arg{Name: name, Kind: ArgJSON, Value: v}
}

// LiteralArg builds an argument written as a quoted string literal.
func LiteralArg(name, s string) Arg {
	return Arg{Name: name, Kind: ArgLiteral, Value: s}
}

// ChartInvocation is a single call into an external renderer.
// Args follow the container in the renderer's signature order.
type ChartInvocation struct {
	Renderer  RendererName
	Container ContainerRef
	Args      []Arg
}

// Contract describes the external signature of a renderer.
type Contract struct {
	Renderer RendererName `json:"renderer"`
	Params   []string     `json:"params"`
	Summary  string       `json:"summary"`
}

// Contracts returns the signatures of all supported renderers.
func Contracts() []Contract {
	return []Contract{
		{
			Renderer: RendererICOMut,
			Params:   []string{"container", "dataFilePath", "configFilePath"},
			Summary:  "Interactive co-mutation plot loaded from a data file and a config file.",
		},
		{
			Renderer: RendererLatticePlot,
			Params:   []string{"container", "data", "plotType", "plotConfig"},
			Summary:  "Single lattice.js plot of the given type.",
		},
		{
			Renderer: RendererLatticeGrid,
			Params:   []string{"container", "data", "latticeConfig"},
			Summary:  "Grid of lattice.js plots laid out from the lattice config.",
		},
	}
}
