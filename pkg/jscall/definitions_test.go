package jscall_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/jscall"
)

func TestDefinitions_Default(t *testing.T) {
	defs := jscall.Definitions(jscall.Libraries{})
	require.Len(t, defs, 3)

	want := map[domain.RendererName]string{
		domain.RendererICOMut:      "'icomut/build/js/icomut.umd.min.js'",
		domain.RendererLatticePlot: "'lattice/build/js/lattice.min.js'",
		domain.RendererLatticeGrid: "'lattice/build/js/lattice.min.js'",
	}
	for _, d := range defs {
		assert.Contains(t, d.Script.String(), "require.undef('"+string(d.Renderer)+"');")
		assert.Contains(t, d.Script.String(), "define('"+string(d.Renderer)+"', ["+want[d.Renderer]+"]")
		assert.NoError(t, jscall.Check(d.Script), "definition for %s", d.Renderer)
	}
}

func TestDefinitions_CustomLibraries(t *testing.T) {
	defs := jscall.Definitions(jscall.Libraries{Lattice: "vendor/lattice.js"})
	for _, d := range defs {
		switch d.Renderer {
		case domain.RendererICOMut:
			assert.Contains(t, d.Script.String(), jscall.DefaultLibraries.ICOMut)
		default:
			assert.Contains(t, d.Script.String(), "'vendor/lattice.js'")
		}
	}
}

func TestDefinitions_GridForwardsConfig(t *testing.T) {
	defs := jscall.Definitions(jscall.DefaultLibraries)
	for _, d := range defs {
		if d.Renderer == domain.RendererLatticeGrid {
			assert.Contains(t, d.Script.String(), "lib.grid(data, id, config);")
		}
	}
}
