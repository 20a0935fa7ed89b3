package jscall

import (
	"fmt"
	"strings"

	"github.com/aretw0/latticenb/pkg/domain"
)

// Libraries locates the renderer bundles, relative to the notebook server's nbextensions path.
type Libraries struct {
	Lattice string `json:"lattice" yaml:"lattice" mapstructure:"lattice"`
	ICOMut  string `json:"icomut" yaml:"icomut" mapstructure:"icomut"`
}

// DefaultLibraries are the bundle paths produced by the lattice.js and iCoMut builds.
var DefaultLibraries = Libraries{
	Lattice: "lattice/build/js/lattice.min.js",
	ICOMut:  "icomut/build/js/icomut.umd.min.js",
}

// Definition is the script registering one renderer module with the AMD loader.
type Definition struct {
	Renderer domain.RendererName
	Script   Script
}

// Definitions returns the module definitions for every supported renderer.
// Each one undefines the module first so a notebook can reload it.
func Definitions(libs Libraries) []Definition {
	if libs.Lattice == "" {
		libs.Lattice = DefaultLibraries.Lattice
	}
	if libs.ICOMut == "" {
		libs.ICOMut = DefaultLibraries.ICOMut
	}
	return []Definition{
		{Renderer: domain.RendererICOMut, Script: define(domain.RendererICOMut, libs.ICOMut, icomutBody)},
		{Renderer: domain.RendererLatticePlot, Script: define(domain.RendererLatticePlot, libs.Lattice, latticePlotBody)},
		{Renderer: domain.RendererLatticeGrid, Script: define(domain.RendererLatticeGrid, libs.Lattice, latticeGridBody)},
	}
}

func define(name domain.RendererName, lib, body string) Script {
	var sb strings.Builder
	fmt.Fprintf(&sb, "require.undef(%s);\n", Quote(string(name)))
	fmt.Fprintf(&sb, "define(%s, [%s], function (lib) {\n", Quote(string(name)), Quote(lib))
	sb.WriteString(body)
	sb.WriteString("});\n")
	return Script(sb.String())
}

// Renderers append their own div to the container so several charts can share one cell.
const latticePlotBody = `    return function (container, data, plotType, config) {
        var id = "ljs--" + Date.now();
        $(container).append('<div class="ljs--plot" id="' + id + '"></div>');
        lib.plot(data, plotType, id, config);
    };
`

const latticeGridBody = `    return function (container, data, config) {
        var id = "ljs--" + Date.now();
        $(container).append('<div class="ljs--grid" id="' + id + '"></div>');
        lib.grid(data, id, config);
    };
`

// Tooltips are appended to document.body, so ones whose chart was cleared from the
// notebook are removed before drawing. Width is capped at the output area's width.
const icomutBody = `    function cleanUpTooltips() {
        $(".ljs--tooltip").each(function () {
            var tooltipId = $(this).attr("id") || "";
            var svgId = tooltipId.substring(0, tooltipId.indexOf("-tooltip"));
            if (!$("#" + svgId).length) {
                $(this).remove();
            }
        });
    }
    return function (container, dataFile, configFile) {
        cleanUpTooltips();
        var id = "ljs--" + Date.now();
        var width = $(container).width();
        $(container).append('<div class="ljs--grid" id="' + id + '"></div>');
        lib.init(id, { config: configFile, data: dataFile }, width);
    };
`
