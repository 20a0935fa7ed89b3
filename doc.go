/*
Package latticenb draws lattice.js and iCoMut charts into notebook cells.

The charting itself lives in JavaScript renderers registered with the notebook's AMD
loader (`icomut`, `lattice_plot`, `lattice_grid`). This package builds the call into
the renderer, serializing every argument through a single encoder, and hands the
resulting script to a display sink that executes it against the cell's output element.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/latticenb"
		"github.com/aretw0/latticenb/pkg/display"
		"github.com/aretw0/latticenb/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		// Payloads go to stdout as Jupyter display_data bundles.
		nb := latticenb.New(display.NewWriter(nil, display.FormatBundle))

		// Register the renderer modules once per notebook session.
		if err := nb.Load(ctx); err != nil {
			log.Fatal(err)
		}

		data := map[string]any{"x": []int{1, 2, 3}, "y": []int{4, 1, 7}}
		if err := nb.DrawPlot(ctx, data, "bar", domain.RenderConfig{"width": 400}); err != nil {
			log.Fatal(err)
		}
	}

# Argument Encoding

Data and config values are JSON. File paths and the plot type are single-quoted
string literals. The two encodings are kept distinct because the renderers expect
exactly that shape. Values that cannot be encoded (channels, functions, NaN, cyclic
maps) fail with domain.ErrSerialize before anything reaches the sink.
*/
package latticenb
