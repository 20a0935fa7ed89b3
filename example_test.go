package latticenb_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/latticenb"
	"github.com/aretw0/latticenb/pkg/display"
)

// ExampleAdapter_DrawPlot writes the bare script so the call is easy to read.
func ExampleAdapter_DrawPlot() {
	nb := latticenb.New(display.NewWriter(os.Stdout, display.FormatScript))

	if err := nb.DrawPlot(context.Background(), map[string]any{"x": []int{1, 2, 3}}, "bar", nil); err != nil {
		log.Fatal(err)
	}
	// Output:
	// (function(element){
	//     require(['lattice_plot'], function(lattice_plot) {
	//         lattice_plot(element.get(0), {"x":[1,2,3]}, 'bar', {});
	//     });
	// })(element);
}

// ExampleAdapter_Render shows how to obtain a payload without a sink, e.g. to embed it elsewhere.
func ExampleAdapter_Render() {
	nb := latticenb.New(display.NewMemory())

	p, err := nb.Render(nb.BuildPlotICOMut("data/maf.tsv", "config/icomut.json"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(p.Renderer, p.MIMEType)
	// Output: icomut application/javascript
}

func ExampleAdapter_Status() {
	nb := latticenb.New(display.NewMemory())
	fmt.Println(nb.Ready())

	if err := nb.Load(context.Background()); err != nil {
		log.Fatal(err)
	}
	st := nb.Status()
	fmt.Println(st.Ready, st.Renderers)
	// Output:
	// false
	// true [icomut lattice_plot lattice_grid]
}
