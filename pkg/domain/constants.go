package domain

// Renderer module names as registered with the frontend's AMD loader.
const (
	RendererICOMut      RendererName = "icomut"
	RendererLatticePlot RendererName = "lattice_plot"
	RendererLatticeGrid RendererName = "lattice_grid"
)

// DefaultContainer is the output element of the notebook cell executing the payload.
// Jupyter binds `element` to a jQuery wrapper, so the raw DOM node is element.get(0).
const DefaultContainer ContainerRef = "element.get(0)"

// MIMEJavaScript is the display bundle key the notebook frontend executes.
const MIMEJavaScript = "application/javascript"
