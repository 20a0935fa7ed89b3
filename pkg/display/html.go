package display

import (
	"context"
	"html/template"
	"io"
	"strconv"
	"sync"
)

// Default script sources for the preview page.
const (
	DefaultJQueryURL    = "https://code.jquery.com/jquery-3.7.1.min.js"
	DefaultRequireJSURL = "https://cdnjs.cloudflare.com/ajax/libs/require.js/2.3.6/require.min.js"
)

// HTMLOptions configure the preview page.
type HTMLOptions struct {
	Title        string
	BaseURL      string // where the renderer bundles are served from
	JQueryURL    string
	RequireJSURL string
}

// HTML collects payloads and renders them as a standalone page.
// Each payload gets its own output div, bound to `element` the way a notebook cell is.
type HTML struct {
	mu    sync.Mutex
	opts  HTMLOptions
	cells []Payload
}

// NewHTML creates an empty preview sink.
func NewHTML(opts HTMLOptions) *HTML {
	if opts.Title == "" {
		opts.Title = "latticenb preview"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "/nbextensions/"
	}
	if opts.JQueryURL == "" {
		opts.JQueryURL = DefaultJQueryURL
	}
	if opts.RequireJSURL == "" {
		opts.RequireJSURL = DefaultRequireJSURL
	}
	return &HTML{opts: opts}
}

func (h *HTML) Display(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cells = append(h.cells, p)
	return nil
}

// Len reports how many payloads have been collected.
func (h *HTML) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.cells)
}

type htmlCell struct {
	ID       string
	Renderer string
	Script   template.JS
}

type htmlPage struct {
	HTMLOptions
	Cells []htmlCell
}

// Render writes the page. Scripts are inserted verbatim: the call builder already
// escapes every "</" sequence that could close the script element.
func (h *HTML) Render(w io.Writer) error {
	h.mu.Lock()
	page := htmlPage{HTMLOptions: h.opts}
	for i, c := range h.cells {
		page.Cells = append(page.Cells, htmlCell{
			ID:       cellID(i),
			Renderer: string(c.Renderer),
			Script:   template.JS(c.Script),
		})
	}
	h.mu.Unlock()

	return pageTemplate.Execute(w, page)
}

func cellID(i int) string {
	return "latticenb-cell-" + strconv.Itoa(i)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <script src="{{.JQueryURL}}"></script>
    <script src="{{.RequireJSURL}}"></script>
    <script>require.config({ baseUrl: {{.BaseURL}} });</script>
</head>
<body>
{{- range .Cells}}
<div class="output_subarea" id="{{.ID}}" data-renderer="{{.Renderer}}"></div>
<script>
(function (element) {
{{.Script}}
})(jQuery("#{{.ID}}"));
</script>
{{- end}}
</body>
</html>
`))
