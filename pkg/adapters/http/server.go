package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/latticenb"
	"github.com/aretw0/latticenb/internal/logging"
	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/jscall"
)

// maxBodyBytes bounds request bodies; chart data is inlined into the payload.
const maxBodyBytes = 8 << 20

// Server exposes the adapter over HTTP. Every generated payload is also handed to the
// adapter's sink, so a relay sink sees charts requested through the API.
type Server struct {
	Adapter   *latticenb.Adapter
	Libraries jscall.Libraries
	Preview   display.HTMLOptions
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// PlotRequest is the body of POST /plot.
type PlotRequest struct {
	Data     any                 `json:"data"`
	PlotType string              `json:"plot_type"`
	Config   domain.RenderConfig `json:"config"`
}

// LatticeRequest is the body of POST /lattice.
type LatticeRequest struct {
	Data   any                 `json:"data"`
	Config domain.RenderConfig `json:"config"`
}

// ICOMutRequest is the body of POST /icomut.
type ICOMutRequest struct {
	DataFile   string `json:"data_file"`
	ConfigFile string `json:"config_file"`
}

// PayloadResponse carries a generated script.
type PayloadResponse struct {
	Renderer domain.RendererName `json:"renderer"`
	MIMEType string              `json:"mime_type"`
	Script   string              `json:"script"`
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/status", s.GetStatus)
	r.Get("/renderers", s.GetRenderers)
	r.Get("/loader.js", s.GetLoader)
	r.Post("/plot", s.Plot)
	r.Post("/lattice", s.Lattice)
	r.Post("/icomut", s.ICOMut)

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "latticenb-http",
		"version": strings.TrimSpace(latticenb.Version),
	})
}

// GetStatus handles the GET /status request.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Adapter.Status())
}

// GetRenderers handles the GET /renderers request.
func (s *Server) GetRenderers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Contracts())
}

// GetLoader serves the renderer module definitions as one script.
func (s *Server) GetLoader(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	for _, d := range jscall.Definitions(s.Libraries) {
		fmt.Fprintln(w, d.Script.String())
	}
}

// Plot handles the POST /plot request.
func (s *Server) Plot(w http.ResponseWriter, r *http.Request) {
	var body PlotRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Data == nil {
		http.Error(w, "data is required", http.StatusBadRequest)
		return
	}
	if body.PlotType == "" {
		http.Error(w, "plot_type is required", http.StatusBadRequest)
		return
	}
	s.respond(w, r, s.Adapter.BuildPlot(body.Data, body.PlotType, body.Config))
}

// Lattice handles the POST /lattice request.
func (s *Server) Lattice(w http.ResponseWriter, r *http.Request) {
	var body LatticeRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Data == nil {
		http.Error(w, "data is required", http.StatusBadRequest)
		return
	}
	s.respond(w, r, s.Adapter.BuildLattice(body.Data, body.Config))
}

// ICOMut handles the POST /icomut request.
func (s *Server) ICOMut(w http.ResponseWriter, r *http.Request) {
	var body ICOMutRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.DataFile == "" || body.ConfigFile == "" {
		http.Error(w, "data_file and config_file are required", http.StatusBadRequest)
		return
	}
	s.respond(w, r, s.Adapter.BuildPlotICOMut(body.DataFile, body.ConfigFile))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, inv domain.ChartInvocation) {
	p, err := s.Adapter.Emit(r.Context(), inv)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrSerialize) || errors.Is(err, domain.ErrMalformedScript) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Render error: %v", err), status)
		s.Logger.Warn("render failed", "renderer", inv.Renderer, "error", err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		s.writePreview(w, r, p)
		return
	}

	writeJSON(w, http.StatusOK, PayloadResponse{
		Renderer: p.Renderer,
		MIMEType: p.MIMEType,
		Script:   p.Script.String(),
	})
}

// writePreview renders a standalone page: module definitions first, then the chart.
func (s *Server) writePreview(w http.ResponseWriter, r *http.Request, p display.Payload) {
	page := display.NewHTML(s.Preview)
	for _, d := range jscall.Definitions(s.Libraries) {
		if err := page.Display(r.Context(), display.NewPayload(d.Renderer, d.Script)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if err := page.Display(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
		s.Logger.Error("preview render failed", "error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
