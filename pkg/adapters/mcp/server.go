package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/latticenb"
	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/jscall"
)

// Resource URIs.
const (
	RenderersURI = "latticenb://renderers"
	StatusURI    = "latticenb://status"
)

// Server exposes the adapter as an MCP server so an agent can produce notebook cells.
type Server struct {
	adapter   *latticenb.Adapter
	libs      jscall.Libraries
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(adapter *latticenb.Adapter, libs jscall.Libraries) *Server {
	s := &Server{
		adapter:   adapter,
		libs:      libs,
		mcpServer: server.NewMCPServer("latticenb-mcp", strings.TrimSpace(latticenb.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints (/sse, /message) on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("draw_plot",
		mcp.WithDescription("Build the notebook script drawing a single lattice.js plot."),
		mcp.WithString("data", mcp.Required(), mcp.Description("Plot data as a JSON document")),
		mcp.WithString("plot_type", mcp.Required(), mcp.Description("Plot type, e.g. bar, line, scatter")),
		mcp.WithString("config", mcp.Description("Plot config as a JSON object (optional)")),
	), s.handleDrawPlot)

	s.mcpServer.AddTool(mcp.NewTool("draw_lattice",
		mcp.WithDescription("Build the notebook script drawing a lattice.js grid."),
		mcp.WithString("data", mcp.Required(), mcp.Description("Grid data as a JSON document")),
		mcp.WithString("config", mcp.Description("Lattice config as a JSON object (optional)")),
	), s.handleDrawLattice)

	s.mcpServer.AddTool(mcp.NewTool("plot_icomut",
		mcp.WithDescription("Build the notebook script drawing an iCoMut plot from files served by the notebook."),
		mcp.WithString("data_file", mcp.Required(), mcp.Description("Path of the data file")),
		mcp.WithString("config_file", mcp.Required(), mcp.Description("Path of the config file")),
	), s.handlePlotICOMut)

	s.mcpServer.AddTool(mcp.NewTool("renderer_loader",
		mcp.WithDescription("Get the script registering the renderer modules. Run it once per notebook session."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		for _, d := range jscall.Definitions(s.libs) {
			sb.WriteString(d.Script.String())
		}
		return mcp.NewToolResultText(sb.String()), nil
	})
}

func (s *Server) handleDrawPlot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	data, err := decodeJSONArg(args, "data", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	plotType, _ := args["plot_type"].(string)
	if plotType == "" {
		return mcp.NewToolResultError("plot_type is required"), nil
	}
	cfg, err := decodeConfigArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.emit(ctx, s.adapter.BuildPlot(data, plotType, cfg))
}

func (s *Server) handleDrawLattice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	data, err := decodeJSONArg(args, "data", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := decodeConfigArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.emit(ctx, s.adapter.BuildLattice(data, cfg))
}

func (s *Server) handlePlotICOMut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	dataFile, _ := args["data_file"].(string)
	configFile, _ := args["config_file"].(string)
	if dataFile == "" || configFile == "" {
		return mcp.NewToolResultError("data_file and config_file are required"), nil
	}
	return s.emit(ctx, s.adapter.BuildPlotICOMut(dataFile, configFile))
}

func (s *Server) emit(ctx context.Context, inv domain.ChartInvocation) (*mcp.CallToolResult, error) {
	p, err := s.adapter.Emit(ctx, inv)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(p.Script.String()), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(RenderersURI, "Renderer Contracts",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(RenderersURI, domain.Contracts())
	})

	s.mcpServer.AddResource(mcp.NewResource(StatusURI, "Adapter Status",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(StatusURI, s.adapter.Status())
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

// decodeJSONArg parses a JSON document passed as a string. Numbers keep their literal form.
func decodeJSONArg(args map[string]any, key string, required bool) (any, error) {
	raw, _ := args[key].(string)
	if raw == "" {
		if required {
			return nil, fmt.Errorf("%s is required", key)
		}
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", key, err)
	}
	return v, nil
}

func decodeConfigArg(args map[string]any) (domain.RenderConfig, error) {
	v, err := decodeJSONArg(args, "config", false)
	if err != nil || v == nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config must be a JSON object, got %T", v)
	}
	return domain.RenderConfig(m), nil
}
