package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
	"github.com/aretw0/latticenb/pkg/adapters/mcp"
	"github.com/aretw0/latticenb/pkg/display"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes draw_plot, draw_lattice, plot_icomut and renderer_loader as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		s, err := cli.NewSession(cli.Options{
			Config:  appConfig,
			Logger:  logger,
			Primary: display.Discard,
		})
		if err != nil {
			return err
		}
		defer s.Close()

		srv := mcp.NewServer(s.Adapter, appConfig.Libraries)

		switch transport {
		case "stdio":
			// logger writes to stderr, stdout carries JSON-RPC
			logger.Info("starting MCP server", "transport", transport)
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("starting MCP server", "transport", transport, "port", port)
			return srv.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
