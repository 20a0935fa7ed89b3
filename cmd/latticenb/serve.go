package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
	"github.com/aretw0/latticenb/internal/presentation/tui"
	httpAdapter "github.com/aretw0/latticenb/pkg/adapters/http"
	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves chart payloads over HTTP. POST /plot, /lattice and /icomut return the
script a notebook cell would run; add ?format=html for a standalone preview page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			appConfig.HTTP.Addr = addr
		}

		var gatherer prometheus.Gatherer
		var metrics *observability.Metrics
		if appConfig.HTTP.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics = observability.NewMetrics(reg)
			gatherer = reg
		}

		s, err := cli.NewSession(cli.Options{
			Config:  appConfig,
			Logger:  logger,
			Metrics: metrics,
			Primary: display.Discard,
		})
		if err != nil {
			return err
		}
		defer s.Close()

		handler := httpAdapter.NewHandler(&httpAdapter.Server{
			Adapter:   s.Adapter,
			Libraries: appConfig.Libraries,
			Preview:   display.HTMLOptions{BaseURL: appConfig.Preview.BaseURL},
			Gatherer:  gatherer,
			Logger:    logger,
		})

		srv := &http.Server{
			Addr:              appConfig.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			tui.PrintBanner(cmd.ErrOrStderr(), fmt.Sprintf("serving on %s", srv.Addr))
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				return srv.Close()
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
}
