package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
	"github.com/aretw0/latticenb/internal/config"
	"github.com/aretw0/latticenb/internal/logging"
)

var (
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "latticenb",
	Short: "latticenb draws lattice.js and iCoMut charts into notebook cells",
	Long: `latticenb builds the JavaScript that calls a notebook's chart renderers
(icomut, lattice_plot, lattice_grid) and emits it as Jupyter display_data bundles,
bare scripts or a standalone HTML preview.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}

		configFile, _ := cmd.Flags().GetString("config-file")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("format") {
			cfg.Format, _ = cmd.Flags().GetString("format")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("check") {
			cfg.CheckScripts, _ = cmd.Flags().GetBool("check")
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config-file", "", "Config file (YAML or JSON, default ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file with LATTICENB_* overrides")
	rootCmd.PersistentFlags().StringP("format", "f", "bundle", "Output format: bundle, script or html")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("check", false, "Parse every payload before emitting it")
}

// withSession runs fn against a session writing to the command's stdout.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *cli.Session) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := cli.NewSession(cli.Options{
		Config: appConfig,
		Stdout: cmd.OutOrStdout(),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	runErr := fn(ctx, s)
	closeErr := s.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
