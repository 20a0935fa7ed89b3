package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Emit a lattice.js plot",
	Long:  `Reads chart data (JSON or YAML) and emits a call to the lattice_plot renderer.`,
	Example: `  latticenb plot --data counts.json --type bar
  latticenb plot --data counts.yaml --type line --config axes.yaml -f html > preview.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, _ := cmd.Flags().GetString("data")
		plotType, _ := cmd.Flags().GetString("type")
		configPath, _ := cmd.Flags().GetString("config")

		return withSession(cmd, func(ctx context.Context, s *cli.Session) error {
			return cli.RunPlot(ctx, s, dataPath, plotType, configPath)
		})
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringP("data", "d", "", "Data file (JSON or YAML)")
	plotCmd.Flags().StringP("type", "t", "", "Plot type (bar, line, scatter, ...)")
	plotCmd.Flags().StringP("config", "c", "", "Plot config file (JSON or YAML mapping)")
	plotCmd.MarkFlagRequired("data")
	plotCmd.MarkFlagRequired("type")
}
