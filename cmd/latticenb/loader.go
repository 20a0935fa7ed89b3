package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
)

var loaderCmd = &cobra.Command{
	Use:   "loader",
	Short: "Emit the renderer module definitions",
	Long:  `Emits the scripts registering icomut, lattice_plot and lattice_grid with the notebook's AMD loader.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *cli.Session) error {
			return cli.RunLoader(ctx, s)
		})
	},
}

func init() {
	rootCmd.AddCommand(loaderCmd)
}
