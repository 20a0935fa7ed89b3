package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
)

var latticeCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Emit a lattice.js grid",
	Long:  `Reads grid data (JSON or YAML) and emits a call to the lattice_grid renderer.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, _ := cmd.Flags().GetString("data")
		configPath, _ := cmd.Flags().GetString("config")

		return withSession(cmd, func(ctx context.Context, s *cli.Session) error {
			return cli.RunLattice(ctx, s, dataPath, configPath)
		})
	},
}

func init() {
	rootCmd.AddCommand(latticeCmd)
	latticeCmd.Flags().StringP("data", "d", "", "Data file (JSON or YAML)")
	latticeCmd.Flags().StringP("config", "c", "", "Lattice config file (JSON or YAML mapping)")
	latticeCmd.MarkFlagRequired("data")
}
