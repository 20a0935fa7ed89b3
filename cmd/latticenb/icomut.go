package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb/internal/cli"
)

var icomutCmd = &cobra.Command{
	Use:   "icomut DATA_FILE CONFIG_FILE",
	Short: "Emit an iCoMut plot",
	Long: `Emits a call to the icomut renderer. Both paths are passed through as strings;
the renderer fetches them from the notebook server.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *cli.Session) error {
			return cli.RunICOMut(ctx, s, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(icomutCmd)
}
