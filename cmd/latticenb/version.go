package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/latticenb"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of latticenb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "latticenb version %s\n", strings.TrimSpace(latticenb.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
