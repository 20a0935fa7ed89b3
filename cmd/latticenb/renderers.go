package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/latticenb/internal/presentation/tui"
	"github.com/aretw0/latticenb/pkg/domain"
)

var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "Describe the renderer signatures",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		md := tui.ContractsMarkdown(domain.Contracts())

		if term.IsTerminal(int(os.Stdout.Fd())) {
			if render := tui.NewRenderer(); render != nil {
				if out, err := render(md); err == nil {
					md = out
				}
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
	},
}

func init() {
	rootCmd.AddCommand(renderersCmd)
}
