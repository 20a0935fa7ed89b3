package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/latticenb/pkg/domain"
)

// ContractsMarkdown describes the renderer signatures as a markdown table.
func ContractsMarkdown(contracts []domain.Contract) string {
	var sb strings.Builder
	sb.WriteString("# Renderers\n\n")
	sb.WriteString("| Renderer | Signature | Description |\n")
	sb.WriteString("|---|---|---|\n")
	for _, c := range contracts {
		sig := fmt.Sprintf("`%s(%s)`", c.Renderer, strings.Join(c.Params, ", "))
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", c.Renderer, sig, c.Summary))
	}
	sb.WriteString("\nData and config arguments are JSON. File paths and the plot type are quoted string literals.\n")
	return sb.String()
}
