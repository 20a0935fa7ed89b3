package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestICOMutCommand_Script(t *testing.T) {
	out := execute(t, "icomut", "data/cohort.json", "data/config.json", "--format", "script")

	assert.Contains(t, out, "require(['icomut'], function(icomut) {")
	assert.Contains(t, out, "icomut(element.get(0), 'data/cohort.json', 'data/config.json');")
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "latticenb version")
}

func TestRenderersCommand(t *testing.T) {
	out := execute(t, "renderers")
	assert.Contains(t, out, "lattice_plot")
	assert.Contains(t, out, "lattice_grid")
	assert.Contains(t, out, "icomut")
}
