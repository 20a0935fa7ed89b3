package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/latticenb/internal/config"
	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func writeData(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readBundles(t *testing.T, out *bytes.Buffer) []display.Bundle {
	t.Helper()
	var bundles []display.Bundle
	sc := bufio.NewScanner(out)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var b display.Bundle
		require.NoError(t, json.Unmarshal(sc.Bytes(), &b))
		bundles = append(bundles, b)
	}
	return bundles
}

func TestRunPlot_Bundle(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	s, err := NewSession(Options{Config: cfg, Stdout: &out})
	require.NoError(t, err)

	data := writeData(t, "data.json", `{"x": [1, 2, 3]}`)
	plotCfg := writeData(t, "cfg.yaml", "width: 400\n")
	require.NoError(t, RunPlot(context.Background(), s, data, "bar", plotCfg))
	require.NoError(t, s.Close())

	bundles := readBundles(t, &out)
	require.Len(t, bundles, 1)
	assert.Contains(t, bundles[0].Data[domain.MIMEJavaScript],
		`lattice_plot(element.get(0), {"x":[1,2,3]}, 'bar', {"width":400});`)
}

func TestRunLattice_Script(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = "script"
	var out bytes.Buffer
	s, err := NewSession(Options{Config: cfg, Stdout: &out})
	require.NoError(t, err)

	data := writeData(t, "data.yaml", "- 1\n- 2\n")
	require.NoError(t, RunLattice(context.Background(), s, data, ""))
	require.NoError(t, s.Close())

	assert.Contains(t, out.String(), `lattice_grid(element.get(0), [1,2], {});`)
}

func TestRunICOMut_HTML(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = FormatHTML
	var out bytes.Buffer
	s, err := NewSession(Options{Config: cfg, Stdout: &out})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, RunLoader(ctx, s))
	require.NoError(t, RunICOMut(ctx, s, "maf.tsv", "cfg.json"))
	assert.Empty(t, out.String(), "html is written on close")
	require.NoError(t, s.Close())

	page := out.String()
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "define('icomut'")
	assert.Contains(t, page, "icomut(element.get(0), 'maf.tsv', 'cfg.json');")
}

func TestRunPlot_MissingData(t *testing.T) {
	cfg := testConfig(t)
	s, err := NewSession(Options{Config: cfg, Stdout: &bytes.Buffer{}})
	require.NoError(t, err)

	err = RunPlot(context.Background(), s, filepath.Join(t.TempDir(), "missing.json"), "bar", "")
	assert.Error(t, err)
}

func TestNewSession_UnknownFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = "svg"
	_, err := NewSession(Options{Config: cfg})
	assert.Error(t, err)
}

func TestNewSession_RedisRelay(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Addr = mr.Addr()
	var out bytes.Buffer
	s, err := NewSession(Options{Config: cfg, Stdout: &out})
	require.NoError(t, err)

	require.NoError(t, RunICOMut(context.Background(), s, "a.tsv", "b.json"))
	require.NoError(t, s.Close())

	assert.Len(t, readBundles(t, &out), 1)
	assert.True(t, mr.Exists("latticenb:display"))
}

func TestRunPlot_YAMLYearKeys(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = "script"
	var out bytes.Buffer
	s, err := NewSession(Options{Config: cfg, Stdout: &out})
	require.NoError(t, err)

	data := writeData(t, "data.yaml", "2019: 5\n2020: 7\n")
	plotCfg := writeData(t, "cfg.yaml", "margin:\n  1: 10\n")
	require.NoError(t, RunPlot(context.Background(), s, data, "bar", plotCfg))
	require.NoError(t, s.Close())

	assert.Contains(t, out.String(),
		`lattice_plot(element.get(0), {"2019":5,"2020":7}, 'bar', {"margin":{"1":10}});`)
}
