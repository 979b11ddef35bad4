package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	csvio "github.com/wdm0006/purifier/pkg/io/csvio"
	parquetio "github.com/wdm0006/purifier/pkg/io/parquetio"
	p "github.com/wdm0006/purifier/pkg/purifier"
	"github.com/wdm0006/purifier/pkg/report"
)

// execute runs the CLI against chainPath and returns stdout.
func execute(t *testing.T, chainPath string, args ...string) (string, error) {
	t.Helper()
	a := &app{log: zap.NewNop().Sugar()}
	root := newRootCmd(a)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--chain", chainPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestAddRunTrace(t *testing.T) {
	chain := filepath.Join(t.TempDir(), "chain.json")

	out, err := execute(t, chain, "list")
	require.NoError(t, err)
	assert.Equal(t, report.NoFilters+"\n", out)

	_, err = execute(t, chain, "add", "--type", "sediment", "--efficiency", "50")
	require.NoError(t, err)
	out, err = execute(t, chain, "add", "-t", "Carbon", "-e", "30")
	require.NoError(t, err)
	assert.Equal(t, "Type: Sediment, Efficiency: 50\nType: Carbon, Efficiency: 30\n", out)

	out, err = execute(t, chain, "run")
	require.NoError(t, err)
	assert.Equal(t, "Final water parameters:\nSediment: 50\nChemicals: 70\nMicrobes: 100\n", out)

	out, err = execute(t, chain, "--json", "trace")
	require.NoError(t, err)
	assert.Contains(t, out, `"stage": "carbon"`)

	out, err = execute(t, chain, "trace", "--summary")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Trace summary (2 stages)"))
}

func TestAddDefaultEfficiency(t *testing.T) {
	chain := filepath.Join(t.TempDir(), "chain.yaml")
	out, err := execute(t, chain, "add", "--type", "reverse_osmosis")
	require.NoError(t, err)
	assert.Equal(t, "Type: Reverse osmosis, Efficiency: 90\n", out)
}

func TestInvalidInputIsRejected(t *testing.T) {
	chain := filepath.Join(t.TempDir(), "chain.json")

	_, err := execute(t, chain, "add", "--type", "reverse_osmosis", "--efficiency", "150")
	assert.ErrorIs(t, err, p.ErrInvalidEfficiency)
	assert.Equal(t, exitUsage, exitCode(err, &bytes.Buffer{}))
	_, statErr := os.Stat(chain)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "rejected add must not write the chain file")

	_, err = execute(t, chain, "add", "--type", "Unknown", "--efficiency", "10")
	assert.ErrorIs(t, err, p.ErrUnknownStageKind)

	_, err = execute(t, chain, "run")
	assert.ErrorIs(t, err, p.ErrEmptyChain)

	_, err = execute(t, chain, "trace")
	assert.ErrorIs(t, err, p.ErrEmptyChain)
}

func TestTraceExport(t *testing.T) {
	dir := t.TempDir()
	chain := filepath.Join(dir, "chain.toml")
	_, err := execute(t, chain, "add", "--type", "sediment", "--efficiency", "50")
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "trace.csv")
	_, err = execute(t, chain, "trace", "--out", csvPath)
	require.NoError(t, err)
	steps, err := csvio.ReadAll(csvPath, csvio.ReaderOptions{})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 50.0, steps[1].State.Sediment)

	pqPath := filepath.Join(dir, "trace.parquet")
	_, err = execute(t, chain, "trace", "--out", pqPath)
	require.NoError(t, err)
	steps, err = parquetio.ReadAll(pqPath)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	_, err = execute(t, chain, "trace", "--out", filepath.Join(dir, "trace.xlsx"))
	assert.ErrorIs(t, err, errUsage)
}

func TestChainPathMustNameAFile(t *testing.T) {
	for _, path := range []string{"-", "", "  "} {
		for _, args := range [][]string{{"list"}, {"add", "--type", "carbon"}} {
			out, err := execute(t, path, args...)
			assert.ErrorIs(t, err, errUsage, "--chain %q %v", path, args)
			assert.Empty(t, out)
			assert.Equal(t, exitUsage, exitCode(err, &bytes.Buffer{}))
		}
	}
}

func TestImportExportReset(t *testing.T) {
	dir := t.TempDir()
	chain := filepath.Join(dir, "chain.json")
	legacy := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`[{"Тип": "Угольный", "Эффективность": 30}]`), 0o644))

	out, err := execute(t, chain, "import", legacy)
	require.NoError(t, err)
	assert.Equal(t, "Type: Carbon, Efficiency: 30\n", out)

	exported := filepath.Join(dir, "copy.yaml.gz")
	_, err = execute(t, chain, "export", exported)
	require.NoError(t, err)
	out, err = execute(t, exported, "list")
	require.NoError(t, err)
	assert.Equal(t, "Type: Carbon, Efficiency: 30\n", out)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"type": "Unknown", "efficiency": 1}]`), 0o644))
	_, err = execute(t, chain, "import", bad)
	assert.ErrorIs(t, err, p.ErrUnknownStageKind)
	out, err = execute(t, chain, "list")
	require.NoError(t, err)
	assert.Equal(t, "Type: Carbon, Efficiency: 30\n", out, "failed import must keep the saved chain")

	out, err = execute(t, chain, "reset")
	require.NoError(t, err)
	assert.Equal(t, report.NoFilters+"\n", out)
}

func TestInfo(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "c.json"), "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Available filters")
	assert.Contains(t, out, "Reverse osmosis")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil, &bytes.Buffer{}))
	assert.Equal(t, exitRuntime, exitCode(errors.New("disk on fire"), &bytes.Buffer{}))
	assert.Equal(t, exitUsage, exitCode(p.ErrEmptyChain, &bytes.Buffer{}))
}
