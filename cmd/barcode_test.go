package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/albertb/barcode/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, internal.Version+"\n", out)
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte(heredoc.Doc(`
		charts:
		  - bindto: "#strip"
		    color:
		      over: orange
	`)), 0644))
	data := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(data, []byte(`[{"id": "DE", "name": "Germany", "value": 15}]`), 0644))

	out, err := execute(t, "render", "--config", config, "--data", data, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, `id="bar_DE"`)
	assert.Contains(t, out, "<svg")
}

func TestRenderCmdErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "render", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit config must exist")

	_, err = execute(t, "render", "--log-level", "loud")
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"value": 1}]`), 0644))
	_, err = execute(t, "render", "--config", filepath.Join(dir, "missing.yaml"), "--data", bad)
	assert.Error(t, err)
}

func TestReadConfigMissingDefault(t *testing.T) {
	config, err := readConfig(filepath.Join(t.TempDir(), "config.yaml"), false)
	require.NoError(t, err)
	assert.Empty(t, config.Charts)
}
