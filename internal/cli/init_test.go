package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesGlobalConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SKSTRESS_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	stdout, _, err := runInitCommand(t)
	require.NoError(t, err)

	configPath := filepath.Join(home, ".skstress", "config.yaml")
	assert.Contains(t, stdout, configPath)

	data, err := os.ReadFile(configPath) //#nosec G304 -- test-owned path
	require.NoError(t, err)
	assert.Contains(t, string(data), "runner:")
	assert.Contains(t, string(data), "rewrite_modes: none concurrent insideOut")
}

func TestInit_RefusesOverwrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SKSTRESS_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	configPath := filepath.Join(home, ".skstress", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o750))
	require.NoError(t, os.WriteFile(configPath, []byte("runner:\n  max_jobs: 8\n"), 0o600))

	_, stderr, err := runInitCommand(t)
	require.NoError(t, err)
	assert.Contains(t, stderr, "already exists")

	// Hand-edited config was not clobbered.
	data, err := os.ReadFile(configPath) //#nosec G304 -- test-owned path
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_jobs: 8")
}

func TestInit_WritesProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SKSTRESS_HOME", t.TempDir())
	suite := t.TempDir()
	t.Chdir(suite)

	_, _, err := runInitCommand(t, "--project")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(suite, ".skstress", "config.yaml"))
	assert.NoError(t, statErr)
}

// runInitCommand executes `skstress init` with the given extra args.
func runInitCommand(t *testing.T, extra ...string) (stdout, stderr string, err error) {
	t.Helper()
	args := append([]string{"init"}, extra...)

	var outBuf, errBuf bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}
