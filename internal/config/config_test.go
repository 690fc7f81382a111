package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.Paths.SuiteDir)
	assert.Equal(t, "swift/utils/build-script", cfg.Build.Script)
	assert.True(t, cfg.Build.Assertions)
	assert.False(t, cfg.Build.Debug)
	assert.Equal(t, constants.DefaultBuildTimeout, cfg.Build.Timeout)
	assert.Equal(t, "./run", cfg.Runner.Path)
	assert.Equal(t, constants.DefaultMaxJobs, cfg.Runner.MaxJobs)
	assert.Equal(t, constants.DefaultRewriteModes, cfg.Runner.RewriteModes)
	assert.Equal(t, time.Duration(0), cfg.Runner.Timeout)
	assert.Equal(t, constants.DefaultCloneTimeout, cfg.Clone.Timeout)

	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "empty suite dir",
			mutate:  func(cfg *Config) { cfg.Paths.SuiteDir = "" },
			wantErr: errors.ErrConfigInvalidPaths,
		},
		{
			name: "empty build script without swiftc",
			mutate: func(cfg *Config) {
				cfg.Build.Script = ""
				cfg.Build.Swiftc = ""
			},
			wantErr: errors.ErrConfigInvalidBuild,
		},
		{
			name: "empty build script with prebuilt swiftc is fine",
			mutate: func(cfg *Config) {
				cfg.Build.Script = ""
				cfg.Build.Swiftc = "/toolchain/bin/swiftc"
			},
		},
		{
			name:    "negative build timeout",
			mutate:  func(cfg *Config) { cfg.Build.Timeout = -time.Second },
			wantErr: errors.ErrConfigInvalidBuild,
		},
		{
			name:    "empty runner path",
			mutate:  func(cfg *Config) { cfg.Runner.Path = "" },
			wantErr: errors.ErrConfigInvalidRunner,
		},
		{
			name:    "zero max jobs",
			mutate:  func(cfg *Config) { cfg.Runner.MaxJobs = 0 },
			wantErr: errors.ErrConfigInvalidRunner,
		},
		{
			name: "sandbox without profile",
			mutate: func(cfg *Config) {
				cfg.Runner.Sandbox = true
				cfg.Runner.SandboxProfile = ""
			},
			wantErr: errors.ErrConfigInvalidRunner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	err := Validate(nil)
	assert.ErrorIs(t, err, errors.ErrConfigNil)
}

func TestConfig_PathResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths.SuiteDir = "/suite"

	assert.Equal(t, filepath.Join("/suite", constants.ProjectsFileName), cfg.ProjectsPath())
	assert.Equal(t, filepath.Join("/suite", constants.XFailsFileName), cfg.XFailsPath())
	assert.Equal(t, "/suite", cfg.EffectiveWorkDir())
	assert.Equal(t, filepath.Join("/suite", constants.FilteredProjectsFileName), cfg.FilteredProjectsPath())
	assert.Equal(t, filepath.Join("/suite", constants.ResultsFileName), cfg.ResultsPath())
	assert.Equal(t, filepath.Join("/suite", constants.RequestDurationsFileName), cfg.RequestDurationsPath())

	cfg.Paths.Projects = "/custom/projects.json"
	cfg.Paths.XFails = "/custom/xfails.json"
	cfg.Paths.WorkDir = "/scratch"

	assert.Equal(t, "/custom/projects.json", cfg.ProjectsPath())
	assert.Equal(t, "/custom/xfails.json", cfg.XFailsPath())
	assert.Equal(t, filepath.Join("/scratch", constants.ResultsFileName), cfg.ResultsPath())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
paths:
  suite_dir: /suite
build:
  timeout: 90m
  debug: true
runner:
  max_jobs: 8
  rewrite_modes: "none basic"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/suite", cfg.Paths.SuiteDir)
	assert.Equal(t, 90*time.Minute, cfg.Build.Timeout)
	assert.True(t, cfg.Build.Debug)
	assert.Equal(t, 8, cfg.Runner.MaxJobs)
	assert.Equal(t, "none basic", cfg.Runner.RewriteModes)
	// Untouched keys keep their defaults.
	assert.Equal(t, "./run", cfg.Runner.Path)
	assert.True(t, cfg.Build.Assertions)
}

func TestLoadFromFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: ["), 0o600))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runner:\n  max_jobs: 0\n"), 0o600))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigInvalidRunner)
}

func TestLoad_UsesDefaultsWithoutConfigFiles(t *testing.T) {
	// Run from a temp dir so no project config is picked up.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Runner.Path, cfg.Runner.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SKSTRESS_RUNNER_MAX_JOBS", "5")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Runner.MaxJobs)
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefault(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Build.Script, cfg.Build.Script)

	// Refuses to overwrite.
	err = WriteDefault(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)
}
