// Package config provides configuration management for skstress with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (SKSTRESS_* prefix)
//  3. Project config (.skstress/config.yaml)
//  4. Global config (~/.skstress/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for skstress.
type Config struct {
	// Paths locates the suite checkout, the working directory, and the
	// input files.
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`

	// Build contains settings for the toolchain build phase.
	Build BuildConfig `yaml:"build" mapstructure:"build"`

	// Runner contains settings for the stress-test runner phase.
	Runner RunnerConfig `yaml:"runner" mapstructure:"runner"`

	// Clone contains settings for the tooling clone phase.
	Clone CloneConfig `yaml:"clone" mapstructure:"clone"`
}

// PathsConfig locates inputs and the per-run scratch space.
type PathsConfig struct {
	// SuiteDir is the source compatibility suite checkout. The default
	// projects and xfails files are resolved relative to it.
	// Default: current directory.
	SuiteDir string `yaml:"suite_dir" mapstructure:"suite_dir"`

	// WorkDir is where tooling clones and per-run temp files are placed.
	// Default: SuiteDir.
	WorkDir string `yaml:"work_dir" mapstructure:"work_dir"`

	// Projects overrides the projects file path. Empty means
	// SuiteDir/projects.json.
	Projects string `yaml:"projects,omitempty" mapstructure:"projects"`

	// XFails overrides the expected-failures file path. Empty means
	// SuiteDir/sourcekit-xfails.json.
	XFails string `yaml:"xfails,omitempty" mapstructure:"xfails"`
}

// BuildConfig contains settings for the toolchain build phase.
type BuildConfig struct {
	// Script is the build-script entry point, relative to the swift
	// checkout or absolute.
	// Default: "swift/utils/build-script"
	Script string `yaml:"script" mapstructure:"script"`

	// Assertions enables an assertions build of the toolchain.
	// Default: true
	Assertions bool `yaml:"assertions" mapstructure:"assertions"`

	// Debug selects a debug build variant instead of release.
	// Default: false
	Debug bool `yaml:"debug" mapstructure:"debug"`

	// Swiftc is a prebuilt compiler path. When set, the build phase is
	// skipped and the wrapper uses this compiler directly.
	Swiftc string `yaml:"swiftc,omitempty" mapstructure:"swiftc"`

	// Timeout bounds the build subprocess. Zero means wait forever.
	// Default: 4h
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RunnerConfig contains settings for the external stress-test runner.
type RunnerConfig struct {
	// Path is the runner executable invoked against the filtered project
	// list. Default: "./run" (the suite's runner entry point).
	Path string `yaml:"path" mapstructure:"path"`

	// MaxJobs caps the runner's resource usage, exported as
	// SK_STRESS_MAX_JOBS. Default: 2.
	MaxJobs int `yaml:"max_jobs" mapstructure:"max_jobs"`

	// RewriteModes is the space-separated rewrite mode list exported as
	// SK_STRESS_REWRITE_MODES.
	// Default: "none concurrent insideOut"
	RewriteModes string `yaml:"rewrite_modes" mapstructure:"rewrite_modes"`

	// Sandbox runs the runner under a sandbox profile.
	// Default: false
	Sandbox bool `yaml:"sandbox" mapstructure:"sandbox"`

	// SandboxProfile is the profile handed to the runner when Sandbox is
	// enabled.
	SandboxProfile string `yaml:"sandbox_profile,omitempty" mapstructure:"sandbox_profile"`

	// FilterByTag restricts the runner to actions carrying this tag.
	FilterByTag string `yaml:"filter_by_tag,omitempty" mapstructure:"filter_by_tag"`

	// Timeout bounds the runner subprocess. Zero means wait forever.
	// Default: 0 (the runner enforces its own per-request limits).
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CloneConfig contains settings for the tooling clone phase.
type CloneConfig struct {
	// Timeout bounds each repository clone. Zero means wait forever.
	// Default: 10m
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}
