package config

import (
	"github.com/spf13/viper"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			// SuiteDir: the driver normally runs from the suite checkout.
			SuiteDir: ".",

			// WorkDir: empty means "same as SuiteDir", resolved during
			// validation so a suite_dir override carries through.
			WorkDir: "",
		},
		Build: BuildConfig{
			// Script: the standard build-script location relative to the
			// umbrella checkout.
			Script: "swift/utils/build-script",

			// Assertions: CI runs want assertion builds so compiler bugs
			// surface as assertion failures instead of silent miscompiles.
			Assertions: true,

			// Debug: release builds by default; debug is opt-in because it
			// roughly doubles stress-test wall time.
			Debug: false,

			// Timeout: toolchain builds are long.
			Timeout: constants.DefaultBuildTimeout,
		},
		Runner: RunnerConfig{
			// Path: the suite's runner entry point.
			Path: "./run",

			// MaxJobs: modest default; the stress tester multiplies every
			// job by its rewrite-mode count.
			MaxJobs: constants.DefaultMaxJobs,

			RewriteModes: constants.DefaultRewriteModes,

			// Timeout: zero, the runner enforces per-request limits itself.
			Timeout: constants.DefaultRunnerTimeout,
		},
		Clone: CloneConfig{
			Timeout: constants.DefaultCloneTimeout,
		},
	}
}

// setDefaults registers default values on a Viper instance so they survive
// partial config files.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("paths.suite_dir", defaults.Paths.SuiteDir)
	v.SetDefault("paths.work_dir", defaults.Paths.WorkDir)
	v.SetDefault("paths.projects", defaults.Paths.Projects)
	v.SetDefault("paths.xfails", defaults.Paths.XFails)

	v.SetDefault("build.script", defaults.Build.Script)
	v.SetDefault("build.assertions", defaults.Build.Assertions)
	v.SetDefault("build.debug", defaults.Build.Debug)
	v.SetDefault("build.swiftc", defaults.Build.Swiftc)
	v.SetDefault("build.timeout", defaults.Build.Timeout)

	v.SetDefault("runner.path", defaults.Runner.Path)
	v.SetDefault("runner.max_jobs", defaults.Runner.MaxJobs)
	v.SetDefault("runner.rewrite_modes", defaults.Runner.RewriteModes)
	v.SetDefault("runner.sandbox", defaults.Runner.Sandbox)
	v.SetDefault("runner.sandbox_profile", defaults.Runner.SandboxProfile)
	v.SetDefault("runner.filter_by_tag", defaults.Runner.FilterByTag)
	v.SetDefault("runner.timeout", defaults.Runner.Timeout)

	v.SetDefault("clone.timeout", defaults.Clone.Timeout)
}
