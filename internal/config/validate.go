package config

import (
	"fmt"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// Validate checks a Config for invalid values. It returns a sentinel-wrapped
// error naming the first offending field so malformed input fails fast with
// a specific diagnosis.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		return err
	}
	if err := validateBuild(&cfg.Build); err != nil {
		return err
	}
	return validateRunner(&cfg.Runner)
}

func validatePaths(paths *PathsConfig) error {
	if paths.SuiteDir == "" {
		return fmt.Errorf("%w: paths.suite_dir %w", errors.ErrConfigInvalidPaths, errors.ErrEmptyValue)
	}
	return nil
}

func validateBuild(build *BuildConfig) error {
	if build.Script == "" && build.Swiftc == "" {
		return fmt.Errorf("%w: build.script %w when no prebuilt compiler is set", errors.ErrConfigInvalidBuild, errors.ErrEmptyValue)
	}
	if build.Timeout < 0 {
		return fmt.Errorf("%w: build.timeout must not be negative: %w", errors.ErrConfigInvalidBuild, errors.ErrValueOutOfRange)
	}
	return nil
}

func validateRunner(runner *RunnerConfig) error {
	if runner.Path == "" {
		return fmt.Errorf("%w: runner.path %w", errors.ErrConfigInvalidRunner, errors.ErrEmptyValue)
	}
	if runner.MaxJobs < 1 {
		return fmt.Errorf("%w: runner.max_jobs must be at least 1: %w", errors.ErrConfigInvalidRunner, errors.ErrValueOutOfRange)
	}
	if runner.Timeout < 0 {
		return fmt.Errorf("%w: runner.timeout must not be negative: %w", errors.ErrConfigInvalidRunner, errors.ErrValueOutOfRange)
	}
	if runner.Sandbox && runner.SandboxProfile == "" {
		return fmt.Errorf("%w: runner.sandbox_profile %w when sandbox is enabled", errors.ErrConfigInvalidRunner, errors.ErrEmptyValue)
	}
	return nil
}
