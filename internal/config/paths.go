package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// GlobalConfigDir returns the path to the global skstress configuration
// directory. This is typically ~/.skstress on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.StressHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration
// directory. This is always .skstress relative to the suite checkout.
func ProjectConfigDir() string {
	return constants.StressHome
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.skstress/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file. This is always .skstress/config.yaml relative to the suite checkout.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yaml")
}

// ProjectsPath resolves the effective projects file path.
func (c *Config) ProjectsPath() string {
	if c.Paths.Projects != "" {
		return c.Paths.Projects
	}
	return filepath.Join(c.Paths.SuiteDir, constants.ProjectsFileName)
}

// XFailsPath resolves the effective expected-failures file path.
func (c *Config) XFailsPath() string {
	if c.Paths.XFails != "" {
		return c.Paths.XFails
	}
	return filepath.Join(c.Paths.SuiteDir, constants.XFailsFileName)
}

// EffectiveWorkDir resolves the scratch directory for clones and temp files.
func (c *Config) EffectiveWorkDir() string {
	if c.Paths.WorkDir != "" {
		return c.Paths.WorkDir
	}
	return c.Paths.SuiteDir
}

// FilteredProjectsPath is where the annotated project list is written.
func (c *Config) FilteredProjectsPath() string {
	return filepath.Join(c.EffectiveWorkDir(), constants.FilteredProjectsFileName)
}

// ResultsPath is where the runner writes its results document.
func (c *Config) ResultsPath() string {
	return filepath.Join(c.EffectiveWorkDir(), constants.ResultsFileName)
}

// RequestDurationsPath is where the runner writes request timing data.
func (c *Config) RequestDurationsPath() string {
	return filepath.Join(c.EffectiveWorkDir(), constants.RequestDurationsFileName)
}
