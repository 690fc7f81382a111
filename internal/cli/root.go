// Package cli provides the command-line interface for skstress.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/config"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/results"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/stress"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// stressDriver is the pipeline surface the run command needs.
type stressDriver interface {
	Run(ctx context.Context, opts stress.Options) (*results.RunResult, error)
}

// newDriver constructs the pipeline driver. Overridable in tests.
var newDriver = func(cfg *config.Config) stressDriver { //nolint:gochecknoglobals // Test seam
	return stress.NewDriver(cfg)
}

// runFlags holds the flags specific to the root run command. Each maps onto
// a configuration key and overrides it only when explicitly set.
type runFlags struct {
	SuiteDir       string
	WorkDir        string
	Projects       string
	XFails         string
	Swiftc         string
	FilterByTag    string
	SandboxProfile string
	Sandbox        bool
	Assertions     bool
	Debug          bool
	SkipClone      bool
	SkipBuild      bool
	SkipRunner     bool
}

// addRunFlags registers the run command flags.
func addRunFlags(cmd *cobra.Command, rf *runFlags) {
	f := cmd.Flags()
	f.StringVar(&rf.SuiteDir, "suite-dir", "", "source compatibility suite checkout (default: current directory)")
	f.StringVar(&rf.WorkDir, "work-dir", "", "scratch directory for clones and temp files (default: suite dir)")
	f.StringVar(&rf.Projects, "projects", "", "projects file (default: <suite-dir>/projects.json)")
	f.StringVar(&rf.XFails, "xfails", "", "expected-failures file (default: <suite-dir>/sourcekit-xfails.json)")
	f.StringVar(&rf.Swiftc, "swiftc", "", "prebuilt compiler path; skips the toolchain build")
	f.StringVar(&rf.FilterByTag, "filter-by-tag", "", "restrict the runner to actions carrying this tag")
	f.StringVar(&rf.SandboxProfile, "sandbox-profile", "", "sandbox profile for the runner")
	f.BoolVar(&rf.Sandbox, "sandbox", false, "run the stress tester under a sandbox profile")
	f.BoolVar(&rf.Assertions, "assertions", true, "build the toolchain with assertions")
	f.BoolVar(&rf.Debug, "debug", false, "build a debug toolchain instead of release")
	f.BoolVar(&rf.SkipClone, "skip-tools-clone", false, "skip cloning the tooling repositories")
	f.BoolVar(&rf.SkipBuild, "skip-tools-build", false, "skip building the toolchain")
	f.BoolVar(&rf.SkipRunner, "skip-runner", false, "skip invoking the stress-test runner")
}

// applyRunFlags folds explicitly-set flags into the loaded configuration.
// Unset flags leave the config value (file, env or default) alone.
func applyRunFlags(cmd *cobra.Command, rf *runFlags, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("suite-dir") {
		cfg.Paths.SuiteDir = rf.SuiteDir
	}
	if f.Changed("work-dir") {
		cfg.Paths.WorkDir = rf.WorkDir
	}
	if f.Changed("projects") {
		cfg.Paths.Projects = rf.Projects
	}
	if f.Changed("xfails") {
		cfg.Paths.XFails = rf.XFails
	}
	if f.Changed("swiftc") {
		cfg.Build.Swiftc = rf.Swiftc
	}
	if f.Changed("filter-by-tag") {
		cfg.Runner.FilterByTag = rf.FilterByTag
	}
	if f.Changed("sandbox-profile") {
		cfg.Runner.SandboxProfile = rf.SandboxProfile
	}
	if f.Changed("sandbox") {
		cfg.Runner.Sandbox = rf.Sandbox
	}
	if f.Changed("assertions") {
		cfg.Build.Assertions = rf.Assertions
	}
	if f.Changed("debug") {
		cfg.Build.Debug = rf.Debug
	}
}

// newRootCmd creates and returns the root command for the skstress CLI.
// The root command is the run itself: skstress <branch>.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:   "skstress <branch>",
		Short: "skstress - SourceKit stress testing against the source compatibility suite",
		Long: `skstress drives SourceKit stress testing for a branch under test.

It builds the stress-testing toolchain, filters the compatibility suite's
project list, invokes the stress-test runner against it, and reconciles the
observed issues against the declared expected failures. The run passes when
every observed issue was expected and every applicable expected failure
occurred.`,
		Version: formatVersion(info),
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.Wrap(errors.ErrBranchRequired, "usage: skstress <branch>")
			}
			return runStress(cmd, flags, rf, args[0])
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)
	addRunFlags(cmd, rf)

	AddInitCommand(cmd)

	return cmd
}

// runStress executes the full pipeline for one branch and reports the
// verdict. A failed run returns ErrStressTestFailed so the process exits
// non-zero after the report is printed.
func runStress(cmd *cobra.Command, flags *GlobalFlags, rf *runFlags, branch string) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	applyRunFlags(cmd, rf, cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	driver := newDriver(cfg)
	result, err := driver.Run(ctx, stress.Options{
		Branch:     branch,
		Verbose:    flags.Verbose,
		SkipClone:  rf.SkipClone,
		SkipBuild:  rf.SkipBuild,
		SkipRunner: rf.SkipRunner,
	})
	if err != nil {
		return err
	}

	out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)
	if flags.Output == OutputJSON {
		if err := out.JSON(result); err != nil {
			return err
		}
	} else {
		results.NewReporter(out).Report(result)
	}

	if !result.Passed() {
		return errors.Wrapf(errors.ErrStressTestFailed, "branch %s", branch)
	}
	return nil
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
