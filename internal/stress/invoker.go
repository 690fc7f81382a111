// Package stress orchestrates the stress-test pipeline: clone, build,
// filter, run, reconcile, report.
package stress

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/build"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/config"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/logging"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/shell"
)

// Executor is the subset of shell.Executor the invoker needs.
type Executor interface {
	Run(ctx context.Context, cmd shell.Command) (*shell.Result, error)
}

// Invoker shells out to the external stress-test runner. A runner failure is
// recorded rather than propagated: a failed underlying build still needs its
// partial results reported.
type Invoker struct {
	executor Executor
	cfg      *config.Config
}

// NewInvoker creates an Invoker for the given configuration.
func NewInvoker(executor Executor, cfg *config.Config) *Invoker {
	return &Invoker{executor: executor, cfg: cfg}
}

// Environment builds the variable map exported to the runner. The driver's
// ambient environment is never mutated; the map is merged at exec time.
func (i *Invoker) Environment(branch string, verbose bool, tc build.Toolchain) map[string]string {
	verboseValue := "0"
	if verbose {
		verboseValue = "1"
	}

	return map[string]string{
		constants.EnvSwiftCompiler:        tc.Wrapper,
		constants.EnvStressTester:         tc.StressTester,
		constants.EnvVerbose:              verboseValue,
		constants.EnvMaxJobs:              strconv.Itoa(i.cfg.Runner.MaxJobs),
		constants.EnvOutputFile:           i.cfg.ResultsPath(),
		constants.EnvRequestDurationsFile: i.cfg.RequestDurationsPath(),
		constants.EnvActiveConfig:         branch,
		constants.EnvRewriteModes:         i.cfg.Runner.RewriteModes,
	}
}

// args builds the runner command line against the filtered project list.
func (i *Invoker) args(branch, filteredProjects string, verbose bool) []string {
	args := []string{
		"--projects", filteredProjects,
		"--swift-branch", branch,
		"--swiftc", "sk-swiftc-wrapper",
	}
	if verbose {
		args = append(args, "--verbose")
	}
	if i.cfg.Runner.FilterByTag != "" {
		args = append(args, "--only-actions-with-tag", i.cfg.Runner.FilterByTag)
	}
	if i.cfg.Runner.Sandbox {
		args = append(args, "--sandbox-profile-xcodebuild", i.cfg.Runner.SandboxProfile)
	}
	return args
}

// Run invokes the runner. The returned flag reports whether the underlying
// build failed; only context cancellation is returned as an error.
func (i *Invoker) Run(ctx context.Context, branch, filteredProjects string, verbose bool, tc build.Toolchain) (buildFailed bool, err error) {
	log := zerolog.Ctx(ctx)

	env := i.Environment(branch, verbose, tc)
	for name, value := range env {
		log.Debug().Str(name, logging.SafeEnvValue(name, value)).Msg("runner env")
	}

	cmd := shell.Command{
		Path: i.cfg.Runner.Path,
		Args: i.args(branch, filteredProjects, verbose),
		Dir:  i.cfg.Paths.SuiteDir,
		Env:  env,
	}

	_, runErr := i.executor.Run(ctx, cmd)
	if runErr == nil {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, runErr
	}

	// Tolerated: the runner failing (including by timeout) means the
	// underlying build failed. Partial results still get reconciled.
	log.Warn().
		Err(runErr).
		Bool("timed_out", stderrors.Is(runErr, errors.ErrCommandTimeout)).
		Msg("stress-test runner failed; continuing to result processing")
	return true, nil
}
