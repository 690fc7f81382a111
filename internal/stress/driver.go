package stress

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/build"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/config"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/ctxutil"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/flock"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/git"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/project"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/results"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/shell"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/xfail"
)

// Cloner clones the tooling repositories.
type Cloner interface {
	CloneTooling(ctx context.Context, branch, workDir string) error
}

// ToolchainBuilder builds the toolchain and locates its binaries.
type ToolchainBuilder interface {
	Build(ctx context.Context, workDir string) error
	Toolchain(workDir string) build.Toolchain
}

// RunnerInvoker invokes the external stress-test runner.
type RunnerInvoker interface {
	Run(ctx context.Context, branch, filteredProjects string, verbose bool, tc build.Toolchain) (buildFailed bool, err error)
}

// Options selects which phases of a run execute.
type Options struct {
	// Branch is the branch under test. Required.
	Branch string

	// Verbose is forwarded to the runner environment.
	Verbose bool

	// SkipClone, SkipBuild and SkipRunner skip the corresponding phase.
	// Result processing always runs.
	SkipClone  bool
	SkipBuild  bool
	SkipRunner bool
}

// Driver executes the pipeline strictly sequentially: each phase owns its
// temp files and finishes before the next begins.
type Driver struct {
	cfg     *config.Config
	cloner  Cloner
	builder ToolchainBuilder
	invoker RunnerInvoker

	// hostOS is overridable in tests; runs require darwin.
	hostOS string
}

// NewDriver wires a Driver with real collaborators, one executor per phase
// so each carries its configured timeout.
func NewDriver(cfg *config.Config) *Driver {
	return &Driver{
		cfg:     cfg,
		cloner:  git.NewCloner(shell.NewExecutor(cfg.Clone.Timeout)),
		builder: build.NewBuilder(shell.NewExecutor(cfg.Build.Timeout), cfg.Build),
		invoker: NewInvoker(shell.NewExecutor(cfg.Runner.Timeout), cfg),
		hostOS:  runtime.GOOS,
	}
}

// NewDriverWithCollaborators wires a Driver with injected collaborators, for
// testing.
func NewDriverWithCollaborators(cfg *config.Config, cloner Cloner, builder ToolchainBuilder, invoker RunnerInvoker, hostOS string) *Driver {
	return &Driver{
		cfg:     cfg,
		cloner:  cloner,
		builder: builder,
		invoker: invoker,
		hostOS:  hostOS,
	}
}

// Run executes the pipeline for one branch and returns the reconciled
// result. The platform check happens before any side effect.
func (d *Driver) Run(ctx context.Context, opts Options) (*results.RunResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if opts.Branch == "" {
		return nil, errors.ErrBranchRequired
	}
	if d.hostOS != "darwin" {
		return nil, errors.Wrapf(errors.ErrPlatformUnsupported, "stress testing requires macOS, running on %s", d.hostOS)
	}

	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", runID).
		Str("branch", opts.Branch).
		Logger()
	ctx = logger.WithContext(ctx)

	release, err := d.acquireRunLock()
	if err != nil {
		return nil, err
	}
	defer release()

	d.cleanupTempFiles(ctx)

	workDir := d.cfg.EffectiveWorkDir()

	if opts.SkipClone {
		logger.Info().Msg("skipping tooling clone")
	} else if err := d.cloner.CloneTooling(ctx, opts.Branch, workDir); err != nil {
		return nil, err
	}

	// A prebuilt compiler makes the build phase redundant.
	if opts.SkipBuild || d.cfg.Build.Swiftc != "" {
		logger.Info().Str("swiftc", d.cfg.Build.Swiftc).Msg("skipping toolchain build")
	} else if err := d.builder.Build(ctx, workDir); err != nil {
		return nil, err
	}

	if err := project.Filter(ctx, d.cfg.ProjectsPath(), d.cfg.FilteredProjectsPath()); err != nil {
		return nil, err
	}

	buildFailed := false
	if opts.SkipRunner {
		logger.Info().Msg("skipping stress-test runner")
	} else {
		tc := d.builder.Toolchain(workDir)
		var err error
		buildFailed, err = d.invoker.Run(ctx, opts.Branch, d.cfg.FilteredProjectsPath(), opts.Verbose, tc)
		if err != nil {
			return nil, err
		}
	}

	xfails, err := xfail.Load(d.cfg.XFailsPath())
	if err != nil {
		return nil, err
	}

	doc, err := results.LoadDocument(d.cfg.ResultsPath())
	if err != nil {
		return nil, err
	}

	result := results.Reconcile(doc, xfails, opts.Branch)
	result.RunID = runID
	result.XFailsPath = d.cfg.XFailsPath()
	result.BuildFailed = buildFailed

	logger.Info().
		Bool("passed", result.Passed()).
		Int("unexpected", len(result.UnexpectedIssues)).
		Int("unmatched", len(result.Unmatched)).
		Int("not_processed", len(result.NotProcessed)).
		Msg("run reconciled")

	return result, nil
}

// acquireRunLock takes an exclusive non-blocking lock on the working
// directory. The per-run temp files assume a single writer; a second driver
// sharing the directory would silently corrupt them.
func (d *Driver) acquireRunLock() (release func(), err error) {
	lockPath := filepath.Join(d.cfg.EffectiveWorkDir(), constants.RunLockFileName)

	f, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, 0o600) //#nosec G304 -- path comes from validated configuration
	if err != nil {
		return nil, errors.Wrapf(err, "opening run lock %s", lockPath)
	}
	if lockErr := flock.Exclusive(f.Fd()); lockErr != nil {
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrWorkDirLocked, "%s", lockPath)
	}

	return func() {
		_ = flock.Unlock(f.Fd())
		_ = f.Close()
	}, nil
}

// cleanupTempFiles removes the previous run's artifacts best-effort before
// any phase starts. A missing file is the normal case.
func (d *Driver) cleanupTempFiles(ctx context.Context) {
	log := zerolog.Ctx(ctx)

	for _, path := range []string{
		d.cfg.FilteredProjectsPath(),
		d.cfg.ResultsPath(),
		d.cfg.RequestDurationsPath(),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to remove stale temp file")
		}
	}
}
