// Package build drives the toolchain build phase via the swift build-script.
package build

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/config"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/shell"
)

// Executor is the subset of shell.Executor the builder needs.
type Executor interface {
	Run(ctx context.Context, cmd shell.Command) (*shell.Result, error)
}

// Toolchain locates the binaries the runner environment needs. Either the
// product of a build or derived from a prebuilt compiler path.
type Toolchain struct {
	// Swiftc is the compiler the wrapper delegates to.
	Swiftc string

	// Wrapper is the sk-swiftc-wrapper binary interposed as the compiler.
	Wrapper string

	// StressTester is the sk-stress-test binary.
	StressTester string
}

// Builder constructs the build-script invocation for the stress-testing
// toolchain. No branching logic beyond flag selection.
type Builder struct {
	executor Executor
	cfg      config.BuildConfig
}

// NewBuilder creates a Builder for the given build configuration.
func NewBuilder(executor Executor, cfg config.BuildConfig) *Builder {
	return &Builder{executor: executor, cfg: cfg}
}

// buildSubdir keeps stress-tester build products apart from other
// build-script presets sharing the same checkout.
const buildSubdir = "buildbot_stress_tester"

// Args assembles the build-script flag list. The shape is fixed; only the
// assertion and debug variants are conditional.
func (b *Builder) Args(workDir string) []string {
	args := []string{
		"--build-subdir=" + buildSubdir,
		"--swiftsyntax",
		"--skstresstester",
		"--skip-build-benchmarks",
		"--skip-test-cmark",
		"--skip-test-swift",
		"--install-swift",
		"--install-swiftsyntax",
		"--install-skstresstester",
		"--install-destdir=" + b.InstallDir(workDir),
		"--toolchain-prefix=/",
	}

	if b.cfg.Assertions {
		args = append(args, "--assertions")
	} else {
		args = append(args, "--no-assertions")
	}
	if b.cfg.Debug {
		args = append(args, "--debug")
	} else {
		args = append(args, "--release")
	}
	return args
}

// InstallDir is where the built toolchain is installed under workDir.
func (b *Builder) InstallDir(workDir string) string {
	return filepath.Join(workDir, "build", buildSubdir, "install")
}

// Toolchain resolves the binaries the runner needs. When a prebuilt
// compiler is configured it is used directly and only the stress-tester
// binaries come from the install tree.
func (b *Builder) Toolchain(workDir string) Toolchain {
	bin := filepath.Join(b.InstallDir(workDir), "usr", "bin")

	tc := Toolchain{
		Swiftc:       filepath.Join(bin, "swiftc"),
		Wrapper:      filepath.Join(bin, "sk-swiftc-wrapper"),
		StressTester: filepath.Join(bin, "sk-stress-test"),
	}
	if b.cfg.Swiftc != "" {
		tc.Swiftc = b.cfg.Swiftc
	}
	return tc
}

// Build runs the build-script. Any failure is fatal to the run and carries
// ErrToolchainBuild.
func (b *Builder) Build(ctx context.Context, workDir string) error {
	log := zerolog.Ctx(ctx)

	cmd := shell.Command{
		Path: b.cfg.Script,
		Args: b.Args(workDir),
		Dir:  workDir,
	}

	log.Info().
		Str("script", b.cfg.Script).
		Bool("assertions", b.cfg.Assertions).
		Bool("debug", b.cfg.Debug).
		Msg("building stress-testing toolchain")

	if _, err := b.executor.Run(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrToolchainBuild, err)
	}
	return nil
}
