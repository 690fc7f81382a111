package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/clock"
	skerrors "github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// Executor runs subprocesses with timeout handling.
type Executor struct {
	runner     CommandRunner
	timeout    time.Duration // zero means wait forever
	liveOutput io.Writer     // Optional: if set, streams command output in real-time
	clock      clock.Clock   // Timestamps on results; mockable in tests
}

// NewExecutor creates an executor with the default command runner.
// A timeout of zero (or negative) disables the deadline entirely; the
// subprocess is then bounded only by context cancellation.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		runner:  &DefaultCommandRunner{},
		timeout: timeout,
		clock:   clock.RealClock{},
	}
}

// NewExecutorWithRunner creates an executor with a custom runner (for testing).
func NewExecutorWithRunner(timeout time.Duration, runner CommandRunner) *Executor {
	return &Executor{
		runner:  runner,
		timeout: timeout,
		clock:   clock.RealClock{},
	}
}

// SetClock overrides the executor's time source, for testing.
func (e *Executor) SetClock(c clock.Clock) {
	e.clock = c
}

// SetLiveOutput configures the executor to stream command output in real-time.
// When set, stdout and stderr are written to w as they are produced.
func (e *Executor) SetLiveOutput(w io.Writer) {
	e.liveOutput = w
}

// Run executes a single command, applying the executor's timeout.
// The returned Result is non-nil whenever the subprocess was actually
// started, including on failure, so callers can report partial output.
func (e *Executor) Run(ctx context.Context, cmd Command) (*Result, error) {
	log := zerolog.Ctx(ctx)

	startTime := e.clock.Now()
	log.Info().
		Str("command", cmd.String()).
		Str("work_dir", cmd.Dir).
		Msg("executing command")

	cmdCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	stdout, stderr, exitCode, runErr := e.executeCommand(cmdCtx, cmd)

	completedAt := e.clock.Now()
	duration := completedAt.Sub(startTime)

	result := &Result{
		Command:     cmd.String(),
		ExitCode:    exitCode,
		Stdout:      stdout,
		Stderr:      stderr,
		StartedAt:   startTime,
		CompletedAt: completedAt,
		DurationMs:  duration.Milliseconds(),
	}

	return e.handleOutcome(ctx, cmdCtx, result, cmd, duration, runErr, log)
}

// executeCommand runs the command through the configured runner.
func (e *Executor) executeCommand(ctx context.Context, cmd Command) (stdout, stderr string, exitCode int, runErr error) {
	if e.liveOutput != nil {
		if liveRunner, ok := e.runner.(LiveOutputRunner); ok {
			return liveRunner.RunWithLiveOutput(ctx, cmd, e.liveOutput)
		}
	}
	return e.runner.Run(ctx, cmd)
}

// handleOutcome classifies the subprocess result into timeout, cancellation,
// failure, or success.
func (e *Executor) handleOutcome(ctx, cmdCtx context.Context, result *Result, cmd Command, duration time.Duration, runErr error, log *zerolog.Logger) (*Result, error) {
	// Check for timeout
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		result.Success = false
		result.Error = "command timed out"

		log.Error().
			Str("command", cmd.String()).
			Dur("duration_ms", duration).
			Str("stderr", result.Stderr).
			Msg("command timed out")

		return result, skerrors.ErrCommandTimeout
	}

	// Check for context cancellation (from parent context)
	if ctx.Err() != nil {
		result.Success = false
		result.Error = "context canceled"
		return result, ctx.Err()
	}

	// Check for command failure
	if runErr != nil || result.ExitCode != 0 {
		result.Success = false
		if runErr != nil {
			result.Error = runErr.Error()
		} else {
			result.Error = fmt.Sprintf("exit code %d", result.ExitCode)
		}

		log.Error().
			Str("command", cmd.String()).
			Int("exit_code", result.ExitCode).
			Dur("duration_ms", duration).
			Str("stderr", result.Stderr).
			Msg("command failed")

		return result, fmt.Errorf("%w: %s", skerrors.ErrCommandFailed, cmd.String())
	}

	result.Success = true

	log.Info().
		Str("command", cmd.String()).
		Int("exit_code", result.ExitCode).
		Dur("duration_ms", duration).
		Msg("command completed")

	return result, nil
}
