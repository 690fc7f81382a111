// Package shell provides subprocess execution for the stress-test pipeline.
//
// Every external collaborator (git, build-script, the stress-test runner) is
// launched through this package. Commands are constructed as explicit argv
// lists, never via a shell, so no step depends on shell quoting. Environment
// entries are passed as an explicit map merged over the inherited process
// environment rather than mutated globally.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"
)

// Command describes one subprocess invocation.
type Command struct {
	// Path is the executable to run.
	Path string

	// Args are the arguments passed to the executable (argv[1:]).
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra environment entries merged over the inherited
	// process environment. A value overrides any inherited entry of the
	// same name.
	Env map[string]string
}

// String renders the command for logging. Environment entries are not
// included; callers log them separately through the redaction helpers.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	out := c.Path
	for _, a := range c.Args {
		out += " " + a
	}
	return out
}

// Result captures the outcome of one subprocess invocation.
type Result struct {
	// Command is the rendered command line, for reporting.
	Command string

	// ExitCode is the subprocess exit status. Zero on success.
	ExitCode int

	// Stdout and Stderr hold the captured output streams.
	Stdout string
	Stderr string

	// Success is true when the subprocess exited zero.
	Success bool

	// Error holds a short failure description when Success is false.
	Error string

	// StartedAt and CompletedAt bound the subprocess lifetime.
	StartedAt   time.Time
	CompletedAt time.Time

	// DurationMs is the wall-clock duration in milliseconds.
	DurationMs int64
}

// CommandRunner defines the interface for executing subprocesses.
// This allows for testing by injecting mock implementations.
type CommandRunner interface {
	// Run executes a command and returns its output.
	Run(ctx context.Context, cmd Command) (stdout, stderr string, exitCode int, err error)
}

// LiveOutputRunner defines a command runner that supports live output streaming.
type LiveOutputRunner interface {
	CommandRunner
	// RunWithLiveOutput executes a command and streams output to the writer
	// while also capturing it.
	RunWithLiveOutput(ctx context.Context, cmd Command, liveOut io.Writer) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner implements CommandRunner and LiveOutputRunner using os/exec.
type DefaultCommandRunner struct{}

// Run executes the command, capturing stdout and stderr.
func (r *DefaultCommandRunner) Run(ctx context.Context, cmd Command) (stdout, stderr string, exitCode int, err error) {
	return r.runCommand(ctx, cmd, nil)
}

// RunWithLiveOutput executes the command and streams output to liveOut while
// also capturing it.
func (r *DefaultCommandRunner) RunWithLiveOutput(ctx context.Context, cmd Command, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	return r.runCommand(ctx, cmd, liveOut)
}

// runCommand executes a subprocess with optional live output streaming.
func (r *DefaultCommandRunner) runCommand(ctx context.Context, cmd Command, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	execCmd := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //#nosec G204 -- argv is constructed internally, not user input
	execCmd.Dir = cmd.Dir
	execCmd.Env = mergeEnv(os.Environ(), cmd.Env)

	var outBuf, errBuf bytes.Buffer
	if liveOut != nil {
		execCmd.Stdout = io.MultiWriter(&outBuf, liveOut)
		execCmd.Stderr = io.MultiWriter(&errBuf, liveOut)
	} else {
		execCmd.Stdout = &outBuf
		execCmd.Stderr = &errBuf
	}

	err = execCmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return stdout, stderr, exitCode, err
}

// mergeEnv appends the extra map to a base environment, with extra entries
// overriding inherited ones. Entries are appended in sorted key order so
// invocations are deterministic.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make([]string, 0, len(base)+len(extra))
	merged = append(merged, base...)
	for _, k := range keys {
		merged = append(merged, fmt.Sprintf("%s=%s", k, extra[k]))
	}
	// Later entries win in os/exec, so extras override inherited values.
	return merged
}

// Ensure DefaultCommandRunner implements CommandRunner and LiveOutputRunner.
var (
	_ CommandRunner    = (*DefaultCommandRunner)(nil)
	_ LiveOutputRunner = (*DefaultCommandRunner)(nil)
)
