// Package errors provides centralized error handling for skstress.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrPlatformUnsupported indicates the driver was started on a host
	// platform it cannot run on. The stress tester requires macOS.
	ErrPlatformUnsupported = errors.New("unsupported host platform")

	// ErrGitOperation indicates that a git command (clone, rev-parse, etc.)
	// failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrToolchainBuild indicates that the toolchain build script exited
	// with a non-zero status.
	ErrToolchainBuild = errors.New("toolchain build failed")

	// ErrRunnerFailed indicates the external stress-test runner exited with
	// a non-zero status. This is recorded rather than propagated so partial
	// results can still be reported.
	ErrRunnerFailed = errors.New("stress-test runner failed")

	// ErrMalformedProjects indicates the projects file could not be parsed
	// or failed schema validation.
	ErrMalformedProjects = errors.New("malformed projects file")

	// ErrMalformedXFails indicates the expected-failures file could not be
	// parsed or failed schema validation.
	ErrMalformedXFails = errors.New("malformed xfails file")

	// ErrMalformedResults indicates a results file exists but could not be
	// parsed. A missing results file is not an error.
	ErrMalformedResults = errors.New("malformed results file")

	// ErrStressTestFailed indicates reconciliation found unexpected issues
	// or unmatched expected failures.
	ErrStressTestFailed = errors.New("stress test failed")

	// ErrWorkDirLocked indicates another skstress run holds the working
	// directory lock. Temp files assume a single writer.
	ErrWorkDirLocked = errors.New("working directory locked by another run")

	// ErrCommandFailed indicates that a subprocess execution failed.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout indicates that a subprocess exceeded its timeout.
	ErrCommandTimeout = errors.New("command timed out")

	// ErrCommandNotConfigured indicates that a mock command was not
	// configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidRunner indicates an invalid runner configuration value.
	ErrConfigInvalidRunner = errors.New("invalid runner configuration")

	// ErrConfigInvalidBuild indicates an invalid build configuration value.
	ErrConfigInvalidBuild = errors.New("invalid build configuration")

	// ErrConfigInvalidPaths indicates an invalid path configuration value.
	ErrConfigInvalidPaths = errors.New("invalid paths configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrBranchRequired indicates the required branch argument was missing
	// or empty.
	ErrBranchRequired = errors.New("branch argument required")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")
)
