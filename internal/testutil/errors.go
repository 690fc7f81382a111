// Package testutil provides testing utilities for skstress.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockCloneFailed simulates a failed git clone.
	ErrMockCloneFailed = errors.New("clone failed")

	// ErrMockBuildFailed simulates a failed toolchain build.
	ErrMockBuildFailed = errors.New("build failed")

	// ErrMockRunnerCrashed simulates a crashed stress-test runner.
	ErrMockRunnerCrashed = errors.New("runner crashed")

	// ErrMockFileNotFound simulates a missing file.
	ErrMockFileNotFound = errors.New("file not found")

	// ErrMockExec simulates a generic subprocess failure.
	ErrMockExec = errors.New("exec error")
)
