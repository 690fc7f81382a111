// Package constants provides centralized constant values used throughout skstress.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by skstress for organizing data.
const (
	// StressHome is the hidden directory name where skstress stores all its data.
	// This directory is created in the user's home directory.
	StressHome = ".skstress"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the rotating log file written alongside console output.
	CLILogFileName = "skstress.log"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size of the log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of a rotated log file.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// File names for the per-run temporary artifacts. Each file is written by
// exactly one pipeline step and read by exactly one later step.
const (
	// FilteredProjectsFileName holds the annotated copy of the projects list
	// consumed by the stress-test runner.
	FilteredProjectsFileName = "stress-tester-projects.json"

	// ResultsFileName is where the runner writes its issue report.
	ResultsFileName = "stress-tester-results.json"

	// RequestDurationsFileName is where the runner writes request timing data.
	// The file is opaque to skstress and consumed by external analysis tooling.
	RequestDurationsFileName = "request-durations.json"

	// RunLockFileName is the lock file guarding the working directory
	// against concurrent runs.
	RunLockFileName = ".skstress.lock"
)

// Default input file names, relative to the suite checkout.
const (
	// ProjectsFileName is the default project list exercised by the runner.
	ProjectsFileName = "projects.json"

	// XFailsFileName is the default expected-failure declarations file.
	XFailsFileName = "sourcekit-xfails.json"
)

// Repositories cloned before a run. Both are checked out at the branch
// under test.
const (
	// StressTesterRepoURL is the tooling repository providing the stress
	// tester and the compiler wrapper.
	StressTesterRepoURL = "https://github.com/swiftlang/swift-stress-tester.git"

	// StressTesterRepoDir is the local clone directory for the tooling repo.
	StressTesterRepoDir = "swift-stress-tester"

	// SwiftSyntaxRepoURL is the syntax library the stress tester builds against.
	SwiftSyntaxRepoURL = "https://github.com/swiftlang/swift-syntax.git"

	// SwiftSyntaxRepoDir is the local clone directory for swift-syntax.
	SwiftSyntaxRepoDir = "swift-syntax"
)

// Environment variables consumed by the external stress-test runner.
const (
	// EnvSwiftCompiler points the runner at the compiler wrapper binary.
	EnvSwiftCompiler = "SK_STRESS_SWIFTC"

	// EnvStressTester points the runner at the stress-tester binary.
	EnvStressTester = "SK_STRESS_TEST"

	// EnvVerbose enables verbose runner output when set to "1".
	EnvVerbose = "SK_STRESS_VERBOSE"

	// EnvMaxJobs caps the runner's resource usage.
	EnvMaxJobs = "SK_STRESS_MAX_JOBS"

	// EnvOutputFile is where the runner writes its results JSON.
	EnvOutputFile = "SK_STRESS_OUTPUT"

	// EnvRequestDurationsFile is where the runner writes timing data.
	EnvRequestDurationsFile = "SK_STRESS_REQUEST_DURATIONS_FILE"

	// EnvActiveConfig labels the run with the branch under test so the
	// runner can select branch-specific expected failures.
	EnvActiveConfig = "SK_STRESS_ACTIVE_CONFIG"

	// EnvRewriteModes is a space-separated list of test rewrite modes the
	// runner applies to each source file.
	EnvRewriteModes = "SK_STRESS_REWRITE_MODES"
)

// Destination identifiers recognized by the project filter, and the
// architecture overrides they map to.
const (
	// DestinationGenericIOS selects a device-less iOS build.
	DestinationGenericIOS = "generic/platform=iOS"

	// DestinationGenericMacOS selects a generic macOS build.
	DestinationGenericMacOS = "generic/platform=macOS"

	// ArchsOverrideIOS is the architecture forced for generic iOS builds.
	ArchsOverrideIOS = "arm64"

	// ArchsOverrideMacOS is the architecture forced for generic macOS builds.
	ArchsOverrideMacOS = "x86_64"

	// ArchsStandard is the xcodebuild pass-through placeholder, meaning
	// "use whatever architectures the action already specifies".
	ArchsStandard = "$(ARCHS_STANDARD)"
)

// Timeout configurations for the subprocess phases. A zero timeout means
// wait forever.
const (
	// DefaultCloneTimeout bounds each tooling repository clone.
	DefaultCloneTimeout = 10 * time.Minute

	// DefaultBuildTimeout bounds the toolchain build. Toolchain builds are
	// long; CI machines routinely take over an hour.
	DefaultBuildTimeout = 4 * time.Hour

	// DefaultRunnerTimeout bounds the stress-test run. Zero by default:
	// the runner enforces its own per-request limits.
	DefaultRunnerTimeout = 0 * time.Second
)

// Defaults for the runner environment knobs.
const (
	// DefaultMaxJobs is the default resource limit handed to the runner.
	DefaultMaxJobs = 2

	// DefaultRewriteModes is the default space-separated rewrite mode list.
	DefaultRewriteModes = "none concurrent insideOut"
)
