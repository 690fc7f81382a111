// Package main provides the entry point for the skstress CLI.
package main

import (
	"context"
	"os"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/cli"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/signal"
)

// Version information set at build time via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // Set via ldflags
	commit  = "none"    //nolint:gochecknoglobals // Set via ldflags
	date    = "unknown" //nolint:gochecknoglobals // Set via ldflags
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code. Deferred cleanup
// must happen before os.Exit, so main delegates here.
func run() int {
	// SIGINT/SIGTERM cancel the context so long-running subprocesses
	// (toolchain builds, stress runs) are torn down rather than orphaned.
	h := signal.NewHandler(context.Background())
	defer h.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(h.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	return cli.ExitCodeForError(err)
}
