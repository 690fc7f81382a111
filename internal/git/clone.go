// Package git provides the git operations skstress needs to prepare a run.
// The tooling repositories are cloned fresh for every run; there is no
// fetch/update path because CI workspaces start empty.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
	skerrors "github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/shell"
)

// Executor is the subset of shell.Executor the cloner needs.
// Defined here so tests can substitute a mock.
type Executor interface {
	Run(ctx context.Context, cmd shell.Command) (*shell.Result, error)
}

// Cloner clones the auxiliary tooling repositories at a given branch.
type Cloner struct {
	executor Executor
}

// NewCloner creates a Cloner that shells out through the given executor.
func NewCloner(executor Executor) *Cloner {
	return &Cloner{executor: executor}
}

// Clone performs a single-branch clone of url at branch into destDir.
// Any non-zero git exit is wrapped with ErrGitOperation and includes
// stderr for debugging.
func (c *Cloner) Clone(ctx context.Context, url, branch, destDir string) error {
	cmd := shell.Command{
		Path: "git",
		Args: []string{"clone", "--branch", branch, "--single-branch", url, destDir},
	}

	result, err := c.executor.Run(ctx, cmd)
	if err != nil {
		if result != nil && strings.TrimSpace(result.Stderr) != "" {
			return fmt.Errorf("git clone %s failed: %s: %w", url, strings.TrimSpace(result.Stderr), skerrors.ErrGitOperation)
		}
		return fmt.Errorf("git clone %s failed: %w", url, skerrors.ErrGitOperation)
	}
	return nil
}

// CloneTooling clones the stress-tester and swift-syntax repositories into
// workDir at the requested branch. Both clones are fatal on failure; a
// missing tooling checkout makes the rest of the run meaningless.
func (c *Cloner) CloneTooling(ctx context.Context, branch, workDir string) error {
	log := zerolog.Ctx(ctx)

	repos := []struct {
		url string
		dir string
	}{
		{constants.StressTesterRepoURL, constants.StressTesterRepoDir},
		{constants.SwiftSyntaxRepoURL, constants.SwiftSyntaxRepoDir},
	}

	for _, repo := range repos {
		dest := filepath.Join(workDir, repo.dir)
		log.Info().
			Str("url", repo.url).
			Str("branch", branch).
			Str("dest", dest).
			Msg("cloning tooling repository")

		if err := c.Clone(ctx, repo.url, branch, dest); err != nil {
			return skerrors.Wrapf(err, "cloning %s", repo.dir)
		}
	}
	return nil
}
