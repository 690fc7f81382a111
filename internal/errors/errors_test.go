package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrPlatformUnsupported,
		ErrGitOperation,
		ErrToolchainBuild,
		ErrRunnerFailed,
		ErrMalformedProjects,
		ErrMalformedXFails,
		ErrMalformedResults,
		ErrStressTestFailed,
		ErrCommandFailed,
		ErrCommandTimeout,
		ErrConfigNil,
		ErrInvalidOutputFormat,
		ErrBranchRequired,
	}

	seen := make(map[string]bool, len(sentinels))
	for _, err := range sentinels {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate sentinel message: %s", err.Error())
		seen[err.Error()] = true
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("preserves error chain", func(t *testing.T) {
		wrapped := Wrap(ErrGitOperation, "cloning stress tester")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, ErrGitOperation)
		assert.Equal(t, "cloning stress tester: git operation failed", wrapped.Error())
	})

	t.Run("double wrap keeps sentinel", func(t *testing.T) {
		inner := fmt.Errorf("exit status 128: %w", ErrGitOperation)
		wrapped := Wrap(Wrap(inner, "clone"), "prepare")
		assert.ErrorIs(t, wrapped, ErrGitOperation)
	})
}

func TestWrapf(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "context %s", "arg"))
	})

	t.Run("interpolates and preserves chain", func(t *testing.T) {
		wrapped := Wrapf(ErrMalformedResults, "loading %s", "results.json")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, ErrMalformedResults)
		assert.Contains(t, wrapped.Error(), "loading results.json")
	})
}

func TestSentinels_UsableWithErrorsIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrStressTestFailed)
	assert.True(t, stderrors.Is(err, ErrStressTestFailed))
	assert.False(t, stderrors.Is(err, ErrRunnerFailed))
}
