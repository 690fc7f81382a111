package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

func TestLoadDocument_MissingFileIsNotAnError(t *testing.T) {
	doc, err := LoadDocument(filepath.Join(t.TempDir(), "results.json"))
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestLoadDocument_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadDocument(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedResults)
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	content := `{
  "issues": ["App/main.swift"],
  "issueMessages": ["crashed in CursorInfo"],
  "expectedIssues": {"Foo/bar.swift": ["occurrence-1", "occurrence-2"]},
  "expectedIssueMessages": {"Foo/bar.swift": ["msg", "msg"]},
  "unmatchedExpectedIssues": ["Baz/qux.swift"],
  "processedFiles": ["App/main.swift", "project/Foo/bar.swift"]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, []string{"App/main.swift"}, doc.Issues)
	assert.Len(t, doc.ExpectedIssues["Foo/bar.swift"], 2)
	assert.Equal(t, []string{"Baz/qux.swift"}, doc.UnmatchedExpectedIssues)
	assert.Len(t, doc.ProcessedFiles, 2)
}
