package results

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/tui"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/xfail"
)

func renderReport(t *testing.T, result *RunResult) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	tui.CheckNoColor()

	var buf bytes.Buffer
	NewReporter(tui.NewTTYOutput(&buf)).Report(result)
	return buf.String()
}

func TestReporter_PassBanner(t *testing.T) {
	result := Reconcile(nil, nil, "main")
	got := renderReport(t, result)

	assert.Contains(t, got, "Underlying build succeeded.")
	assert.Contains(t, got, "No unexpected issues.")
	assert.Contains(t, got, "[PASS] SourceKit stress test (main)")
	assert.NotContains(t, got, "[FAIL]")
}

func TestReporter_FailBannerOnUnexpected(t *testing.T) {
	doc := &Document{
		Issues:        []string{"App/main.swift"},
		IssueMessages: []string{"crashed in CodeComplete"},
	}
	result := Reconcile(doc, nil, "release/6.0")
	got := renderReport(t, result)

	assert.Contains(t, got, "1 unexpected issue(s):")
	assert.Contains(t, got, "App/main.swift")
	assert.Contains(t, got, "crashed in CodeComplete")
	assert.Contains(t, got, "[FAIL] SourceKit stress test (release/6.0)")
}

func TestReporter_BuildFailureNoted(t *testing.T) {
	result := Reconcile(nil, nil, "main")
	result.BuildFailed = true
	got := renderReport(t, result)

	assert.Contains(t, got, "underlying build failed")
	assert.Contains(t, got, "[FAIL]")
}

func TestReporter_NotProcessedListing(t *testing.T) {
	doc := &Document{}
	xfails := []xfail.XFail{
		{Path: "A/a.swift", Branches: []string{"main"}},
		{Path: "*B/b.swift", Branches: []string{"main"}},
	}
	result := Reconcile(doc, xfails, "main")
	got := renderReport(t, result)

	assert.Contains(t, got, "2 expected failure(s) were not processed:")
	assert.Contains(t, got, "A/a.swift")
	assert.Contains(t, got, "*B/b.swift")
	// Informational only: the run still passes.
	assert.Contains(t, got, "[PASS]")
}

func TestReporter_UnmatchedRemediationHint(t *testing.T) {
	doc := &Document{
		UnmatchedExpectedIssues: []string{"Foo/bar.swift"},
		ProcessedFiles:          []string{"p/Foo/bar.swift"},
	}
	xfails := []xfail.XFail{{Path: "Foo/bar.swift", Branches: []string{"main"}}}
	result := Reconcile(doc, xfails, "main")
	result.XFailsPath = "/suite/sourcekit-xfails.json"
	got := renderReport(t, result)

	assert.Contains(t, got, "1 expected failure(s) did not occur:")
	assert.Contains(t, got, `"main"`)
	assert.Contains(t, got, "/suite/sourcekit-xfails.json")
	assert.Contains(t, got, "[FAIL]")
}

func TestReporter_ExpectedCounts(t *testing.T) {
	doc := &Document{
		ExpectedIssues: map[string][]string{
			"Foo/bar.swift": {"a", "b", "c"},
			"Baz/qux.swift": {"d"},
		},
		ProcessedFiles: []string{"p/Foo/bar.swift", "p/Baz/qux.swift"},
	}
	xfails := []xfail.XFail{
		{Path: "Foo/bar.swift", Branches: []string{"main"}},
		{Path: "Baz/qux.swift", Branches: []string{"main"}},
	}
	result := Reconcile(doc, xfails, "main")
	got := renderReport(t, result)

	assert.Contains(t, got, "Saw 4 expected issue occurrence(s) across 2 expected failure(s).")
}

func TestReporter_OffBranchListing(t *testing.T) {
	result := Reconcile(nil, []xfail.XFail{
		{Path: "*Old/gone.swift", Branches: []string{"release/5.5"}},
	}, "main")
	got := renderReport(t, result)

	assert.Contains(t, got, `1 expected failure(s) are not declared for branch "main":`)
	assert.Contains(t, got, "*Old/gone.swift")
	assert.Contains(t, got, "[PASS]")
}
