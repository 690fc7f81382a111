package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/xfail"
)

func TestReconcile_NilDocumentIsVacuousSuccess(t *testing.T) {
	result := Reconcile(nil, []xfail.XFail{
		{Path: "Foo/bar.swift", Branches: []string{"main"}},
	}, "main")

	assert.True(t, result.ReconcileSuccess)
	assert.True(t, result.Passed())
	assert.Empty(t, result.UnexpectedIssues)
	assert.Empty(t, result.Unmatched)
	assert.Empty(t, result.NotProcessed)
}

func TestReconcile_CleanRun(t *testing.T) {
	doc := &Document{
		ExpectedIssues: map[string][]string{
			"Foo/bar.swift": {"occ-1", "occ-2"},
			"Baz/qux.swift": {"occ-3"},
		},
		ProcessedFiles: []string{"project/Foo/bar.swift", "project/Baz/qux.swift"},
	}
	xfails := []xfail.XFail{
		{Path: "*Foo/bar.swift", Branches: []string{"main"}},
		{Path: "*Baz/qux.swift", Branches: []string{"main"}},
	}

	result := Reconcile(doc, xfails, "main")

	assert.True(t, result.ReconcileSuccess)
	assert.Equal(t, 3, result.ExpectedIssueCount)
	assert.Equal(t, 2, result.MatchedXFailCount)
	assert.Empty(t, result.Unmatched)
	assert.Empty(t, result.NotProcessed)
}

func TestReconcile_UnexpectedIssuesFail(t *testing.T) {
	doc := &Document{
		Issues:        []string{"App/main.swift"},
		IssueMessages: []string{"crashed"},
	}

	result := Reconcile(doc, nil, "main")

	assert.False(t, result.ReconcileSuccess)
	assert.False(t, result.Passed())
	assert.Equal(t, []string{"App/main.swift"}, result.UnexpectedIssues)
}

func TestReconcile_UnmatchedExpectedFail(t *testing.T) {
	doc := &Document{
		UnmatchedExpectedIssues: []string{"Foo/bar.swift"},
		ProcessedFiles:          []string{"project/Foo/bar.swift"},
	}
	xfails := []xfail.XFail{{Path: "*Foo/bar.swift", Branches: []string{"main"}}}

	result := Reconcile(doc, xfails, "main")

	assert.False(t, result.ReconcileSuccess)
	assert.Equal(t, []string{"Foo/bar.swift"}, result.Unmatched)
	assert.Empty(t, result.NotProcessed)
}

func TestReconcile_WildcardFragmentCountsAsProcessed(t *testing.T) {
	// {"path": "*Foo/bar.swift"} with processedFiles ["project/Foo/bar.swift"]
	// is classified as processed: the bare fragment is a substring.
	doc := &Document{
		ProcessedFiles: []string{"project/Foo/bar.swift"},
		ExpectedIssues: map[string][]string{"Foo/bar.swift": {"occ-1"}},
	}
	xfails := []xfail.XFail{{Path: "*Foo/bar.swift", Branches: []string{"main"}}}

	result := Reconcile(doc, xfails, "main")

	assert.Empty(t, result.NotProcessed)
	assert.True(t, result.ReconcileSuccess)
}

func TestReconcile_NotProcessedIsInformationalOnly(t *testing.T) {
	// Zero issues, zero unmatched, five not-processed XFails: overall
	// success stays true and the five appear under not-processed only.
	doc := &Document{
		ProcessedFiles: []string{"project/Other/file.swift"},
		UnmatchedExpectedIssues: []string{
			"A/a.swift", "B/b.swift", "C/c.swift", "D/d.swift", "E/e.swift",
		},
	}
	xfails := []xfail.XFail{
		{Path: "A/a.swift", Branches: []string{"main"}},
		{Path: "B/b.swift", Branches: []string{"main"}},
		{Path: "*C/c.swift", Branches: []string{"main"}},
		{Path: "D/d.swift", Branches: []string{"main"}},
		{Path: "E/e.swift", Branches: []string{"main"}},
	}

	result := Reconcile(doc, xfails, "main")

	assert.True(t, result.ReconcileSuccess)
	assert.True(t, result.Passed())
	require.Len(t, result.NotProcessed, 5)
	assert.Empty(t, result.Unmatched)
}

func TestReconcile_NotProcessedMembershipContract(t *testing.T) {
	// An XFail is "not processed" iff no processed file contains its bare
	// fragment as a substring.
	tests := []struct {
		name         string
		processed    []string
		path         string
		notProcessed bool
	}{
		{"exact containment", []string{"root/Foo/bar.swift"}, "Foo/bar.swift", false},
		{"no containment", []string{"root/Other.swift"}, "Foo/bar.swift", true},
		{"empty processed list", nil, "Foo/bar.swift", true},
		{"fragment equals full path", []string{"Foo/bar.swift"}, "Foo/bar.swift", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{ProcessedFiles: tt.processed}
			xfails := []xfail.XFail{{Path: tt.path, Branches: []string{"main"}}}

			result := Reconcile(doc, xfails, "main")
			if tt.notProcessed {
				assert.Len(t, result.NotProcessed, 1)
			} else {
				assert.Empty(t, result.NotProcessed)
			}
		})
	}
}

func TestReconcile_BuildFailureFoldsIntoVerdict(t *testing.T) {
	result := Reconcile(&Document{}, nil, "main")
	assert.True(t, result.ReconcileSuccess)

	result.BuildFailed = true
	assert.True(t, result.ReconcileSuccess, "reconciliation itself is unaffected")
	assert.False(t, result.Passed())
}

func TestReconcile_MixedClassification(t *testing.T) {
	doc := &Document{
		Issues:                  []string{"New/crash.swift"},
		ExpectedIssues:          map[string][]string{"Foo/bar.swift": {"occ-1"}},
		UnmatchedExpectedIssues: []string{"Gone/old.swift", "Skipped/never.swift"},
		ProcessedFiles:          []string{"p/Foo/bar.swift", "p/Gone/old.swift"},
	}
	xfails := []xfail.XFail{
		{Path: "*Foo/bar.swift", Branches: []string{"main"}},
		{Path: "Gone/old.swift", Branches: []string{"main"}},
		{Path: "Skipped/never.swift", Branches: []string{"main"}},
	}

	result := Reconcile(doc, xfails, "main")

	// Each declared XFail lands in exactly one class.
	assert.Equal(t, 1, result.MatchedXFailCount)
	assert.Equal(t, []string{"Gone/old.swift"}, result.Unmatched)
	require.Len(t, result.NotProcessed, 1)
	assert.Equal(t, "Skipped/never.swift", result.NotProcessed[0].Path)

	assert.False(t, result.ReconcileSuccess)
}

func TestReconcile_OffBranchIsInformational(t *testing.T) {
	doc := &Document{
		ExpectedIssues: map[string][]string{"Foo/bar.swift": {"occ-1"}},
		ProcessedFiles: []string{"project/Foo/bar.swift"},
	}
	xfails := []xfail.XFail{
		{Path: "*Foo/bar.swift", Branches: []string{"main"}},
		{Path: "*Old/gone.swift", Branches: []string{"release/5.5"}},
	}

	result := Reconcile(doc, xfails, "main")

	require.Len(t, result.OffBranch, 1)
	assert.Equal(t, "*Old/gone.swift", result.OffBranch[0].Path)
	// Branch applicability never affects the verdict.
	assert.True(t, result.ReconcileSuccess)
}
