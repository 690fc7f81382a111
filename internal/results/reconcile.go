package results

import (
	"strings"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/xfail"
)

// RunResult is the ephemeral aggregate produced by reconciliation. It exists
// only for one report generation and is never persisted.
type RunResult struct {
	// RunID tags the run for log correlation.
	RunID string `json:"run_id,omitempty"`

	// Branch is the branch under test.
	Branch string `json:"branch"`

	// XFailsPath is the expected-failures file, named in remediation hints.
	XFailsPath string `json:"xfails_path,omitempty"`

	// BuildFailed records that the runner subprocess itself failed. It is
	// folded into the overall verdict but does not affect reconciliation.
	BuildFailed bool `json:"build_failed"`

	// UnexpectedIssues are observed failures matching no expected failure.
	UnexpectedIssues []string `json:"unexpected_issues"`

	// UnexpectedMessages are the human-readable messages for
	// UnexpectedIssues, index-aligned where the runner provided them.
	UnexpectedMessages []string `json:"unexpected_messages,omitempty"`

	// ExpectedIssueCount is the total number of matched occurrences across
	// all expected-failure identifiers.
	ExpectedIssueCount int `json:"expected_issue_count"`

	// MatchedXFailCount is the number of distinct expected-failure
	// identifiers with at least one matched occurrence.
	MatchedXFailCount int `json:"matched_xfail_count"`

	// Unmatched lists expected failures that were declared, whose target
	// files were processed, but which matched no observed issue.
	Unmatched []string `json:"unmatched"`

	// NotProcessed lists declared expected failures whose target files
	// were never exercised. Informational only.
	NotProcessed []xfail.XFail `json:"not_processed"`

	// OffBranch lists declared expected failures whose branch list does not
	// include the branch under test. Classification ignores branches; this
	// exists purely so the report can point at stale declarations.
	OffBranch []xfail.XFail `json:"off_branch,omitempty"`

	// ReconcileSuccess is true when there are zero unexpected issues and
	// zero unmatched expected failures.
	ReconcileSuccess bool `json:"reconcile_success"`
}

// Passed is the overall verdict: reconciliation succeeded and the underlying
// build did not fail.
func (r *RunResult) Passed() bool {
	return r.ReconcileSuccess && !r.BuildFailed
}

// Reconcile classifies the run's outcome against the declared expected
// failures.
//
// Every declared XFail lands in exactly one class:
//   - not processed: no processed file contains its bare path fragment
//   - unmatched: processed, but the runner matched no issue to it
//   - matched: the runner matched at least one issue to it
//
// A nil document (the runner produced no results file) reconciles to vacuous
// success: nothing to report cannot be read as failure.
func Reconcile(doc *Document, xfails []xfail.XFail, branch string) *RunResult {
	result := &RunResult{
		Branch:           branch,
		UnexpectedIssues: []string{},
		Unmatched:        []string{},
		NotProcessed:     []xfail.XFail{},
		ReconcileSuccess: true,
	}

	for _, x := range xfails {
		if !x.AppliesToBranch(branch) {
			result.OffBranch = append(result.OffBranch, x)
		}
	}

	if doc == nil {
		return result
	}

	result.UnexpectedIssues = append(result.UnexpectedIssues, doc.Issues...)
	result.UnexpectedMessages = append(result.UnexpectedMessages, doc.IssueMessages...)

	for _, occurrences := range doc.ExpectedIssues {
		result.ExpectedIssueCount += len(occurrences)
		if len(occurrences) > 0 {
			result.MatchedXFailCount++
		}
	}

	notProcessedFragments := make(map[string]bool)
	for _, x := range xfails {
		if !fileProcessed(doc.ProcessedFiles, x.PathFragment()) {
			result.NotProcessed = append(result.NotProcessed, x)
			notProcessedFragments[x.PathFragment()] = true
		}
	}

	// An unprocessed XFail necessarily matched nothing; keep the three
	// classes mutually exclusive by excluding it from the unmatched list.
	for _, unmatched := range doc.UnmatchedExpectedIssues {
		if coveredByNotProcessed(unmatched, notProcessedFragments) {
			continue
		}
		result.Unmatched = append(result.Unmatched, unmatched)
	}

	result.ReconcileSuccess = len(result.UnexpectedIssues) == 0 && len(result.Unmatched) == 0
	return result
}

// fileProcessed reports whether any processed file contains the bare path
// fragment as a substring.
func fileProcessed(processedFiles []string, fragment string) bool {
	for _, file := range processedFiles {
		if strings.Contains(file, fragment) {
			return true
		}
	}
	return false
}

// coveredByNotProcessed reports whether an unmatched identifier belongs to
// an XFail already classified as not processed. Identifiers are matched by
// the same substring contract used everywhere else.
func coveredByNotProcessed(identifier string, fragments map[string]bool) bool {
	for fragment := range fragments {
		if strings.Contains(identifier, fragment) {
			return true
		}
	}
	return false
}
