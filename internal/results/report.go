package results

import (
	"fmt"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/tui"
)

// Reporter formats a RunResult as a human-readable summary. Pure formatting:
// the only side effect is writing through the Output, and the verdict is
// never altered.
type Reporter struct {
	out tui.Output
}

// NewReporter creates a Reporter writing through out.
func NewReporter(out tui.Output) *Reporter {
	return &Reporter{out: out}
}

// Report emits the full summary: build status, not-processed listing,
// unexpected-issue listing, expected counts, unmatched listing with a
// remediation hint, and the final PASS/FAIL banner.
func (r *Reporter) Report(result *RunResult) {
	if result.BuildFailed {
		r.out.Error(fmt.Errorf("underlying build failed; results below are partial"))
	} else {
		r.out.Info("Underlying build succeeded.")
	}

	r.reportOffBranch(result)
	r.reportNotProcessed(result)
	r.reportUnexpected(result)

	r.out.Info(fmt.Sprintf("Saw %d expected issue occurrence(s) across %d expected failure(s).",
		result.ExpectedIssueCount, result.MatchedXFailCount))

	r.reportUnmatched(result)

	if result.Passed() {
		r.out.Success(fmt.Sprintf("[PASS] SourceKit stress test (%s)", result.Branch))
	} else {
		r.out.Error(fmt.Errorf("[FAIL] SourceKit stress test (%s)", result.Branch))
	}
}

func (r *Reporter) reportOffBranch(result *RunResult) {
	if len(result.OffBranch) == 0 {
		return
	}
	r.out.Info(fmt.Sprintf("%d expected failure(s) are not declared for branch %q:", len(result.OffBranch), result.Branch))
	for _, x := range result.OffBranch {
		r.out.Info("  " + x.Path)
	}
}

func (r *Reporter) reportNotProcessed(result *RunResult) {
	if len(result.NotProcessed) == 0 {
		return
	}
	r.out.Warning(fmt.Sprintf("%d expected failure(s) were not processed:", len(result.NotProcessed)))
	for _, x := range result.NotProcessed {
		r.out.Info("  " + x.Path)
	}
}

func (r *Reporter) reportUnexpected(result *RunResult) {
	if len(result.UnexpectedIssues) == 0 {
		r.out.Info("No unexpected issues.")
		return
	}
	r.out.Error(fmt.Errorf("%d unexpected issue(s):", len(result.UnexpectedIssues)))
	for i, issue := range result.UnexpectedIssues {
		line := "  " + issue
		if i < len(result.UnexpectedMessages) && result.UnexpectedMessages[i] != "" {
			line += " — " + result.UnexpectedMessages[i]
		}
		r.out.Info(line)
	}
}

func (r *Reporter) reportUnmatched(result *RunResult) {
	if len(result.Unmatched) == 0 {
		return
	}
	r.out.Warning(fmt.Sprintf("%d expected failure(s) did not occur:", len(result.Unmatched)))
	for _, identifier := range result.Unmatched {
		r.out.Info("  " + identifier)
	}
	r.out.Info(fmt.Sprintf("  To stop expecting these failures on %q, remove their entries from %s.",
		result.Branch, result.XFailsPath))
}
