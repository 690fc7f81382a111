// Package results loads the stress-test runner's output document and
// reconciles it against the declared expected failures.
package results

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// Document is the results file the runner writes. Immutable once loaded.
type Document struct {
	// Issues identifies observed failures that matched no expected
	// failure, by the file path each pertains to.
	Issues []string `json:"issues"`

	// IssueMessages holds the human-readable message for each entry in
	// Issues, index-aligned.
	IssueMessages []string `json:"issueMessages"`

	// ExpectedIssues maps an expected-failure identifier to the issue
	// occurrences that matched it.
	ExpectedIssues map[string][]string `json:"expectedIssues"`

	// ExpectedIssueMessages maps an expected-failure identifier to the
	// messages of its matched occurrences.
	ExpectedIssueMessages map[string][]string `json:"expectedIssueMessages"`

	// UnmatchedExpectedIssues lists expected-failure identifiers that were
	// declared but matched no observed issue.
	UnmatchedExpectedIssues []string `json:"unmatchedExpectedIssues"`

	// ProcessedFiles lists the source files the runner actually exercised.
	ProcessedFiles []string `json:"processedFiles"`
}

// LoadDocument reads the runner's results file.
//
// A missing file returns (nil, nil): the runner produced nothing to report,
// which by convention cannot be interpreted as failure (a failed underlying
// build is recorded separately by the invoker). A present but unparsable
// file is fatal and carries ErrMalformedResults.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from validated configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading results file %s", path)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", errors.ErrMalformedResults, path, err)
	}
	return &doc, nil
}
