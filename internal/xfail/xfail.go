// Package xfail models declared expected failures for the stress tester.
//
// An expected failure (XFail) names a source path the stress tester is known
// to trip over, plus the branches the failure applies to. A leading '*' on
// the path is a wildcard marker meaning "match anywhere in the path"; the
// stripped fragment is matched by substring containment.
package xfail

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// WildcardMarker is the leading character marking a path as a wildcard
// prefix.
const WildcardMarker = "*"

// XFail is one declared expected failure. Immutable during a run.
type XFail struct {
	// Path identifies the file the failure pertains to. Optionally
	// prefixed with the wildcard marker.
	Path string `json:"path"`

	// Branches lists the branch identifiers this declaration applies to.
	Branches []string `json:"branches"`

	// Issue optionally links the tracking issue for the failure.
	Issue string `json:"issue,omitempty"`
}

// IsWildcard reports whether the path carries the wildcard marker.
func (x XFail) IsWildcard() bool {
	return strings.HasPrefix(x.Path, WildcardMarker)
}

// PathFragment returns the bare path fragment with any leading wildcard
// marker stripped. This is the value matched against issues and the
// processed-files list.
func (x XFail) PathFragment() string {
	return strings.TrimPrefix(x.Path, WildcardMarker)
}

// AppliesToBranch reports whether the declaration covers the given branch.
func (x XFail) AppliesToBranch(branch string) bool {
	for _, b := range x.Branches {
		if b == branch {
			return true
		}
	}
	return false
}

// Load reads and validates an expected-failures file.
// Every entry must declare a non-empty path and at least one branch;
// anything else is a malformed declaration and fatal.
func Load(path string) ([]XFail, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from validated configuration
	if err != nil {
		return nil, errors.Wrapf(err, "reading xfails file %s", path)
	}

	var xfails []XFail
	if err := json.Unmarshal(data, &xfails); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", errors.ErrMalformedXFails, path, err)
	}

	for i, x := range xfails {
		if x.PathFragment() == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty path", errors.ErrMalformedXFails, i)
		}
		if len(x.Branches) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) declares no branches", errors.ErrMalformedXFails, i, x.Path)
		}
	}
	return xfails, nil
}
