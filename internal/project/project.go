// Package project models the compatibility-suite project list and the
// architecture-override filter applied before handing it to the runner.
package project

import (
	"encoding/json"
	"fmt"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// Action is one build configuration within a Project. Only the fields the
// driver touches are typed; everything else is preserved verbatim so the
// filtered file stays byte-equivalent in meaning to the input.
type Action struct {
	// Destination is the xcodebuild destination string, empty if the
	// action does not declare one.
	Destination string

	// ArchsOverride is the derived architecture override. Populated by
	// the filter; empty means not yet annotated.
	ArchsOverride string

	// extra holds all other fields untouched.
	extra map[string]json.RawMessage
}

// keys owned by the typed fields above.
const (
	destinationKey   = "destination"
	archsOverrideKey = "archs_override"
)

// UnmarshalJSON decodes an action, validating that destination, when
// present, is a string. Unknown fields are retained.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: action is not an object: %w", errors.ErrMalformedProjects, err)
	}

	if dest, ok := raw[destinationKey]; ok {
		if err := json.Unmarshal(dest, &a.Destination); err != nil {
			return fmt.Errorf("%w: action destination is not a string: %w", errors.ErrMalformedProjects, err)
		}
		delete(raw, destinationKey)
	}
	if override, ok := raw[archsOverrideKey]; ok {
		if err := json.Unmarshal(override, &a.ArchsOverride); err != nil {
			return fmt.Errorf("%w: archs_override is not a string: %w", errors.ErrMalformedProjects, err)
		}
		delete(raw, archsOverrideKey)
	}

	a.extra = raw
	return nil
}

// MarshalJSON re-emits the action with the typed fields folded back in.
func (a Action) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.extra)+2)
	for k, v := range a.extra {
		out[k] = v
	}
	if a.Destination != "" {
		dest, err := json.Marshal(a.Destination)
		if err != nil {
			return nil, err
		}
		out[destinationKey] = dest
	}
	if a.ArchsOverride != "" {
		override, err := json.Marshal(a.ArchsOverride)
		if err != nil {
			return nil, err
		}
		out[archsOverrideKey] = override
	}
	return json.Marshal(out)
}

// Field returns the raw value of a preserved field, for tests and callers
// needing read-only access to untyped data.
func (a *Action) Field(name string) (json.RawMessage, bool) {
	v, ok := a.extra[name]
	return v, ok
}

// Project is a named collection of build actions. Fields other than
// "actions" are preserved verbatim.
type Project struct {
	Actions []Action

	extra map[string]json.RawMessage
}

const actionsKey = "actions"

// UnmarshalJSON decodes a project, requiring an actions list.
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: project is not an object: %w", errors.ErrMalformedProjects, err)
	}

	actions, ok := raw[actionsKey]
	if !ok {
		return fmt.Errorf("%w: project is missing required field %q", errors.ErrMalformedProjects, actionsKey)
	}
	if err := json.Unmarshal(actions, &p.Actions); err != nil {
		return fmt.Errorf("%w: project actions: %w", errors.ErrMalformedProjects, err)
	}
	delete(raw, actionsKey)

	p.extra = raw
	return nil
}

// MarshalJSON re-emits the project with the actions list folded back in.
func (p Project) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.extra)+1)
	for k, v := range p.extra {
		out[k] = v
	}
	actions, err := json.Marshal(p.Actions)
	if err != nil {
		return nil, err
	}
	out[actionsKey] = actions
	return json.Marshal(out)
}

// Field returns the raw value of a preserved project field.
func (p *Project) Field(name string) (json.RawMessage, bool) {
	v, ok := p.extra[name]
	return v, ok
}
