package project

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/constants"
	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// OverrideForDestination maps an xcodebuild destination to the architecture
// override the stress tester needs. Destinations without a dedicated
// mapping keep whatever architectures the action already specifies, via the
// ARCHS_STANDARD placeholder.
func OverrideForDestination(destination string) string {
	switch destination {
	case constants.DestinationGenericIOS:
		return constants.ArchsOverrideIOS
	case constants.DestinationGenericMacOS:
		return constants.ArchsOverrideMacOS
	default:
		return constants.ArchsStandard
	}
}

// Load reads and validates a projects file.
// A malformed file is fatal; the error carries ErrMalformedProjects.
func Load(path string) ([]Project, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from validated configuration
	if err != nil {
		return nil, errors.Wrapf(err, "reading projects file %s", path)
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, errors.Wrapf(err, "parsing projects file %s", path)
	}
	return projects, nil
}

// Write serializes the project list to path, overwriting any existing file.
func Write(path string, projects []Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing projects")
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- project list is not sensitive
		return errors.Wrapf(err, "writing filtered projects file %s", path)
	}
	return nil
}

// Annotate sets archs_override on every action. Idempotent: the override is
// a pure function of the destination, so annotating twice is a no-op.
func Annotate(projects []Project) {
	for pi := range projects {
		for ai := range projects[pi].Actions {
			action := &projects[pi].Actions[ai]
			action.ArchsOverride = OverrideForDestination(action.Destination)
		}
	}
}

// Filter loads the projects file, annotates every action with its
// architecture override, and writes the result to outputPath.
func Filter(ctx context.Context, inputPath, outputPath string) error {
	log := zerolog.Ctx(ctx)

	projects, err := Load(inputPath)
	if err != nil {
		return err
	}

	Annotate(projects)

	actionCount := 0
	for i := range projects {
		actionCount += len(projects[i].Actions)
	}
	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("projects", len(projects)).
		Int("actions", actionCount).
		Msg("writing filtered project list")

	return Write(outputPath, projects)
}
