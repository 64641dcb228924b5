package orchestrator

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/outcome"
	"github.com/raphi011/fw/internal/workspace"
)

// Autotag runs a predicate command per project and tags the projects where
// it exits 0. A nonzero exit leaves the project alone; tags are never removed.
type Autotag struct {
	Shell   []string
	Tag     string
	Command string

	matched []string
}

// Run evaluates the command for every target. Matches are recorded on a and
// applied later by Apply; the workspace is not touched during fan-out.
func (a *Autotag) Run(ctx context.Context, pool *executor.Pool, targets []Target) []outcome.Outcome {
	outcomes := executor.Run(ctx, pool, targets, targetName, func(ctx context.Context, t Target) outcome.Outcome {
		return runCommand(ctx, a.Shell, t, a.Command)
	})

	a.matched = a.matched[:0]
	for _, o := range outcomes {
		if o.Status == outcome.StatusExited && o.ExitCode == 0 {
			a.matched = append(a.matched, o.Project)
		}
	}
	slices.Sort(a.matched)
	return outcomes
}

// Matched returns the projects whose command exited 0, sorted by name.
func (a *Autotag) Matched() []string {
	return slices.Clone(a.matched)
}

// Apply tags every matched project. It returns the projects that were newly
// tagged; projects already carrying the tag are left unchanged. A matched
// project that no longer exists in ws is skipped.
func (a *Autotag) Apply(ctx context.Context, ws *workspace.Workspace) ([]string, error) {
	var tagged []string
	for _, name := range a.matched {
		changed, err := ws.TagProject(name, a.Tag)
		if errors.Is(err, workspace.ErrNotFound) {
			log.FromContext(ctx).Printf("Skipping %s: project was removed during autotag\n", name)
			continue
		}
		if err != nil {
			return tagged, err
		}
		if changed {
			tagged = append(tagged, name)
		}
	}
	return tagged, nil
}
