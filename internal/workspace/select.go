package workspace

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// TagFilter narrows a project selection by tag.
type TagFilter struct {
	Tags   []string // OR semantics; empty selects every project
	Strict bool     // unknown tags are errors instead of matching nothing
}

// Select resolves the filter to project copies sorted by name. A project is
// selected if it carries at least one of the requested tags.
//
// In strict mode a tag that is neither defined nor carried by any project is
// reported as ErrNotFound before anything is selected.
func (w *Workspace) Select(f TagFilter) ([]Project, error) {
	if len(f.Tags) == 0 {
		return w.Projects(), nil
	}

	if f.Strict {
		known := w.KnownTags()
		for _, tag := range f.Tags {
			if !slices.Contains(known, tag) {
				return nil, errors.Wrap(notFound("tag", tag, known), "select projects")
			}
		}
	}

	var out []Project
	for _, name := range w.ProjectNames() {
		p := w.projects[name]
		if p.MatchesTags(f.Tags) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// SelectNames resolves explicit project names, keeping the given order.
func (w *Workspace) SelectNames(names []string) ([]Project, error) {
	out := make([]Project, 0, len(names))
	for _, name := range names {
		p, err := w.Project(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
