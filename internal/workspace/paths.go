package workspace

import (
	"path/filepath"
	"strings"

	"github.com/raphi011/fw/internal/config"
)

// Path returns the local checkout path of a project.
//
// Resolution order:
//  1. OverridePath, with ~ expanded; relative paths are joined onto Root
//  2. <base>/<name>, where base is the Workspace of the highest-priority
//     defined tag the project carries that sets one (ties by tag name)
//  3. <Root>/<name>
func (w *Workspace) Path(p Project) string {
	if p.OverridePath != "" {
		return w.resolve(p.OverridePath)
	}
	if base := w.tagWorkspace(p); base != "" {
		return filepath.Join(w.resolve(base), p.Name)
	}
	return filepath.Join(w.Root, p.Name)
}

func (w *Workspace) tagWorkspace(p Project) string {
	var best *Tag
	for _, name := range p.Tags {
		t, ok := w.tags[name]
		if !ok || t.Workspace == "" {
			continue
		}
		// p.Tags is sorted, so the first tag wins a priority tie
		if best == nil || t.Priority > best.Priority {
			best = t
		}
	}
	if best == nil {
		return ""
	}
	return best.Workspace
}

func (w *Workspace) resolve(path string) string {
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.Root, path)
	}
	return filepath.Clean(path)
}

// FindByPath returns the project whose checkout contains dir. When checkouts
// are nested the deepest one wins.
func (w *Workspace) FindByPath(dir string) (Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Project{}, err
	}

	var (
		best    *Project
		bestLen int
	)
	for _, name := range w.ProjectNames() {
		p := w.projects[name]
		path := w.Path(*p)
		if abs != path && !strings.HasPrefix(abs, path+string(filepath.Separator)) {
			continue
		}
		if len(path) > bestLen {
			best, bestLen = p, len(path)
		}
	}
	if best == nil {
		return Project{}, notFound("project at", abs, nil)
	}
	return best.Clone(), nil
}
