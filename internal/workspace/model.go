package workspace

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/raphi011/fw/internal/hooks"
)

// OriginRemote is the implicit remote backed by Project.GitURL.
const OriginRemote = "origin"

// Remote is an additional git remote of a project.
type Remote struct {
	Name string
	URL  string
}

// Project is a declared git-backed project.
type Project struct {
	Name         string
	GitURL       string   // origin
	OverridePath string   // explicit checkout path, bypasses tag workspaces
	Remotes      []Remote // additional remotes in insertion order, never origin
	AfterClone   string
	AfterWorkon  string
	Tags         []string // sorted, unique
}

// Tag groups projects and contributes hooks and an optional workspace base.
type Tag struct {
	Name        string
	AfterClone  string
	AfterWorkon string
	Workspace   string // base directory for carrying projects
	Priority    int    // higher runs first when composing hooks
}

// Defaults are the settings-level hooks applied before all tag hooks.
type Defaults struct {
	AfterClone  string
	AfterWorkon string
}

// Workspace is the full project and tag model.
type Workspace struct {
	Root     string // workspace root for derived checkout paths
	Defaults Defaults
	projects map[string]*Project
	tags     map[string]*Tag
}

// New returns an empty workspace rooted at root.
func New(root string, defaults Defaults) *Workspace {
	return &Workspace{
		Root:     root,
		Defaults: defaults,
		projects: make(map[string]*Project),
		tags:     make(map[string]*Tag),
	}
}

// HasTag checks if the project carries tag
func (p *Project) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// MatchesTags checks if the project carries any of the given tags
func (p *Project) MatchesTags(tags []string) bool {
	for _, tag := range tags {
		if p.HasTag(tag) {
			return true
		}
	}
	return false
}

// Remote returns the remote with the given name, including the implicit origin.
func (p *Project) Remote(name string) (Remote, bool) {
	if name == OriginRemote {
		return Remote{Name: OriginRemote, URL: p.GitURL}, true
	}
	for _, r := range p.Remotes {
		if r.Name == name {
			return r, true
		}
	}
	return Remote{}, false
}

// AllRemotes returns origin followed by the additional remotes.
func (p *Project) AllRemotes() []Remote {
	return append([]Remote{{Name: OriginRemote, URL: p.GitURL}}, p.Remotes...)
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	p.Remotes = slices.Clone(p.Remotes)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// String returns a display string for the project
func (p Project) String() string {
	if len(p.Tags) > 0 {
		return fmt.Sprintf("%s (%s)", p.Name, strings.Join(p.Tags, ", "))
	}
	return p.Name
}

// Project returns a copy of the named project.
func (w *Workspace) Project(name string) (Project, error) {
	p, ok := w.projects[name]
	if !ok {
		return Project{}, notFound("project", name, w.ProjectNames())
	}
	return p.Clone(), nil
}

// Tag returns a copy of the named tag definition.
func (w *Workspace) Tag(name string) (Tag, error) {
	t, ok := w.tags[name]
	if !ok {
		return Tag{}, notFound("tag", name, w.TagNames())
	}
	return *t, nil
}

// Projects returns copies of all projects sorted by name.
func (w *Workspace) Projects() []Project {
	out := make([]Project, 0, len(w.projects))
	for _, name := range w.ProjectNames() {
		out = append(out, w.projects[name].Clone())
	}
	return out
}

// Tags returns all tag definitions sorted by name.
func (w *Workspace) Tags() []Tag {
	out := make([]Tag, 0, len(w.tags))
	for _, name := range w.TagNames() {
		out = append(out, *w.tags[name])
	}
	return out
}

// ProjectNames returns all project names sorted.
func (w *Workspace) ProjectNames() []string {
	return slices.Sorted(maps.Keys(w.projects))
}

// TagNames returns all defined tag names sorted.
func (w *Workspace) TagNames() []string {
	return slices.Sorted(maps.Keys(w.tags))
}

// KnownTags returns every tag that is defined or carried by a project, sorted.
func (w *Workspace) KnownTags() []string {
	set := make(map[string]bool, len(w.tags))
	for name := range w.tags {
		set[name] = true
	}
	for _, p := range w.projects {
		for _, t := range p.Tags {
			set[t] = true
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// ProjectsWithTag returns the names of projects carrying tag, sorted.
func (w *Workspace) ProjectsWithTag(tag string) []string {
	var names []string
	for _, name := range w.ProjectNames() {
		if w.projects[name].HasTag(tag) {
			names = append(names, name)
		}
	}
	return names
}

// EffectiveHook composes the hook of the given kind for a project: the
// settings default, then every defined tag the project carries by descending
// priority, then the project's own hook.
func (w *Workspace) EffectiveHook(p Project, kind hooks.Kind) string {
	pick := func(clone, workon string) string {
		if kind == hooks.KindClone {
			return clone
		}
		return workon
	}

	sources := []hooks.Source{{
		Layer:  hooks.LayerDefault,
		Script: pick(w.Defaults.AfterClone, w.Defaults.AfterWorkon),
	}}
	for _, name := range p.Tags {
		t, ok := w.tags[name]
		if !ok {
			continue
		}
		sources = append(sources, hooks.Source{
			Layer:    hooks.LayerTag,
			Name:     t.Name,
			Priority: t.Priority,
			Script:   pick(t.AfterClone, t.AfterWorkon),
		})
	}
	sources = append(sources, hooks.Source{
		Layer:  hooks.LayerProject,
		Name:   p.Name,
		Script: pick(p.AfterClone, p.AfterWorkon),
	})

	return hooks.Compose(sources)
}

// HookContext returns the placeholder and environment values for running a
// project's hooks.
func (w *Workspace) HookContext(p Project, kind hooks.Kind) hooks.Context {
	return hooks.Context{
		Name:    p.Name,
		Path:    w.Path(p),
		URL:     p.GitURL,
		Trigger: kind,
	}
}
