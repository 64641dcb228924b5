package workspace

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// AddProject adds a new project. Tags are normalized (sorted, unique).
func (w *Workspace) AddProject(p Project) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if p.GitURL == "" {
		return errors.Newf("project %q: git url must not be empty", p.Name)
	}
	if _, ok := w.projects[p.Name]; ok {
		return conflict("project %q already exists", p.Name)
	}
	for _, tag := range p.Tags {
		if err := ValidateName(tag); err != nil {
			return errors.Wrap(err, "tag")
		}
	}

	p = p.Clone()
	seen := map[string]bool{OriginRemote: true}
	for _, r := range p.Remotes {
		if err := ValidateName(r.Name); err != nil {
			return errors.Wrap(err, "remote")
		}
		if seen[r.Name] {
			return conflict("project %q: remote %q defined twice", p.Name, r.Name)
		}
		seen[r.Name] = true
	}
	p.Tags = normalizeTags(p.Tags)

	w.projects[p.Name] = &p
	return nil
}

// RemoveProject removes a project and returns it.
func (w *Workspace) RemoveProject(name string) (Project, error) {
	p, ok := w.projects[name]
	if !ok {
		return Project{}, notFound("project", name, w.ProjectNames())
	}
	delete(w.projects, name)
	return *p, nil
}

// ProjectUpdate lists the project fields to change. Nil fields are kept.
type ProjectUpdate struct {
	GitURL       *string
	OverridePath *string
	AfterClone   *string
	AfterWorkon  *string
}

// UpdateProject changes the given fields of an existing project.
func (w *Workspace) UpdateProject(name string, u ProjectUpdate) error {
	p, err := w.lookup(name)
	if err != nil {
		return err
	}
	if u.GitURL != nil {
		if *u.GitURL == "" {
			return errors.Newf("project %q: git url must not be empty", name)
		}
		p.GitURL = *u.GitURL
	}
	if u.OverridePath != nil {
		p.OverridePath = *u.OverridePath
	}
	if u.AfterClone != nil {
		p.AfterClone = *u.AfterClone
	}
	if u.AfterWorkon != nil {
		p.AfterWorkon = *u.AfterWorkon
	}
	return nil
}

// AddRemote adds an additional remote. Adding an existing name, including
// the implicit origin, is a conflict.
func (w *Workspace) AddRemote(project, name, url string) error {
	p, err := w.lookup(project)
	if err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return errors.Wrap(err, "remote")
	}
	if url == "" {
		return errors.Newf("remote %q: url must not be empty", name)
	}
	if _, ok := p.Remote(name); ok {
		return conflict("project %q already has a remote %q", project, name)
	}
	p.Remotes = append(p.Remotes, Remote{Name: name, URL: url})
	return nil
}

// RemoveRemote removes an additional remote and returns it. The remote set
// is unchanged when the remote does not exist.
func (w *Workspace) RemoveRemote(project, name string) (Remote, error) {
	p, err := w.lookup(project)
	if err != nil {
		return Remote{}, err
	}
	if name == OriginRemote {
		return Remote{}, errors.WithHint(
			errors.Newf("project %q: cannot remove origin", project),
			"use 'fw update --git-url' to change it")
	}
	i := slices.IndexFunc(p.Remotes, func(r Remote) bool { return r.Name == name })
	if i < 0 {
		names := make([]string, len(p.Remotes))
		for j, r := range p.Remotes {
			names[j] = r.Name
		}
		return Remote{}, notFound("remote", name, names)
	}
	r := p.Remotes[i]
	p.Remotes = slices.Delete(p.Remotes, i, i+1)
	return r, nil
}

// TagProject adds tag to a project. The tag need not be defined.
// Tagging twice is a no-op; changed reports whether the project changed.
func (w *Workspace) TagProject(project, tag string) (changed bool, err error) {
	p, err := w.lookup(project)
	if err != nil {
		return false, err
	}
	if err := ValidateName(tag); err != nil {
		return false, errors.Wrap(err, "tag")
	}
	if p.HasTag(tag) {
		return false, nil
	}
	p.Tags = normalizeTags(append(p.Tags, tag))
	return true, nil
}

// UntagProject removes tag from a project. Removing a tag the project does
// not carry is a no-op.
func (w *Workspace) UntagProject(project, tag string) (changed bool, err error) {
	p, err := w.lookup(project)
	if err != nil {
		return false, err
	}
	i := slices.Index(p.Tags, tag)
	if i < 0 {
		return false, nil
	}
	p.Tags = slices.Delete(p.Tags, i, i+1)
	return true, nil
}

// AddTag creates or fully replaces a tag definition.
// replaced reports whether a previous definition existed.
func (w *Workspace) AddTag(t Tag) (replaced bool, err error) {
	if err := ValidateName(t.Name); err != nil {
		return false, err
	}
	_, replaced = w.tags[t.Name]
	w.tags[t.Name] = &t
	return replaced, nil
}

// RemoveTag deletes a tag definition. Projects keep carrying the tag name.
func (w *Workspace) RemoveTag(name string) error {
	if _, ok := w.tags[name]; !ok {
		return notFound("tag", name, w.TagNames())
	}
	delete(w.tags, name)
	return nil
}

func (w *Workspace) lookup(name string) (*Project, error) {
	p, ok := w.projects[name]
	if !ok {
		return nil, notFound("project", name, w.ProjectNames())
	}
	return p, nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}
