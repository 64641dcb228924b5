package workspace

import (
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/storage"
)

// projectFile is the on-disk form of projects/<name>.toml.
// The name comes from the file name.
type projectFile struct {
	Git          string       `toml:"git"`
	OverridePath string       `toml:"override_path,omitempty"`
	AfterClone   string       `toml:"after_clone,omitempty"`
	AfterWorkon  string       `toml:"after_workon,omitempty"`
	Tags         []string     `toml:"tags,omitempty"`
	Remotes      []remoteFile `toml:"remotes,omitempty"`
}

type remoteFile struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// tagFile is the on-disk form of tags/<name>.toml.
type tagFile struct {
	AfterClone  string `toml:"after_clone,omitempty"`
	AfterWorkon string `toml:"after_workon,omitempty"`
	Workspace   string `toml:"workspace,omitempty"`
	Priority    int    `toml:"priority,omitempty"`
}

// Store reads and writes the workspace model, one TOML file per entity.
type Store struct {
	settings *config.Settings
}

// NewStore returns a store for the config directory of settings.
func NewStore(settings *config.Settings) *Store {
	return &Store{settings: settings}
}

// Lock takes the exclusive lock of the config directory. Hold it from Load to
// Save so concurrent invocations do not lose each other's changes.
func (s *Store) Lock() (unlock func() error, err error) {
	return storage.LockDir(s.settings.Dir)
}

// Load reads every project and tag file. Missing directories yield an
// empty workspace.
func (s *Store) Load() (*Workspace, error) {
	ws := New(s.settings.Workspace, Defaults{
		AfterClone:  s.settings.DefaultAfterClone,
		AfterWorkon: s.settings.DefaultAfterWorkon,
	})

	projectNames, err := storage.List(s.settings.ProjectsDir())
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	for _, name := range projectNames {
		var f projectFile
		if err := storage.LoadTOML(s.projectPath(name), &f); err != nil {
			return nil, errors.Wrapf(err, "load project %q", name)
		}
		p := Project{
			Name:         name,
			GitURL:       f.Git,
			OverridePath: f.OverridePath,
			AfterClone:   f.AfterClone,
			AfterWorkon:  f.AfterWorkon,
			Tags:         f.Tags,
		}
		for _, r := range f.Remotes {
			p.Remotes = append(p.Remotes, Remote{Name: r.Name, URL: r.URL})
		}
		if err := ws.AddProject(p); err != nil {
			return nil, errors.Wrapf(err, "load project %q", name)
		}
	}

	tagNames, err := storage.List(s.settings.TagsDir())
	if err != nil {
		return nil, errors.Wrap(err, "list tags")
	}
	for _, name := range tagNames {
		var f tagFile
		if err := storage.LoadTOML(s.tagPath(name), &f); err != nil {
			return nil, errors.Wrapf(err, "load tag %q", name)
		}
		if _, err := ws.AddTag(Tag{
			Name:        name,
			AfterClone:  f.AfterClone,
			AfterWorkon: f.AfterWorkon,
			Workspace:   f.Workspace,
			Priority:    f.Priority,
		}); err != nil {
			return nil, errors.Wrapf(err, "load tag %q", name)
		}
	}

	return ws, nil
}

// Save writes every project and tag and removes the files of entities that
// no longer exist. Each file is replaced atomically.
func (s *Store) Save(ws *Workspace) error {
	for _, p := range ws.Projects() {
		f := projectFile{
			Git:          p.GitURL,
			OverridePath: p.OverridePath,
			AfterClone:   p.AfterClone,
			AfterWorkon:  p.AfterWorkon,
			Tags:         p.Tags,
		}
		for _, r := range p.Remotes {
			f.Remotes = append(f.Remotes, remoteFile{Name: r.Name, URL: r.URL})
		}
		if err := storage.SaveTOML(s.projectPath(p.Name), f); err != nil {
			return errors.Wrapf(err, "save project %q", p.Name)
		}
	}
	if err := s.prune(s.settings.ProjectsDir(), ws.ProjectNames(), s.projectPath); err != nil {
		return err
	}

	for _, t := range ws.Tags() {
		f := tagFile{
			AfterClone:  t.AfterClone,
			AfterWorkon: t.AfterWorkon,
			Workspace:   t.Workspace,
			Priority:    t.Priority,
		}
		if err := storage.SaveTOML(s.tagPath(t.Name), f); err != nil {
			return errors.Wrapf(err, "save tag %q", t.Name)
		}
	}
	return s.prune(s.settings.TagsDir(), ws.TagNames(), s.tagPath)
}

func (s *Store) prune(dir string, keep []string, path func(string) string) error {
	existing, err := storage.List(dir)
	if err != nil {
		return err
	}
	for _, name := range existing {
		if slices.Contains(keep, name) {
			continue
		}
		if err := storage.Remove(path(name)); err != nil {
			return errors.Wrapf(err, "remove %s", name)
		}
	}
	return nil
}

func (s *Store) projectPath(name string) string {
	return filepath.Join(s.settings.ProjectsDir(), name+storage.Ext)
}

func (s *Store) tagPath(name string) string {
	return filepath.Join(s.settings.TagsDir(), name+storage.Ext)
}
