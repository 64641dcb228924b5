package orchestrator

import (
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/hooks"
	"github.com/raphi011/fw/internal/workspace"
)

// Target is a project resolved against the workspace model.
type Target struct {
	Project   workspace.Project
	Path      string
	CloneHook string // composed after-clone script
}

// Resolve builds targets for the given projects, preserving their order.
func Resolve(ws *workspace.Workspace, projects []workspace.Project) []Target {
	targets := make([]Target, len(projects))
	for i, p := range projects {
		targets[i] = Target{
			Project:   p,
			Path:      ws.Path(p),
			CloneHook: ws.EffectiveHook(p, hooks.KindClone),
		}
	}
	return targets
}

// Name returns the project name of t.
func (t Target) Name() string {
	return t.Project.Name
}

func (t Target) hookContext(kind hooks.Kind) hooks.Context {
	return hooks.Context{
		Name:    t.Project.Name,
		Path:    t.Path,
		URL:     t.Project.GitURL,
		Trigger: kind,
	}
}

func (t Target) remotes() []git.Remote {
	all := t.Project.AllRemotes()
	out := make([]git.Remote, len(all))
	for i, r := range all {
		out[i] = git.Remote{Name: r.Name, URL: r.URL}
	}
	return out
}

func targetName(t Target) string {
	return t.Name()
}
