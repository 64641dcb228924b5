package orchestrator

import (
	"context"
	"io"
	"strings"

	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/hooks"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/outcome"
)

// GitOps is the set of git operations sync needs.
type GitOps interface {
	Clone(ctx context.Context, url, path string, out io.Writer) error
	AddRemote(ctx context.Context, path, name, url string) error
	Sync(ctx context.Context, path string, remotes []git.Remote, opts git.SyncOptions, out io.Writer) (outcome.Status, error)
}

// GitCLI implements GitOps with the git command line.
type GitCLI struct{}

func (GitCLI) Clone(ctx context.Context, url, path string, out io.Writer) error {
	return git.Clone(ctx, url, path, out)
}

func (GitCLI) AddRemote(ctx context.Context, path, name, url string) error {
	return git.AddRemote(ctx, path, name, url)
}

func (GitCLI) Sync(ctx context.Context, path string, remotes []git.Remote, opts git.SyncOptions, out io.Writer) (outcome.Status, error) {
	return git.Sync(ctx, path, remotes, opts, out)
}

// SyncOptions controls a sync run.
type SyncOptions struct {
	OnlyNew           bool // only clone missing projects, never touch existing ones
	AllowMergeCommits bool // merge diverged branches instead of failing
}

// Syncer clones missing projects and updates existing ones.
type Syncer struct {
	Git     GitOps
	Shell   []string // shell for after-clone hooks
	Options SyncOptions
}

// Run syncs every target through pool and returns outcomes in completion order.
func (s *Syncer) Run(ctx context.Context, pool *executor.Pool, targets []Target) []outcome.Outcome {
	log.FromContext(ctx).Debug("sync", "projects", len(targets), "pool", pool)
	return executor.Run(ctx, pool, targets, targetName, s.SyncTarget)
}

// SyncTarget syncs a single project.
func (s *Syncer) SyncTarget(ctx context.Context, t Target) outcome.Outcome {
	var buf strings.Builder
	o := s.syncTarget(ctx, t, &buf)
	o.Project = t.Name()
	o.Log = strings.TrimRight(buf.String(), "\n")
	return o
}

func (s *Syncer) syncTarget(ctx context.Context, t Target, out *strings.Builder) outcome.Outcome {
	empty, err := git.IsEmptyDir(t.Path)
	if err != nil {
		return outcome.Failed(t.Name(), err)
	}

	if !empty {
		if s.Options.OnlyNew {
			return outcome.Outcome{Status: outcome.StatusSkipped}
		}
		status, err := s.Git.Sync(ctx, t.Path, t.remotes(), git.SyncOptions{
			FastForwardOnly: !s.Options.AllowMergeCommits,
		}, out)
		if err != nil {
			return outcome.Failed(t.Name(), err)
		}
		return outcome.Outcome{Status: status}
	}

	if err := s.Git.Clone(ctx, t.Project.GitURL, t.Path, out); err != nil {
		return outcome.Failed(t.Name(), err)
	}
	for _, r := range t.Project.Remotes {
		if err := s.Git.AddRemote(ctx, t.Path, r.Name, r.URL); err != nil {
			return outcome.Failed(t.Name(), outcome.Other("add remote %s: %v", r.Name, err))
		}
	}

	// the clone is kept even when the hook fails
	res := hooks.Run(ctx, s.Shell, t.CloneHook, t.hookContext(hooks.KindClone))
	out.WriteString(res.Output)
	if res.Err != nil {
		return outcome.Failed(t.Name(), outcome.Other("after-clone hook: %v", res.Err))
	}
	if res.ExitCode != 0 {
		return outcome.Failed(t.Name(), outcome.Other("after-clone hook exited with %d", res.ExitCode))
	}
	return outcome.Outcome{Status: outcome.StatusCloned}
}
