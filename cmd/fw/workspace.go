package main

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/workspace"
)

// loadWorkspace reads the workspace model for the settings in ctx.
func loadWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	ws, err := workspace.NewStore(config.FromContext(ctx)).Load()
	if err != nil {
		return nil, errors.Wrap(err, "load workspace")
	}
	return ws, nil
}

// mutateWorkspace loads the model under the config directory lock, applies
// fn and saves the result. Nothing is saved when fn fails.
func mutateWorkspace(ctx context.Context, fn func(ws *workspace.Workspace) error) (err error) {
	store := workspace.NewStore(config.FromContext(ctx))
	unlock, err := store.Lock()
	if err != nil {
		return errors.Wrap(err, "lock workspace")
	}
	defer func() {
		err = errors.CombineErrors(err, unlock())
	}()

	ws, err := store.Load()
	if err != nil {
		return errors.Wrap(err, "load workspace")
	}
	if err := fn(ws); err != nil {
		return err
	}
	return errors.Wrap(store.Save(ws), "save workspace")
}

// selectProjects resolves -t/--tag values against the workspace.
func selectProjects(ctx context.Context, ws *workspace.Workspace, tags []string) ([]workspace.Project, error) {
	return ws.Select(workspace.TagFilter{
		Tags:   tags,
		Strict: config.FromContext(ctx).StrictTagFilter,
	})
}
