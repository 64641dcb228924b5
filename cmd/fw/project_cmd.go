package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/ui/prompt"
	"github.com/raphi011/fw/internal/workspace"
)

func newAddCmd() *cobra.Command {
	var (
		p    workspace.Project
		tags []string
	)

	cmd := &cobra.Command{
		Use:     "add <git-url> [name]",
		Short:   "Add a project",
		GroupID: GroupProject,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Add a project to the workspace. The name defaults to the repository name
from the URL. Run 'fw sync' to clone it.`,
		Example: `  fw add git@github.com:org/api.git             # Project "api"
  fw add git@github.com:org/api.git backend-api # Explicit name
  fw add -t go -t backend https://host/org/svc.git`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.GitURL = args[0]
			p.Name = git.ExtractRepoNameFromURL(args[0])
			if len(args) == 2 {
				p.Name = args[1]
			}
			p.Tags = tags
			return runAdd(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVar(&p.OverridePath, "override-path", "", "Check out to this path instead of the workspace")
	cmd.Flags().StringVar(&p.AfterClone, "after-clone", "", "Shell code run after cloning")
	cmd.Flags().StringVar(&p.AfterWorkon, "after-workon", "", "Shell code run by gen-workon")
	registerTagFlag(cmd, &tags, "Tag the project (repeatable)")

	return cmd
}

func runAdd(ctx context.Context, p workspace.Project) error {
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		return ws.AddProject(p)
	}); err != nil {
		return err
	}
	log.FromContext(ctx).Printf("Added project %s\n", p.Name)
	return nil
}

func newUpdateCmd() *cobra.Command {
	var gitURL, overridePath, afterClone, afterWorkon string

	cmd := &cobra.Command{
		Use:               "update <name>",
		Short:             "Change a project's settings",
		GroupID:           GroupProject,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjectArg,
		Example: `  fw update api --git-url git@github.com:org/api-v2.git
  fw update api --after-workon 'nvm use'
  fw update api --override-path ''   # Back to the workspace path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u workspace.ProjectUpdate
			flags := cmd.Flags()
			if flags.Changed("git-url") {
				u.GitURL = &gitURL
			}
			if flags.Changed("override-path") {
				u.OverridePath = &overridePath
			}
			if flags.Changed("after-clone") {
				u.AfterClone = &afterClone
			}
			if flags.Changed("after-workon") {
				u.AfterWorkon = &afterWorkon
			}
			if u == (workspace.ProjectUpdate{}) {
				return errors.WithHint(errors.New("nothing to update"),
					"pass at least one of --git-url, --override-path, --after-clone, --after-workon")
			}
			return runUpdate(cmd.Context(), args[0], u)
		},
	}

	cmd.Flags().StringVar(&gitURL, "git-url", "", "New origin URL")
	cmd.Flags().StringVar(&overridePath, "override-path", "", "Check out to this path, empty to reset")
	cmd.Flags().StringVar(&afterClone, "after-clone", "", "Shell code run after cloning")
	cmd.Flags().StringVar(&afterWorkon, "after-workon", "", "Shell code run by gen-workon")

	return cmd
}

func runUpdate(ctx context.Context, name string, u workspace.ProjectUpdate) error {
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		return ws.UpdateProject(name, u)
	}); err != nil {
		return err
	}
	log.FromContext(ctx).Printf("Updated project %s\n", name)
	return nil
}

func newRemoveCmd() *cobra.Command {
	var purge, yes bool

	cmd := &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             "Remove a project",
		GroupID:           GroupProject,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjectArg,
		Long: `Remove a project from the workspace. The checkout is kept unless
--purge-directory is given, which asks for confirmation first.`,
		Example: `  fw rm api       # Forget the project, keep the checkout
  fw rm api -p    # Also delete the checkout (asks first)
  fw rm api -p -y # Delete without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm confirmFunc
			if prompt.Interactive() {
				confirm = prompt.Confirm
			}
			return runRemove(cmd.Context(), args[0], purge, yes, confirm)
		},
	}

	cmd.Flags().BoolVarP(&purge, "purge-directory", "p", false, "Also delete the project directory")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before deleting the directory")

	return cmd
}

// confirmFunc asks the user a yes/no question. It is nil when there is no
// terminal to ask on.
type confirmFunc func(question string) (prompt.ConfirmResult, error)

func runRemove(ctx context.Context, name string, purge, yes bool, confirm confirmFunc) error {
	l := log.FromContext(ctx)

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	p, err := ws.Project(name)
	if err != nil {
		return err
	}
	path := ws.Path(p)

	if purge && !yes {
		if confirm == nil {
			return errors.WithHint(errors.Newf("refusing to delete %s without confirmation", path),
				"pass --yes to delete without asking")
		}
		res, err := confirm("Delete " + path + "?")
		if err != nil {
			return errors.Wrap(err, "confirm")
		}
		if !res.Confirmed {
			l.Println("Aborted")
			return nil
		}
	}

	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		_, err := ws.RemoveProject(name)
		return err
	}); err != nil {
		return err
	}
	l.Printf("Removed project %s\n", name)

	if purge {
		if err := os.RemoveAll(path); err != nil {
			return errors.Wrapf(err, "delete %s", path)
		}
		l.Printf("Deleted %s\n", path)
	}
	return nil
}

func newAddRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "add-remote <name> <remote> <url>",
		Short:             "Add a git remote to a project",
		GroupID:           GroupProject,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeProjectArg,
		Long: `Add an additional remote to a project. If the project is checked out the
remote is added right away, otherwise the next sync adds it.`,
		Example: `  fw add-remote api upstream git@github.com:upstream/api.git`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddRemote(cmd.Context(), args[0], args[1], args[2])
		},
	}
	return cmd
}

func runAddRemote(ctx context.Context, project, name, url string) error {
	l := log.FromContext(ctx)

	var path string
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		if err := ws.AddRemote(project, name, url); err != nil {
			return err
		}
		p, _ := ws.Project(project)
		path = ws.Path(p)
		return nil
	}); err != nil {
		return err
	}
	l.Printf("Added remote %s to %s\n", name, project)

	if !git.IsRepo(path) {
		l.Debug("no checkout, remote added on next sync", "path", path)
		return nil
	}
	// best effort, sync reconciles remotes anyway
	if err := git.AddRemote(ctx, path, name, url); err != nil {
		l.Printf("Warning: add remote in %s: %v\n", path, err)
	}
	return nil
}

func newRemoveRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove-remote <name> <remote>",
		Short:             "Remove a git remote from a project",
		GroupID:           GroupProject,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeRemoteArgs,
		Long: `Remove an additional remote from a project. An existing checkout loses the
remote right away; sync never deletes remotes on its own.`,
		Example: `  fw remove-remote api upstream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveRemote(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}

func runRemoveRemote(ctx context.Context, project, name string) error {
	l := log.FromContext(ctx)

	var path string
	if err := mutateWorkspace(ctx, func(ws *workspace.Workspace) error {
		if _, err := ws.RemoveRemote(project, name); err != nil {
			return err
		}
		p, _ := ws.Project(project)
		path = ws.Path(p)
		return nil
	}); err != nil {
		return err
	}
	l.Printf("Removed remote %s from %s\n", name, project)

	if !git.IsRepo(path) {
		return nil
	}
	if err := git.RemoveRemote(ctx, path, name); err != nil {
		l.Printf("Warning: remove remote in %s: %v\n", path, err)
	}
	return nil
}
