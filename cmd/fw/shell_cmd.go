package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/bookmarks"
	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/hooks"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/workspace"
)

func newGenWorkonCmd() *cobra.Command {
	var quick bool

	cmd := &cobra.Command{
		Use:               "gen-workon <name>",
		Short:             "Print shell code to work on a project",
		GroupID:           GroupShell,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjectArg,
		Long: `Print sourceable shell code that changes into the project directory and
runs the composed after-workon hook in the calling shell.

Wrap it in a shell function, e.g.:

  workon() { eval "$(fw gen-workon "$@")"; }`,
		Example: `  eval "$(fw gen-workon api)"
  eval "$(fw gen-workon -x api)"   # Only cd, skip the hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenWorkon(cmd.Context(), args[0], quick)
		},
	}

	cmd.Flags().BoolVarP(&quick, "quick", "x", false, "Only cd into the project, skip the after-workon hook")

	return cmd
}

func runGenWorkon(ctx context.Context, name string, quick bool) error {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	p, err := ws.Project(name)
	if err != nil {
		return err
	}
	return printWorkon(ctx, ws, p, quick)
}

func printWorkon(ctx context.Context, ws *workspace.Workspace, p workspace.Project, quick bool) error {
	hc := ws.HookContext(p, hooks.KindWorkon)
	if _, err := os.Stat(hc.Path); err != nil {
		return errors.WithHint(errors.Newf("project %q is not checked out at %s", p.Name, hc.Path),
			"run 'fw sync' first")
	}
	script := ws.EffectiveHook(p, hooks.KindWorkon)
	output.FromContext(ctx).Print(hooks.WorkonScript(hc, script, quick))
	return nil
}

func newGenReworkonCmd() *cobra.Command {
	var quick bool

	cmd := &cobra.Command{
		Use:     "gen-reworkon",
		Short:   "Print shell code to work on the current project again",
		GroupID: GroupShell,
		Args:    cobra.NoArgs,
		Long: `Like gen-workon, for the project containing the current directory. Useful
to re-run the after-workon hook after changing it.`,
		Example: `  eval "$(fw gen-reworkon)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenReworkon(cmd.Context(), quick)
		},
	}

	cmd.Flags().BoolVarP(&quick, "quick", "x", false, "Only cd into the project, skip the after-workon hook")

	return cmd
}

func runGenReworkon(ctx context.Context, quick bool) error {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	p, err := ws.FindByPath(config.WorkDirFromContext(ctx))
	if err != nil {
		return err
	}
	return printWorkon(ctx, ws, p, quick)
}

func newReworkonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reworkon",
		Aliases: []string{".", "rw", "re", "fkbr"},
		Short:   "Re-run the after-workon hook of the current project",
		GroupID: GroupShell,
		Args:    cobra.NoArgs,
		Long: `Run the composed after-workon hook of the project containing the current
directory through the configured shell. Unlike gen-workon, the hook runs in a
child process, so it cannot change the calling shell.`,
		Example: `  fw reworkon
  fw .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReworkon(cmd.Context())
		},
	}
	return cmd
}

func runReworkon(ctx context.Context) error {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}
	p, err := ws.FindByPath(config.WorkDirFromContext(ctx))
	if err != nil {
		return err
	}

	script := ws.EffectiveHook(p, hooks.KindWorkon)
	if script == "" {
		log.FromContext(ctx).Printf("%s has no after-workon hook\n", p.Name)
		return nil
	}

	res := hooks.Run(ctx, config.FromContext(ctx).Shell, script, ws.HookContext(p, hooks.KindWorkon))
	output.FromContext(ctx).Print(res.Output)
	if res.Err != nil {
		return errors.Wrapf(res.Err, "after-workon hook of %s", p.Name)
	}
	if res.ExitCode != 0 {
		return errors.Newf("after-workon hook of %s exited with %d", p.Name, res.ExitCode)
	}
	return nil
}

func newProjectileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projectile",
		Short:   "Write Emacs projectile bookmarks",
		GroupID: GroupShell,
		Args:    cobra.NoArgs,
		Long: `Replace ~/.emacs.d/projectile-bookmarks.eld with the paths of all projects
that are checked out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := bookmarks.DefaultPath()
			if err != nil {
				return err
			}
			home, _ := os.UserHomeDir()
			return runProjectile(cmd.Context(), path, home)
		},
	}
	return cmd
}

func runProjectile(ctx context.Context, path, home string) error {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}

	var paths []string
	for _, p := range ws.Projects() {
		dir := ws.Path(p)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			paths = append(paths, dir)
		}
	}

	if err := bookmarks.Write(path, paths, home); err != nil {
		return err
	}
	log.FromContext(ctx).Printf("Wrote %d bookmarks to %s\n", len(paths), path)
	return nil
}
