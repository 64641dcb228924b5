package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/orchestrator"
	"github.com/raphi011/fw/internal/outcome"
)

// defaultSyncParallelism is the sync worker count without -p.
const defaultSyncParallelism = 8

type syncOptions struct {
	tags        []string
	parallelism int
	noFFMerge   bool
	onlyNew     bool
	noProgress  bool
	failFast    bool
}

func newSyncCmd() *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Clone missing projects and update existing ones",
		GroupID: GroupWorkspace,
		Args:    cobra.NoArgs,
		Long: `Clone every selected project that has no checkout yet and bring existing
checkouts up to date with their upstream.

Remotes are reconciled with the configured ones before fetching. By default
only fast-forwards are applied; a diverged branch is reported and left alone.
With --no-ff-merge it is merged instead, and a merge conflict is aborted.

After a clone the composed after-clone hook runs in the new checkout.`,
		Example: `  fw sync                    # Sync every project
  fw sync -t backend         # Only projects tagged backend
  fw sync -n                 # Only clone missing projects
  fw sync -p 32 --fail-fast  # More workers, stop at the first failure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runSync(cmd.Context(), opts)
			return err
		},
	}

	registerTagFlag(cmd, &opts.tags, "Only sync projects with this tag (repeatable)")
	cmd.Flags().IntVarP(&opts.parallelism, "parallelism", "p", defaultSyncParallelism, "Number of projects synced at once (1-128)")
	cmd.Flags().BoolVar(&opts.noFFMerge, "no-ff-merge", false, "Merge diverged branches instead of failing")
	cmd.Flags().BoolVarP(&opts.onlyNew, "only-new", "n", false, "Only clone missing projects, skip existing ones")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress-bar", false, "Do not draw a progress bar")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop starting projects after the first failure")

	return cmd
}

func runSync(ctx context.Context, opts syncOptions) ([]outcome.Outcome, error) {
	settings := config.FromContext(ctx)

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := selectProjects(ctx, ws, opts.tags)
	if err != nil {
		return nil, err
	}
	targets := orchestrator.Resolve(ws, projects)

	syncer := &orchestrator.Syncer{
		Git:   orchestrator.GitCLI{},
		Shell: settings.Shell,
		Options: orchestrator.SyncOptions{
			OnlyNew:           opts.onlyNew,
			AllowMergeCommits: opts.noFFMerge,
		},
	}

	report := runReport{
		label:    "sync",
		bar:      !opts.noProgress,
		table:    true,
		failFast: opts.failFast,
	}
	return fanOut(ctx, opts.parallelism, len(targets), report, func(pool *executor.Pool) []outcome.Outcome {
		return syncer.Run(ctx, pool, targets)
	})
}
