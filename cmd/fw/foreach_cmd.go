package main

import (
	"context"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	execcmd "github.com/raphi011/fw/internal/cmd"
	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/orchestrator"
	"github.com/raphi011/fw/internal/outcome"
)

type foreachOptions struct {
	tags        []string
	parallelism int
	cpuPool     bool
}

func newForeachCmd() *cobra.Command {
	var opts foreachOptions

	cmd := &cobra.Command{
		Use:     "foreach <command>",
		Short:   "Run a shell command in every project",
		GroupID: GroupWorkspace,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run a command through the configured shell in every selected project
directory, in parallel. A single argument is shell code; several arguments
are quoted word by word, as after --.

Output of each project is printed as soon as it finishes. FW_PROJECT_NAME,
FW_PROJECT_PATH and FW_PROJECT_URL are exported to the command. fw exits
non-zero if a project is missing or the command exits non-zero anywhere.`,
		Example: `  fw foreach 'git status -s'         # Every project
  fw foreach -t go 'go test ./...'   # Projects tagged go
  fw foreach -p 1 -- make clean      # One at a time`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.cpuPool = !cmd.Flags().Changed("parallelism")
			_, err := runForeach(cmd.Context(), execcmd.JoinArgs(args), opts)
			return err
		},
	}

	// flags after the command belong to the command
	cmd.Flags().SetInterspersed(false)
	registerTagFlag(cmd, &opts.tags, "Only run in projects with this tag (repeatable)")
	cmd.Flags().IntVarP(&opts.parallelism, "parallelism", "p", runtime.NumCPU(), "Number of commands run at once (1-128)")

	return cmd
}

func runForeach(ctx context.Context, command string, opts foreachOptions) ([]outcome.Outcome, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.New("no command given")
	}

	ws, err := loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := selectProjects(ctx, ws, opts.tags)
	if err != nil {
		return nil, err
	}
	targets := orchestrator.Resolve(ws, projects)

	f := &orchestrator.Foreach{
		Shell:   config.FromContext(ctx).Shell,
		Command: command,
	}
	return fanOut(ctx, opts.parallelism, len(targets), runReport{label: "foreach", stream: true, cpuPool: opts.cpuPool},
		func(pool *executor.Pool) []outcome.Outcome {
			return f.Run(ctx, pool, targets)
		})
}
