package orchestrator

import (
	"context"
	"os"
	"strings"

	"github.com/raphi011/fw/internal/cmd"
	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/outcome"
)

// Foreach runs a shell command in every project directory.
type Foreach struct {
	Shell   []string
	Command string
}

// Run executes the command for every target through pool.
func (f *Foreach) Run(ctx context.Context, pool *executor.Pool, targets []Target) []outcome.Outcome {
	return executor.Run(ctx, pool, targets, targetName, func(ctx context.Context, t Target) outcome.Outcome {
		return runCommand(ctx, f.Shell, t, f.Command)
	})
}

// runCommand runs command in the target's directory. A command that ran
// yields an Exited outcome carrying its exit code, whatever that code is.
func runCommand(ctx context.Context, shell []string, t Target, command string) outcome.Outcome {
	if info, err := os.Stat(t.Path); err != nil || !info.IsDir() {
		return outcome.Failed(t.Name(), outcome.Other("missing directory"))
	}

	res := cmd.Shell(ctx, shell, t.Path, command, t.hookContext("").Environ())
	if res.Err != nil {
		o := outcome.Failed(t.Name(), res.Err)
		o.Log = strings.TrimRight(res.Output, "\n")
		return o
	}
	return outcome.Outcome{
		Project:  t.Name(),
		Status:   outcome.StatusExited,
		ExitCode: res.ExitCode,
		Log:      strings.TrimRight(res.Output, "\n"),
	}
}
