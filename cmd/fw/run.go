package main

import (
	"context"
	"os"

	"github.com/raphi011/fw/internal/executor"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/outcome"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/ui/progress"
	"github.com/raphi011/fw/internal/ui/static"
)

// runReport controls how a fan-out run is displayed.
type runReport struct {
	label    string // progress bar message
	bar      bool   // draw a progress bar on a terminal
	stream   bool   // print each outcome's output as it completes
	table    bool   // print the outcome table when done
	failFast bool
	cpuPool  bool // size the pool by CPU count, ignoring parallelism
	exitsOK  bool // nonzero exits are answers, not failures
}

// fanOut builds a pool for total units, runs fn with it and reports the
// outcomes. It returns errRunFailed when any unit failed or, unless
// r.exitsOK is set, exited nonzero.
func fanOut(ctx context.Context, parallelism, total int, r runReport, fn func(*executor.Pool) []outcome.Outcome) ([]outcome.Outcome, error) {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	var opts []executor.Option
	if r.failFast {
		opts = append(opts, executor.WithFailFast())
	}

	var bar *progress.ProgressBar
	switch {
	case r.stream:
		opts = append(opts, executor.WithProgress(func(_, _ int, o outcome.Outcome) {
			out.Print(static.RenderBlock(o))
		}))
	case r.bar && !l.IsQuiet() && progress.Enabled(os.Stderr):
		bar = progress.NewProgressBar(total, r.label, os.Stderr)
		opts = append(opts, executor.WithProgress(bar.Observe))
	}

	pool := executor.NewDefault(opts...)
	if !r.cpuPool {
		var err error
		if pool, err = executor.New(parallelism, opts...); err != nil {
			return nil, err
		}
	}
	l.Debug(r.label, "projects", total, "pool", pool)

	if bar != nil {
		bar.Start()
	}
	outcomes := fn(pool)
	if bar != nil {
		bar.Stop()
	}

	if r.table {
		out.Print(static.RenderOutcomes(outcomes, l.IsVerbose()))
	}

	summary := outcome.Summarize(outcomes)
	l.Println(static.RenderSummary(summary))
	if summary.Failed() > 0 || (!r.exitsOK && summary.NonZero() > 0) {
		return outcomes, errRunFailed
	}
	return outcomes, nil
}
