// Package executor runs one unit of work per project with bounded parallelism.
//
// Every unit produces exactly one [outcome.Outcome]. A failing or panicking
// unit never affects the others, and all outcomes are collected before Run
// returns unless fail-fast is enabled.
package executor

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/fw/internal/outcome"
)

// Parallelism bounds accepted by New.
const (
	MinParallelism = 1
	MaxParallelism = 128
)

// ErrInvalidParallelism is returned by New for out-of-range values.
var ErrInvalidParallelism = errors.New("invalid parallelism")

// Work is one unit of work for a single project.
type Work[T any] func(ctx context.Context, item T) outcome.Outcome

// ProgressFunc is called after each unit completes, serialized.
type ProgressFunc func(done, total int, o outcome.Outcome)

// Pool runs work with at most Parallelism units in flight.
type Pool struct {
	parallelism int
	failFast    bool
	progress    ProgressFunc
}

// Option configures a Pool.
type Option func(*Pool)

// WithFailFast stops starting new units after the first failure. Units that
// never started are reported as skipped.
func WithFailFast() Option {
	return func(p *Pool) { p.failFast = true }
}

// WithProgress registers a callback invoked after every completed unit.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pool) { p.progress = fn }
}

// New creates a pool. parallelism must be within [MinParallelism, MaxParallelism].
func New(parallelism int, opts ...Option) (*Pool, error) {
	if parallelism < MinParallelism || parallelism > MaxParallelism {
		return nil, errors.WithHintf(
			errors.Mark(errors.Newf("parallelism %d out of range", parallelism), ErrInvalidParallelism),
			"use a value between %d and %d", MinParallelism, MaxParallelism)
	}
	return newPool(parallelism, opts), nil
}

// NewDefault creates a pool sized to the number of CPUs.
func NewDefault(opts ...Option) *Pool {
	return newPool(runtime.NumCPU(), opts)
}

func newPool(parallelism int, opts []Option) *Pool {
	p := &Pool{parallelism: parallelism}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parallelism returns the maximum number of concurrent units.
func (p *Pool) Parallelism() int {
	return p.parallelism
}

// Run executes work for every item and returns the outcomes in completion
// order. name identifies the item in outcomes produced by the pool itself
// (panics and skipped units). Items are submitted in the given order.
func Run[T any](ctx context.Context, p *Pool, items []T, name func(T) string, work Work[T]) []outcome.Outcome {
	var (
		mu       sync.Mutex
		outcomes = make([]outcome.Outcome, 0, len(items))
		started  = make([]bool, len(items))
		failed   bool
	)

	record := func(o outcome.Outcome) {
		mu.Lock()
		defer mu.Unlock()
		outcomes = append(outcomes, o)
		if o.Status == outcome.StatusFailed {
			failed = true
		}
		if p.progress != nil {
			p.progress(len(outcomes), len(items), o)
		}
	}

	stopped := func() bool {
		if ctx.Err() != nil {
			return true
		}
		if !p.failFast {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		return failed
	}

	g := new(errgroup.Group)
	g.SetLimit(p.parallelism)

	for i, item := range items {
		// blocks while parallelism units are in flight
		g.Go(func() error {
			if stopped() {
				return nil
			}
			mu.Lock()
			started[i] = true
			mu.Unlock()

			record(runOne(ctx, item, name(item), work))
			return nil
		})
	}
	_ = g.Wait()

	for i, item := range items {
		if started[i] {
			continue
		}
		reason := "cancelled"
		if ctx.Err() == nil {
			reason = "not started after an earlier failure"
		}
		record(outcome.Outcome{Project: name(item), Status: outcome.StatusSkipped, Log: reason})
	}

	return outcomes
}

// runOne runs a single unit and converts a panic into a failed outcome.
func runOne[T any](ctx context.Context, item T, name string, work Work[T]) (o outcome.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o = outcome.Failed(name, outcome.Other("panic: %v", r))
		}
		if o.Project == "" {
			o.Project = name
		}
		if o.Duration == 0 {
			o.Duration = time.Since(start)
		}
	}()
	return work(ctx, item)
}

// String describes the pool for logging.
func (p *Pool) String() string {
	return fmt.Sprintf("pool(parallelism=%d, failFast=%t)", p.parallelism, p.failFast)
}
