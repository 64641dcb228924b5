// Package cmd provides helpers for executing external commands with proper error handling.
package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/outcome"
)

// Exit codes POSIX shells use when the command itself could not be run.
const (
	ExitNotExecutable = 126
	ExitNotFound      = 127
)

// RunContext executes a command and returns stderr in the error message if it fails.
// A cancelled context is returned as is.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command and returns stdout, with stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Newf("%s", msg)
		}
		return nil, err
	}
	return out, nil
}

// Result is the captured result of a command run to completion.
type Result struct {
	ExitCode int
	Output   string // combined stdout and stderr
	Err      error  // set only when the command could not run at all
}

// OK reports whether the command ran and exited with status 0.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Capture runs a command to completion and captures its combined output and
// exit status. A nonzero exit is not an error: callers inspect ExitCode.
// Env entries are appended to the current environment.
func Capture(ctx context.Context, dir string, env []string, name string, args ...string) Result {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}
	var buf bytes.Buffer
	c.Stdout = &buf
	c.Stderr = &buf

	err := c.Run()
	res := Result{Output: buf.String()}
	if err == nil {
		return res
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		res.Err = ctxErr
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.ExitCode = -1
	switch {
	case errors.Is(err, exec.ErrNotFound):
		res.Err = outcome.Other("command not found")
	case errors.Is(err, os.ErrPermission):
		res.Err = outcome.Other("command not executable")
	case dir != "" && errors.Is(err, os.ErrNotExist):
		res.Err = outcome.Other("missing directory %s", dir)
	default:
		res.Err = outcome.AsFailure(err)
	}
	return res
}

// Shell runs script through shell (e.g. ["sh", "-c"]) and captures the result.
// Shell exit codes for missing or non-executable commands are reported as Err.
func Shell(ctx context.Context, shell []string, dir, script string, env []string) Result {
	if len(shell) == 0 {
		shell = []string{"sh", "-c"}
	}
	args := append(append([]string{}, shell[1:]...), script)
	res := Capture(ctx, dir, env, shell[0], args...)

	switch res.ExitCode {
	case ExitNotFound:
		res.Err = outcome.Other("command not found")
	case ExitNotExecutable:
		res.Err = outcome.Other("command not executable")
	}
	return res
}
