// Package outcome defines the per-project result records produced by sync,
// foreach and autotag runs, and their aggregation into a summary.
package outcome

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Status is the result category of one unit of work.
type Status int

const (
	StatusCloned Status = iota
	StatusUpdated
	StatusUpToDate
	StatusSkipped
	StatusExited
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCloned:
		return "cloned"
	case StatusUpdated:
		return "updated"
	case StatusUpToDate:
		return "up to date"
	case StatusSkipped:
		return "skipped"
	case StatusExited:
		return "exited"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Reason categorizes a failed unit of work.
type Reason int

const (
	ReasonOther Reason = iota
	ReasonNotARepo
	ReasonNetwork
	ReasonDivergedHistory
	ReasonDirtyWorkingTree
)

func (r Reason) String() string {
	switch r {
	case ReasonNotARepo:
		return "not a repository"
	case ReasonNetwork:
		return "network error"
	case ReasonDivergedHistory:
		return "diverged history"
	case ReasonDirtyWorkingTree:
		return "dirty working tree"
	}
	return "other"
}

// Failure is a structured per-project error.
type Failure struct {
	Reason  Reason
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Reason.String()
	}
	if f.Reason == ReasonOther {
		return f.Message
	}
	return f.Reason.String() + ": " + f.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// NewFailure creates a Failure with the given reason and message.
func NewFailure(reason Reason, message string) *Failure {
	return &Failure{Reason: reason, Message: message}
}

// Other creates a Failure with ReasonOther.
func Other(format string, args ...any) *Failure {
	return &Failure{Reason: ReasonOther, Message: fmt.Sprintf(format, args...)}
}

// AsFailure converts any error into a Failure. Errors that already carry a
// Failure in their chain keep its reason.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Reason: ReasonOther, Message: err.Error(), Cause: err}
}

// ReasonOf returns the failure reason carried by err, or ReasonOther.
func ReasonOf(err error) Reason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonOther
}

// Outcome is the result of one unit of work for one project.
type Outcome struct {
	Project  string
	Status   Status
	ExitCode int
	Failure  *Failure
	Log      string
	Duration time.Duration
}

// Failed builds a failed outcome for project.
func Failed(project string, err error) Outcome {
	return Outcome{Project: project, Status: StatusFailed, ExitCode: -1, Failure: AsFailure(err)}
}

// OK reports whether the unit of work succeeded. An Exited outcome only
// succeeds with exit code 0.
func (o Outcome) OK() bool {
	switch o.Status {
	case StatusFailed:
		return false
	case StatusExited:
		return o.ExitCode == 0
	}
	return true
}

// Describe returns a short human-readable status.
func (o Outcome) Describe() string {
	switch o.Status {
	case StatusFailed:
		return "failed: " + o.Failure.Error()
	case StatusExited:
		return fmt.Sprintf("exit %d", o.ExitCode)
	}
	return o.Status.String()
}
