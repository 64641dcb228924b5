package outcome

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestFailureError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    *Failure
		want string
	}{
		{"reason with message", NewFailure(ReasonDivergedHistory, "main and origin/main"), "diverged history: main and origin/main"},
		{"reason only", NewFailure(ReasonNotARepo, ""), "not a repository"},
		{"other", Other("command not found"), "command not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.f.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsFailure(t *testing.T) {
	t.Parallel()

	if AsFailure(nil) != nil {
		t.Error("AsFailure(nil) should be nil")
	}

	wrapped := errors.Wrap(NewFailure(ReasonNetwork, "could not resolve host"), "fetch origin")
	if got := AsFailure(wrapped); got.Reason != ReasonNetwork {
		t.Errorf("AsFailure(wrapped).Reason = %v, want %v", got.Reason, ReasonNetwork)
	}
	if got := ReasonOf(wrapped); got != ReasonNetwork {
		t.Errorf("ReasonOf(wrapped) = %v, want %v", got, ReasonNetwork)
	}

	plain := AsFailure(fmt.Errorf("boom"))
	if plain.Reason != ReasonOther || plain.Message != "boom" {
		t.Errorf("AsFailure(plain) = %+v", plain)
	}
}

func TestOutcomeOK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		o    Outcome
		want bool
	}{
		{Outcome{Status: StatusCloned}, true},
		{Outcome{Status: StatusUpToDate}, true},
		{Outcome{Status: StatusSkipped}, true},
		{Outcome{Status: StatusExited, ExitCode: 0}, true},
		{Outcome{Status: StatusExited, ExitCode: 2}, false},
		{Failed("api", Other("boom")), false},
	}

	for _, tt := range tests {
		if got := tt.o.OK(); got != tt.want {
			t.Errorf("%v.OK() = %v, want %v", tt.o.Describe(), got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	outcomes := []Outcome{
		{Project: "a", Status: StatusCloned},
		{Project: "b", Status: StatusUpToDate},
		{Project: "c", Status: StatusUpToDate},
		Failed("d", NewFailure(ReasonDivergedHistory, "")),
		{Project: "e", Status: StatusExited, ExitCode: 1},
	}

	s := Summarize(outcomes)
	if s.Total != 5 {
		t.Errorf("Total = %d, want 5", s.Total)
	}
	if s.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", s.Failed())
	}
	if s.NonZero() != 1 {
		t.Errorf("NonZero() = %d, want 1", s.NonZero())
	}
	if s.Count(StatusUpToDate) != 2 {
		t.Errorf("Count(UpToDate) = %d, want 2", s.Count(StatusUpToDate))
	}

	want := "1 cloned, 2 up to date, 1 exited (1 nonzero), 1 failed (1 diverged history)"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	t.Parallel()

	outcomes := []Outcome{
		Failed("a", NewFailure(ReasonNetwork, "")),
		{Project: "b", Status: StatusUpdated},
		Failed("c", NewFailure(ReasonDirtyWorkingTree, "")),
		{Project: "d", Status: StatusSkipped},
	}
	reversed := make([]Outcome, len(outcomes))
	for i, o := range outcomes {
		reversed[len(outcomes)-1-i] = o
	}

	if a, b := Summarize(outcomes).String(), Summarize(reversed).String(); a != b {
		t.Errorf("summary depends on order: %q vs %q", a, b)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	if got := Summarize(nil).String(); got != "nothing to do" {
		t.Errorf("String() = %q, want %q", got, "nothing to do")
	}
}
