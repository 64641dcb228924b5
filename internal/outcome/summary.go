package outcome

import (
	"fmt"
	"slices"
	"strings"
)

// Summary aggregates outcomes. Building it is order independent, so worker
// scheduling never changes the result.
type Summary struct {
	Total    int
	ByStatus map[Status]int
	ByReason map[Reason]int
	nonZero  int
}

// Summarize counts outcomes per status and per failure reason.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{
		ByStatus: make(map[Status]int),
		ByReason: make(map[Reason]int),
	}
	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}

// Add counts a single outcome.
func (s *Summary) Add(o Outcome) {
	if s.ByStatus == nil {
		s.ByStatus = make(map[Status]int)
		s.ByReason = make(map[Reason]int)
	}
	s.Total++
	s.ByStatus[o.Status]++
	if o.Status == StatusFailed && o.Failure != nil {
		s.ByReason[o.Failure.Reason]++
	}
	if o.Status == StatusExited && o.ExitCode != 0 {
		s.nonZero++
	}
}

// Count returns the number of outcomes with the given status.
func (s Summary) Count(status Status) int {
	return s.ByStatus[status]
}

// Failed returns the number of Failed outcomes.
func (s Summary) Failed() int {
	return s.ByStatus[StatusFailed]
}

// NonZero returns the number of Exited outcomes with a nonzero exit code.
func (s Summary) NonZero() int {
	return s.nonZero
}

// String renders counts like "3 cloned, 1 up to date, 1 failed (1 diverged history)".
func (s Summary) String() string {
	var parts []string
	for _, st := range []Status{StatusCloned, StatusUpdated, StatusUpToDate, StatusSkipped, StatusExited, StatusFailed} {
		n := s.ByStatus[st]
		if n == 0 {
			continue
		}
		part := fmt.Sprintf("%d %s", n, st)
		if st == StatusExited && s.nonZero > 0 {
			part += fmt.Sprintf(" (%d nonzero)", s.nonZero)
		}
		if st == StatusFailed && len(s.ByReason) > 0 {
			part += " (" + s.reasons() + ")"
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

func (s Summary) reasons() string {
	reasons := make([]Reason, 0, len(s.ByReason))
	for r := range s.ByReason {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)

	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = fmt.Sprintf("%d %s", s.ByReason[r], r)
	}
	return strings.Join(parts, ", ")
}
