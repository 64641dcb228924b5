package git

import (
	"strings"

	"github.com/raphi011/fw/internal/outcome"
)

var (
	notARepoPatterns = []string{
		"not a git repository",
	}
	networkPatterns = []string{
		"could not resolve host",
		"could not read from remote repository",
		"unable to access",
		"connection refused",
		"connection timed out",
		"connection reset",
		"operation timed out",
		"network is unreachable",
		"the remote end hung up",
		"early eof",
		"ssh: connect to host",
	}
	dirtyPatterns = []string{
		"would be overwritten by",
		"your local changes",
		"please commit your changes or stash them",
		"not uptodate. cannot merge",
		"index contains uncommitted changes",
	}
	divergedPatterns = []string{
		"not possible to fast-forward",
		"diverging branches",
	}
)

// classify maps git output to a failure reason. cause is kept when the
// command could not run at all.
func classify(output string, cause error) *outcome.Failure {
	if f, ok := cause.(*outcome.Failure); ok {
		return f
	}

	lower := strings.ToLower(output)
	msg := summaryLine(output)

	var reason outcome.Reason
	switch {
	case containsAny(lower, notARepoPatterns):
		reason = outcome.ReasonNotARepo
	case containsAny(lower, networkPatterns):
		reason = outcome.ReasonNetwork
	case containsAny(lower, dirtyPatterns):
		reason = outcome.ReasonDirtyWorkingTree
	case containsAny(lower, divergedPatterns):
		reason = outcome.ReasonDivergedHistory
	default:
		reason = outcome.ReasonOther
		if msg == "" && cause != nil {
			msg = cause.Error()
		}
		if msg == "" {
			msg = "git failed"
		}
	}

	return &outcome.Failure{Reason: reason, Message: msg, Cause: cause}
}

// summaryLine returns the most relevant line of git output: the first
// fatal or error line, otherwise the last non-empty line.
func summaryLine(output string) string {
	var last string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, prefix := range []string{"fatal: ", "error: "} {
			if rest, ok := strings.CutPrefix(line, prefix); ok {
				return rest
			}
		}
		last = line
	}
	return last
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
