package git

import (
	"testing"

	"github.com/raphi011/fw/internal/outcome"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		reason  outcome.Reason
		message string
	}{
		{
			name:    "not a repo",
			output:  "fatal: not a git repository (or any of the parent directories): .git\n",
			reason:  outcome.ReasonNotARepo,
			message: "not a git repository (or any of the parent directories): .git",
		},
		{
			name:    "dns",
			output:  "fatal: unable to access 'https://nope.invalid/x.git/': Could not resolve host: nope.invalid\n",
			reason:  outcome.ReasonNetwork,
			message: "unable to access 'https://nope.invalid/x.git/': Could not resolve host: nope.invalid",
		},
		{
			name:   "ssh",
			output: "ssh: connect to host example.com port 22: Connection refused\nfatal: Could not read from remote repository.\n",
			reason: outcome.ReasonNetwork,
		},
		{
			name:   "dirty",
			output: "error: Your local changes to the following files would be overwritten by merge:\n\tREADME.md\nAborting\n",
			reason: outcome.ReasonDirtyWorkingTree,
		},
		{
			name:   "index not up to date",
			output: "error: Entry 'README.md' not uptodate. Cannot merge.\n",
			reason: outcome.ReasonDirtyWorkingTree,
		},
		{
			name:   "diverged",
			output: "fatal: Not possible to fast-forward, aborting.\n",
			reason: outcome.ReasonDivergedHistory,
		},
		{
			name:    "other",
			output:  "warning: something\nfatal: bad revision 'x'\n",
			reason:  outcome.ReasonOther,
			message: "bad revision 'x'",
		},
		{
			name:    "empty output",
			output:  "",
			reason:  outcome.ReasonOther,
			message: "git failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := classify(tt.output, nil)
			if f.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", f.Reason, tt.reason)
			}
			if tt.message != "" && f.Message != tt.message {
				t.Errorf("Message = %q, want %q", f.Message, tt.message)
			}
		})
	}
}

func TestClassify_KeepsFailure(t *testing.T) {
	t.Parallel()

	cause := outcome.Other("command not found")
	if got := classify("", cause); got != cause {
		t.Errorf("classify() = %v, want original failure", got)
	}
}
