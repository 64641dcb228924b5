package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestReportError(t *testing.T) {
	t.Parallel()

	t.Run("message and hints", func(t *testing.T) {
		t.Parallel()

		err := errors.WithHint(errors.WithHint(errors.New("boom"), "try this"), "or that")
		var buf bytes.Buffer
		if code := reportError(&buf, err); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		got := buf.String()
		for _, want := range []string{"fw: boom\n", "hint: try this\n", "hint: or that\n", "Run 'fw -h' for help"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("run failures are already reported", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if code := reportError(&buf, errors.Wrap(errRunFailed, "sync")); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}
