package static

import (
	"strings"
	"testing"

	"github.com/raphi011/fw/internal/outcome"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if got := RenderTable([]string{"NAME"}, nil); got != "" {
			t.Errorf("RenderTable() = %q, want empty", got)
		}
	})

	t.Run("rows", func(t *testing.T) {
		t.Parallel()
		got := RenderTable([]string{"NAME", "PATH"}, [][]string{
			{"api", "/ws/api"},
			{"frontend", "/ws/frontend"},
		})
		for _, want := range []string{"NAME", "PATH", "api", "/ws/frontend"} {
			if !strings.Contains(got, want) {
				t.Errorf("table missing %q:\n%s", want, got)
			}
		}
		if !strings.HasSuffix(got, "\n") {
			t.Error("table should end with a newline")
		}
	})
}

func TestRenderOutcomes(t *testing.T) {
	t.Parallel()

	outcomes := []outcome.Outcome{
		{Project: "zeta", Status: outcome.StatusUpToDate, Log: "Already up to date."},
		{Project: "alpha", Status: outcome.StatusExited, ExitCode: 1, Log: "boom"},
	}

	t.Run("sorted with failing logs", func(t *testing.T) {
		t.Parallel()
		got := RenderOutcomes(outcomes, false)
		if strings.Index(got, "alpha") > strings.Index(got, "zeta") {
			t.Errorf("outcomes should be sorted by project:\n%s", got)
		}
		if !strings.Contains(got, "boom") {
			t.Error("log of nonzero exit should be shown")
		}
		if strings.Contains(got, "Already up to date.") {
			t.Error("log of successful outcome should be hidden")
		}
	})

	t.Run("verbose shows all logs", func(t *testing.T) {
		t.Parallel()
		got := RenderOutcomes(outcomes, true)
		if !strings.Contains(got, "Already up to date.") {
			t.Errorf("verbose output should include every log:\n%s", got)
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		t.Parallel()
		in := []outcome.Outcome{{Project: "b"}, {Project: "a"}}
		RenderOutcomes(in, false)
		if in[0].Project != "b" {
			t.Error("RenderOutcomes should not reorder its input")
		}
	})
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	s := outcome.Summarize([]outcome.Outcome{
		{Project: "a", Status: outcome.StatusCloned},
		outcome.Failed("b", outcome.NewFailure(outcome.ReasonDivergedHistory, "")),
	})
	got := RenderSummary(s)
	if !strings.Contains(got, "1 cloned") || !strings.Contains(got, "1 diverged history") {
		t.Errorf("RenderSummary() = %q", got)
	}
}

func TestRenderBlock(t *testing.T) {
	t.Parallel()

	got := RenderBlock(outcome.Outcome{Project: "api", Status: outcome.StatusExited, Log: "hello\n"})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one log line, got %q", got)
	}
	if !strings.Contains(lines[0], "api") || !strings.Contains(lines[0], "exit 0") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "hello" {
		t.Errorf("log line = %q, want %q", lines[1], "hello")
	}

	empty := RenderBlock(outcome.Outcome{Project: "web", Status: outcome.StatusExited})
	if strings.Count(empty, "\n") != 1 {
		t.Errorf("outcome without log should render only the header, got %q", empty)
	}
}
