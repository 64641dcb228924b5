// Package static provides non-interactive terminal output components.
//
// Tables for project and tag listings and the per-project outcome report
// printed after sync, foreach and autotag runs.
package static

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/fw/internal/outcome"
	"github.com/raphi011/fw/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// No borders are rendered. Empty rows yield an empty string.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// RenderOutcomes lists outcomes sorted by project name with a styled status
// column. With verbose set, the captured log of every outcome is appended
// below the table; otherwise only logs of unsuccessful outcomes are shown.
func RenderOutcomes(outcomes []outcome.Outcome, verbose bool) string {
	sorted := slices.Clone(outcomes)
	slices.SortFunc(sorted, func(a, b outcome.Outcome) int {
		return strings.Compare(a.Project, b.Project)
	})

	rows := make([][]string, 0, len(sorted))
	for _, o := range sorted {
		rows = append(rows, []string{o.Project, styles.Status(o)})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"PROJECT", "STATUS"}, rows))

	for _, o := range sorted {
		if strings.TrimSpace(o.Log) == "" || (o.OK() && !verbose) {
			continue
		}
		b.WriteString("\n")
		b.WriteString(RenderBlock(o))
	}
	return b.String()
}

// RenderBlock renders one outcome as a header line followed by its log.
func RenderBlock(o outcome.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", styles.AccentStyle.Render("── "+o.Project), styles.Status(o))
	if log := strings.TrimRight(o.Log, "\n"); strings.TrimSpace(log) != "" {
		b.WriteString(log)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders a one-line summary, colored by whether anything failed.
func RenderSummary(s outcome.Summary) string {
	style := styles.SuccessStyle
	switch {
	case s.Failed() > 0:
		style = styles.ErrorStyle
	case s.NonZero() > 0 || s.Count(outcome.StatusSkipped) > 0:
		style = styles.WarningStyle
	}
	return style.Render(s.String())
}
