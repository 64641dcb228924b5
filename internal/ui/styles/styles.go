// Package styles provides shared lipgloss styles for fw's terminal output.
//
// Colors are plain ANSI 256 values; the output writers downsample them to
// whatever the terminal supports, so NO_COLOR and pipes get plain text.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/fw/internal/outcome"
)

// Palette
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the highlight color for names (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for positive outcomes (green)
	Success color.Color = lipgloss.Color("82")

	// Warning is used for skipped work and nonzero exits (orange)
	Warning color.Color = lipgloss.Color("214")

	// Error is used for failures (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for unchanged or secondary text (gray)
	Muted color.Color = lipgloss.Color("240")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)

// StatusStyle returns the style used to render an outcome's status.
func StatusStyle(o outcome.Outcome) lipgloss.Style {
	switch o.Status {
	case outcome.StatusCloned, outcome.StatusUpdated:
		return SuccessStyle
	case outcome.StatusUpToDate:
		return MutedStyle
	case outcome.StatusSkipped:
		return WarningStyle
	case outcome.StatusExited:
		if o.ExitCode == 0 {
			return SuccessStyle
		}
		return WarningStyle
	case outcome.StatusFailed:
		return ErrorStyle
	}
	return lipgloss.NewStyle()
}

// Status renders o.Describe() in its status color.
func Status(o outcome.Outcome) string {
	return StatusStyle(o).Render(o.Describe())
}
