// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors and text styles used by the comparison view and wizard

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light

	// Colors - Extended palette
	Accent        = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface       = lipgloss.Color("#374151") // Elevated surface background
	DeltaPositive = lipgloss.Color("#10B981") // Green - improvements
	DeltaNegative = lipgloss.Color("#F59E0B") // Amber - costs/increases
	DeltaNeutral  = lipgloss.Color("#6B7280") // Gray - no change
	Info          = lipgloss.Color("#3B82F6") // Blue - informational

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	DeltaPositiveStyle = lipgloss.NewStyle().
				Foreground(DeltaPositive).
				Bold(true)

	DeltaNegativeStyle = lipgloss.NewStyle().
				Foreground(DeltaNegative).
				Bold(true)

	DeltaNeutralStyle = lipgloss.NewStyle().
				Foreground(DeltaNeutral)
)

// DeltaStyle picks the style for a signed change where a decrease is an improvement
func DeltaStyle(delta float64) lipgloss.Style {
	switch {
	case delta < 0:
		return DeltaPositiveStyle
	case delta > 0:
		return DeltaNegativeStyle
	default:
		return DeltaNeutralStyle
	}
}

// ProgressBar returns a styled utilization bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := Secondary
	if percent >= 80 {
		color = Warning
	}
	if percent >= 95 {
		color = Danger
	}

	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
