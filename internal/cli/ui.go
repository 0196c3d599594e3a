package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorDim    = lipgloss.Color("240")
)

var (
	// styleTitle for section headings.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// stylePackage for package names.
	stylePackage = lipgloss.NewStyle().Foreground(colorCyan)

	// styleSuccess for completion messages.
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// styleWarning for degraded results.
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// styleDim for secondary text.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)
)
