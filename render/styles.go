package render

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	minCellW = 7 // narrowest column: box of a one-letter gate plus wire on each side
	boxPad   = 4 // "┤ " + " ├" around a gate label
)

// Lipgloss styles shared by the diagram and the reporters.
var (
	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	barrierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	cbitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	cbitWireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	cbitConnectorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e0af68")).
				Bold(true)

	bitOneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	bitZeroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))

	probBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))
)

// painter applies a style only when styling is on, so plain output stays
// free of escape sequences.
type painter bool

func (p painter) paint(st lipgloss.Style, s string) string {
	if !p {
		return s
	}
	return st.Render(s)
}
