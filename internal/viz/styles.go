package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff4444"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)
)

// Header renders a title over a rule of the same width.
func Header(title string) string {
	return Title.Render(title) + "\n" + Subtle.Render(strings.Repeat("─", lipgloss.Width(title)))
}

// Field renders "label: value".
func Field(label, value string) string {
	return Label.Render(label+":") + " " + Value.Render(value)
}

// Failure renders err for the terminal.
func Failure(err error) string {
	return Warn.Render("error:") + " " + err.Error()
}
