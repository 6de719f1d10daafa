package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorSurface lipgloss.Color = "#313244"
	colorBase    lipgloss.Color = "#1e1e2e"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorRed     lipgloss.Color = "#f38ba8"
	colorYellow  lipgloss.Color = "#f9e2af"
)

// markColors maps mark classes 1..6 to their display colors.
var markColors = [7]lipgloss.Color{
	"",        // 0 — unmarked
	"#f38ba8", // red
	"#fab387", // peach
	"#f9e2af", // yellow
	"#a6e3a1", // green
	"#89b4fa", // blue
	"#cba6f7", // mauve
}

type styles struct {
	title      lipgloss.Style
	status     lipgloss.Style
	warning    lipgloss.Style
	footer     lipgloss.Style
	rowLabel   lipgloss.Style
	step       lipgloss.Style
	stepDone   lipgloss.Style
	cursor     lipgloss.Style
	listItem   lipgloss.Style
	listCursor lipgloss.Style
	modal      lipgloss.Style
}

func newStyles(accent string) styles {
	ac := lipgloss.Color(accent)
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(ac),
		status:     lipgloss.NewStyle().Foreground(colorSubtext),
		warning:    lipgloss.NewStyle().Foreground(colorYellow),
		footer:     lipgloss.NewStyle().Foreground(colorText).Background(colorSurface).Padding(0, 1),
		rowLabel:   lipgloss.NewStyle().Foreground(colorSubtext).Width(6),
		step:       lipgloss.NewStyle().Foreground(colorText),
		stepDone:   lipgloss.NewStyle().Foreground(colorSubtext).Faint(true),
		cursor:     lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(ac),
		listItem:   lipgloss.NewStyle().Foreground(colorText),
		listCursor: lipgloss.NewStyle().Bold(true).Foreground(ac),
		modal:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func markStyle(mark int) lipgloss.Style {
	if mark < 1 || mark > 6 {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(markColors[mark]).Bold(true)
}
