package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MinLeaguesWidth is the minimum character width for the league pane.
const MinLeaguesWidth = 16

// MaxLeaguesWidth keeps the league pane from eating a wide terminal.
const MaxLeaguesWidth = 32

var (
	highlightText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	selectedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}).
			Bold(true)

	winnerText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})

	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	boldText = lipgloss.NewStyle().Bold(true)
)

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// PaneWidths splits the total width into league and schedule panes.
// The league pane is sized to its longest entry within fixed bounds and
// the schedule pane takes the rest.
func PaneWidths(totalWidth, longestLeague int) (left, right int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	left = longestLeague + 4
	if left < MinLeaguesWidth {
		left = MinLeaguesWidth
	}
	if left > MaxLeaguesWidth {
		left = MaxLeaguesWidth
	}
	if left > totalWidth {
		left = totalWidth
	}
	right = totalWidth - left
	return left, right
}

// ruleLine returns a horizontal rule of the given width.
func ruleLine(width int) string {
	if width < 0 {
		width = 0
	}
	return strings.Repeat("─", width)
}

// padRight pads or truncates s to exactly width cells, content left-aligned.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// padLeft pads or truncates s to exactly width cells, content right-aligned.
func padLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return strings.Repeat(" ", width-len(r)) + s
}

// centerLine centers s in width cells.
func centerLine(s string, width int) string {
	r := []rune(s)
	if width <= len(r) {
		return padRight(s, width)
	}
	lead := (width - len(r)) / 2
	return strings.Repeat(" ", lead) + padRight(s, width-lead)
}
