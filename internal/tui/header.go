package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwey/grepview/internal/ui"
)

func RenderHeader(root string, watching bool, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(fmt.Sprintf(" grepview | %s", root))

	right := ""
	if watching {
		right = lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render("watching ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + right)
}
