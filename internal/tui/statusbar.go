package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/ui"
)

// RenderStatusBar renders the bottom bar: the transient status message and
// the current result counters on the left, key hints on the right.
func RenderStatusBar(status string, rs *model.ResultSet, hints string, width int) string {
	var parts []string
	if status != "" {
		parts = append(parts, ui.StyleMuted.Render(status))
	}
	if counts := renderCounts(rs); counts != "" {
		parts = append(parts, counts)
	}
	left := "  " + strings.Join(parts, ui.StyleMuted.Render(" | "))

	help := ui.StyleMuted.Render(hints + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorHighlight).
		Width(width).
		Render(left + padding + help)
}

// renderCounts formats the result-set counters. The unreadable count gets
// the warning color so swallowed load failures don't go unnoticed.
func renderCounts(rs *model.ResultSet) string {
	if rs == nil {
		return ""
	}
	if rs.Empty() {
		return ui.StyleMuted.Render(fmt.Sprintf("No matches (%d files scanned)", rs.FilesScanned))
	}
	counts := ui.StyleInfo.Render(fmt.Sprintf("%d matches in %d files", rs.TotalCount, len(rs.Files))) +
		ui.StyleMuted.Render(fmt.Sprintf(" (%d scanned)", rs.FilesScanned))
	if rs.FilesFailed > 0 {
		counts += lipgloss.NewStyle().Foreground(ui.ColorWarning).
			Render(fmt.Sprintf(", %d unreadable", rs.FilesFailed))
	}
	return counts
}
