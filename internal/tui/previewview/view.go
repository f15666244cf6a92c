// Package previewview shows the file around a selected match, with the
// matched region highlighted.
package previewview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/ui"
)

type Model struct {
	viewport viewport.Model
	path     string
	lines    []string
	match    model.Match
	width    int
	height   int
	ready    bool
	loaded   bool
}

func New() Model {
	return Model{}
}

// SetContent loads a file's text into the preview and centers the viewport
// on the match line.
func (m *Model) SetContent(path, text string, match model.Match) {
	m.path = path
	m.lines = strings.Split(text, "\n")
	m.match = match
	m.loaded = true
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.render())
	m.center()
}

func (m *Model) Clear() {
	m.path = ""
	m.lines = nil
	m.loaded = false
	if m.ready {
		m.viewport.SetContent("")
	}
}

func (m Model) Path() string { return m.path }

func (m Model) Loaded() bool { return m.loaded }

func (m *Model) center() {
	offset := m.match.Start.Line - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height
		}
		if m.loaded {
			m.viewport.SetContent(m.render())
			m.center()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) render() string {
	var b strings.Builder
	numWidth := len(fmt.Sprint(len(m.lines)))
	for i, line := range m.lines {
		num := ui.StyleLineNumber.Render(fmt.Sprintf("%*d ", numWidth, i+1))
		if i == m.match.Start.Line {
			line = highlightLine(line, m.match)
		}
		b.WriteString(truncate.StringWithTail(num+line, m.lineWidth(), "..."))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) lineWidth() uint {
	w := m.width - 2
	if w < 10 {
		w = 10
	}
	return uint(w)
}

// highlightLine styles the matched region of the full (untruncated) line.
func highlightLine(line string, match model.Match) string {
	start, end := match.Start.Column, match.End.Column
	if start >= len(line) {
		return line
	}
	if end > len(line) {
		end = len(line)
	}
	return line[:start] + ui.StyleMatch.Render(line[start:end]) + line[end:]
}

func (m Model) View() string {
	if !m.loaded {
		return ui.StyleMuted.Render("  Select a match to preview it")
	}
	title := ui.StyleFileHeader.Render(fmt.Sprintf(" %s:%d:%d", m.path, m.match.Start.Line+1, m.match.Start.Column+1))
	if !m.ready {
		return title
	}
	return title + "\n" + m.viewport.View()
}
