// Package resultsview renders search results as collapsible per-file
// groups with selectable, clickable jump-to-match rows.
package resultsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/ui"
)

type rowKind int

const (
	rowFile rowKind = iota
	rowMatch
)

// row is one visible line: either a file header or a single match.
type row struct {
	kind     rowKind
	fileIdx  int
	matchIdx int
}

type Model struct {
	viewport  viewport.Model
	results   *model.ResultSet
	rows      []row
	cursor    int
	collapsed map[int]bool
	hidden    int // matches past the display cap
	maxRender int
	width     int
	height    int
	ready     bool
}

func New(maxRender int) Model {
	return Model{
		maxRender: maxRender,
		collapsed: make(map[int]bool),
	}
}

// SetResults replaces the displayed result set and resets cursor and
// collapse state.
func (m *Model) SetResults(rs *model.ResultSet) {
	m.results = rs
	m.cursor = 0
	m.collapsed = make(map[int]bool)
	m.rebuildRows()
	m.refresh()
}

func (m Model) HasResults() bool {
	return m.results != nil && !m.results.Empty()
}

// Selected returns the path and match under the cursor, or ok=false when
// the cursor is on a file header or there are no results.
func (m Model) Selected() (string, model.Match, bool) {
	if m.results == nil || m.cursor >= len(m.rows) {
		return "", model.Match{}, false
	}
	r := m.rows[m.cursor]
	if r.kind != rowMatch {
		return "", model.Match{}, false
	}
	file := m.results.Files[r.fileIdx]
	return file.Path, file.Matches[r.matchIdx], true
}

// rebuildRows flattens the result set into visible rows, honoring collapse
// state and the display cap. Files and matches past the cap stay in the
// result set (and in the counts) but get no rows.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	m.hidden = 0
	if m.results == nil {
		return
	}

	rendered := 0
	for fi, file := range m.results.Files {
		if rendered >= m.maxRender {
			m.hidden += len(file.Matches)
			continue
		}
		m.rows = append(m.rows, row{kind: rowFile, fileIdx: fi})
		if m.collapsed[fi] {
			rendered += len(file.Matches)
			continue
		}
		for mi := range file.Matches {
			if rendered >= m.maxRender {
				m.hidden++
				continue
			}
			m.rows = append(m.rows, row{kind: rowMatch, fileIdx: fi, matchIdx: mi})
			rendered++
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) View() string {
	if !m.ready {
		return m.render()
	}
	return m.viewport.View()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.ensureVisible()
				m.refresh()
			}
		case key.Matches(msg, ui.Keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
				m.refresh()
			}
		case key.Matches(msg, ui.Keys.PageDown):
			m.cursor += m.pageSize()
			if m.cursor > len(m.rows)-1 {
				m.cursor = len(m.rows) - 1
			}
			m.ensureVisible()
			m.refresh()
		case key.Matches(msg, ui.Keys.PageUp):
			m.cursor -= m.pageSize()
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.ensureVisible()
			m.refresh()
		case key.Matches(msg, ui.Keys.Collapse):
			m.setCollapsed(true)
		case key.Matches(msg, ui.Keys.Expand):
			m.setCollapsed(false)
		case key.Matches(msg, ui.Keys.Enter):
			if r, ok := m.cursorRow(); ok && r.kind == rowFile {
				m.toggleCollapsed(r.fileIdx)
				return m, nil
			}
			if path, match, ok := m.Selected(); ok {
				return m, selectMatch(path, match)
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			break
		}
		for i := range m.rows {
			if !zone.Get(m.rowID(i)).InBounds(msg) {
				continue
			}
			m.cursor = i
			r := m.rows[i]
			if r.kind == rowFile {
				m.toggleCollapsed(r.fileIdx)
				return m, nil
			}
			m.refresh()
			file := m.results.Files[r.fileIdx]
			return m, selectMatch(file.Path, file.Matches[r.matchIdx])
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height
		}
		m.refresh()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func selectMatch(path string, match model.Match) tea.Cmd {
	return func() tea.Msg {
		return ui.MatchSelectedMsg{Path: path, Match: match}
	}
}

func (m Model) cursorRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) setCollapsed(collapsed bool) {
	r, ok := m.cursorRow()
	if !ok {
		return
	}
	if m.collapsed[r.fileIdx] == collapsed {
		return
	}
	m.collapsed[r.fileIdx] = collapsed
	m.rebuildRows()
	// Keep the cursor on the affected file's header.
	for i, rw := range m.rows {
		if rw.kind == rowFile && rw.fileIdx == r.fileIdx {
			m.cursor = i
			break
		}
	}
	m.ensureVisible()
	m.refresh()
}

func (m *Model) toggleCollapsed(fileIdx int) {
	m.collapsed[fileIdx] = !m.collapsed[fileIdx]
	m.rebuildRows()
	m.ensureVisible()
	m.refresh()
}

func (m *Model) pageSize() int {
	if !m.ready {
		return 1
	}
	return m.viewport.Height
}

// ensureVisible scrolls the viewport so the cursor row stays on screen.
// Every row renders as exactly one line, so row index == line index.
func (m *Model) ensureVisible() {
	if !m.ready {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) rowID(i int) string {
	return fmt.Sprintf("result-%d", i)
}

func (m Model) render() string {
	if m.results == nil {
		return ui.StyleMuted.Render("  Press / to search")
	}
	if m.results.Empty() {
		return ui.StyleMuted.Render(fmt.Sprintf("  No matches for %s", m.results.Query))
	}

	var b strings.Builder
	for i, r := range m.rows {
		var line string
		switch r.kind {
		case rowFile:
			line = m.renderFileRow(r)
		case rowMatch:
			line = m.renderMatchRow(r)
		}
		if i == m.cursor {
			line = ui.StyleCursorRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(zone.Mark(m.rowID(i), line))
		b.WriteByte('\n')
	}
	if m.hidden > 0 {
		b.WriteString(ui.StyleMuted.Render(fmt.Sprintf("  ... %d more matches not shown", m.hidden)))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderFileRow(r row) string {
	file := m.results.Files[r.fileIdx]
	marker := "v"
	if m.collapsed[r.fileIdx] {
		marker = ">"
	}
	label := fmt.Sprintf("%s %s (%d)", marker, file.Path, len(file.Matches))
	return truncate.StringWithTail(ui.StyleFileHeader.Render(label), m.lineWidth(), "...")
}

func (m Model) renderMatchRow(r row) string {
	match := m.results.Files[r.fileIdx].Matches[r.matchIdx]
	num := ui.StyleLineNumber.Render(fmt.Sprintf("%5d:%-4d", match.Start.Line+1, match.Start.Column+1))
	line := num + " " + highlightExcerpt(match)
	return truncate.StringWithTail(line, m.lineWidth(), "...")
}

func (m Model) lineWidth() uint {
	w := m.width - 2
	if w < 10 {
		w = 10
	}
	return uint(w)
}

// highlightExcerpt styles the matched region inside the excerpt. The match
// columns are computed against the untruncated line, so a match can start
// past the end of the stored excerpt; then the excerpt renders unstyled.
func highlightExcerpt(match model.Match) string {
	excerpt := match.Excerpt
	start, end := match.Start.Column, match.End.Column
	if start >= len(excerpt) {
		return excerpt
	}
	if end > len(excerpt) {
		end = len(excerpt)
	}
	return excerpt[:start] + ui.StyleMatch.Render(excerpt[start:end]) + excerpt[end:]
}
