// Package searchbar is the text-entry dialog for a search query.
package searchbar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwey/grepview/internal/ui"
)

type Model struct {
	input   textinput.Model
	active  bool
	errText string
	width   int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search project (/regex/flags for regex)"
	ti.CharLimit = 256
	ti.Prompt = " / "
	return Model{input: ti}
}

func (m *Model) Activate() {
	m.active = true
	m.errText = ""
	m.input.Focus()
}

func (m *Model) Deactivate() {
	m.active = false
	m.input.Blur()
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Query() string { return m.input.Value() }

// SetError shows an inline message under the input, used for invalid
// patterns so the whole search doesn't silently fail.
func (m *Model) SetError(text string) {
	m.errText = text
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			// Parent dispatches the search.
			return m, nil
		case "esc":
			m.Deactivate()
			return m, nil
		}
		m.errText = ""
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 8
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}
	out := m.input.View()
	if m.errText != "" {
		out += "\n   " + ui.StyleFailure.Render(m.errText)
	}
	return out
}
