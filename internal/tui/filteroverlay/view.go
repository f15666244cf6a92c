// Package filteroverlay is the overlay for narrowing which files the next
// search touches.
package filteroverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwey/grepview/internal/ui"
)

// FilterResult holds the file filters chosen by the user. Include and
// Exclude are glob patterns matched against relative paths and base names.
type FilterResult struct {
	Include []string
	Exclude []string
}

// IsEmpty returns true when no filter criteria are set.
func (f FilterResult) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Summary returns a short human-readable summary for the status bar.
func (f FilterResult) Summary() string {
	var parts []string
	if len(f.Include) > 0 {
		parts = append(parts, "include:"+strings.Join(f.Include, ","))
	}
	if len(f.Exclude) > 0 {
		parts = append(parts, "exclude:"+strings.Join(f.Exclude, ","))
	}
	return strings.Join(parts, " ")
}

// ResultMsg is emitted when the user applies or cancels the overlay.
type ResultMsg struct {
	Applied bool
	Filter  FilterResult
}

type field int

const (
	fieldInclude field = iota
	fieldExclude
	fieldCount
)

type Model struct {
	active  bool
	focused field
	include textinput.Model
	exclude textinput.Model
	width   int
	height  int
}

// New creates the overlay pre-populated with the current filter. The
// overlay starts active.
func New(current FilterResult) Model {
	include := textinput.New()
	include.Placeholder = "e.g. *.go, internal/**"
	include.CharLimit = 256
	include.Width = 40
	include.SetValue(strings.Join(current.Include, ", "))
	include.Focus()

	exclude := textinput.New()
	exclude.Placeholder = "e.g. *_test.go, testdata/**"
	exclude.CharLimit = 256
	exclude.Width = 40
	exclude.SetValue(strings.Join(current.Exclude, ", "))

	return Model{active: true, include: include, exclude: exclude}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.active = false
			return m, func() tea.Msg { return ResultMsg{Applied: false} }
		case "enter":
			m.active = false
			result := FilterResult{
				Include: splitPatterns(m.include.Value()),
				Exclude: splitPatterns(m.exclude.Value()),
			}
			return m, func() tea.Msg { return ResultMsg{Applied: true, Filter: result} }
		case "tab", "down":
			m.setFocus((m.focused + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focused + fieldCount - 1) % fieldCount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case fieldInclude:
		m.include, cmd = m.include.Update(msg)
	case fieldExclude:
		m.exclude, cmd = m.exclude.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f field) {
	m.focused = f
	m.include.Blur()
	m.exclude.Blur()
	switch f {
	case fieldInclude:
		m.include.Focus()
	case fieldExclude:
		m.exclude.Focus()
	}
}

// splitPatterns turns a comma-separated pattern list into its parts.
func splitPatterns(value string) []string {
	var patterns []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	label := func(f field, text string) string {
		style := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		if m.focused == f {
			style = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
		}
		return style.Render(text)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("File filters"))
	b.WriteString("\n\n")
	b.WriteString(label(fieldInclude, "Include globs") + "\n" + m.include.View() + "\n\n")
	b.WriteString(label(fieldExclude, "Exclude globs") + "\n" + m.exclude.View() + "\n\n")
	b.WriteString(ui.StyleMuted.Render("tab: next field  enter: apply  esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
