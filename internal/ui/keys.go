package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Search   key.Binding
	Filter   key.Binding
	Enter    key.Binding
	Open     key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Collapse key.Binding
	Expand   key.Binding
	Watch    key.Binding
}

var Keys = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
	Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in editor")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h", "collapse file")),
	Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l", "expand file")),
	Watch:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle watch")),
}
