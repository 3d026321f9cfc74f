package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevFilter key.Binding
	NextFilter key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	PrevFilter: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev filter"),
	),
	NextFilter: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next filter"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevFilter, k.NextFilter, k.Select, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevFilter, k.NextFilter},
		{k.Up, k.Down, k.Select, k.Clear},
		{k.Help, k.Quit},
	}
}
