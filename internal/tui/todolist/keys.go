package todolist

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Add         key.Binding
	Complete    key.Binding
	Delete      key.Binding
	ToggleTheme key.Binding
	Refresh     key.Binding
	DismissErr  key.Binding
	Help        key.Binding
	Quit        key.Binding

	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:         key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Complete:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "done")),
		Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ToggleTheme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		DismissErr:  key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "dismiss error")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Delete, k.ToggleTheme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Add, k.Complete, k.Delete},
		{k.ToggleTheme, k.DismissErr, k.Help, k.Quit},
	}
}

// editingKeys is the help shown while the input is focused.
type editingKeys struct{ k keyMap }

func (e editingKeys) ShortHelp() []key.Binding { return []key.Binding{e.k.Submit, e.k.Cancel} }

func (e editingKeys) FullHelp() [][]key.Binding { return [][]key.Binding{e.ShortHelp()} }
