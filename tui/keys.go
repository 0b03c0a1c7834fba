package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Place key.Binding
	Save  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Place: key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p/enter", "place flagged")),
	Save:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save pgm")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Place, k.Save, k.Quit}}
}
