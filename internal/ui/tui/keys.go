package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the three learner actions.
type keyMap struct {
	Hint key.Binding
	Next key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hint: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hints")),
		Next: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next question")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hint, k.Next, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
