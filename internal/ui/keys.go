package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings. Printable keys belong to the search
// input, so every command sits on a control or arrow key.
type keyMap struct {
	Quit   key.Binding
	Submit key.Binding
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Theme  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "Quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Remove"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Theme"),
		),
	}
}

// footerBindings lists the bindings shown in the footer, in order.
func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Submit, k.Up, k.Down, k.Delete, k.Theme, k.Quit}
}
