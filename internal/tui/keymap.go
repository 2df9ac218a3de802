package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the ticket form.
type KeyMap struct {
	// Focus traversal
	Next key.Binding
	Prev key.Binding

	// Issue selection (when the issue field has focus)
	CycleLeft  key.Binding
	CycleRight key.Binding

	// Screen list
	AddScreen    key.Binding
	RemoveScreen key.Binding

	// Actions
	Submit key.Binding
	Reset  key.Binding
	Open   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "enter"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		CycleLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous issue"),
		),
		CycleRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next issue"),
		),
		AddScreen: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add screen"),
		),
		RemoveScreen: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove screen"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit ticket"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset form"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open on board"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+_"),
			key.WithHelp("ctrl+/", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.CycleLeft, k.CycleRight},
		{k.AddScreen, k.RemoveScreen, k.Submit, k.Reset},
		{k.Help, k.Quit},
	}
}
