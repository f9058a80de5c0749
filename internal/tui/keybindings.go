package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Enter  key.Binding
	Toggle key.Binding
	Back   key.Binding

	// Control
	CtrlC key.Binding
	Reset key.Binding
	Info  key.Binding

	// Summary
	Open key.Binding
	Copy key.Binding
	Add  key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "shift+tab"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "x"),
		key.WithHelp("space", "toggle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "exit"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "start over"),
	),
	Info: key.NewBinding(
		key.WithKeys("f1", "ctrl+o"),
		key.WithHelp("f1", "info"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "send via WhatsApp"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy link"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add person"),
	),
}

// Global returns the bindings available on every screen.
func (k KeyMap) Global() []key.Binding {
	return []key.Binding{k.Back, k.Reset, k.Info, k.CtrlC}
}
