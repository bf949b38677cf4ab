package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Previous key.Binding
	Next     key.Binding

	// Form
	FocusNext key.Binding
	FocusPrev key.Binding
	Toggle    key.Binding
	SaveTask  key.Binding
	SaveList  key.Binding
	Add       key.Binding
	Confirm   key.Binding
	Cancel    key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Previous: key.NewBinding(
			key.WithKeys("left", "ctrl+p"),
			key.WithHelp("←/C-p", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "ctrl+n"),
			key.WithHelp("→/C-n", "next"),
		),

		FocusNext: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle complete"),
		),
		SaveTask: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save task"),
		),
		SaveList: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("C-w", "save list"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "new task"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Previous, k.Next},
		{k.FocusNext, k.FocusPrev, k.Toggle},
		{k.SaveTask, k.SaveList, k.Add},
		{k.Confirm, k.Cancel},
		{k.ThemeCycle, k.Help, k.Quit},
	}
}
