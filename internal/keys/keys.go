// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// BrowseKeyMap defines the keybindings for the kind browser.
type BrowseKeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Panes
	Inspect    key.Binding
	Back       key.Binding
	SwitchPane key.Binding

	// General
	ToggleKeys   key.Binding
	ToggleStatus key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultBrowseKeyMap returns the default keybindings.
func DefaultBrowseKeyMap() BrowseKeyMap {
	return BrowseKeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first kind"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last kind"),
		),

		// Panes
		Inspect: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "inspect kind"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		// General
		ToggleKeys: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle key column"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k BrowseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k BrowseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},                // Navigation
		{k.Inspect, k.Back, k.SwitchPane},              // Panes
		{k.ToggleKeys, k.ToggleStatus, k.Help, k.Quit}, // General
	}
}
