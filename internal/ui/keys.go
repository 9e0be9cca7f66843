package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	ToggleMode key.Binding
	SystemMode key.Binding
	Language   key.Binding
	Escape     key.Binding

	// View switching
	ViewPrices    key.Binding
	ViewAssistant key.Binding
	Tab           key.Binding

	// Prices
	Search  key.Binding
	Refresh key.Binding

	// Scrolling
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Toggle light/dark"),
		),
		SystemMode: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Follow system theme"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Cycle language"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / back"),
		),

		ViewPrices: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Prices"),
		),
		ViewAssistant: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Assistant"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch view"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search commodity"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ViewAssistant, k.ToggleMode, k.Language, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.ViewPrices, k.ViewAssistant, k.Tab, k.Up, k.Down, k.PageUp, k.PageDown},
		// Search
		{k.Search, k.Confirm, k.Escape, k.Refresh},
		// General
		{k.ToggleMode, k.SystemMode, k.Language, k.Help, k.Quit},
	}
}
