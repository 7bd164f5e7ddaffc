package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Submit     key.Binding
	SwitchPane key.Binding
	Search     key.Binding
	Blur       key.Binding
	Remove     key.Binding
	Refresh    key.Binding
	OpenURL    key.Binding
	ToggleMode key.Binding
}

var Keys = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Blur:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "results")),
	Remove:     key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove")),
	Refresh:    key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
	OpenURL:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open url")),
	ToggleMode: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filter mode")),
}

// HelpLine is the short key summary shown under the results.
func (k KeyMap) HelpLine() []key.Binding {
	return []key.Binding{k.Submit, k.SwitchPane, k.Remove, k.Refresh, k.OpenURL, k.ToggleMode, k.Quit}
}
