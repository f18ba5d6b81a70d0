package screens

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Back     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Retry    key.Binding
	Dismiss  key.Binding
	Export   key.Binding
	Filter   key.Binding
	Quit     key.Binding
	TabIndex key.Binding
}

var Keys = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
	Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
	Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export EPUB")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	TabIndex: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "category")),
}

func (k KeyMap) CategoryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Filter, k.Retry, k.Export, k.NextTab, k.TabIndex, k.Quit}
}

func (k KeyMap) ItemHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Retry, k.Dismiss, k.Back, k.Quit}
}
