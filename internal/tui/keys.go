package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Unit     key.Binding
	Dark     key.Binding
	Relative key.Binding

	// single
	Mode   key.Binding
	Copy   key.Binding
	Now    key.Binding
	Preset key.Binding

	// batch
	RunBatch   key.Binding
	ClearBatch key.Binding

	// history and scrolling
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev tab"),
	),
	Unit: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "unit"),
	),
	Dark: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "theme"),
	),
	Relative: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "relative"),
	),
	Mode: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "to/from date"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy ISO"),
	),
	Now: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "now"),
	),
	Preset: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "preset"),
	),
	RunBatch: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "convert"),
	),
	ClearBatch: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "clear"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("up/C-k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("dn/C-j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear all"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
}
