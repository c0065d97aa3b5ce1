package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Engines
	Toggle   key.Binding
	Stop     key.Binding
	Reset    key.Binding
	Lap      key.Binding
	Task     key.Binding
	Preset   key.Binding
	Custom   key.Binding
	Momentum key.Binding
	AutoFlow key.Binding

	// Data
	Transfer key.Binding
	Wipe     key.Binding

	// Navigation
	Tab1  key.Binding
	Tab2  key.Binding
	Tab3  key.Binding
	Tab4  key.Binding
	Tab5  key.Binding
	Tab   key.Binding
	Help  key.Binding
	Enter key.Binding
	Back  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

func bind(help, desc string, ks ...string) key.Binding {
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Toggle:   bind("space", "start/pause", " "),
	Stop:     bind("x", "stop", "x"),
	Reset:    bind("r", "reset", "r"),
	Lap:      bind("l", "lap", "l"),
	Task:     bind("t", "task", "t"),
	Preset:   bind("p", "presets", "p"),
	Custom:   bind("c", "custom", "c"),
	Momentum: bind("m", "momentum", "m"),
	AutoFlow: bind("a", "auto-flow", "a"),

	Transfer: bind("e", "export/import", "e"),
	Wipe:     bind("X", "factory reset", "X"),

	Tab1:  bind("1", "timer", "1"),
	Tab2:  bind("2", "stopwatch", "2"),
	Tab3:  bind("3", "insights", "3"),
	Tab4:  bind("4", "journal", "4"),
	Tab5:  bind("5", "settings", "5"),
	Tab:   bind("tab", "next view", "tab"),
	Help:  bind("?", "help", "?"),
	Enter: bind("enter", "select", "enter"),
	Back:  bind("esc", "back", "esc"),
	Up:    bind("↑/k", "up", "up", "k"),
	Down:  bind("↓/j", "down", "down", "j"),
	Left:  bind("←/h", "range", "left", "h"),
	Right: bind("→", "range", "right"),
	Quit:  bind("q", "quit", "q", "ctrl+c"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.Reset, k.Task, k.Transfer, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Reset, k.Lap},
		{k.Task, k.Preset, k.Custom, k.Momentum, k.AutoFlow},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5, k.Tab},
		{k.Transfer, k.Wipe, k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
