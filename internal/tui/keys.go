package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Advance   key.Binding
	Retreat   key.Binding
	Batch     key.Binding
	BatchBack key.Binding
	RowNext   key.Binding
	RowPrev   key.Binding
	Activate  key.Binding
	MarkRow   key.Binding
	CycleMark key.Binding
	Open      key.Binding
	Export    key.Binding
	Combine   key.Binding
	Reset     key.Binding
	Search    key.Binding
	Up        key.Binding
	Down      key.Binding
	Back      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Advance:   key.NewBinding(key.WithKeys(" ", "l", "right"), key.WithHelp("space", "next bead")),
		Retreat:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "previous bead")),
		Batch:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "advance batch")),
		BatchBack: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "retreat batch")),
		RowNext:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next row")),
		RowPrev:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous row")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark / select")),
		MarkRow:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "mark row")),
		CycleMark: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle mark mode")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Combine:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle row combine")),
		Reset:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset progress")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	}
}
