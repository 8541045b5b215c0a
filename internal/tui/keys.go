package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit        key.Binding
	Save        key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	Home        key.Binding
	End         key.Binding

	Bold          key.Binding
	Italic        key.Binding
	Underline     key.Binding
	StrikeThrough key.Binding
	Code          key.Binding
	Link          key.Binding
	OpenLink      key.Binding
	EditLink      key.Binding

	ToggleTodo  key.Binding
	Outdent     key.Binding
	AddBelow    key.Binding
	Delete      key.Binding
	TypeMenu    key.Binding
	ActionsMenu key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Undo        key.Binding
	Redo        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Save:        key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "save")),
		Up:          key.NewBinding(key.WithKeys("up")),
		Down:        key.NewBinding(key.WithKeys("down")),
		Left:        key.NewBinding(key.WithKeys("left")),
		Right:       key.NewBinding(key.WithKeys("right")),
		SelectLeft:  key.NewBinding(key.WithKeys("shift+left")),
		SelectRight: key.NewBinding(key.WithKeys("shift+right")),
		Home:        key.NewBinding(key.WithKeys("home")),
		End:         key.NewBinding(key.WithKeys("end")),

		Bold:          key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:        key.NewBinding(key.WithKeys("ctrl+i", "alt+i"), key.WithHelp("alt+i", "italic")),
		Underline:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "underline")),
		StrikeThrough: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "strike")),
		Code:          key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "code")),
		Link:          key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "link")),
		OpenLink:      key.NewBinding(key.WithKeys("ctrl+o")),
		EditLink:      key.NewBinding(key.WithKeys("ctrl+l")),

		ToggleTodo:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "check")),
		Outdent:     key.NewBinding(key.WithKeys("shift+tab")),
		AddBelow:    key.NewBinding(key.WithKeys("ctrl+n")),
		Delete:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		TypeMenu:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "type")),
		ActionsMenu: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "actions")),
		MoveUp:      key.NewBinding(key.WithKeys("alt+up")),
		MoveDown:    key.NewBinding(key.WithKeys("alt+down")),
		Undo:        key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
	}
}

// help lists the bindings shown in the status bar.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Bold, k.Italic, k.Code, k.Link, k.TypeMenu, k.ToggleTodo, k.Undo, k.Save, k.Quit}
}
