package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pan        key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Focus      key.Binding
	Select     key.Binding
	Toggle     key.Binding
	Menu       key.Binding
	NewNode    key.Binding
	Edit       key.Binding
	Delete     key.Binding
	FollowLink key.Binding
	Jump       key.Binding
	Export     key.Binding
	Copy       key.Binding
	Reset      key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pan: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d", "W", "A", "S", "D"),
			key.WithHelp("←↑→↓/wasd", "pan"),
		),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fold")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		NewNode:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		FollowLink: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "follow link")),
		Jump:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
		Export:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy map")),
		Reset:      key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload file")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pan, k.ZoomIn, k.ZoomOut, k.Focus, k.NewNode, k.Edit, k.Menu, k.Jump, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pan, k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Focus, k.Select, k.Toggle, k.Jump},
		{k.Menu, k.NewNode, k.Edit, k.Delete, k.FollowLink},
		{k.Export, k.Copy, k.Reload, k.Help, k.Quit},
	}
}
