package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Overview key.Binding
	Stack    key.Binding
	Commits  key.Binding
	Detail   key.Binding
	Log      key.Binding
	NextPane key.Binding
	Checkout key.Binding
	Refresh  key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Overview: key.NewBinding(key.WithKeys("0", "esc"), key.WithHelp("0", "overview")),
		Stack:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "stack")),
		Commits:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "commits")),
		Detail:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "viewer")),
		Log:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "log")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Checkout: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "checkout")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy branch")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stack, k.Up, k.Down, k.Checkout, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Overview, k.Stack, k.Commits, k.Detail, k.Log, k.NextPane},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Checkout, k.Copy, k.Refresh, k.Help, k.Quit},
	}
}
