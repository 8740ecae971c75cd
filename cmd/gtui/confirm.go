package main

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const confirmFieldKey = "confirm_result"

func gtuiHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

func newConfirmForm(title string, description string, result *bool) *huh.Form {
	confirm := huh.NewConfirm().
		Key(confirmFieldKey).
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(result)

	return huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(gtuiHuhTheme()).
		WithShowHelp(false)
}

func newCheckoutConfirm(branch string, result *bool) *huh.Form {
	return newConfirmForm("Checkout "+branch+"?", "Runs gt checkout "+branch+" in this repository.", result)
}
