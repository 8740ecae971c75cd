// Package ui turns a session.View into terminal text. Every function here is
// pure; the bubbletea model in cmd/gtui owns all state.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Styles is a table of render functions so tests can swap in PlainStyles.
type Styles struct {
	Banner           func(string) string
	Header           func(string) string
	Normal           func(string) string
	Selected         func(string) string
	Disabled         func(string) string
	DisabledSelected func(string) string
	Secondary        func(string) string
	Current          func(string) string
	Error            func(string) string
	Warn             func(string) string
	Added            func(string) string
	Removed          func(string) string
	Hunk             func(string) string
	Border           lipgloss.Border
	ActiveBorder     lipgloss.Color
	InactiveBorder   lipgloss.Color
}

const accent = lipgloss.Color("#7D56F4")

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(accent).
			Padding(0, 1)
	headerStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	normalStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	selectedStyle         = lipgloss.NewStyle().Foreground(accent).Bold(true)
	disabledStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	disabledSelectedStyle = lipgloss.NewStyle().Foreground(accent)
	secondaryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	currentStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	addedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func DefaultStyles() Styles {
	return Styles{
		Banner:           func(s string) string { return bannerStyle.Render(s) },
		Header:           func(s string) string { return headerStyle.Render(s) },
		Normal:           func(s string) string { return normalStyle.Render(s) },
		Selected:         func(s string) string { return selectedStyle.Render(s) },
		Disabled:         func(s string) string { return disabledStyle.Render(s) },
		DisabledSelected: func(s string) string { return disabledSelectedStyle.Render(s) },
		Secondary:        func(s string) string { return secondaryStyle.Render(s) },
		Current:          func(s string) string { return currentStyle.Render(s) },
		Error:            func(s string) string { return errorStyle.Render(s) },
		Warn:             func(s string) string { return warnStyle.Render(s) },
		Added:            func(s string) string { return addedStyle.Render(s) },
		Removed:          func(s string) string { return removedStyle.Render(s) },
		Hunk:             func(s string) string { return hunkStyle.Render(s) },
		Border:           lipgloss.RoundedBorder(),
		ActiveBorder:     accent,
		InactiveBorder:   lipgloss.Color("241"),
	}
}

// PlainStyles renders text unchanged.
func PlainStyles() Styles {
	same := func(s string) string { return s }
	return Styles{
		Banner:           same,
		Header:           same,
		Normal:           same,
		Selected:         same,
		Disabled:         same,
		DisabledSelected: same,
		Secondary:        same,
		Current:          same,
		Error:            same,
		Warn:             same,
		Added:            same,
		Removed:          same,
		Hunk:             same,
		Border:           lipgloss.NormalBorder(),
	}
}

// PadOrTrim fits s into exactly width terminal cells.
func PadOrTrim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	if runewidth.StringWidth(s) > width {
		if width == 1 {
			return "…"
		}
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Clip cuts a possibly styled line to width cells without breaking escape
// sequences.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
