package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanniser/gtui/nav"
	"github.com/ethanniser/gtui/session"
)

const (
	headerLines = 1
	footerLines = 2
	// border top and bottom plus the title row
	boxChrome = 3
	// border and horizontal padding
	boxSideChrome = 4
)

// Layout splits the terminal into two columns: stack over commits on the
// left, viewer over command log on the right.
type Layout struct {
	Width      int
	Height     int
	LeftWidth  int
	RightWidth int
	StackBox   int
	CommitsBox int
	DetailBox  int
	LogBox     int
}

func ComputeLayout(width int, height int) Layout {
	body := max(0, height-headerLines-footerLines)
	left := width / 2
	stack := body * 3 / 5
	detail := body * 2 / 3
	return Layout{
		Width:      width,
		Height:     height,
		LeftWidth:  left,
		RightWidth: width - left,
		StackBox:   stack,
		CommitsBox: body - stack,
		DetailBox:  detail,
		LogBox:     body - detail,
	}
}

// Heights is the number of content lines each pane can show.
func (l Layout) Heights() map[nav.Pane]int {
	inner := func(box int) int { return max(0, box-boxChrome) }
	return map[nav.Pane]int{
		nav.PaneOverview: inner(l.DetailBox),
		nav.PaneStack:    inner(l.StackBox),
		nav.PaneCommits:  inner(l.CommitsBox),
		nav.PaneDetail:   inner(l.DetailBox),
		nav.PaneLog:      inner(l.LogBox),
	}
}

type ScreenOptions struct {
	Styles    Styles
	Highlight bool
	Spinner   string
	Status    string
	Help      string
}

func paneTitle(p nav.Pane) string {
	switch p {
	case nav.PaneStack:
		return "[1] Stack"
	case nav.PaneCommits:
		return "[2] Commits"
	case nav.PaneDetail:
		return "[3] Viewer"
	case nav.PaneLog:
		return "[4] Command Log"
	default:
		return "[0] Overview"
	}
}

func RenderScreen(v session.View, l Layout, opts ScreenOptions) string {
	styles := opts.Styles
	heights := l.Heights()
	active := v.Nav.Active()

	cursorBranch, _ := v.Nav.CursorBranch()
	stackLines := StackLines(BuildStackRows(v.Data), cursorBranch, l.LeftWidth-boxSideChrome, styles)
	if v.Data == nil {
		stackLines = []string{styles.Disabled("  No branches.")}
	}

	var commitLines []string
	if v.Data != nil {
		b, _ := v.Data.Branches.Get(v.Focused)
		cursorCommit, _ := v.Nav.CursorCommit()
		commitLines = CommitLines(b, cursorCommit, l.LeftWidth-boxSideChrome, styles)
	}

	topRight := nav.PaneDetail
	topRightLines := DetailLines(v, DetailOptions{Highlight: opts.Highlight, Styles: styles})
	if active == nav.PaneOverview {
		topRight = nav.PaneOverview
		topRightLines = OverviewLines(v, styles)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderBox(nav.PaneStack, stackLines, v.Nav.Offset(nav.PaneStack), heights[nav.PaneStack], l.LeftWidth, active, styles),
		renderBox(nav.PaneCommits, commitLines, v.Nav.Offset(nav.PaneCommits), heights[nav.PaneCommits], l.LeftWidth, active, styles),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderBox(topRight, topRightLines, v.Nav.Offset(topRight), heights[topRight], l.RightWidth, active, styles),
		renderBox(nav.PaneLog, LogLines(v.Log, styles), v.Nav.Offset(nav.PaneLog), heights[nav.PaneLog], l.RightWidth, active, styles),
	)

	var b strings.Builder
	b.WriteString(renderHeader(v, l.Width, opts))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(renderFooter(v, l.Width, opts))
	return b.String()
}

func renderHeader(v session.View, width int, opts ScreenOptions) string {
	styles := opts.Styles
	parts := []string{styles.Banner("gtui")}
	if v.Data != nil {
		if v.Data.RepoSlug != "" {
			parts = append(parts, styles.Secondary(v.Data.RepoSlug))
		}
		parts = append(parts, styles.Secondary("trunk "+v.Data.TrunkName))
	}
	if v.Loading && opts.Spinner != "" {
		parts = append(parts, styles.Secondary(opts.Spinner+" Loading..."))
	}
	return Clip(strings.Join(parts, "  "), width)
}

func renderFooter(v session.View, width int, opts ScreenOptions) string {
	styles := opts.Styles
	status := ""
	switch {
	case v.Err != nil:
		status = styles.Error(fmt.Sprintf("Error: %v (press r to retry)", v.Err))
	case strings.TrimSpace(opts.Status) != "":
		status = styles.Warn(opts.Status)
	}
	return Clip(status, width) + "\n" + Clip(styles.Secondary(opts.Help), width)
}

// renderBox draws a titled, bordered window onto lines starting at offset.
func renderBox(p nav.Pane, lines []string, offset int, height int, width int, active nav.Pane, styles Styles) string {
	if width < boxSideChrome+1 {
		return ""
	}
	inner := width - boxSideChrome
	clipped := make([]string, len(lines))
	for i, line := range lines {
		clipped[i] = Clip(line, inner)
	}

	vp := viewport.New(inner, height)
	vp.SetContent(strings.Join(clipped, "\n"))
	vp.SetYOffset(offset)

	title := paneTitle(p)
	border := styles.InactiveBorder
	if p == active {
		title += " ← selected"
		title = styles.Selected(title)
		border = styles.ActiveBorder
	} else {
		title = styles.Header(title)
	}
	body := title
	if height > 0 {
		body += "\n" + vp.View()
	}
	return lipgloss.NewStyle().
		Border(styles.Border).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
}
