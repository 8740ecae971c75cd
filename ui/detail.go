package ui

import (
	"fmt"

	"github.com/ethanniser/gtui/graphite"
	"github.com/ethanniser/gtui/nav"
	"github.com/ethanniser/gtui/session"
)

type DetailOptions struct {
	Highlight bool
	Styles    Styles
}

// DetailLines is the content of the viewer pane: the patch of the commit
// under the cursor, else the focused branch's chain down to trunk.
func DetailLines(v session.View, opts DetailOptions) []string {
	styles := opts.Styles
	if v.Data == nil {
		return []string{styles.Disabled("No stack loaded.")}
	}
	b, ok := v.Data.Branches.Get(v.Focused)
	if !ok {
		return []string{styles.Secondary("Navigate the stack (pane 1) to view branch details in gt log -s format")}
	}
	if hash, ok := v.Nav.CursorCommit(); ok && b.HasCommit(hash) {
		for _, c := range b.Commits {
			if c.Hash == hash {
				return commitDetailLines(b, c, opts)
			}
		}
	}
	return chainLines(v.Data, b.Name, styles)
}

func commitDetailLines(b *graphite.Branch, c graphite.Commit, opts DetailOptions) []string {
	styles := opts.Styles
	out := []string{
		styles.Header("commit " + c.Hash),
		styles.Secondary("branch " + b.Name),
		"",
		"    " + c.Message,
		"",
	}
	patch := PatchLines(c.Patch, opts.Highlight, styles)
	if len(patch) == 0 {
		return append(out, styles.Disabled("No patch available for this commit."))
	}
	return append(out, patch...)
}

// chainLines renders the "gt log -s" view from name down to trunk.
func chainLines(data *graphite.Data, name string, styles Styles) []string {
	chain, err := graphite.Ancestry(data.Branches, name, data.TrunkName)
	if err != nil {
		return []string{styles.Error(err.Error())}
	}
	var out []string
	for _, b := range chain {
		current := b.Name == data.CurrentBranch
		title := branchTitle(b, current)
		if current {
			out = append(out, styles.Current(title))
		} else {
			out = append(out, styles.Header(title))
		}
		out = append(out, styles.Secondary("│"))
		if b.ReviewNumber > 0 {
			summary := b.ReviewTitle
			if summary == "" && len(b.Commits) > 0 {
				summary = b.Commits[0].Message
			}
			if summary == "" {
				summary = "No description"
			}
			out = append(out,
				styles.Secondary(fmt.Sprintf("│ PR %s (%s) %s", ReviewLink(data.RepoSlug, b.ReviewNumber), b.ReviewState, summary)),
				styles.Secondary("│ "+GraphiteURL(data.RepoSlug, b.ReviewNumber)),
			)
			if v := formatVersionLabel(b); v != "" {
				out = append(out, styles.Secondary("│ "+v))
			}
			out = append(out, styles.Secondary("│"))
		}
		for _, c := range b.Commits {
			out = append(out, styles.Secondary(fmt.Sprintf("│ %s - %s", c.Hash, c.Message)))
		}
		out = append(out, styles.Secondary("│"))
	}
	return out
}

// LineCount reports the rendered height of a scrolling pane. It is the
// session.LineCounter of the viewer.
func LineCount(v session.View, p nav.Pane) int {
	switch p {
	case nav.PaneDetail:
		return len(DetailLines(v, DetailOptions{Styles: PlainStyles()}))
	case nav.PaneLog:
		return len(LogLines(v.Log, PlainStyles()))
	default:
		return 0
	}
}
