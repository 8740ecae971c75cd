package ui

import (
	"github.com/ethanniser/gtui/graphite"
)

const commitHashWidth = 8

func CommitLines(b *graphite.Branch, cursor string, width int, styles Styles) []string {
	if b == nil {
		return []string{styles.Disabled("  No branch selected.")}
	}
	out := make([]string, 0, len(b.Commits))
	for _, c := range b.Commits {
		line := PadOrTrim(c.Hash, commitHashWidth) + " " + PadOrTrim(c.Message, max(1, width-commitHashWidth-3))
		style := styles.Normal
		if c.Placeholder() {
			style = styles.Disabled
		}
		prefix := "  "
		if c.Hash == cursor {
			prefix = "> "
			style = styles.Selected
		}
		out = append(out, prefix+style(line))
	}
	return out
}
