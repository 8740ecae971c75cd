package ui

import (
	"strings"

	"github.com/ethanniser/gtui/session"
)

// LogLines renders the command log oldest first.
func LogLines(entries []session.CommandEntry, styles Styles) []string {
	if len(entries) == 0 {
		return []string{styles.Disabled("No commands run yet.")}
	}
	var out []string
	for _, e := range entries {
		out = append(out, styles.Secondary("$ "+e.CommandLine()))
		if e.Pending {
			out = append(out, styles.Secondary("… running"))
			continue
		}
		output := strings.TrimSpace(e.Output)
		if output != "" {
			for _, line := range strings.Split(output, "\n") {
				out = append(out, "  "+line)
			}
		}
		if e.Err != nil {
			out = append(out, styles.Error("✗ "+e.Err.Error()))
		} else if output == "" {
			out = append(out, styles.Added("✓ done"))
		}
	}
	return out
}
