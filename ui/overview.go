package ui

import (
	"fmt"
	"strings"

	"github.com/ethanniser/gtui/session"
)

var banner = []string{
	" ██████╗ ████████╗██╗   ██╗██╗",
	"██╔════╝ ╚══██╔══╝██║   ██║██║",
	"██║  ███╗   ██║   ██║   ██║██║",
	"██║   ██║   ██║   ██║   ██║██║",
	"╚██████╔╝   ██║   ╚██████╔╝██║",
	" ╚═════╝    ╚═╝    ╚═════╝ ╚═╝",
}

func OverviewLines(v session.View, styles Styles) []string {
	out := make([]string, 0, len(banner)+10)
	for _, l := range banner {
		out = append(out, styles.Current(l))
	}
	out = append(out, "", styles.Secondary("Graphite Terminal User Interface"), "")
	if v.Data == nil {
		if v.Loading {
			return append(out, styles.Secondary("Loading stack..."))
		}
		return append(out, styles.Disabled("No stack loaded."))
	}
	out = append(out,
		fmt.Sprintf("trunk     %s", v.Data.TrunkName),
		fmt.Sprintf("current   %s", v.Data.CurrentBranch),
	)
	if parent := v.Data.Tree.ParentOf(v.Data.CurrentBranch); parent != "" {
		out = append(out, fmt.Sprintf("parent    %s", parent))
	}
	if children := v.Data.Tree.ChildrenOf(v.Data.CurrentBranch); len(children) > 0 {
		out = append(out, fmt.Sprintf("children  %s", strings.Join(children, ", ")))
	}
	out = append(out, fmt.Sprintf("branches  %d", v.Data.Branches.Len()))
	if v.Data.RepoSlug != "" {
		out = append(out, fmt.Sprintf("repo      %s", v.Data.RepoSlug))
	}
	out = append(out, styles.Secondary("loaded    "+v.Data.LoadedAt.Format("15:04:05")))
	return out
}
