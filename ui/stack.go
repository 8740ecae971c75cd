package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ethanniser/gtui/graphite"
)

const (
	reviewColumnWidth = 7
	statusColumnWidth = 7
)

type StackRow struct {
	Prefix      string
	Name        string
	ReviewLabel string
	StatusLabel string
	Current     bool
	Restack     bool
	Inactive    bool
}

// BuildStackRows lays the tree out in flattened order with box-drawing
// connectors. It returns nil when no data is loaded.
func BuildStackRows(data *graphite.Data) []StackRow {
	if data == nil || data.Tree == nil {
		return nil
	}
	lines, err := data.Tree.Lines()
	if err != nil {
		return nil
	}
	rows := make([]StackRow, 0, len(lines))
	for _, line := range lines {
		b, ok := data.Branches.Get(line.Name)
		if !ok {
			continue
		}
		rows = append(rows, StackRow{
			Prefix:      treePrefix(line.Last),
			Name:        line.Name,
			ReviewLabel: formatReviewNumber(b.ReviewNumber),
			StatusLabel: formatReviewStatus(b),
			Current:     line.Name == data.CurrentBranch,
			Restack:     b.NeedsRestack(),
			Inactive:    isInactiveReview(b),
		})
	}
	return rows
}

func treePrefix(last []bool) string {
	if len(last) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range last[:len(last)-1] {
		if l {
			b.WriteString("   ")
		} else {
			b.WriteString("│  ")
		}
	}
	if last[len(last)-1] {
		b.WriteString("└─ ")
	} else {
		b.WriteString("├─ ")
	}
	return b.String()
}

// StackLines renders every row; the caller windows them by scroll offset.
func StackLines(rows []StackRow, cursor string, width int, styles Styles) []string {
	nameWidth := max(8, width-reviewColumnWidth-statusColumnWidth-4)
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		marker := "◯"
		if row.Current {
			marker = "◉"
		}
		name := row.Prefix + marker + " " + row.Name
		if row.Restack {
			name += " ↻"
		}
		line := PadOrTrim(name, nameWidth) + " " +
			PadOrTrim(row.ReviewLabel, reviewColumnWidth) + " " +
			PadOrTrim(row.StatusLabel, statusColumnWidth)

		style := styles.Normal
		switch {
		case row.Name == cursor && row.Inactive:
			style = styles.DisabledSelected
		case row.Name == cursor:
			style = styles.Selected
		case row.Inactive:
			style = styles.Disabled
		case row.Current:
			style = styles.Current
		}
		prefix := "  "
		if row.Name == cursor {
			prefix = "> "
		}
		out = append(out, prefix+style(line))
	}
	return out
}

// FitWidth is the narrowest width at which StackLines truncates no name.
func FitWidth(rows []StackRow) int {
	name := 0
	for _, row := range rows {
		// marker, spaces and the restack glyph
		name = max(name, runewidth.StringWidth(row.Prefix)+runewidth.StringWidth(row.Name)+4)
	}
	return name + reviewColumnWidth + statusColumnWidth + 4
}
