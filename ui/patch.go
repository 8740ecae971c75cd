package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const patchStyleName = "github-dark"

// PatchLines splits a unified diff into display lines. With highlight set,
// code on added, removed and context lines is colored by the lexer matching
// the file being diffed.
func PatchLines(patch string, highlight bool, styles Styles) []string {
	patch = strings.TrimRight(patch, "\n")
	if patch == "" {
		return nil
	}
	raw := strings.Split(patch, "\n")
	out := make([]string, 0, len(raw))
	var lexer chroma.Lexer
	style := chromastyles.Get(patchStyleName)
	for _, line := range raw {
		line = strings.ReplaceAll(line, "\t", "    ")
		if path, ok := diffPathFromLine(line); ok {
			lexer = nil
			if highlight && path != "" {
				lexer = lexerForPath(path)
			}
			out = append(out, styles.Header(line))
			continue
		}
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			out = append(out, styles.Header(line))
		case strings.HasPrefix(line, "@@"):
			out = append(out, styles.Hunk(line))
		case strings.HasPrefix(line, "+"):
			out = append(out, styles.Added("+")+highlightCode(lexer, style, line[1:], styles.Added))
		case strings.HasPrefix(line, "-"):
			out = append(out, styles.Removed("-")+highlightCode(lexer, style, line[1:], styles.Removed))
		case strings.HasPrefix(line, " "):
			out = append(out, " "+highlightCode(lexer, style, line[1:], styles.Normal))
		default:
			out = append(out, styles.Secondary(line))
		}
	}
	return out
}

// diffPathFromLine reports the destination path of a "diff --git" header.
func diffPathFromLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "diff --git ") {
		return "", false
	}
	idx := strings.LastIndex(line, " b/")
	if idx < 0 {
		return "", true
	}
	return strings.TrimSpace(line[idx+3:]), true
}

func lexerForPath(path string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

func highlightCode(lexer chroma.Lexer, style *chroma.Style, code string, fallback func(string) string) string {
	if lexer == nil || style == nil || code == "" {
		return fallback(code)
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fallback(code)
	}
	var b strings.Builder
	for _, token := range iterator.Tokens() {
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}
		entry := style.Get(token.Type)
		if !entry.Colour.IsSet() {
			b.WriteString(value)
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Colour.String())).Render(value))
	}
	return b.String()
}
