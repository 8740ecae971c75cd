package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/ethanniser/gtui/graphite"
)

const graphiteBaseURL = "https://app.graphite.dev/github/pr"

// GraphiteURL links a PR number to its Graphite page. An empty slug keeps
// the placeholder repo segment so the link shape stays recognizable.
func GraphiteURL(slug string, number int) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		slug = "repo"
	}
	return fmt.Sprintf("%s/%s/%d", graphiteBaseURL, slug, number)
}

func formatReviewNumber(number int) string {
	if number <= 0 {
		return "-"
	}
	return fmt.Sprintf("#%d", number)
}

// ReviewLink renders the PR number as a terminal hyperlink when a slug is
// known.
func ReviewLink(slug string, number int) string {
	label := formatReviewNumber(number)
	if number <= 0 || strings.TrimSpace(slug) == "" {
		return label
	}
	return termenv.Hyperlink(GraphiteURL(slug, number), label)
}

func formatReviewStatus(b *graphite.Branch) string {
	if b == nil || b.ReviewNumber <= 0 {
		return "-"
	}
	if b.IsDraft && !b.ReviewState.Inactive() {
		return "draft"
	}
	s := strings.ToLower(strings.TrimSpace(string(b.ReviewState)))
	if s == "" || s == "unknown" {
		return "-"
	}
	return s
}

func formatVersionLabel(b *graphite.Branch) string {
	if b == nil || b.SubmittedVersion <= 0 {
		return ""
	}
	state := "up to date"
	if b.SubmittedVersion < b.RemoteVersion {
		state = "need get"
	}
	return fmt.Sprintf("Last submitted version: v%d (remote at v%d, %s)", b.SubmittedVersion, b.RemoteVersion, state)
}

func isInactiveReview(b *graphite.Branch) bool {
	return b != nil && b.ReviewNumber > 0 && b.ReviewState.Inactive()
}

// branchTitle is the first line used for a branch in listings and the
// detail chain.
func branchTitle(b *graphite.Branch, current bool) string {
	marker := "◯"
	if current {
		marker = "◉"
	}
	title := marker + " " + b.Name
	if current {
		title += " (current)"
	}
	if b.NeedsRestack() {
		title += " (needs restack)"
	}
	return title
}
