package graphite

import (
	"fmt"
	"strings"
)

type CommitDetail struct {
	Message string
	Patch   string
}

// CommitResolver looks up a full commit hash in the repository. It returns
// false when the commit is not available locally.
type CommitResolver interface {
	ResolveCommit(hash string) (CommitDetail, bool)
}

// BuildBranchMap combines a snapshot and the cached review info into one
// record per branch. resolver may be nil.
func BuildBranchMap(snap Snapshot, info ReviewInfo, resolver CommitResolver) (*BranchMap, error) {
	reviews := make(map[string]Review, len(info.Reviews))
	for _, r := range info.Reviews {
		reviews[strings.TrimSpace(r.HeadRefName)] = r
	}

	known := make(map[string]bool, len(snap.Branches))
	for _, entry := range snap.Branches {
		if known[entry.Name] {
			return nil, &SourceReadError{
				Source: SourceSnapshot,
				Err:    fmt.Errorf("branch %q listed more than once", entry.Name),
			}
		}
		known[entry.Name] = true
	}

	out := NewBranchMap()
	for _, entry := range snap.Branches {
		data := entry.Data
		parent := strings.TrimSpace(data.ParentBranchName)
		b := &Branch{
			Name:        entry.Name,
			Parent:      parent,
			Validation:  data.ValidationResult,
			ReviewState: ReviewUnknown,
		}

		for _, hash := range candidateHashes(data, parent, known) {
			b.Commits = append(b.Commits, newCommit(hash, entry.Name, resolver))
		}
		if len(b.Commits) == 0 {
			b.Commits = []Commit{placeholderCommit(entry.Name)}
		}

		if r, ok := reviews[entry.Name]; ok {
			b.ReviewNumber = r.Number
			b.ReviewTitle = strings.TrimSpace(r.Title)
			b.ReviewState = r.State
			b.IsDraft = r.IsDraft
			b.RemoteVersion = len(r.Versions)
			b.SubmittedVersion = submittedVersion(r.Versions, data.LastSubmittedVersion)
		}
		out.Add(b)
	}
	return out, nil
}

// candidateHashes applies the branch-reference heuristic: a revision that
// names a known branch or the branch's own parent is not a commit.
func candidateHashes(data BranchData, parent string, known map[string]bool) []string {
	var hashes []string
	if v := data.LastSubmittedVersion; v != nil {
		hashes = []string{strings.TrimSpace(v.HeadSha)}
	} else {
		rev := strings.TrimSpace(data.BranchRevision)
		if !isBranchReference(rev, parent, known) {
			hashes = []string{rev}
		}
	}
	out := hashes[:0]
	for _, h := range hashes {
		if h == "" || isBranchReference(h, parent, known) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func isBranchReference(rev string, parent string, known map[string]bool) bool {
	if known[rev] {
		return true
	}
	return parent != "" && rev == parent
}

func newCommit(hash string, branch string, resolver CommitResolver) Commit {
	c := Commit{
		Hash:    shortHash(hash),
		Message: "Commit on " + branch,
	}
	if resolver == nil {
		return c
	}
	if detail, ok := resolver.ResolveCommit(hash); ok {
		if msg := strings.TrimSpace(detail.Message); msg != "" {
			c.Message = msg
		}
		c.Patch = detail.Patch
	}
	return c
}

func placeholderCommit(branch string) Commit {
	return Commit{Hash: placeholderHash, Message: "Branch " + branch}
}

func shortHash(hash string) string {
	if len(hash) >= shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

func submittedVersion(versions []ReviewVersion, last *SubmittedVersion) int {
	if last != nil {
		head := strings.TrimSpace(last.HeadSha)
		for i := len(versions) - 1; i >= 0; i-- {
			if head != "" && strings.TrimSpace(versions[i].HeadSha) == head {
				return i + 1
			}
		}
	}
	return len(versions)
}
