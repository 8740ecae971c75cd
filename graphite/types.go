// Package graphite reads the metadata Graphite (gt) keeps next to a git
// repository and turns it into a branch map and a single-rooted stack tree.
package graphite

import "time"

type ReviewState string

const (
	ReviewOpen    ReviewState = "OPEN"
	ReviewClosed  ReviewState = "CLOSED"
	ReviewMerged  ReviewState = "MERGED"
	ReviewUnknown ReviewState = "UNKNOWN"
)

// Inactive reports whether the review no longer tracks the branch.
func (s ReviewState) Inactive() bool {
	return s == ReviewClosed || s == ReviewMerged
}

const (
	placeholderHash = "unknown"
	shortHashLen    = 8
)

type Commit struct {
	Hash    string
	Message string
	Patch   string
}

// Placeholder reports whether the commit stands in for a branch without a
// resolvable commit.
func (c Commit) Placeholder() bool {
	return c.Hash == placeholderHash
}

type Branch struct {
	Name             string
	Parent           string
	Validation       string
	Commits          []Commit
	ReviewNumber     int
	ReviewTitle      string
	ReviewState      ReviewState
	IsDraft          bool
	SubmittedVersion int
	RemoteVersion    int
}

// NeedsRestack reports whether the remote review has moved past the version
// last submitted from this checkout.
func (b *Branch) NeedsRestack() bool {
	if b == nil || b.ReviewState.Inactive() {
		return false
	}
	return b.SubmittedVersion < b.RemoteVersion
}

// HasCommit reports whether hash is one of the branch's commits.
func (b *Branch) HasCommit(hash string) bool {
	if b == nil {
		return false
	}
	for _, c := range b.Commits {
		if c.Hash == hash {
			return true
		}
	}
	return false
}

// BranchMap keeps branches in the order they were discovered in the
// snapshot so sibling order stays stable between runs.
type BranchMap struct {
	names  []string
	byName map[string]*Branch
}

func NewBranchMap() *BranchMap {
	return &BranchMap{byName: make(map[string]*Branch)}
}

// Add inserts a branch, replacing an existing record of the same name
// without changing its position.
func (m *BranchMap) Add(b *Branch) {
	if b == nil {
		return
	}
	if _, ok := m.byName[b.Name]; !ok {
		m.names = append(m.names, b.Name)
	}
	m.byName[b.Name] = b
}

func (m *BranchMap) Get(name string) (*Branch, bool) {
	if m == nil {
		return nil, false
	}
	b, ok := m.byName[name]
	return b, ok
}

func (m *BranchMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

func (m *BranchMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

func (m *BranchMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Children is derived from the other records' Parent field on every call.
func (m *BranchMap) Children(name string) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, n := range m.names {
		if n == name {
			continue
		}
		if m.byName[n].Parent == name {
			out = append(out, n)
		}
	}
	return out
}

// CommitHashes lists the hashes of a branch in display order.
func (m *BranchMap) CommitHashes(name string) []string {
	b, ok := m.Get(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(b.Commits))
	for _, c := range b.Commits {
		out = append(out, c.Hash)
	}
	return out
}

// Data is one complete ingestion result. It is never mutated after Load
// returns; a refresh produces a new value.
type Data struct {
	TrunkName     string
	CurrentBranch string
	RepoSlug      string
	Branches      *BranchMap
	Tree          *Tree
	LoadedAt      time.Time
}
