// Package gitrepo answers the few questions gtui asks of the git repository
// next to the Graphite metadata: commit details, the origin slug and HEAD.
package gitrepo

import (
	"errors"
	"strings"
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ethanniser/gtui/graphite"
)

var ErrNoRemote = errors.New("origin remote missing")

// Repo is safe for concurrent use; go-git's object storage is not, so every
// lookup goes through mu.
type Repo struct {
	mu   sync.Mutex
	repo *git.Repository
}

func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(strings.TrimSpace(dir), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return &Repo{repo: repo}, nil
}

// ResolveCommit implements graphite.CommitResolver. Message is the subject
// line; Patch is the unified diff against the first parent.
func (r *Repo) ResolveCommit(hash string) (graphite.CommitDetail, bool) {
	hash = strings.TrimSpace(hash)
	if r == nil || hash == "" {
		return graphite.CommitDetail{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return graphite.CommitDetail{}, false
	}
	commit, err := r.repo.CommitObject(*id)
	if err != nil {
		return graphite.CommitDetail{}, false
	}
	patch, err := commitPatch(commit)
	if err != nil {
		patch = ""
	}
	return graphite.CommitDetail{Message: subject(commit.Message), Patch: patch}, true
}

func subject(message string) string {
	return strings.SplitN(strings.TrimSpace(message), "\n", 2)[0]
}

func commitPatch(commit *object.Commit) (string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return "", err
	}
	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return "", err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return "", err
		}
	}
	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return "", err
	}
	if len(changes) == 0 {
		return "", nil
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", err
	}
	return patch.String(), nil
}

// Root is the top of the working tree, or "" for a bare repository.
func (r *Repo) Root() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	wt, err := r.repo.Worktree()
	if err != nil {
		return ""
	}
	return wt.Filesystem.Root()
}

// HeadBranch reports the checked out branch. A detached HEAD or an unborn
// branch reports false.
func (r *Repo) HeadBranch() (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	head, err := r.repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return "", false
	}
	return head.Name().Short(), true
}

// RemoteSlug returns "owner/repo" for a GitHub origin remote.
func (r *Repo) RemoteSlug() (string, error) {
	if r == nil {
		return "", ErrNoRemote
	}
	r.mu.Lock()
	remote, err := r.repo.Remote(git.DefaultRemoteName)
	r.mu.Unlock()
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", ErrNoRemote
		}
		return "", err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoRemote
	}
	return SlugFromURL(urls[0])
}
