package gitrepo

import (
	"errors"
	"path"
	"strings"
)

var githubPrefixes = []string{
	"git@github.com:",
	"ssh://git@github.com/",
	"https://github.com/",
	"http://github.com/",
}

// SlugFromURL extracts "owner/repo" from a GitHub remote URL.
func SlugFromURL(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", ErrNoRemote
	}
	for _, prefix := range githubPrefixes {
		if strings.HasPrefix(remote, prefix) {
			owner, repo, err := splitOwnerRepo(strings.TrimPrefix(remote, prefix))
			if err != nil {
				return "", err
			}
			return owner + "/" + repo, nil
		}
	}
	return "", errors.New("non-github origin")
}

func splitOwnerRepo(p string) (string, string, error) {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	p = strings.TrimSuffix(p, ".git")
	parts := strings.Split(p, "/")
	if len(parts) < 2 {
		return "", "", errors.New("invalid github repo path")
	}
	owner := parts[0]
	repo := parts[1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid github repo path")
	}
	return owner, path.Base(repo), nil
}
