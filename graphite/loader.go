package graphite

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadFunc reports the branch currently checked out in the working copy.
type HeadFunc func() (string, bool)

type LoadOptions struct {
	Resolver CommitResolver
	Head     HeadFunc
	RepoSlug string
}

var now = time.Now

// Load reads the repo config, latest snapshot and review info concurrently
// and builds a fresh Data from them. Any read failure aborts the whole load.
func Load(ctx context.Context, dir string, opts LoadOptions) (*Data, error) {
	var (
		cfg  RepoConfig
		snap Snapshot
		info ReviewInfo
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		cfg, err = ReadRepoConfig(dir)
		return err
	})
	g.Go(func() error {
		var err error
		snap, err = ReadLatestSnapshot(dir)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = ReadReviewInfo(dir)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Build(cfg, snap, info, opts)
}

// Build runs the synchronous half of Load on already-decoded sources.
func Build(cfg RepoConfig, snap Snapshot, info ReviewInfo, opts LoadOptions) (*Data, error) {
	branches, err := BuildBranchMap(snap, info, opts.Resolver)
	if err != nil {
		return nil, err
	}
	tree, err := BuildTree(branches, cfg.Trunk)
	if err != nil {
		return nil, err
	}
	current := snap.CurrentBranchName
	if !branches.Has(current) && opts.Head != nil {
		if head, ok := opts.Head(); ok && branches.Has(head) {
			current = head
		}
	}
	return &Data{
		TrunkName:     cfg.Trunk,
		CurrentBranch: current,
		RepoSlug:      opts.RepoSlug,
		Branches:      branches,
		Tree:          tree,
		LoadedAt:      now(),
	}, nil
}
