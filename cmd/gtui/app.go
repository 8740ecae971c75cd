package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethanniser/gtui/gitrepo"
	"github.com/ethanniser/gtui/graphite"
	"github.com/ethanniser/gtui/watch"
)

type appOptions struct {
	dir     string
	verbose bool
	noWatch bool
}

// environment is everything resolved once at startup: where the Graphite
// metadata lives and, when available, the git repository beside it.
type environment struct {
	root        string
	metadataDir string
	repo        *gitrepo.Repo
	slug        string
}

func resolveDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

func openEnvironment(dir string, cfg Config) environment {
	env := environment{root: dir}
	repo, err := gitrepo.Open(dir)
	if err != nil {
		slog.Warn("git repository unavailable, commit details disabled", "dir", dir, "err", err)
	} else {
		env.repo = repo
		if root := repo.Root(); root != "" {
			env.root = root
		}
		slug, err := repo.RemoteSlug()
		switch {
		case err == nil:
			env.slug = slug
		case errors.Is(err, gitrepo.ErrNoRemote):
			slog.Debug("no origin remote")
		default:
			slog.Warn("origin remote not usable", "err", err)
		}
	}
	env.metadataDir = cfg.MetadataDir
	if !filepath.IsAbs(env.metadataDir) {
		env.metadataDir = filepath.Join(env.root, env.metadataDir)
	}
	return env
}

func (e environment) loadOptions() graphite.LoadOptions {
	opts := graphite.LoadOptions{RepoSlug: e.slug}
	if e.repo != nil {
		opts.Resolver = e.repo
		opts.Head = e.repo.HeadBranch
	}
	return opts
}

func (e environment) load(ctx context.Context) (*graphite.Data, error) {
	return graphite.Load(ctx, e.metadataDir, e.loadOptions())
}

func runDefault(opts appOptions) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	closer, err := setupLogging(opts.verbose, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	dir, err := resolveDir(opts.dir)
	if err != nil {
		return err
	}
	env := openEnvironment(dir, cfg)
	slog.Info("starting viewer", "root", env.root, "metadata", env.metadataDir, "slug", env.slug)

	m := newModel(env.load, NewRunner(env.root, cfg.CheckoutTimeout), cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.autoReload() && !opts.noWatch {
		w, err := watch.Start(env.metadataDir, watch.DefaultDelay, func() {
			p.Send(reloadMsg{})
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "gtui warning: auto-reload disabled:", err)
			slog.Warn("watcher failed to start", "err", err)
		} else {
			defer w.Close()
		}
	}

	_, err = p.Run()
	return err
}
