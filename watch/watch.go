// Package watch re-runs a callback when Graphite rewrites its metadata.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ethanniser/gtui/debounce"
	"github.com/ethanniser/gtui/graphite"
)

const DefaultDelay = 350 * time.Millisecond

type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce *debounce.Debouncer
	closeMu  sync.Mutex
	closed   bool
	done     chan struct{}
}

// Start watches dir and its snapshot directory. onChange runs on its own
// goroutine once events settle for delay.
func Start(dir string, delay time.Duration, onChange func()) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, path := range watchPaths(dir) {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := fw.Add(path); err != nil {
			err = errors.Join(err, fw.Close())
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	w := &Watcher{
		dir:      dir,
		watcher:  fw,
		debounce: debounce.New(delay, onChange),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return nil
	}
	w.closed = true
	w.closeMu.Unlock()

	w.debounce.Stop()
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !Relevant(w.dir, ev.Name) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			w.debounce.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func watchPaths(dir string) []string {
	paths := []string{dir}
	snapshots := filepath.Join(dir, filepath.FromSlash(graphite.SnapshotsDir))
	if info, err := os.Stat(snapshots); err == nil && info.IsDir() {
		paths = append(paths, snapshots)
	}
	return paths
}

// Relevant reports whether a change to name can alter what Load returns.
func Relevant(dir string, name string) bool {
	base := filepath.Base(name)
	if strings.EqualFold(filepath.Ext(base), ".lock") {
		return false
	}
	parent := filepath.Clean(filepath.Dir(name))
	switch {
	case parent == filepath.Clean(dir):
		return base == graphite.RepoConfigFile || base == graphite.ReviewInfoFile
	case parent == filepath.Join(dir, filepath.FromSlash(graphite.SnapshotsDir)):
		return strings.HasSuffix(base, ".snapshot")
	default:
		return false
	}
}
