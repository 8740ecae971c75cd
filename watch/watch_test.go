package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethanniser/gtui/graphite"
)

func TestRelevant(t *testing.T) {
	dir := filepath.Join("repo", ".git")
	snapshots := filepath.Join(dir, ".gt", "snapshots")
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "repo config", path: filepath.Join(dir, graphite.RepoConfigFile), want: true},
		{name: "review info", path: filepath.Join(dir, graphite.ReviewInfoFile), want: true},
		{name: "snapshot", path: filepath.Join(snapshots, "1700000000000.snapshot"), want: true},
		{name: "snapshot temp", path: filepath.Join(snapshots, "1700000000000.tmp"), want: false},
		{name: "index", path: filepath.Join(dir, "index"), want: false},
		{name: "index lock", path: filepath.Join(dir, "index.lock"), want: false},
		{name: "ref update", path: filepath.Join(dir, "refs", "heads", "main"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Relevant(dir, tc.path); got != tc.want {
				t.Fatalf("Relevant(%q): expected %v, got %v", tc.path, tc.want, got)
			}
		})
	}
}

func TestWatcherFiresOnSnapshotWrite(t *testing.T) {
	dir := t.TempDir()
	snapshots := filepath.Join(dir, ".gt", "snapshots")
	if err := os.MkdirAll(snapshots, 0o755); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w, err := Start(dir, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	if err := os.WriteFile(filepath.Join(snapshots, "1.snapshot"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 1)
	w, err := Start(dir, 10*time.Millisecond, func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	if err := os.WriteFile(filepath.Join(dir, "index"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
		t.Fatal("unexpected reload for an unrelated file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestStartMissingDir(t *testing.T) {
	if _, err := Start(filepath.Join(t.TempDir(), "missing"), 0, func() {}); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := Start(t.TempDir(), 0, func() {})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
