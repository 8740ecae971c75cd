package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethanniser/gtui/graphite"
)

const testSnapshot = `{
	"branchesHash": "h",
	"currentBranchName": "A",
	"branches": [
		["main", {"children": ["A"], "branchRevision": "1111111111", "validationResult": "TRUNK"}],
		["A", {"children": ["B"], "branchRevision": "2222222222", "validationResult": "VALID", "parentBranchName": "main"}],
		["B", {"children": [], "branchRevision": "3333333333", "validationResult": "VALID", "parentBranchName": "A"}]
	]
}`

// writeMetadata lays out a Graphite metadata directory with a main, A, B
// stack where A is checked out.
func writeMetadata(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write := func(rel string, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	write(graphite.RepoConfigFile, `{"trunk":"main"}`)
	write(graphite.ReviewInfoFile, `{"prInfos":[]}`)
	write(graphite.SnapshotsDir+"/1700000000.snapshot", testSnapshot)
	return dir
}

func testStackData(t *testing.T) *graphite.Data {
	t.Helper()
	data, err := environment{metadataDir: writeMetadata(t)}.load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return data
}
