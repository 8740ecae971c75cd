package graphite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.FromSlash(SnapshotsDir)), 0o755))
	return fixture{dir: dir}
}

func (f fixture) writeJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f.writeRaw(t, rel, string(data))
}

func (f fixture) writeRaw(t *testing.T, rel string, content string) {
	t.Helper()
	path := filepath.Join(f.dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (f fixture) writeConfig(t *testing.T, trunk string) {
	t.Helper()
	f.writeJSON(t, RepoConfigFile, RepoConfig{Trunk: trunk, Trunks: []TrunkEntry{{Name: trunk}}})
}

func (f fixture) writeSnapshot(t *testing.T, name string, snap Snapshot) {
	t.Helper()
	f.writeJSON(t, SnapshotsDir+"/"+name, snap)
}

func (f fixture) writeReviews(t *testing.T, reviews ...Review) {
	t.Helper()
	if reviews == nil {
		reviews = []Review{}
	}
	f.writeJSON(t, ReviewInfoFile, ReviewInfo{Reviews: reviews})
}

func trunkEntry(name string, children ...string) SnapshotBranch {
	return SnapshotBranch{Name: name, Data: BranchData{
		Children:         children,
		BranchRevision:   "0123456789abcdef0123456789abcdef01234567",
		ValidationResult: "TRUNK",
	}}
}

func branchEntry(name string, parent string, rev string, children ...string) SnapshotBranch {
	return SnapshotBranch{Name: name, Data: BranchData{
		Children:         children,
		BranchRevision:   rev,
		ValidationResult: "VALID",
		ParentBranchName: parent,
	}}
}

func stackSnapshot() Snapshot {
	return Snapshot{
		BranchesHash:      "h",
		CurrentBranchName: "A",
		Branches: []SnapshotBranch{
			trunkEntry("main", "A"),
			branchEntry("A", "main", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "B"),
			branchEntry("B", "A", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
		},
	}
}

func mapOf(t *testing.T, pairs ...string) *BranchMap {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must be name/parent")
	bm := NewBranchMap()
	for i := 0; i < len(pairs); i += 2 {
		bm.Add(&Branch{
			Name:        pairs[i],
			Parent:      pairs[i+1],
			Commits:     []Commit{placeholderCommit(pairs[i])},
			ReviewState: ReviewUnknown,
		})
	}
	return bm
}
