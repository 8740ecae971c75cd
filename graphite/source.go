package graphite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	RepoConfigFile  = ".graphite_repo_config"
	ReviewInfoFile  = ".graphite_pr_info"
	SnapshotsDir    = ".gt/snapshots"
	snapshotPattern = "*.snapshot"
)

type RepoConfig struct {
	Trunk                       string       `json:"trunk"`
	Trunks                      []TrunkEntry `json:"trunks"`
	LastFetchedPRInfoMs         int64        `json:"lastFetchedPRInfoMs"`
	LastFetchedFeatureFlagsInMs int64        `json:"lastFetchedFeatureFlagsInMs"`
}

type TrunkEntry struct {
	Name string `json:"name"`
}

type SubmittedVersion struct {
	HeadSha  string `json:"headSha"`
	BaseSha  string `json:"baseSha"`
	BaseName string `json:"baseName"`
}

type BranchData struct {
	Children             []string          `json:"children"`
	BranchRevision       string            `json:"branchRevision"`
	ValidationResult     string            `json:"validationResult"`
	ParentBranchName     string            `json:"parentBranchName,omitempty"`
	ParentBranchRevision string            `json:"parentBranchRevision,omitempty"`
	LastSubmittedVersion *SubmittedVersion `json:"lastSubmittedVersion,omitempty"`
}

// SnapshotBranch is stored on disk as a two element tuple [name, data].
type SnapshotBranch struct {
	Name string
	Data BranchData
}

func (b *SnapshotBranch) UnmarshalJSON(raw []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return fmt.Errorf("branch entry: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("branch entry: expected [name, data], got %d elements", len(parts))
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return fmt.Errorf("branch entry name: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("branch entry: empty name")
	}
	if bytes.Equal(bytes.TrimSpace(parts[1]), []byte("null")) {
		return fmt.Errorf("branch %q: missing data", name)
	}
	var data BranchData
	if err := json.Unmarshal(parts[1], &data); err != nil {
		return fmt.Errorf("branch %q: %w", name, err)
	}
	switch data.ValidationResult {
	case "VALID", "TRUNK", "BAD_PARENT_NAME":
	default:
		return fmt.Errorf("branch %q: unknown validationResult %q", name, data.ValidationResult)
	}
	b.Name = name
	b.Data = data
	return nil
}

func (b SnapshotBranch) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{b.Name, b.Data})
}

type Snapshot struct {
	BranchesHash      string           `json:"branchesHash"`
	Branches          []SnapshotBranch `json:"branches"`
	CurrentBranchName string           `json:"currentBranchName"`
}

type ReviewVersion struct {
	HeadSha             string `json:"headSha"`
	BaseSha             string `json:"baseSha"`
	BaseName            string `json:"baseName"`
	CreatedAt           string `json:"createdAt"`
	AuthorGithubHandle  string `json:"authorGithubHandle,omitempty"`
	IsGraphiteGenerated bool   `json:"isGraphiteGenerated"`
}

type Review struct {
	Number            int             `json:"prNumber"`
	Title             string          `json:"title"`
	State             ReviewState     `json:"state"`
	ReviewDecision    string          `json:"reviewDecision,omitempty"`
	HeadRefName       string          `json:"headRefName"`
	BaseRefName       string          `json:"baseRefName"`
	IsDraft           bool            `json:"isDraft"`
	DependentPRNumber int             `json:"dependentPrNumber,omitempty"`
	Versions          []ReviewVersion `json:"versions"`
}

type ReviewInfo struct {
	Reviews []Review `json:"prInfos"`
}

func ReadRepoConfig(dir string) (RepoConfig, error) {
	path := filepath.Join(dir, RepoConfigFile)
	var cfg RepoConfig
	if err := readJSONFile(SourceRepoConfig, path, &cfg); err != nil {
		return RepoConfig{}, err
	}
	cfg.Trunk = strings.TrimSpace(cfg.Trunk)
	if cfg.Trunk == "" {
		return RepoConfig{}, &SourceReadError{Source: SourceRepoConfig, Path: path, Err: errors.New("trunk not set")}
	}
	return cfg, nil
}

// LatestSnapshotPath picks the lexicographically greatest *.snapshot file.
func LatestSnapshotPath(dir string) (string, error) {
	snapshotsDir := filepath.Join(dir, filepath.FromSlash(SnapshotsDir))
	entries, err := os.ReadDir(snapshotsDir)
	if err != nil {
		return "", &SourceReadError{Source: SourceSnapshot, Path: snapshotsDir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := doublestar.Match(snapshotPattern, e.Name())
		if err != nil || !ok {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", &SourceReadError{Source: SourceSnapshot, Path: snapshotsDir, Err: ErrNoSnapshot}
	}
	sort.Strings(names)
	return filepath.Join(snapshotsDir, names[len(names)-1]), nil
}

func ReadLatestSnapshot(dir string) (Snapshot, error) {
	path, err := LatestSnapshotPath(dir)
	if err != nil {
		return Snapshot{}, err
	}
	return ReadSnapshot(path)
}

func ReadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	if err := readJSONFile(SourceSnapshot, path, &snap); err != nil {
		return Snapshot{}, err
	}
	snap.CurrentBranchName = strings.TrimSpace(snap.CurrentBranchName)
	return snap, nil
}

func ReadReviewInfo(dir string) (ReviewInfo, error) {
	path := filepath.Join(dir, ReviewInfoFile)
	var info ReviewInfo
	if err := readJSONFile(SourceReviewInfo, path, &info); err != nil {
		return ReviewInfo{}, err
	}
	for _, r := range info.Reviews {
		switch r.State {
		case ReviewOpen, ReviewClosed, ReviewMerged:
		default:
			return ReviewInfo{}, &SourceReadError{
				Source: SourceReviewInfo,
				Path:   path,
				Err:    fmt.Errorf("pr #%d: unknown state %q", r.Number, r.State),
			}
		}
	}
	return info, nil
}

func readJSONFile(source Source, path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &SourceReadError{Source: source, Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &SourceReadError{Source: source, Path: path, Err: fmt.Errorf("parse json: %w", err)}
	}
	return nil
}
