package graphite

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSnapshot = errors.New("no snapshot files found")
	ErrTopology   = errors.New("inconsistent branch topology")
)

type Source string

const (
	SourceRepoConfig Source = "repo config"
	SourceSnapshot   Source = "snapshot"
	SourceReviewInfo Source = "review info"
)

// SourceReadError means a metadata file was missing, unreadable or not in
// the expected format.
type SourceReadError struct {
	Source Source
	Path   string
	Err    error
}

func (e *SourceReadError) Error() string {
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Sprintf("read %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("read %s %s: %v", e.Source, e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

type TopologyKind int

const (
	MissingParent TopologyKind = iota
	MissingTrunk
	Orphan
	Cycle
)

func (k TopologyKind) String() string {
	switch k {
	case MissingParent:
		return "missing parent"
	case MissingTrunk:
		return "missing trunk"
	case Orphan:
		return "orphan branch"
	case Cycle:
		return "cycle"
	default:
		return "unknown"
	}
}

type TopologyError struct {
	Kind   TopologyKind
	Branch string
	Parent string
	Trunk  string
	Known  []string
	Path   []string
}

func (e *TopologyError) Error() string {
	switch e.Kind {
	case MissingParent:
		return fmt.Sprintf("parent branch %q not found for %q", e.Parent, e.Branch)
	case MissingTrunk:
		return fmt.Sprintf("trunk branch %q not found. available branches: %s", e.Trunk, strings.Join(e.Known, ", "))
	case Orphan:
		return fmt.Sprintf("branch %q has no parent and is not trunk %q", e.Branch, e.Trunk)
	case Cycle:
		return fmt.Sprintf("branch %q is part of a parent cycle: %s", e.Branch, strings.Join(e.Path, " -> "))
	default:
		return fmt.Sprintf("topology error on %q", e.Branch)
	}
}

func (e *TopologyError) Is(target error) bool {
	return target == ErrTopology
}
