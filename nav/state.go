// Package nav holds the navigation state machine of the stack viewer: which
// pane is active, what the cursors point at and how far each pane scrolled.
package nav

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvariant = errors.New("navigation invariant violated")

type Pane int

const (
	PaneOverview Pane = iota
	PaneStack
	PaneCommits
	PaneDetail
	PaneLog
	paneCount
)

// Panes lists every pane in display order.
var Panes = []Pane{PaneOverview, PaneStack, PaneCommits, PaneDetail, PaneLog}

func (p Pane) Valid() bool {
	return p >= PaneOverview && p < paneCount
}

func (p Pane) String() string {
	switch p {
	case PaneOverview:
		return "overview"
	case PaneStack:
		return "stack"
	case PaneCommits:
		return "commits"
	case PaneDetail:
		return "detail"
	case PaneLog:
		return "log"
	default:
		return "unknown"
	}
}

// Next cycles through the panes in display order.
func (p Pane) Next() Pane {
	if !p.Valid() {
		return PaneOverview
	}
	return (p + 1) % paneCount
}

type Direction int

const (
	Up Direction = iota
	Down
	Top
	Bottom
)

// Content is the read side of the loaded data the state machine moves over.
type Content interface {
	// BranchOrder is the flattened pre-order listing starting at trunk.
	BranchOrder() []string
	// Commits lists the commit hashes of branch in display order.
	Commits(branch string) []string
	CurrentBranch() string
	// LineCount is the number of rendered lines of a scrolling pane.
	LineCount(p Pane) int
}

// State is a plain value; copying it yields an independent snapshot.
type State struct {
	active       Pane
	cursorBranch string
	cursorCommit string
	offsets      [paneCount]int
	heights      [paneCount]int
}

func New() *State {
	return &State{active: PaneOverview}
}

func (s State) Active() Pane {
	return s.active
}

func (s State) CursorBranch() (string, bool) {
	return s.cursorBranch, s.cursorBranch != ""
}

func (s State) CursorCommit() (string, bool) {
	return s.cursorCommit, s.cursorCommit != ""
}

func (s State) Offset(p Pane) int {
	if !p.Valid() {
		return 0
	}
	return s.offsets[p]
}

func (s State) Height(p Pane) int {
	if !p.Valid() {
		return 0
	}
	return s.heights[p]
}

// FocusedBranch is the branch the commits and detail panes describe: the
// cursor branch, else the checked out branch.
func (s State) FocusedBranch(c Content) string {
	if s.cursorBranch != "" {
		return s.cursorBranch
	}
	return c.CurrentBranch()
}

func (s *State) SelectPane(p Pane) {
	if !p.Valid() {
		return
	}
	s.active = p
}

// Step applies dir to whatever the active pane navigates.
func (s *State) Step(dir Direction, c Content) {
	switch s.active {
	case PaneStack, PaneCommits:
		s.MoveCursor(dir, c)
	case PaneDetail, PaneLog:
		s.Scroll(dir, c)
	}
}

func (s *State) MoveCursor(dir Direction, c Content) {
	switch s.active {
	case PaneStack:
		order := c.BranchOrder()
		if len(order) == 0 {
			return
		}
		next := step(indexOf(order, s.cursorBranch), len(order), dir)
		s.setBranch(order[next], c)
		s.offsets[PaneStack] = Reconcile(next, len(order), s.heights[PaneStack], s.offsets[PaneStack])
	case PaneCommits:
		hashes := c.Commits(s.FocusedBranch(c))
		if len(hashes) == 0 {
			return
		}
		next := step(indexOf(hashes, s.cursorCommit), len(hashes), dir)
		if hashes[next] != s.cursorCommit {
			s.cursorCommit = hashes[next]
			s.offsets[PaneDetail] = 0
		}
		s.offsets[PaneCommits] = Reconcile(next, len(hashes), s.heights[PaneCommits], s.offsets[PaneCommits])
	}
}

// Scroll moves the active detail or log pane by one line, or to either end.
func (s *State) Scroll(dir Direction, c Content) {
	p := s.active
	if p != PaneDetail && p != PaneLog {
		return
	}
	limit := MaxScroll(c.LineCount(p), s.heights[p])
	off := s.offsets[p]
	switch dir {
	case Up:
		off--
	case Down:
		off++
	case Top:
		off = 0
	case Bottom:
		off = limit
	}
	s.offsets[p] = clamp(off, 0, limit)
}

// SetViewportHeight records how many lines the renderer gives pane p.
func (s *State) SetViewportHeight(p Pane, height int, c Content) {
	if !p.Valid() {
		return
	}
	s.heights[p] = max(0, height)
	s.reconcilePane(p, c)
}

// Rebind revalidates the cursors against freshly loaded content. It must
// run in the same critical section that swaps the content in.
func (s *State) Rebind(c Content) {
	if s.cursorBranch != "" && !slices.Contains(c.BranchOrder(), s.cursorBranch) {
		s.cursorBranch = ""
		if current := c.CurrentBranch(); slices.Contains(c.BranchOrder(), current) {
			s.cursorBranch = current
		}
		s.offsets[PaneDetail] = 0
	}
	if s.cursorCommit != "" && !slices.Contains(c.Commits(s.FocusedBranch(c)), s.cursorCommit) {
		s.cursorCommit = ""
		s.offsets[PaneDetail] = 0
	}
	for _, p := range Panes {
		s.reconcilePane(p, c)
	}
}

// Validate reports the first broken invariant, wrapped in ErrInvariant.
func (s State) Validate(c Content) error {
	if !s.active.Valid() {
		return fmt.Errorf("%w: active pane %d", ErrInvariant, s.active)
	}
	order := c.BranchOrder()
	if s.cursorBranch != "" && !slices.Contains(order, s.cursorBranch) {
		return fmt.Errorf("%w: cursor branch %q not loaded", ErrInvariant, s.cursorBranch)
	}
	if s.cursorCommit != "" && !slices.Contains(c.Commits(s.FocusedBranch(c)), s.cursorCommit) {
		return fmt.Errorf("%w: cursor commit %q not on branch %q", ErrInvariant, s.cursorCommit, s.FocusedBranch(c))
	}
	for _, p := range Panes {
		limit := MaxScroll(s.lengthOf(p, c), s.heights[p])
		if s.offsets[p] < 0 || s.offsets[p] > limit {
			return fmt.Errorf("%w: %s offset %d outside [0, %d]", ErrInvariant, p, s.offsets[p], limit)
		}
	}
	return nil
}

func (s *State) setBranch(name string, c Content) {
	if name == s.cursorBranch {
		return
	}
	s.cursorBranch = name
	s.offsets[PaneDetail] = 0
	hashes := c.Commits(name)
	if s.cursorCommit != "" && !slices.Contains(hashes, s.cursorCommit) {
		s.cursorCommit = ""
	}
	s.reconcilePane(PaneCommits, c)
}

func (s *State) reconcilePane(p Pane, c Content) {
	length := s.lengthOf(p, c)
	cursor := -1
	switch p {
	case PaneStack:
		cursor = slices.Index(c.BranchOrder(), s.cursorBranch)
	case PaneCommits:
		cursor = slices.Index(c.Commits(s.FocusedBranch(c)), s.cursorCommit)
	}
	if cursor < 0 {
		s.offsets[p] = clamp(s.offsets[p], 0, MaxScroll(length, s.heights[p]))
		return
	}
	s.offsets[p] = Reconcile(cursor, length, s.heights[p], s.offsets[p])
}

func (s State) lengthOf(p Pane, c Content) int {
	switch p {
	case PaneStack:
		return len(c.BranchOrder())
	case PaneCommits:
		return len(c.Commits(s.FocusedBranch(c)))
	case PaneDetail, PaneLog:
		return c.LineCount(p)
	default:
		return 0
	}
}

// indexOf treats an unset or vanished cursor as the first row.
func indexOf(items []string, item string) int {
	if i := slices.Index(items, item); i >= 0 {
		return i
	}
	return 0
}

func step(index int, length int, dir Direction) int {
	switch dir {
	case Up:
		index--
	case Down:
		index++
	case Top:
		index = 0
	case Bottom:
		index = length - 1
	}
	return clamp(index, 0, length-1)
}
