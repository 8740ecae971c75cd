// Package session owns the loaded stack data and the navigation state of one
// viewer run. Both change together under a single lock.
package session

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ethanniser/gtui/graphite"
	"github.com/ethanniser/gtui/nav"
)

// ErrNoData is recorded when a load reports success without any data.
var ErrNoData = errors.New("load returned no data")

// Token identifies one load request. Only the newest token may complete.
type Token uint64

// LineCounter reports how many lines the renderer draws for a scrolling pane
// so the scroll bound matches the screen.
type LineCounter func(v View, p nav.Pane) int

type Options struct {
	GTCommand string
	Lines     LineCounter
	Logger    *slog.Logger
}

type CommandEntry struct {
	ID       int
	Args     []string
	Started  time.Time
	Finished time.Time
	Output   string
	Err      error
	Pending  bool
}

func (e CommandEntry) CommandLine() string {
	return strings.Join(e.Args, " ")
}

type CheckoutRequest struct {
	ID     int
	Branch string
	Args   []string
}

// View is a read-only copy of the session for one render pass.
type View struct {
	Data    *graphite.Data
	Nav     nav.State
	Order   []string
	Focused string
	Err     error
	Loading bool
	Log     []CommandEntry
}

type Session struct {
	mu      sync.Mutex
	gt      string
	lines   LineCounter
	logger  *slog.Logger
	data    *graphite.Data
	order   []string
	nav     *nav.State
	err     error
	gen     uint64
	loading bool
	log     []CommandEntry
	nextID  int
}

func New(opts Options) *Session {
	gt := strings.TrimSpace(opts.GTCommand)
	if gt == "" {
		gt = "gt"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gt:     gt,
		lines:  opts.Lines,
		logger: logger,
		nav:    nav.New(),
	}
}

// BeginLoad supersedes any load still in flight.
func (s *Session) BeginLoad() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = true
	return Token(s.gen)
}

// Complete applies the outcome of the load started with tok. It reports
// false and changes nothing when a newer load has been requested since. A
// failed load keeps the previous data on screen.
func (s *Session) Complete(tok Token, data *graphite.Data, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint64(tok) != s.gen {
		s.logger.Debug("discarding stale load", "token", tok, "latest", s.gen)
		return false
	}
	s.loading = false
	if err == nil && data == nil {
		err = ErrNoData
	}
	if err != nil {
		s.err = err
		s.logger.Warn("load failed", "err", err)
		return true
	}
	order, ferr := data.Tree.Flatten()
	if ferr != nil {
		s.err = ferr
		s.logger.Warn("load produced an unusable tree", "err", ferr)
		return true
	}
	s.data = data
	s.order = order
	s.err = nil
	s.nav.Rebind(content{s})
	s.logger.Debug("load applied", "token", tok, "branches", len(order), "current", data.CurrentBranch)
	return true
}

func (s *Session) SelectPane(p nav.Pane) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SelectPane(p)
}

func (s *Session) Step(dir nav.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Step(dir, content{s})
}

func (s *Session) MoveCursor(dir nav.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.MoveCursor(dir, content{s})
}

func (s *Session) Scroll(dir nav.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Scroll(dir, content{s})
}

func (s *Session) SetViewportHeight(p nav.Pane, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SetViewportHeight(p, height, content{s})
}

// SetViewportHeights applies every pane height in one critical section.
func (s *Session) SetViewportHeights(heights map[nav.Pane]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range nav.Panes {
		if h, ok := heights[p]; ok {
			s.nav.SetViewportHeight(p, h, content{s})
		}
	}
}

// SelectedBranch is the branch a checkout request acts on.
func (s *Session) SelectedBranch() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return "", false
	}
	name := s.nav.FocusedBranch(content{s})
	return name, s.data.Branches.Has(name)
}

// RequestCheckout records a pending "gt checkout" for the runner. The
// session never interprets the result.
func (s *Session) RequestCheckout(branch string) CheckoutRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	args := []string{s.gt, "checkout", branch}
	s.log = append(s.log, CommandEntry{
		ID:      s.nextID,
		Args:    args,
		Started: time.Now(),
		Pending: true,
	})
	s.logger.Info("checkout requested", "branch", branch, "id", s.nextID)
	return CheckoutRequest{ID: s.nextID, Branch: branch, Args: slices.Clone(args)}
}

// RecordResult stores the runner's outcome for request id.
func (s *Session) RecordResult(id int, output string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.log {
		if s.log[i].ID != id {
			continue
		}
		s.log[i].Output = strings.TrimRight(output, "\n")
		s.log[i].Err = err
		s.log[i].Finished = time.Now()
		s.log[i].Pending = false
		if err != nil {
			s.logger.Warn("command failed", "id", id, "err", err)
		} else {
			s.logger.Debug("command finished", "id", id)
		}
		return
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		Data:    s.data,
		Nav:     *s.nav,
		Order:   slices.Clone(s.order),
		Err:     s.err,
		Loading: s.loading,
		Log:     make([]CommandEntry, len(s.log)),
	}
	for i, e := range s.log {
		e.Args = slices.Clone(e.Args)
		v.Log[i] = e
	}
	if s.data != nil {
		v.Focused = s.nav.FocusedBranch(content{s})
	}
	return v
}

// content adapts the session to nav.Content. Callers hold s.mu.
type content struct {
	s *Session
}

func (c content) BranchOrder() []string {
	return c.s.order
}

func (c content) Commits(branch string) []string {
	if c.s.data == nil {
		return nil
	}
	return c.s.data.Branches.CommitHashes(branch)
}

func (c content) CurrentBranch() string {
	if c.s.data == nil {
		return ""
	}
	return c.s.data.CurrentBranch
}

func (c content) LineCount(p nav.Pane) int {
	if c.s.lines == nil {
		return 0
	}
	return c.s.lines(c.s.viewLocked(), p)
}
