package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethanniser/gtui/graphite"
	"github.com/ethanniser/gtui/nav"
)

func loadData(t *testing.T, current string, pairs ...string) *graphite.Data {
	t.Helper()
	snap := graphite.Snapshot{CurrentBranchName: current}
	for i := 0; i < len(pairs); i += 2 {
		validation := "VALID"
		if pairs[i+1] == "" {
			validation = "TRUNK"
		}
		snap.Branches = append(snap.Branches, graphite.SnapshotBranch{Name: pairs[i], Data: graphite.BranchData{
			BranchRevision:   pairs[i] + "-0123456789",
			ValidationResult: validation,
			ParentBranchName: pairs[i+1],
		}})
	}
	data, err := graphite.Build(graphite.RepoConfig{Trunk: pairs[0]}, snap, graphite.ReviewInfo{}, graphite.LoadOptions{})
	require.NoError(t, err)
	return data
}

func fixedLines(n int) LineCounter {
	return func(View, nav.Pane) int { return n }
}

func TestComplete_AppliesNewestLoad(t *testing.T) {
	s := New(Options{})
	tok := s.BeginLoad()
	require.True(t, s.View().Loading)

	data := loadData(t, "A", "main", "", "A", "main", "B", "A")
	require.True(t, s.Complete(tok, data, nil))

	v := s.View()
	require.False(t, v.Loading)
	require.NoError(t, v.Err)
	require.Same(t, data, v.Data)
	require.Equal(t, []string{"main", "A", "B"}, v.Order)
	require.Equal(t, "A", v.Focused)
}

func TestComplete_StaleLoadDiscarded(t *testing.T) {
	s := New(Options{})
	first := s.BeginLoad()
	second := s.BeginLoad()

	newer := loadData(t, "A", "main", "", "A", "main")
	require.True(t, s.Complete(second, newer, nil))

	older := loadData(t, "main", "main", "")
	require.False(t, s.Complete(first, older, nil))
	require.False(t, s.Complete(first, nil, errors.New("late failure")))

	v := s.View()
	require.Same(t, newer, v.Data)
	require.NoError(t, v.Err)
}

func TestComplete_StaleCompletionKeepsLoadingFlag(t *testing.T) {
	s := New(Options{})
	first := s.BeginLoad()
	s.BeginLoad()
	s.Complete(first, loadData(t, "main", "main", ""), nil)
	require.True(t, s.View().Loading)
}

func TestComplete_FailureRetainsPreviousData(t *testing.T) {
	s := New(Options{})
	good := loadData(t, "A", "main", "", "A", "main")
	s.Complete(s.BeginLoad(), good, nil)

	readErr := &graphite.SourceReadError{Source: graphite.SourceReviewInfo, Err: errors.New("boom")}
	require.True(t, s.Complete(s.BeginLoad(), nil, readErr))

	v := s.View()
	require.Same(t, good, v.Data)
	require.ErrorIs(t, v.Err, readErr)
	require.Equal(t, []string{"main", "A"}, v.Order)

	s.Complete(s.BeginLoad(), good, nil)
	require.NoError(t, s.View().Err, "successful retry clears the error")
}

func TestComplete_FailureBeforeAnyData(t *testing.T) {
	s := New(Options{})
	s.Complete(s.BeginLoad(), nil, graphite.ErrNoSnapshot)
	v := s.View()
	require.Nil(t, v.Data)
	require.ErrorIs(t, v.Err, graphite.ErrNoSnapshot)
	require.Empty(t, v.Focused)
}

func TestComplete_NilDataWithoutError(t *testing.T) {
	s := New(Options{})
	good := loadData(t, "A", "main", "", "A", "main")
	s.Complete(s.BeginLoad(), good, nil)

	require.True(t, s.Complete(s.BeginLoad(), nil, nil))
	v := s.View()
	require.ErrorIs(t, v.Err, ErrNoData)
	require.NotErrorIs(t, v.Err, graphite.ErrNoSnapshot)
	require.Same(t, good, v.Data)
}

func TestComplete_ReloadRebindsCursors(t *testing.T) {
	s := New(Options{})
	s.Complete(s.BeginLoad(), loadData(t, "A", "main", "", "A", "main", "B", "A"), nil)
	s.SelectPane(nav.PaneStack)
	s.MoveCursor(nav.Bottom)
	require.Equal(t, "B", s.View().Focused)

	s.Complete(s.BeginLoad(), loadData(t, "A", "main", "", "A", "main"), nil)
	v := s.View()
	branch, ok := v.Nav.CursorBranch()
	require.True(t, ok)
	require.Equal(t, "A", branch)
	require.NoError(t, v.Nav.Validate(content{s}))
}

func TestScrollUsesLineCounter(t *testing.T) {
	s := New(Options{Lines: fixedLines(12)})
	s.Complete(s.BeginLoad(), loadData(t, "main", "main", ""), nil)
	s.SetViewportHeights(map[nav.Pane]int{nav.PaneDetail: 5, nav.PaneLog: 5})
	s.SelectPane(nav.PaneDetail)
	s.Scroll(nav.Bottom)
	require.Equal(t, 7, s.View().Nav.Offset(nav.PaneDetail))
	s.Step(nav.Down)
	require.Equal(t, 7, s.View().Nav.Offset(nav.PaneDetail))
}

func TestSelectedBranch(t *testing.T) {
	s := New(Options{})
	_, ok := s.SelectedBranch()
	require.False(t, ok)

	s.Complete(s.BeginLoad(), loadData(t, "A", "main", "", "A", "main"), nil)
	name, ok := s.SelectedBranch()
	require.True(t, ok)
	require.Equal(t, "A", name)

	s.SelectPane(nav.PaneStack)
	s.MoveCursor(nav.Top)
	name, _ = s.SelectedBranch()
	require.Equal(t, "main", name)
}

func TestRequestCheckout_RecordsCommand(t *testing.T) {
	s := New(Options{GTCommand: "/opt/gt"})
	req := s.RequestCheckout("feat")
	require.Equal(t, "feat", req.Branch)
	require.Equal(t, []string{"/opt/gt", "checkout", "feat"}, req.Args)

	v := s.View()
	require.Len(t, v.Log, 1)
	require.True(t, v.Log[0].Pending)
	require.Equal(t, "/opt/gt checkout feat", v.Log[0].CommandLine())

	s.RecordResult(req.ID, "Checked out feat.\n", nil)
	v = s.View()
	require.False(t, v.Log[0].Pending)
	require.Equal(t, "Checked out feat.", v.Log[0].Output)
	require.NoError(t, v.Log[0].Err)
	require.False(t, v.Log[0].Finished.IsZero())

	failed := s.RequestCheckout("gone")
	s.RecordResult(failed.ID, "", errors.New("exit status 1"))
	s.RecordResult(999, "ignored", nil)
	v = s.View()
	require.Len(t, v.Log, 2)
	require.EqualError(t, v.Log[1].Err, "exit status 1")
}

func TestDefaultGTCommand(t *testing.T) {
	s := New(Options{GTCommand: "  "})
	require.Equal(t, []string{"gt", "checkout", "x"}, s.RequestCheckout("x").Args)
}

func TestViewIsACopy(t *testing.T) {
	s := New(Options{})
	s.Complete(s.BeginLoad(), loadData(t, "A", "main", "", "A", "main"), nil)
	s.RequestCheckout("A")

	v := s.View()
	v.Order[0] = "mutated"
	v.Log[0].Args[0] = "mutated"
	v.Nav.SelectPane(nav.PaneLog)

	again := s.View()
	require.Equal(t, "main", again.Order[0])
	require.Equal(t, "gt", again.Log[0].Args[0])
	require.Equal(t, nav.PaneOverview, again.Nav.Active())
}

func TestConcurrentLoadsAndNavigation(t *testing.T) {
	s := New(Options{Lines: fixedLines(30)})
	s.SetViewportHeights(map[nav.Pane]int{nav.PaneStack: 2, nav.PaneDetail: 4})
	datasets := []*graphite.Data{
		loadData(t, "A", "main", "", "A", "main", "B", "A", "C", "B"),
		loadData(t, "main", "main", ""),
		loadData(t, "X", "main", "", "X", "main"),
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			tok := s.BeginLoad()
			s.Complete(tok, datasets[i%len(datasets)], nil)
		}(i)
		go func(i int) {
			defer wg.Done()
			s.SelectPane(nav.Panes[i%len(nav.Panes)])
			s.Step(nav.Down)
			s.Step(nav.Bottom)
		}(i)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	require.NoError(t, s.nav.Validate(content{s}))
}
