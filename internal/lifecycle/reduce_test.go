package lifecycle

import (
	"errors"
	"slices"
	"testing"

	"github.com/fragmede/hnsearch/internal/story"
)

func items(ids ...string) []story.Item {
	out := make([]story.Item, len(ids))
	for i, id := range ids {
		out[i] = story.Item{ID: id, Title: "story " + id}
	}
	return out
}

func settledWith(ids ...string) State {
	s := Reduce(State{}, BeginFetch{Gen: 1}, PolicyLatestOnly)
	return Reduce(s, FetchSucceeded{Gen: 1, Items: items(ids...)}, PolicyLatestOnly)
}

func TestZeroStateIsIdle(t *testing.T) {
	var s State
	if s.Status() != Idle {
		t.Errorf("expected idle, got %s", s.Status())
	}
	if len(s.Items) != 0 || s.IsLoading || s.IsError {
		t.Errorf("unexpected zero state: %+v", s)
	}
}

func TestBeginFetchKeepsItemsAndClearsError(t *testing.T) {
	s := settledWith("a", "b")
	s = Reduce(s, BeginFetch{Gen: 2}, PolicyLatestOnly)
	s = Reduce(s, FetchFailed{Gen: 2, Err: errors.New("boom")}, PolicyLatestOnly)

	s = Reduce(s, BeginFetch{Gen: 3}, PolicyLatestOnly)
	if s.Status() != Loading {
		t.Fatalf("expected loading, got %s", s.Status())
	}
	if s.IsError || s.Err != nil {
		t.Errorf("expected error cleared, got %+v", s)
	}
	if !slices.Equal(story.IDs(s.Items), []string{"a", "b"}) {
		t.Errorf("expected stale items kept, got %v", story.IDs(s.Items))
	}
}

func TestSuccessReplacesItemsFromAnyState(t *testing.T) {
	starts := map[string]State{
		"idle":    {},
		"success": settledWith("old"),
		"failure": Reduce(Reduce(settledWith("old"), BeginFetch{Gen: 2}, PolicyLatestOnly),
			FetchFailed{Gen: 2}, PolicyLatestOnly),
	}
	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			gen := start.Gen + 1
			s := Reduce(start, BeginFetch{Gen: gen}, PolicyLatestOnly)
			s = Reduce(s, FetchSucceeded{Gen: gen, Items: items("x", "y")}, PolicyLatestOnly)

			if !slices.Equal(story.IDs(s.Items), []string{"x", "y"}) {
				t.Errorf("expected [x y], got %v", story.IDs(s.Items))
			}
			if s.IsLoading || s.IsError {
				t.Errorf("expected settled flags, got loading=%v error=%v", s.IsLoading, s.IsError)
			}
			if s.Status() != Success {
				t.Errorf("expected success, got %s", s.Status())
			}
		})
	}
}

func TestFailureKeepsPriorItems(t *testing.T) {
	before := settledWith("a", "b")
	s := Reduce(before, BeginFetch{Gen: 2}, PolicyLatestOnly)
	s = Reduce(s, FetchFailed{Gen: 2, Err: errors.New("503")}, PolicyLatestOnly)

	if !s.IsError || s.IsLoading {
		t.Errorf("expected error=true loading=false, got %+v", s)
	}
	if s.Status() != Failure {
		t.Errorf("expected failure, got %s", s.Status())
	}
	if !slices.Equal(story.IDs(s.Items), story.IDs(before.Items)) {
		t.Errorf("expected items unchanged, got %v", story.IDs(s.Items))
	}
}

func TestLoadingAndErrorNeverBothSet(t *testing.T) {
	actions := []Action{
		BeginFetch{Gen: 1},
		FetchFailed{Gen: 1},
		BeginFetch{Gen: 2},
		FetchSucceeded{Gen: 2, Items: items("a")},
		RemoveItem{ID: "a"},
		BeginFetch{Gen: 3},
		FetchFailed{Gen: 3},
		RemoveItem{ID: "zzz"},
	}
	for _, p := range []Policy{PolicyLatestOnly, PolicyLastWriteWins} {
		var s State
		for _, a := range actions {
			s = Reduce(s, a, p)
			if s.IsLoading && s.IsError {
				t.Fatalf("%s: both flags set after %T", p, a)
			}
		}
	}
}

func TestRemoveItem(t *testing.T) {
	s := settledWith("a", "b", "c")

	s = Reduce(s, RemoveItem{ID: "b"}, PolicyLatestOnly)
	if !slices.Equal(story.IDs(s.Items), []string{"a", "c"}) {
		t.Errorf("expected [a c], got %v", story.IDs(s.Items))
	}

	same := Reduce(s, RemoveItem{ID: "b"}, PolicyLatestOnly)
	if !slices.Equal(story.IDs(same.Items), story.IDs(s.Items)) {
		t.Errorf("expected idempotent removal, got %v", story.IDs(same.Items))
	}

	empty := Reduce(State{}, RemoveItem{ID: "a"}, PolicyLatestOnly)
	if empty.Status() != Idle || len(empty.Items) != 0 {
		t.Errorf("expected remove on idle to be a no-op, got %+v", empty)
	}
}

func TestRemoveSequencesNeverResurrect(t *testing.T) {
	seqs := [][]string{
		{"a"},
		{"a", "a"},
		{"c", "a", "missing", "b"},
		{"missing"},
	}
	for _, seq := range seqs {
		s := settledWith("a", "b", "c", "d")
		removed := map[string]bool{}
		for _, id := range seq {
			s = Reduce(s, RemoveItem{ID: id}, PolicyLatestOnly)
			removed[id] = true
			for _, it := range s.Items {
				if removed[it.ID] {
					t.Fatalf("seq %v: removed id %q still present", seq, it.ID)
				}
			}
		}
	}
}

func TestRemoveKeysOnIDNotTitle(t *testing.T) {
	s := Reduce(State{}, BeginFetch{}, PolicyLatestOnly)
	s = Reduce(s, FetchSucceeded{Items: []story.Item{
		{ID: "1", Title: "dup"},
		{ID: "2", Title: "dup"},
	}}, PolicyLatestOnly)

	s = Reduce(s, RemoveItem{ID: "1"}, PolicyLatestOnly)
	if len(s.Items) != 1 || s.Items[0].ID != "2" {
		t.Errorf("expected only item 2 left, got %+v", s.Items)
	}
}

func TestLatestOnlyDropsSupersededResponses(t *testing.T) {
	var s State
	s = Reduce(s, BeginFetch{Gen: 1}, PolicyLatestOnly)
	s = Reduce(s, BeginFetch{Gen: 2}, PolicyLatestOnly)

	s = Reduce(s, FetchSucceeded{Gen: 2, Items: items("new")}, PolicyLatestOnly)
	s = Reduce(s, FetchSucceeded{Gen: 1, Items: items("old")}, PolicyLatestOnly)
	if !slices.Equal(story.IDs(s.Items), []string{"new"}) {
		t.Errorf("expected late gen 1 response dropped, got %v", story.IDs(s.Items))
	}

	s = Reduce(s, FetchFailed{Gen: 1}, PolicyLatestOnly)
	if s.IsError {
		t.Error("expected late gen 1 failure dropped")
	}
}

func TestLatestOnlyIgnoresCompletionWithoutBegin(t *testing.T) {
	s := Reduce(State{}, FetchSucceeded{Items: items("a")}, PolicyLatestOnly)
	if s.Status() != Idle || len(s.Items) != 0 {
		t.Errorf("expected no idle -> success shortcut, got %s %v", s.Status(), story.IDs(s.Items))
	}
}

func TestLastWriteWinsIgnoresCompletionWithoutBegin(t *testing.T) {
	s := Reduce(State{}, FetchSucceeded{Gen: 7, Items: items("a")}, PolicyLastWriteWins)
	if s.Status() != Idle || len(s.Items) != 0 {
		t.Errorf("expected no idle -> success shortcut, got %s %v", s.Status(), story.IDs(s.Items))
	}
	s = Reduce(State{}, FetchFailed{Gen: 7, Err: errors.New("late")}, PolicyLastWriteWins)
	if s.Status() != Idle || s.IsError {
		t.Errorf("expected no idle -> failure shortcut, got %s", s.Status())
	}
}

// Known race: with last-write-wins a superseded response still commits.
func TestLastWriteWinsStaleResponseOverwrites(t *testing.T) {
	var s State
	s = Reduce(s, BeginFetch{Gen: 1}, PolicyLastWriteWins)
	s = Reduce(s, BeginFetch{Gen: 2}, PolicyLastWriteWins)
	s = Reduce(s, FetchSucceeded{Gen: 2, Items: items("new")}, PolicyLastWriteWins)
	s = Reduce(s, FetchSucceeded{Gen: 1, Items: items("old")}, PolicyLastWriteWins)

	if !slices.Equal(story.IDs(s.Items), []string{"old"}) {
		t.Errorf("expected stale response to win, got %v", story.IDs(s.Items))
	}
}

type rogue struct{ BeginFetch }

func TestUnknownActionPanics(t *testing.T) {
	for name, a := range map[string]Action{"nil": nil, "embedded": rogue{}} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				var uae *UnknownActionError
				err, ok := r.(error)
				if !ok || !errors.As(err, &uae) {
					t.Fatalf("expected *UnknownActionError panic, got %v", r)
				}
			}()
			Reduce(State{}, a, PolicyLatestOnly)
		})
	}
}

func TestMachineGenerations(t *testing.T) {
	m := NewMachine(PolicyLatestOnly)
	g1 := m.Next()
	m.Dispatch(BeginFetch{Gen: g1})
	g2 := m.Next()
	m.Dispatch(BeginFetch{Gen: g2})
	if g1 == g2 {
		t.Fatalf("expected distinct generations, got %d twice", g1)
	}

	m.Dispatch(FetchSucceeded{Gen: g1, Items: items("old")})
	if m.State().Status() != Loading {
		t.Errorf("expected still loading, got %s", m.State().Status())
	}
	m.Dispatch(FetchSucceeded{Gen: g2, Items: items("new")})
	if m.State().Status() != Success || m.State().Items[0].ID != "new" {
		t.Errorf("expected success with new, got %+v", m.State())
	}
}

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		in   string
		want Policy
		ok   bool
	}{
		{"", PolicyLatestOnly, true},
		{"latest", PolicyLatestOnly, true},
		{"last-write-wins", PolicyLastWriteWins, true},
		{"random", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePolicy(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParsePolicy(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
