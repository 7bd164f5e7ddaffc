package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/fragmede/hnsearch/internal/lifecycle"
	"github.com/fragmede/hnsearch/internal/listview"
	"github.com/fragmede/hnsearch/internal/persist"
	"github.com/fragmede/hnsearch/internal/query"
	"github.com/fragmede/hnsearch/internal/story"
)

const endpoint = "https://hn.algolia.com/api/v1/search?query="

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type historyLog struct{ terms []string }

func (h *historyLog) AddHistory(term, url string) error {
	h.terms = append(h.terms, term)
	return nil
}

func newSession(t *testing.T, f Fetcher, opts Options) *Session {
	t.Helper()
	opts.Logger = discard
	term := persist.NewString(persist.NewMemoryStore(), "search", "", discard)
	return NewSession(query.NewController(endpoint, term), f, opts)
}

func TestSubmitSuccessThenRemove(t *testing.T) {
	var gotURL string
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		gotURL = url
		return []story.Item{
			{ID: "100", Title: "Redux Toolkit"},
			{ID: "200", Title: "Redux in 2024"},
		}, nil
	})
	hist := &historyLog{}
	s := newSession(t, fetcher, Options{History: hist})

	if s.State().Status() != lifecycle.Idle {
		t.Fatalf("expected idle, got %s", s.State().Status())
	}

	s.TypeTerm("redux")
	req := s.Submit()
	if s.State().Status() != lifecycle.Loading {
		t.Fatalf("expected loading after submit, got %s", s.State().Status())
	}

	s.Load(context.Background(), req)
	if gotURL != endpoint+"redux" {
		t.Errorf("expected fetch of %q, got %q", endpoint+"redux", gotURL)
	}
	st := s.State()
	if st.Status() != lifecycle.Success {
		t.Fatalf("expected success, got %s", st.Status())
	}
	if !slices.Equal(story.IDs(st.Items), []string{"100", "200"}) {
		t.Fatalf("expected server order [100 200], got %v", story.IDs(st.Items))
	}

	s.Remove(st.Items[0].ID)
	left := s.State().Items
	if len(left) != 1 || left[0].ID != "200" {
		t.Errorf("expected only 200 left, got %v", story.IDs(left))
	}
	if !slices.Equal(hist.terms, []string{"redux"}) {
		t.Errorf("expected history [redux], got %v", hist.terms)
	}
}

func TestFailureIsRecoverable(t *testing.T) {
	fail := true
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		if fail {
			return nil, errors.New("HTTP 503")
		}
		return []story.Item{{ID: "1"}}, nil
	})
	s := newSession(t, fetcher, Options{})

	s.Load(context.Background(), s.Submit())
	st := s.State()
	if !st.IsError || st.IsLoading {
		t.Fatalf("expected {isError:true isLoading:false}, got %+v", st)
	}

	fail = false
	req := s.Submit()
	if s.State().Status() != lifecycle.Loading {
		t.Fatalf("expected loading on resubmit, got %s", s.State().Status())
	}
	s.Load(context.Background(), req)
	if s.State().Status() != lifecycle.Success {
		t.Errorf("expected success, got %s", s.State().Status())
	}
}

func TestTypingDoesNotFetch(t *testing.T) {
	calls := 0
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		calls++
		return nil, nil
	})
	s := newSession(t, fetcher, Options{})
	s.TypeTerm("a")
	s.TypeTerm("ab")
	if calls != 0 || s.State().Status() != lifecycle.Idle {
		t.Errorf("expected no fetch, got %d calls, status %s", calls, s.State().Status())
	}
}

func TestTimeoutBecomesFailure(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	s := newSession(t, fetcher, Options{Timeout: 20 * time.Millisecond})

	s.Load(context.Background(), s.Start())
	st := s.State()
	if st.Status() != lifecycle.Failure {
		t.Fatalf("expected failure, got %s", st.Status())
	}
	if !errors.Is(st.Err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", st.Err)
	}
}

func TestOverlappingFetchesLatestWins(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		return []story.Item{{ID: url}}, nil
	})
	s := newSession(t, fetcher, Options{})

	s.TypeTerm("old")
	first := s.Submit()
	s.TypeTerm("new")
	second := s.Submit()

	ctx := context.Background()
	s.Complete(s.Run(ctx, second))
	s.Complete(s.Run(ctx, first))

	if got := s.State().Items[0].ID; got != endpoint+"new" {
		t.Errorf("expected newest response to stick, got %q", got)
	}
}

// Known race kept for compatibility: last-write-wins lets an older response
// replace newer results.
func TestOverlappingFetchesLastWriteWins(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		return []story.Item{{ID: url}}, nil
	})
	s := newSession(t, fetcher, Options{Policy: lifecycle.PolicyLastWriteWins})

	s.TypeTerm("old")
	first := s.Submit()
	s.TypeTerm("new")
	second := s.Submit()

	ctx := context.Background()
	s.Complete(s.Run(ctx, second))
	s.Complete(s.Run(ctx, first))

	if got := s.State().Items[0].ID; got != endpoint+"old" {
		t.Errorf("expected stale response to win, got %q", got)
	}
}

func TestClientFilteredVisible(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		return []story.Item{{ID: "1", Title: "React"}, {ID: "2", Title: "Vue"}}, nil
	})
	s := newSession(t, fetcher, Options{Mode: listview.ClientFiltered})
	s.Load(context.Background(), s.Start())

	s.TypeTerm("vu")
	if v := s.Visible(); len(v) != 1 || v[0].Title != "Vue" {
		t.Errorf("expected [Vue], got %+v", v)
	}

	s.SetMode(listview.ServerFiltered)
	if v := s.Visible(); len(v) != 2 {
		t.Errorf("expected 2 items in server mode, got %d", len(v))
	}
}

func TestRefreshInvalidatesAndRefetchesActiveQuery(t *testing.T) {
	var urls []string
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]story.Item, error) {
		urls = append(urls, url)
		return []story.Item{{ID: "1"}}, nil
	})
	var dropped []string
	s := newSession(t, fetcher, Options{Invalidate: func(url string) error {
		dropped = append(dropped, url)
		return errors.New("db locked")
	}})

	s.TypeTerm("redux")
	s.Load(context.Background(), s.Submit())
	s.TypeTerm("draft")

	req := s.Refresh()
	if s.State().Status() != lifecycle.Loading {
		t.Fatalf("expected loading, got %s", s.State().Status())
	}
	s.Load(context.Background(), req)

	want := endpoint + "redux"
	if !slices.Equal(dropped, []string{want}) {
		t.Errorf("expected %s invalidated, got %v", want, dropped)
	}
	if !slices.Equal(urls, []string{want, want}) {
		t.Errorf("expected two fetches of %s, got %v", want, urls)
	}
	if s.Term() != "draft" || s.State().Status() != lifecycle.Success {
		t.Errorf("expected typed term kept and success, got %q %s", s.Term(), s.State().Status())
	}
}
