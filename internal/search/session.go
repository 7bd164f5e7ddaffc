// Package search wires the query controller, the fetch state machine and the
// list view into one session.
package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fragmede/hnsearch/internal/lifecycle"
	"github.com/fragmede/hnsearch/internal/listview"
	"github.com/fragmede/hnsearch/internal/query"
	"github.com/fragmede/hnsearch/internal/story"
)

// ErrTimeout is recorded when a fetch exceeds the session timeout.
var ErrTimeout = errors.New("fetch timed out")

// Fetcher retrieves the items behind a query URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]story.Item, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]story.Item, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]story.Item, error) {
	return f(ctx, url)
}

// HistoryRecorder stores submitted queries.
type HistoryRecorder interface {
	AddHistory(term, url string) error
}

// Request identifies one started fetch.
type Request struct {
	Gen uint64
	URL string
}

// Result is the outcome of running a Request.
type Result struct {
	Gen   uint64
	URL   string
	Items []story.Item
	Err   error
}

// Options configures a Session.
type Options struct {
	Timeout time.Duration
	Policy  lifecycle.Policy
	Mode    listview.Mode
	Where   *listview.Predicate
	History HistoryRecorder
	// Invalidate drops any cached results for a URL before a refresh.
	Invalidate func(url string) error
	Logger     *slog.Logger
}

// Session owns the state for one interactive search. Begin, Complete,
// TypeTerm and Remove must be called from one goroutine; Run may be called
// from any.
type Session struct {
	machine *lifecycle.Machine
	ctrl    *query.Controller
	view    *listview.View
	fetcher Fetcher
	timeout time.Duration
	history HistoryRecorder
	inval   func(url string) error
	log     *slog.Logger
}

// NewSession builds a Session. It does not start a fetch.
func NewSession(ctrl *query.Controller, fetcher Fetcher, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := lifecycle.NewMachine(opts.Policy)
	return &Session{
		machine: m,
		ctrl:    ctrl,
		view:    listview.NewView(m, opts.Mode, opts.Where),
		fetcher: fetcher,
		timeout: opts.Timeout,
		history: opts.History,
		inval:   opts.Invalidate,
		log:     logger,
	}
}

// Begin moves the machine to Loading for q.
func (s *Session) Begin(q query.Query) Request {
	gen := s.machine.Next()
	s.machine.Dispatch(lifecycle.BeginFetch{Gen: gen})
	s.log.Debug("fetch started", "gen", gen, "url", q.URL())
	return Request{Gen: gen, URL: q.URL()}
}

// Run performs the fetch for req. It does not touch session state.
func (s *Session) Run(ctx context.Context, req Request) Result {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	items, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = errors.Join(ErrTimeout, err)
	}
	return Result{Gen: req.Gen, URL: req.URL, Items: items, Err: err}
}

// Complete applies res to the machine. Transport failures become the error
// flag and are never returned.
func (s *Session) Complete(res Result) {
	if res.Err != nil {
		s.log.Warn("fetch failed", "gen", res.Gen, "url", res.URL, "err", res.Err)
		s.machine.Dispatch(lifecycle.FetchFailed{Gen: res.Gen, Err: res.Err})
		return
	}
	s.log.Debug("fetch succeeded", "gen", res.Gen, "items", len(res.Items))
	s.machine.Dispatch(lifecycle.FetchSucceeded{Gen: res.Gen, Items: res.Items})
}

// Start begins a fetch of the active query without submitting; it is what
// runs on startup.
func (s *Session) Start() Request {
	return s.Begin(s.ctrl.Active())
}

// Submit snapshots the typed term into the active query and begins it.
func (s *Session) Submit() Request {
	q := s.ctrl.Submit()
	if s.history != nil {
		if err := s.history.AddHistory(q.Term, q.URL()); err != nil {
			s.log.Warn("recording history", "err", err)
		}
	}
	return s.Begin(q)
}

// Refresh drops cached results for the active query and begins it again.
// The typed term is left alone.
func (s *Session) Refresh() Request {
	active := s.ctrl.Active()
	if s.inval != nil {
		if err := s.inval(active.URL()); err != nil {
			s.log.Warn("invalidating results", "url", active.URL(), "err", err)
		}
	}
	return s.Begin(active)
}

// Load runs req to completion synchronously.
func (s *Session) Load(ctx context.Context, req Request) {
	s.Complete(s.Run(ctx, req))
}

// TypeTerm updates the typed term without fetching.
func (s *Session) TypeTerm(text string) { s.ctrl.UpdateTerm(text) }

// Term is the typed term.
func (s *Session) Term() string { return s.ctrl.Term() }

// CanSubmit reports whether the typed term is non-empty.
func (s *Session) CanSubmit() bool { return s.ctrl.CanSubmit() }

// Active is the last submitted query.
func (s *Session) Active() query.Query { return s.ctrl.Active() }

// Remove drops the item with id from the list.
func (s *Session) Remove(id string) {
	s.view.Remove(story.Item{ID: id})
}

// State is the current list state.
func (s *Session) State() lifecycle.State { return s.machine.State() }

// Visible is the list to display.
func (s *Session) Visible() []story.Item {
	return s.view.Items(s.machine.State(), s.ctrl.Term())
}

// Mode is the active filter mode.
func (s *Session) Mode() listview.Mode { return s.view.Mode }

// SetMode switches between server and client filtering.
func (s *Session) SetMode(m listview.Mode) { s.view.Mode = m }
