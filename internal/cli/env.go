package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fragmede/hnsearch/internal/api"
	"github.com/fragmede/hnsearch/internal/cache"
	"github.com/fragmede/hnsearch/internal/config"
	"github.com/fragmede/hnsearch/internal/lifecycle"
	"github.com/fragmede/hnsearch/internal/listview"
	"github.com/fragmede/hnsearch/internal/persist"
	"github.com/fragmede/hnsearch/internal/query"
	"github.com/fragmede/hnsearch/internal/search"
)

// env is everything a command needs, built from config.
type env struct {
	Session *search.Session
	Term    *persist.Value[string]
	DB      *cache.DB
	Logger  *slog.Logger

	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

func openLogger(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func open(c config.Config) (*env, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	mode, _ := listview.ParseMode(c.Mode)
	policy, _ := lifecycle.ParsePolicy(c.Policy)
	where, err := listview.CompilePredicate(c.Where)
	if err != nil {
		return nil, err
	}

	e := &env{}
	logger, lf, err := openLogger(c.LogPath)
	if err != nil {
		return nil, err
	}
	e.Logger = logger
	e.closers = append(e.closers, lf)

	db, err := cache.Open(c.DBPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	e.DB = db
	e.closers = append(e.closers, db)

	client := api.NewClient(c.FetchTimeout)
	var fetcher search.Fetcher = client
	if c.Pages > 1 {
		fetcher = api.Paged{Client: client, Pages: c.Pages}
	}
	if c.Retries > 0 {
		fetcher = search.Retry{Next: fetcher, Attempts: c.Retries + 1, Backoff: c.RetryBackoff, Logger: logger}
	}
	if !c.NoCache {
		fetcher = cache.Cached{DB: db, TTL: c.ResultTTL, Next: fetcher, Logger: logger}
	}

	e.Term = persist.NewString(db, c.SearchKey, "", logger)
	ctrl := query.NewController(c.Endpoint, e.Term)
	e.Session = search.NewSession(ctrl, fetcher, search.Options{
		Timeout:    c.FetchTimeout,
		Policy:     policy,
		Mode:       mode,
		Where:      where,
		History:    db,
		Invalidate: db.InvalidateResults,
		Logger:     logger,
	})
	return e, nil
}
