package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fragmede/hnsearch/internal/story"
)

// Retry wraps a Fetcher with bounded attempts. The state machine sees a
// single fetch regardless of how many attempts run underneath.
type Retry struct {
	Next     Fetcher
	Attempts int
	Backoff  time.Duration
	Logger   *slog.Logger
}

func (r Retry) Fetch(ctx context.Context, url string) ([]story.Item, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if r.Logger != nil {
				r.Logger.Info("retrying fetch", "attempt", i+1, "url", url, "err", err)
			}
			select {
			case <-ctx.Done():
				return nil, err
			case <-time.After(r.Backoff * time.Duration(i)):
			}
		}
		var items []story.Item
		items, err = r.Next.Fetch(ctx, url)
		if err == nil {
			return items, nil
		}
		if ctx.Err() != nil || isPermanent(err) {
			return nil, err
		}
	}
	return nil, err
}

// isPermanent reports whether err says retrying cannot help.
func isPermanent(err error) bool {
	var p interface{ Permanent() bool }
	return errors.As(err, &p) && p.Permanent()
}
