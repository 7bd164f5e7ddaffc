package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fragmede/hnsearch/internal/search"
	"github.com/fragmede/hnsearch/internal/story"
)

// GetResults retrieves cached items for a query URL.
// Returns (items, isFresh, error). items is nil on cache miss.
func (d *DB) GetResults(url string, ttl time.Duration) ([]story.Item, bool, error) {
	row := d.db.QueryRow(`SELECT items, fetched_at FROM results WHERE url = ?`, url)

	var itemsJSON string
	var fetchedAt int64
	err := row.Scan(&itemsJSON, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	items := []story.Item{}
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, false, err
	}

	isFresh := time.Since(time.Unix(fetchedAt, 0)) < ttl
	return items, isFresh, nil
}

// PutResults stores the items fetched for a query URL.
func (d *DB) PutResults(url string, items []story.Item) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`INSERT OR REPLACE INTO results (url, items, fetched_at) VALUES (?, ?, ?)`,
		url, string(itemsJSON), time.Now().Unix())
	return err
}

// InvalidateResults drops the cached items for a query URL.
func (d *DB) InvalidateResults(url string) error {
	_, err := d.db.Exec(`DELETE FROM results WHERE url = ?`, url)
	return err
}

// Cached serves fresh results from the database and writes successful
// fetches through to it.
type Cached struct {
	DB     *DB
	TTL    time.Duration
	Next   search.Fetcher
	Logger *slog.Logger
}

func (c Cached) Fetch(ctx context.Context, url string) ([]story.Item, error) {
	if items, fresh, err := c.DB.GetResults(url, c.TTL); err == nil && fresh {
		return items, nil
	}

	items, err := c.Next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.DB.PutResults(url, items); err != nil && c.Logger != nil {
		c.Logger.Warn("caching results", "url", url, "err", err)
	}
	return items, nil
}
