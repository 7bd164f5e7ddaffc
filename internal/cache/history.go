package cache

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// HistoryEntry is one submitted query.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Term      string    `json:"term"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *DB) newID(t time.Time) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), d.entropy).String()
}

// AddHistory records a submitted query.
func (d *DB) AddHistory(term, url string) error {
	now := time.Now()
	_, err := d.db.Exec(`INSERT INTO history (id, term, url, created_at) VALUES (?, ?, ?, ?)`,
		d.newID(now), term, url, now.UnixMilli())
	return err
}

// History returns the most recent submitted queries, newest first.
func (d *DB) History(limit int) ([]HistoryEntry, error) {
	rows, err := d.db.Query(`SELECT id, term, url, created_at FROM history
		ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Term, &e.URL, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, e)
	}
	return result, rows.Err()
}
