package cache

import "database/sql"

// Get returns the stored value for key. It satisfies persist.Store.
func (d *DB) Get(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key.
func (d *DB) Set(key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, key, value)
	return err
}
