package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Seed writes defaults for keys that have never been stored. Existing values win.
func (s *Store) Seed(defaults map[string]any) error {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		data, err := json.Marshal(defaults[k])
		if err != nil {
			return fmt.Errorf("encode default %q: %w", k, err)
		}
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO kv (key, value) VALUES (?, ?)`, k, string(data)); err != nil {
			return fmt.Errorf("seed %q: %w", k, err)
		}
	}
	return nil
}

// Entries lists raw stored values whose key starts with prefix.
func (s *Store) Entries(prefix string) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every key starting with prefix and reports how many were deleted.
func (s *Store) Clear(prefix string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`, likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("clear %q: %w", prefix, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
