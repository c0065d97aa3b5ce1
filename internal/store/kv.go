package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// KV is the persistence contract shared by the engines. Values are JSON encoded.
// Load never fails: a missing or undecodable value reports false and leaves dst untouched.
type KV interface {
	Load(key string, dst any) bool
	Save(key string, value any) error
	Remove(key string) error
}

// Get reads key into a T, returning fallback when the value is absent or corrupt.
func Get[T any](kv KV, key string, fallback T) T {
	var v T
	if !kv.Load(key, &v) {
		return fallback
	}
	return v
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (s *Store) Load(key string, dst any) bool {
	return load(s.db, s, key, dst)
}

func (s *Store) Save(key string, value any) error {
	return save(s.db, key, value)
}

func (s *Store) Remove(key string) error {
	return remove(s.db, key)
}

func load(q querier, s *Store, key string, dst any) bool {
	var raw string
	err := q.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("read key", "key", key, "err", err)
		}
		return false
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	// Decode into a scratch value so a half-decoded payload never leaks into dst.
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		s.log.Warn("corrupt value, using fallback", "key", key, "err", err)
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

func save(q querier, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = q.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func remove(q querier, key string) error {
	if _, err := q.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
