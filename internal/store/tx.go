package store

import (
	"database/sql"
	"fmt"
)

// Batcher is a KV that can apply several writes atomically.
type Batcher interface {
	KV
	Update(fn func(kv KV) error) error
}

type txKV struct {
	tx *sql.Tx
	s  *Store
}

func (t txKV) Load(key string, dst any) bool    { return load(t.tx, t.s, key, dst) }
func (t txKV) Save(key string, value any) error { return save(t.tx, key, value) }
func (t txKV) Remove(key string) error          { return remove(t.tx, key) }

// Update runs fn inside a transaction. Any error from fn rolls every write back.
func (s *Store) Update(fn func(kv KV) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(txKV{tx: tx, s: s}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
