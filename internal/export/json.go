package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/store"
)

// Backup is the portable snapshot: the per-day history map and every journal record.
type Backup struct {
	History map[string]int64 `json:"history"`
	Journal []journal.Record `json:"journal"`
}

// Snapshot reads a backup from the store, active ledger first then archive.
func Snapshot(kv store.KV) Backup {
	logs := store.Get(kv, store.KeyJournalLog, []journal.Record{})
	archive := store.Get(kv, store.KeyJournalArchive, []journal.Record{})
	return Backup{
		History: store.Get(kv, store.KeyHistory, map[string]int64{}),
		Journal: append(logs, archive...),
	}
}

func ToJSON(b Backup, path string) error {
	if b.History == nil {
		b.History = map[string]int64{}
	}
	if b.Journal == nil {
		b.Journal = []journal.Record{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// Filename names an export file after the moment it was taken,
// e.g. blok_backup_Mar12_1430.json.
func Filename(kind string, t time.Time) string {
	ext := ".json"
	prefix := "blok_backup_"
	if kind == "csv" {
		ext = ".csv"
		prefix = "blok_data_"
	}
	return prefix + t.Format("Jan2_1504") + ext
}
