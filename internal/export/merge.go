package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/store"
)

var ErrImportMalformed = errors.New("invalid backup file")

// MergeResult summarizes what an import changed.
type MergeResult struct {
	DaysUpdated int
	Added       int
	Total       int
}

// ParseBackup decodes a backup payload. Anything that is not a backup object is malformed.
func ParseBackup(data []byte) (Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	return b, nil
}

// Merge folds b into the store in one transaction. Each history day keeps the
// larger total, and journal records are unioned by id with existing records
// winning, then re-split into ledger and archive.
func Merge(kv store.Batcher, b Backup, now time.Time) (MergeResult, error) {
	var res MergeResult
	err := kv.Update(func(tx store.KV) error {
		res = MergeResult{}
		if b.History != nil {
			history := store.Get(tx, store.KeyHistory, map[string]int64{})
			if history == nil {
				history = map[string]int64{}
			}
			for day, secs := range b.History {
				if cur, ok := history[day]; !ok || secs > cur {
					history[day] = secs
					res.DaysUpdated++
				}
			}
			today := clock.DayKey(now)
			if err := tx.Save(store.KeyHistory, history); err != nil {
				return err
			}
			if err := tx.Save(store.KeyDailyTotal, history[today]); err != nil {
				return err
			}
			if err := tx.Save(store.KeyDailyDate, today); err != nil {
				return err
			}
		}

		if b.Journal != nil {
			current := append(
				store.Get(tx, store.KeyJournalLog, []journal.Record{}),
				store.Get(tx, store.KeyJournalArchive, []journal.Record{})...,
			)
			merged := MergeRecords(current, b.Journal)
			res.Added = len(merged) - len(MergeRecords(current, nil))
			res.Total = len(merged)

			active, archive := journal.Split(merged, journal.MaxEntries)
			if err := tx.Save(store.KeyJournalLog, active); err != nil {
				return err
			}
			if err := tx.Save(store.KeyJournalArchive, archive); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return MergeResult{}, fmt.Errorf("merge backup: %w", err)
	}
	return res, nil
}

// MergeRecords unions records by id, keeping the first occurrence, newest id first.
func MergeRecords(current, imported []journal.Record) []journal.Record {
	seen := make(map[int64]bool, len(current)+len(imported))
	out := make([]journal.Record, 0, len(current)+len(imported))
	for _, src := range [][]journal.Record{current, imported} {
		for _, r := range src {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// ImportFile reads, validates and merges a backup file.
func ImportFile(kv store.Batcher, path string, now time.Time) (MergeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MergeResult{}, fmt.Errorf("read backup: %w", err)
	}
	b, err := ParseBackup(data)
	if err != nil {
		return MergeResult{}, err
	}
	return Merge(kv, b, now)
}
