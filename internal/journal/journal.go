// Package journal classifies finished sessions and keeps the bounded session ledger.
package journal

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/store"
)

// MaxEntries caps the active ledger; older records move to the archive.
const MaxEntries = 500

// DefaultGraceSeconds is the shortest session worth recording.
const DefaultGraceSeconds = 60

type Quality string

const (
	Unrated    Quality = "unrated"
	Deep       Quality = "deep"
	Balanced   Quality = "balanced"
	Distracted Quality = "distracted"
	BreakMark  Quality = "break"
)

// Valid reports whether q is a rating a user can give.
func (q Quality) Valid() bool {
	switch q {
	case Deep, Balanced, Distracted:
		return true
	}
	return false
}

const (
	DefaultTask     = "Focus Session"
	RecoveryBucket  = "Recovery"
	RecoveryTask    = "Recovery"
	RecoverySubject = "Break"
)

// Record is one completed session. Field names match the backup format.
type Record struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Duration int64   `json:"duration"`
	Task     string  `json:"task"`
	Bucket   string  `json:"bucket"`
	Subject  string  `json:"subject"`
	Quality  Quality `json:"quality"`
}

// IsRecovery reports whether r logs a break rather than focus time.
func (r Record) IsRecovery() bool {
	return r.Bucket == RecoveryBucket
}

type Options struct {
	Classifier   *Classifier
	Clock        clock.Clock
	Logger       *log.Logger
	GraceSeconds int64
}

// Journal owns the active ledger and its archive in the store.
type Journal struct {
	kv         store.KV
	classifier *Classifier
	clock      clock.Clock
	log        *log.Logger
	grace      int64
	lastID     int64
}

func New(kv store.KV, opts Options) *Journal {
	j := &Journal{
		kv:         kv,
		classifier: opts.Classifier,
		clock:      opts.Clock,
		log:        opts.Logger,
		grace:      opts.GraceSeconds,
	}
	if j.classifier == nil {
		j.classifier = MustClassifier(DefaultDictionary())
	}
	if j.clock == nil {
		j.clock = clock.Real{}
	}
	if j.log == nil {
		j.log = log.New(io.Discard)
	}
	if j.grace <= 0 {
		j.grace = DefaultGraceSeconds
	}

	var existing []Record
	if !kv.Load(store.KeyJournalLog, &existing) {
		if err := kv.Save(store.KeyJournalLog, []Record{}); err != nil {
			j.log.Warn("init journal", "err", err)
		}
	}
	return j
}

// Categorize classifies task text.
func (j *Journal) Categorize(text string) (bucket, subject string) {
	return j.classifier.Categorize(text)
}

// Grace returns the minimum recordable duration in seconds.
func (j *Journal) Grace() int64 { return j.grace }

// RecordSession classifies task and prepends an unrated focus record.
// Sessions shorter than the grace period are ignored.
func (j *Journal) RecordSession(seconds int64, task string) (Record, bool) {
	if seconds < j.grace {
		j.log.Debug("session below grace period, not recorded", "seconds", seconds)
		return Record{}, false
	}
	task = strings.TrimSpace(task)
	bucket, subject := j.classifier.Categorize(task)
	if task == "" {
		task = DefaultTask
	}
	r := j.newRecord(seconds)
	r.Task = task
	r.Bucket = bucket
	r.Subject = subject
	r.Quality = Unrated
	j.prepend(r)
	j.log.Info("session recorded", "seconds", seconds, "bucket", bucket, "subject", subject)
	return r, true
}

// RecordBreak prepends a recovery record for a finished break.
func (j *Journal) RecordBreak(seconds int64) (Record, bool) {
	if seconds < j.grace {
		j.log.Debug("break below grace period, not recorded", "seconds", seconds)
		return Record{}, false
	}
	r := j.newRecord(seconds)
	r.Task = RecoveryTask
	r.Bucket = RecoveryBucket
	r.Subject = RecoverySubject
	r.Quality = BreakMark
	j.prepend(r)
	j.log.Info("break recorded", "seconds", seconds)
	return r, true
}

// UpdateLastReflection rates the newest run of today's unrated records, stopping at the
// first record from another day or one that already carries a quality. Returns how many
// records changed.
func (j *Journal) UpdateLastReflection(q Quality) int {
	logs := j.Logs()
	if len(logs) == 0 {
		return 0
	}
	today := clock.DayKey(j.clock.Now())
	n := 0
	for i := range logs {
		if logs[i].Date != today || logs[i].Quality != Unrated {
			break
		}
		logs[i].Quality = q
		n++
	}
	if n == 0 {
		return 0
	}
	if err := j.kv.Save(store.KeyJournalLog, logs); err != nil {
		j.log.Warn("save reflection", "err", err)
		return 0
	}
	return n
}

// Logs returns the active ledger, newest first.
func (j *Journal) Logs() []Record {
	return store.Get(j.kv, store.KeyJournalLog, []Record{})
}

// Archive returns records evicted from the active ledger, newest first.
func (j *Journal) Archive() []Record {
	return store.Get(j.kv, store.KeyJournalArchive, []Record{})
}

// AllLogs returns the active ledger followed by the archive.
func (j *Journal) AllLogs() []Record {
	return append(j.Logs(), j.Archive()...)
}

// newRecord stamps a record with an id above the ledger head, which an import
// may have moved since the last save.
func (j *Journal) newRecord(seconds int64) Record {
	if logs := j.Logs(); len(logs) > 0 && logs[0].ID > j.lastID {
		j.lastID = logs[0].ID
	}
	now := j.clock.Now()
	id := clock.Millis(now)
	if id <= j.lastID {
		id = j.lastID + 1
	}
	j.lastID = id
	return Record{
		ID:       id,
		Date:     clock.DayKey(now),
		Time:     clock.ClockTime(now),
		Duration: seconds,
	}
}

func (j *Journal) prepend(r Record) {
	logs := append([]Record{r}, j.Logs()...)
	if len(logs) > MaxEntries {
		overflow := logs[len(logs)-1]
		logs = logs[:len(logs)-1]
		archive := append([]Record{overflow}, j.Archive()...)
		if err := j.kv.Save(store.KeyJournalArchive, archive); err != nil {
			j.log.Warn("save archive", "err", err)
		}
	}
	if err := j.kv.Save(store.KeyJournalLog, logs); err != nil {
		j.log.Warn("save journal", "err", err)
	}
}

// Split divides newest-first records into the active ledger and the archive.
func Split(records []Record, max int) (active, archive []Record) {
	if len(records) <= max {
		return records, []Record{}
	}
	return records[:max], records[max:]
}

// Window filters records whose id falls within the trailing number of days. days <= 0 keeps all.
func Window(records []Record, now time.Time, days int) []Record {
	if days <= 0 {
		return records
	}
	cutoff := clock.Millis(now.Add(-time.Duration(days) * 24 * time.Hour))
	var out []Record
	for _, r := range records {
		if r.ID >= cutoff {
			out = append(out, r)
		}
	}
	return out
}
