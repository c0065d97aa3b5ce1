package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/store"
)

func newJournal(t *testing.T, grace int64) (*Journal, *store.Store, *clock.Fake) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	clk := clock.NewFake(time.Date(2026, 3, 12, 14, 30, 0, 0, time.Local))
	return New(s, Options{Clock: clk, GraceSeconds: grace}), s, clk
}

// ==================== Classifier ====================

func TestCategorize(t *testing.T) {
	c := MustClassifier(DefaultDictionary())
	tests := []struct {
		text        string
		wantBucket  string
		wantSubject string
	}{
		{"I'm studying calculus", "📚 Study", "Mathematics"},
		{"", OthersBucket, Uncategorized},
		{"   ", OthersBucket, Uncategorized},
		{"CALCULUS revision", "📚 Study", "Mathematics"},
		{"quantum physics homework", "📚 Study", "Physics"},
		{"zzz qqq", OthersBucket, Uncategorized},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			bucket, subject := c.Categorize(tt.text)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantSubject, subject)
		})
	}
}

func TestCategorizeWholeWordsOnly(t *testing.T) {
	c := MustClassifier(DefaultDictionary())
	_, subject := c.Categorize("aftermath of the war")
	assert.NotEqual(t, "Mathematics", subject)
}

func TestClassifierOrderDecidesPriority(t *testing.T) {
	d, err := ParseDictionary([]byte(`
buckets:
  - name: First
    subjects:
      - name: Narrow
        keywords: [physics]
      - name: Broad
        keywords: [science, physics]
  - name: Second
    subjects:
      - name: Other
        keywords: ["c++", science]
`))
	require.NoError(t, err)
	c, err := NewClassifier(d)
	require.NoError(t, err)

	b, s := c.Categorize("physics and science")
	assert.Equal(t, "First", b)
	assert.Equal(t, "Narrow", s)

	b, s = c.Categorize("learning science")
	assert.Equal(t, "First", b)
	assert.Equal(t, "Broad", s)

	// Metacharacters are literal.
	_, s = c.Categorize("c+ grade")
	assert.Equal(t, Uncategorized, s)
}

func TestParseDictionaryRejectsEmpty(t *testing.T) {
	_, err := ParseDictionary([]byte("buckets: []\n"))
	assert.Error(t, err)
}

// ==================== Ledger ====================

func TestRecordSessionBelowGraceIsIgnored(t *testing.T) {
	j, _, _ := newJournal(t, 0)
	for _, d := range []int64{0, 1, 30, 59} {
		_, ok := j.RecordSession(d, "calculus")
		assert.False(t, ok, "duration %d", d)
	}
	assert.Empty(t, j.Logs())
}

func TestRecordSession(t *testing.T) {
	j, _, _ := newJournal(t, 0)

	rec, ok := j.RecordSession(1500, "  ")
	require.True(t, ok)
	assert.Equal(t, DefaultTask, rec.Task)
	assert.Equal(t, Uncategorized, rec.Subject)
	assert.Equal(t, Unrated, rec.Quality)
	assert.Equal(t, "Thu Mar 12 2026", rec.Date)
	assert.Equal(t, "14:30", rec.Time)

	rec2, ok := j.RecordSession(600, "calculus")
	require.True(t, ok)
	assert.Greater(t, rec2.ID, rec.ID)

	logs := j.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, rec2.ID, logs[0].ID)
}

func TestRecordBreak(t *testing.T) {
	j, _, _ := newJournal(t, 0)
	rec, ok := j.RecordBreak(300)
	require.True(t, ok)
	assert.True(t, rec.IsRecovery())
	assert.Equal(t, BreakMark, rec.Quality)
	assert.Equal(t, RecoverySubject, rec.Subject)
}

func TestLedgerOverflowMovesToArchive(t *testing.T) {
	j, _, clk := newJournal(t, 0)
	for i := 0; i < MaxEntries+3; i++ {
		_, ok := j.RecordSession(60, fmt.Sprintf("task %d", i))
		require.True(t, ok)
		clk.Advance(time.Second)
	}

	logs := j.Logs()
	archive := j.Archive()
	assert.Len(t, logs, MaxEntries)
	require.Len(t, archive, 3)
	assert.Equal(t, "task 2", archive[0].Task)
	assert.Equal(t, "task 0", archive[2].Task)
	assert.Len(t, j.AllLogs(), MaxEntries+3)
}

func TestUpdateLastReflectionRatesContiguousRun(t *testing.T) {
	j, s, clk := newJournal(t, 0)

	old := []Record{
		{ID: 1, Date: clock.DayKey(clk.Now().AddDate(0, 0, -1)), Duration: 600, Quality: Unrated},
	}
	require.NoError(t, s.Save(store.KeyJournalLog, old))
	j = New(s, Options{Clock: clk})

	j.RecordSession(600, "physics")
	j.UpdateLastReflection(Balanced)
	j.RecordSession(600, "physics")
	j.RecordSession(600, "physics")

	n := j.UpdateLastReflection(Deep)
	assert.Equal(t, 2, n)

	logs := j.Logs()
	require.Len(t, logs, 4)
	assert.Equal(t, Deep, logs[0].Quality)
	assert.Equal(t, Deep, logs[1].Quality)
	assert.Equal(t, Balanced, logs[2].Quality)
	assert.Equal(t, Unrated, logs[3].Quality)
}

func TestUpdateLastReflectionStopsAtBreak(t *testing.T) {
	j, _, _ := newJournal(t, 0)
	j.RecordSession(600, "physics")
	j.RecordBreak(300)
	assert.Equal(t, 0, j.UpdateLastReflection(Deep))
}

func TestIDsStayMonotonicAcrossRestart(t *testing.T) {
	j, s, clk := newJournal(t, 0)
	first, _ := j.RecordSession(600, "a")

	j2 := New(s, Options{Clock: clk})
	second, _ := j2.RecordSession(600, "b")
	assert.Greater(t, second.ID, first.ID)
}

func TestIDsStayAboveImportedHead(t *testing.T) {
	j, s, clk := newJournal(t, 0)
	first, _ := j.RecordSession(600, "a")

	// An import lands a record stamped an hour ahead.
	ahead := Record{ID: clock.Millis(clk.Now().Add(time.Hour)), Task: "imported", Duration: 900}
	require.NoError(t, s.Save(store.KeyJournalLog, []Record{ahead, first}))

	next, ok := j.RecordSession(600, "b")
	require.True(t, ok)
	assert.Greater(t, next.ID, ahead.ID)

	logs := j.Logs()
	require.Len(t, logs, 3)
	assert.Equal(t, []int64{next.ID, ahead.ID, first.ID}, []int64{logs[0].ID, logs[1].ID, logs[2].ID})
}

func TestSplitAndWindow(t *testing.T) {
	records := []Record{{ID: 3}, {ID: 2}, {ID: 1}}
	active, archive := Split(records, 2)
	assert.Len(t, active, 2)
	assert.Equal(t, []Record{{ID: 1}}, archive)

	active, archive = Split(records, 5)
	assert.Len(t, active, 3)
	assert.Empty(t, archive)

	now := time.UnixMilli(10 * 86400000)
	recs := []Record{{ID: 10 * 86400000}, {ID: 9*86400000 + 1}, {ID: 2 * 86400000}}
	assert.Len(t, Window(recs, now, 1), 2)
	assert.Len(t, Window(recs, now, 0), 3)
}
