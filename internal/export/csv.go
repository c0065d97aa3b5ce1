package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sujoyonweb/blok/internal/journal"
)

const csvHeader = "Date,Time,Subject,Task,Duration,Focus Quality"

// WriteCSV writes focus records as a spreadsheet. Recovery records are left out.
// Subject and task are always quoted, which encoding/csv cannot be told to do.
func WriteCSV(w io.Writer, records []journal.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if r.IsRecovery() {
			continue
		}
		_, err := fmt.Fprintf(bw, "%s,%s,%s,%s,%s,%s\n",
			r.Date, r.Time, quote(r.Subject), quote(r.Task), FormatDuration(r.Duration), r.Quality)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToCSV writes records to a new file at path.
func ToCSV(records []journal.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatDuration renders seconds as "1h 5m" or "25m".
func FormatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
