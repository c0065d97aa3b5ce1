package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/stats"
)

type journalModel struct {
	core   *app.App
	width  int
	height int

	records  []journal.Record
	archived int
	cursor   int
}

func newJournalModel(core *app.App) journalModel {
	return journalModel{core: core}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

type journalDataMsg struct {
	records  []journal.Record
	archived int
}

func (j journalModel) refresh() tea.Cmd {
	core := j.core
	return func() tea.Msg {
		return journalDataMsg{records: core.Journal.AllLogs(), archived: len(core.Journal.Archive())}
	}
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case journalDataMsg:
		j.records = msg.records
		j.archived = msg.archived
		if j.cursor >= len(j.records) {
			j.cursor = max(len(j.records)-1, 0)
		}
		return j, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.records)-1 {
				j.cursor++
			}
		}
	}
	return j, nil
}

// visibleRows is how many records fit under the panel header.
func (j journalModel) visibleRows() int {
	return max(j.height-8, 3)
}

func (j journalModel) view() string {
	w := j.width - 4
	title := titleStyle.Render("Journal")
	summary := mutedStyle.Render(fmt.Sprintf("  %d session(s), %d archived",
		len(j.records), j.archived))

	var rows []string
	rows = append(rows, title+summary, "")

	if len(j.records) == 0 {
		rows = append(rows, mutedStyle.Render("No sessions yet. Finish a timer to start your journal."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	n := j.visibleRows()
	start := 0
	if j.cursor >= n {
		start = j.cursor - n + 1
	}
	end := min(start+n, len(j.records))

	for i := start; i < end; i++ {
		r := j.records[i]
		line := fmt.Sprintf("%s %s  %s  %s  %s  %s",
			r.Date, r.Time,
			fit(stats.FormatDuration(r.Duration), 7),
			fit(r.Subject, 16),
			fit(r.Task, 24),
			r.Quality)
		cursor := "  "
		style := normalItemStyle
		if r.IsRecovery() {
			style = mutedStyle
		}
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+line))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
