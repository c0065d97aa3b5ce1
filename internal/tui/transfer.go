package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
)

type transferAction int

const (
	transferCSV transferAction = iota
	transferCSVWeek
	transferJSON
	transferImport
)

var transferNames = []string{"CSV (all sessions)", "CSV (last 7 days)", "JSON backup", "Import backup…"}

// transferModel is the export/import picker overlay.
type transferModel struct {
	core *app.App
	dir  string

	active    bool
	cursor    int
	importing bool
	input     textinput.Model
}

func newTransferModel(core *app.App, dir string) transferModel {
	ti := textinput.New()
	ti.Prompt = "File: "
	ti.Placeholder = "path to a blok backup (.json)"
	ti.Width = 50
	return transferModel{core: core, dir: dir, input: ti}
}

func (t transferModel) open() transferModel {
	t.active = true
	t.cursor = 0
	t.importing = false
	return t
}

func (t transferModel) update(msg tea.KeyMsg) (transferModel, tea.Cmd) {
	if t.importing {
		switch {
		case key.Matches(msg, keys.Enter):
			path := strings.TrimSpace(t.input.Value())
			t.active = false
			t.importing = false
			t.input.Blur()
			if path == "" {
				return t, nil
			}
			return t, t.doImport(path)
		case key.Matches(msg, keys.Back):
			t.importing = false
			t.input.Blur()
			return t, nil
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}

	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(transferNames)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if transferAction(t.cursor) == transferImport {
			t.importing = true
			t.input.SetValue("")
			return t, t.input.Focus()
		}
		t.active = false
		return t, t.doExport(transferAction(t.cursor))
	case key.Matches(msg, keys.Back):
		t.active = false
	}
	return t, nil
}

func (t transferModel) doExport(action transferAction) tea.Cmd {
	core, dir := t.core, t.dir
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		switch action {
		case transferCSV:
			path, err = core.ExportCSV(dir, 0)
		case transferCSVWeek:
			path, err = core.ExportCSV(dir, 7)
		default:
			path, err = core.ExportJSON(dir)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (t transferModel) doImport(path string) tea.Cmd {
	core := t.core
	return func() tea.Msg {
		res, err := core.Import(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		return importDoneMsg{text: fmt.Sprintf("Imported %d session(s), %d day(s) updated", res.Added, res.DaysUpdated)}
	}
}

func (t transferModel) view(width int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export / Import"), "")
	for i, name := range transferNames {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+name))
	}
	rows = append(rows, "")
	if t.importing {
		rows = append(rows, t.input.View(), mutedStyle.Render("  enter: import  esc: back"))
	} else {
		rows = append(rows, mutedStyle.Render("  exports go to "+t.dir), mutedStyle.Render("  enter: select  esc: cancel"))
	}
	return activePanelStyle.Width(width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
