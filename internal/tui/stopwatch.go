package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stopwatch"
)

const maxVisibleLaps = 10

type stopwatchModel struct {
	core   *app.App
	width  int
	height int

	editing bool
	input   textinput.Model
}

func newStopwatchModel(core *app.App) stopwatchModel {
	ti := textinput.New()
	ti.Prompt = "Task: "
	ti.Placeholder = "what are you timing?"
	ti.CharLimit = 80
	return stopwatchModel{core: core, input: ti}
}

func (s *stopwatchModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.input.Width = clampInt(w-16, 10, 60)
}

func (s stopwatchModel) update(msg tea.Msg) (stopwatchModel, tea.Cmd) {
	if s.editing {
		return s.updateTask(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	sw := s.core.Stopwatch
	switch {
	case key.Matches(km, keys.Toggle):
		sw.Toggle()
	case key.Matches(km, keys.Lap):
		if sw.State() == stopwatch.Idle {
			return s, statusCmd("Start the stopwatch to record laps", true)
		}
		l := sw.Lap()
		return s, statusCmd(fmt.Sprintf("Lap %d  %s", l.Idx, l.Time), false)
	case key.Matches(km, keys.Reset):
		sw.Reset()
	case key.Matches(km, keys.Task):
		s.editing = true
		s.input.SetValue(sw.Task())
		s.input.CursorEnd()
		return s, s.input.Focus()
	}
	return s, nil
}

func (s stopwatchModel) updateTask(msg tea.Msg) (stopwatchModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Enter):
			s.core.Stopwatch.SetTask(strings.TrimSpace(s.input.Value()))
			s.editing = false
			s.input.Blur()
			return s, nil
		case key.Matches(km, keys.Back):
			s.editing = false
			s.input.Blur()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s stopwatchModel) view() string {
	w := s.width - 4
	sw := s.core.Stopwatch

	style := clockIdleStyle
	switch sw.State() {
	case stopwatch.Running:
		style = clockRunningStyle
	case stopwatch.Paused:
		style = clockPausedStyle
	}

	var rows []string
	rows = append(rows,
		titleStyle.Render("Stopwatch")+mutedStyle.Render(" · "+sw.State().String()),
		"",
		style.Render("  "+stopwatch.Format(sw.Elapsed())),
		"",
	)

	if s.editing {
		rows = append(rows, s.input.View())
	} else if task := sw.Task(); task != "" {
		rows = append(rows, "Task: "+highlightStyle.Render(task))
	} else {
		rows = append(rows, mutedStyle.Render("Task: (none)  press t to set"))
	}

	laps := sw.Laps()
	if len(laps) > 0 {
		rows = append(rows, "", titleStyle.Render("Laps"))
		for i, l := range laps {
			if i == maxVisibleLaps {
				rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(laps)-i)))
				break
			}
			rows = append(rows, normalItemStyle.Render(fmt.Sprintf("  #%-3d %s", l.Idx, l.Time)))
		}
	}

	rows = append(rows, "", mutedStyle.Render("space: start/pause  l: lap  r: reset  t: task"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
