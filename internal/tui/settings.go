package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stats"
	"github.com/sujoyonweb/blok/internal/timer"
)

type settingsModel struct {
	core   *app.App
	width  int
	height int

	formActive bool
	form       *huh.Form
	wiping     bool

	// Form values as pointers (survive value copies)
	goalHours     *string
	breakMinutes  *string
	momentum      *bool
	autoFlow      *bool
	notifications *bool
	confirmWipe   *bool
}

func newSettingsModel(core *app.App) settingsModel {
	g, b := "", ""
	m, a, n, w := false, false, false, false
	return settingsModel{
		core:          core,
		goalHours:     &g,
		breakMinutes:  &b,
		momentum:      &m,
		autoFlow:      &a,
		notifications: &n,
		confirmWipe:   &w,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		case key.Matches(msg, keys.Wipe):
			return s.showWipe()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	snap := s.core.Timer.Snapshot()
	*s.goalHours = strconv.FormatInt(s.core.Stats.Goal()/3600, 10)
	*s.breakMinutes = strconv.FormatInt(snap.BreakMinutes, 10)
	*s.momentum = snap.MomentumMode
	*s.autoFlow = snap.AutoFlow
	*s.notifications = s.core.Notify.Enabled()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily goal (hours)").Value(s.goalHours).
				Validate(bounded(stats.MinGoalHours, stats.MaxGoalHours)),
			huh.NewInput().Title("Auto-flow break (min)").Value(s.breakMinutes).
				Validate(bounded(1, timer.MaxBreakMinutes)),
		).Title("Goals"),
		huh.NewGroup(
			huh.NewConfirm().Title("Momentum").
				Description("Keep counting past zero until you stop.").
				Affirmative("On").Negative("Off").Value(s.momentum),
			huh.NewConfirm().Title("Auto-flow").
				Description("Cycle focus and break automatically. Turns momentum off.").
				Affirmative("On").Negative("Off").Value(s.autoFlow),
			huh.NewConfirm().Title("Desktop notifications").
				Affirmative("On").Negative("Off").Value(s.notifications),
		).Title("Modes"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.wiping = false
	return s, s.form.Init()
}

func (s settingsModel) showWipe() (settingsModel, tea.Cmd) {
	*s.confirmWipe = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Erase all sessions, history and settings?").
				Description("Export a backup first if you want to keep them.").
				Affirmative("Erase").Negative("Cancel").
				Value(s.confirmWipe),
		),
	).WithShowHelp(false)
	s.formActive = true
	s.wiping = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		if s.wiping {
			if !*s.confirmWipe {
				return s, nil
			}
			return s, s.wipe()
		}
		return s, s.save()
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
		return s, nil
	}
	return s, cmd
}

// save applies the form values. Auto-flow goes first so that enabling both
// modes leaves auto-flow on.
func (s settingsModel) save() tea.Cmd {
	var errs []string

	hours, _ := strconv.Atoi(strings.TrimSpace(*s.goalHours))
	if err := s.core.Stats.SetGoalHours(hours); err != nil {
		errs = append(errs, err.Error())
	}
	mins, _ := strconv.Atoi(strings.TrimSpace(*s.breakMinutes))
	if err := s.core.Timer.SetBreakMinutes(int64(mins)); err != nil {
		errs = append(errs, err.Error())
	}
	s.core.Timer.SetAutoFlow(*s.autoFlow)
	s.core.Timer.SetMomentumMode(*s.momentum && !*s.autoFlow)
	if *s.notifications != s.core.Notify.Enabled() {
		if err := s.core.Notify.SetEnabled(*s.notifications); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return tea.Batch(statusCmd(strings.Join(errs, "; "), true), dataChanged)
	}
	return tea.Batch(statusCmd("Settings saved", false), dataChanged)
}

func (s settingsModel) wipe() tea.Cmd {
	n, err := s.core.FactoryReset()
	if err != nil {
		return statusCmd(fmt.Sprintf("Reset error: %v", err), true)
	}
	return tea.Batch(statusCmd(fmt.Sprintf("Factory reset: removed %d key(s)", n), false), dataChanged)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	snap := s.core.Timer.Snapshot()
	items := []struct{ label, value string }{
		{"Daily goal", stats.FormatDuration(s.core.Stats.Goal())},
		{"Break", fmt.Sprintf("%d min", snap.BreakMinutes)},
		{"Momentum", onOff(snap.MomentumMode)},
		{"Auto-flow", onOff(snap.AutoFlow)},
		{"Notifications", onOff(s.core.Notify.Enabled())},
		{"Database", s.core.Config.DBPath},
		{"Grace period", fmt.Sprintf("%ds", s.core.Config.GraceSeconds)},
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"), "")
	for _, it := range items {
		label := lipgloss.NewStyle().Width(24).Render(it.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(it.value)))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings, X for factory reset"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
