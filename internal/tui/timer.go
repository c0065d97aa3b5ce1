package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/stats"
	"github.com/sujoyonweb/blok/internal/timer"
)

type timerForm int

const (
	formNone timerForm = iota
	formCustom
	formRating
	formMomentum
)

type timerModel struct {
	core   *app.App
	width  int
	height int

	formKind   timerForm
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	hours   *string
	minutes *string
	seconds *string
	label   *string
	quality *journal.Quality
	choice  *string

	editing bool
	input   textinput.Model

	picking bool
	cursor  int

	bar progress.Model
}

func newTimerModel(core *app.App) timerModel {
	h, m, s, l := "", "", "", ""
	q := journal.Quality("")
	c := ""

	ti := textinput.New()
	ti.Prompt = "Task: "
	ti.Placeholder = "what are you working on?"
	ti.CharLimit = 80

	return timerModel{
		core:    core,
		hours:   &h,
		minutes: &m,
		seconds: &s,
		label:   &l,
		quality: &q,
		choice:  &c,
		input:   ti,
		bar:     progress.New(progress.WithSolidFill(string(colorPrimary)), progress.WithoutPercentage()),
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.bar.Width = clampInt(w-12, 10, 60)
	t.input.Width = clampInt(w-16, 10, 60)
}

// capturing reports whether the view consumes every key.
func (t timerModel) capturing() bool {
	return t.formActive || t.editing || t.picking
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch {
	case t.formActive && t.form != nil:
		return t.updateForm(msg)
	case t.editing:
		return t.updateTask(msg)
	case t.picking:
		return t.updatePicker(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	tm := t.core.Timer
	switch {
	case key.Matches(km, keys.Toggle):
		err := tm.Toggle()
		switch {
		case errors.Is(err, timer.ErrStarting):
			return t, nil
		case errors.Is(err, timer.ErrAwaitingReflection):
			return t.showRating("Rate your last session")
		case err != nil:
			return t, statusCmd(err.Error(), true)
		}
	case key.Matches(km, keys.Stop):
		tm.Stop()
	case key.Matches(km, keys.Reset):
		tm.Reset()
	case key.Matches(km, keys.Task):
		t.editing = true
		t.input.SetValue(tm.Task())
		t.input.CursorEnd()
		return t, t.input.Focus()
	case key.Matches(km, keys.Preset):
		if tm.State() != timer.Idle {
			return t, statusCmd("Reset the timer to pick a preset", true)
		}
		t.picking = true
		t.cursor = 0
	case key.Matches(km, keys.Custom):
		if tm.State() != timer.Idle {
			return t, statusCmd("Reset the timer to set a duration", true)
		}
		return t.showCustom()
	case key.Matches(km, keys.Momentum):
		on := !tm.Snapshot().MomentumMode
		tm.SetMomentumMode(on)
		return t, statusCmd("Momentum "+onOff(on), false)
	case key.Matches(km, keys.AutoFlow):
		on := !tm.Snapshot().AutoFlow
		tm.SetAutoFlow(on)
		return t, statusCmd("Auto-flow "+onOff(on), false)
	}
	return t, nil
}

// prompt opens the form an engine event asks for.
func (t timerModel) prompt(e timer.Event) (timerModel, tea.Cmd) {
	t.editing = false
	t.picking = false
	switch e.Kind {
	case timer.EventMomentumChoice:
		return t.showMomentum(e.Total, e.Extra)
	case timer.EventFlowSummary:
		return t.showRating(fmt.Sprintf("Flow done: focus %s, break %s",
			stats.FormatDuration(e.Focus), stats.FormatDuration(e.Break)))
	}
	return t.showRating("Session complete")
}

func (t timerModel) showRating(title string) (timerModel, tea.Cmd) {
	*t.quality = ""
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[journal.Quality]().
				Title(title).
				Description("How focused were you?").
				Options(
					huh.NewOption("Deep", journal.Deep),
					huh.NewOption("Balanced", journal.Balanced),
					huh.NewOption("Distracted", journal.Distracted),
					huh.NewOption("Skip", journal.Quality("")),
				).
				Value(t.quality),
		),
	).WithShowHelp(false)
	t.formKind = formRating
	t.formActive = true
	return t, t.form.Init()
}

func (t timerModel) showMomentum(total, extra int64) (timerModel, tea.Cmd) {
	*t.choice = "keep"
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Session total "+stats.FormatDuration(total)).
				Description(fmt.Sprintf("You kept going for %s past the timer.", stats.FormatDuration(extra))).
				Options(
					huh.NewOption("Keep the extra time", "keep"),
					huh.NewOption("Save the planned duration only", "discard"),
				).
				Value(t.choice),
		),
	).WithShowHelp(false)
	t.formKind = formMomentum
	t.formActive = true
	return t, t.form.Init()
}

func (t timerModel) showCustom() (timerModel, tea.Cmd) {
	d := t.core.Timer.Snapshot().Duration
	*t.hours = strconv.FormatInt(d/3600, 10)
	*t.minutes = strconv.FormatInt((d%3600)/60, 10)
	*t.seconds = strconv.FormatInt(d%60, 10)
	*t.label = ""

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Hours").Value(t.hours).Validate(bounded(0, 99)),
			huh.NewInput().Title("Minutes").Value(t.minutes).Validate(bounded(0, 59)),
			huh.NewInput().Title("Seconds").Value(t.seconds).Validate(bounded(0, 59)),
			huh.NewInput().Title("Label").Placeholder("Custom").Value(t.label),
		).Title("Custom timer"),
	).WithShowHelp(true).WithShowErrors(true)
	t.formKind = formCustom
	t.formActive = true
	return t, t.form.Init()
}

func (t timerModel) updateForm(msg tea.Msg) (timerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return t.closeForm(false)
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	switch t.form.State {
	case huh.StateCompleted:
		return t.closeForm(true)
	case huh.StateAborted:
		return t.closeForm(false)
	}
	return t, cmd
}

// closeForm applies or cancels the open form. Cancelling a prompt still has to
// release the session the engine is holding.
func (t timerModel) closeForm(submit bool) (timerModel, tea.Cmd) {
	kind := t.formKind
	t.formActive = false
	t.form = nil
	t.formKind = formNone

	switch kind {
	case formCustom:
		if !submit {
			return t, nil
		}
		return t, t.applyCustom()
	case formMomentum:
		discard := submit && *t.choice == "discard"
		t.core.Timer.StopAndSave(discard)
		if !submit {
			return t, dataChanged
		}
		return t.showRating("Session saved")
	case formRating:
		q := *t.quality
		if !submit {
			q = ""
		}
		return t, t.applyRating(q)
	}
	return t, nil
}

func (t timerModel) applyCustom() tea.Cmd {
	h, _ := strconv.Atoi(strings.TrimSpace(*t.hours))
	m, _ := strconv.Atoi(strings.TrimSpace(*t.minutes))
	s, _ := strconv.Atoi(strings.TrimSpace(*t.seconds))
	if err := t.core.Timer.Set(h, m, s, strings.TrimSpace(*t.label)); err != nil {
		return statusCmd(err.Error(), true)
	}
	return statusCmd("Timer set to "+timer.FormatClock(t.core.Timer.Snapshot().Duration), false)
}

// applyRating rates the held session, or the latest saved ones once the
// engine has already reset. An empty quality skips rating.
func (t timerModel) applyRating(q journal.Quality) tea.Cmd {
	tm := t.core.Timer
	awaiting := tm.Snapshot().Awaiting
	if q == "" {
		if awaiting {
			tm.Reset()
		}
		return dataChanged
	}
	if awaiting {
		if err := tm.Reflect(q); err != nil {
			return statusCmd(err.Error(), true)
		}
	} else {
		t.core.Journal.UpdateLastReflection(q)
	}
	return tea.Batch(statusCmd("Rated "+string(q), false), dataChanged)
}

func (t timerModel) updateTask(msg tea.Msg) (timerModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Enter):
			t.core.Timer.SetTask(strings.TrimSpace(t.input.Value()))
			t.editing = false
			t.input.Blur()
			return t, nil
		case key.Matches(km, keys.Back):
			t.editing = false
			t.input.Blur()
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t timerModel) updatePicker(msg tea.Msg) (timerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(km, keys.Down):
		if t.cursor < len(timer.Presets)-1 {
			t.cursor++
		}
	case key.Matches(km, keys.Enter):
		t.picking = false
		p := timer.Presets[t.cursor]
		if err := t.core.Timer.SetPreset(p.Name); err != nil {
			return t, statusCmd(err.Error(), true)
		}
		return t, statusCmd(fmt.Sprintf("%s · %dm", p.Name, p.Minutes), false)
	case key.Matches(km, keys.Back):
		t.picking = false
	}
	return t, nil
}

func (t timerModel) view() string {
	w := t.width - 4
	snap := t.core.Timer.Snapshot()

	if t.formActive && t.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, t.renderFace(snap), "", t.form.View()),
		)
	}

	var rows []string
	rows = append(rows, t.renderFace(snap), "")

	if t.editing {
		rows = append(rows, t.input.View())
	} else {
		task := t.core.Timer.Task()
		if task == "" {
			rows = append(rows, mutedStyle.Render("Task: (none)  press t to set"))
		} else {
			rows = append(rows, "Task: "+highlightStyle.Render(task))
		}
	}

	ring := t.core.Stats.Ring()
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s  ·  goal %d%%  ·  streak %d",
		stats.TodayLine(t.core.Stats.TodayTotal()), int(ring.Ratio*100), t.core.Stats.Streak())))

	if t.picking {
		rows = append(rows, "", t.renderPicker())
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t timerModel) renderFace(snap timer.Snapshot) string {
	clock := timer.FormatClock(t.core.Timer.Display())
	if snap.InMomentum {
		clock = "+" + clock
	}

	style := clockIdleStyle
	switch {
	case snap.State == timer.Paused:
		style = clockPausedStyle
	case snap.State == timer.Running && snap.Phase == timer.Break:
		style = clockBreakStyle
	case snap.State == timer.Running:
		style = clockRunningStyle
	}

	ratio := 0.0
	if snap.InMomentum {
		ratio = 1
	} else if snap.Duration > 0 {
		ratio = float64(snap.Duration-snap.Remaining) / float64(snap.Duration)
	}

	var tags []string
	if snap.MomentumMode {
		tags = append(tags, "momentum")
	}
	if snap.AutoFlow {
		tags = append(tags, fmt.Sprintf("auto-flow %dm break", snap.BreakMinutes))
	}
	mode := ""
	if len(tags) > 0 {
		mode = warningStyle.Render("  [" + strings.Join(tags, ", ") + "]")
	}

	header := titleStyle.Render(snap.Label) + mutedStyle.Render(" · "+string(snap.Phase)+" · "+snap.State.String()) + mode
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		style.Render("  "+clock),
		"",
		t.bar.ViewAs(ratio),
	)
}

func (t timerModel) renderPicker() string {
	rows := []string{titleStyle.Render("Presets")}
	for i, p := range timer.Presets {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %dm", cursor, fit(p.Name, 12), p.Minutes)))
	}
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func bounded(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
