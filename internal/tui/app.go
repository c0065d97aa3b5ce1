// Package tui is the full-screen terminal interface over the blok engines.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stopwatch"
	"github.com/sujoyonweb/blok/internal/store"
	"github.com/sujoyonweb/blok/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	core   *app.App
	width  int
	height int

	activeView viewState
	showHelp   bool

	timer     timerModel
	stopwatch stopwatchModel
	insights  insightsModel
	journal   journalModel
	settings  settingsModel
	transfer  transferModel

	help      help.Model
	status    string
	statusErr bool
	bell      io.Writer
}

func NewApp(core *app.App) App {
	h := help.New()
	h.ShowAll = false

	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}

	return App{
		core:       core,
		activeView: viewFromMode(store.Get(core.Store, store.KeyMode, viewModes[viewTimer])),
		timer:      newTimerModel(core),
		stopwatch:  newStopwatchModel(core),
		insights:   newInsightsModel(core),
		journal:    newJournalModel(core),
		settings:   newSettingsModel(core),
		transfer:   newTransferModel(core, dir),
		help:       h,
		bell:       os.Stdout,
	}
}

// Run starts the interface and blocks until the user quits.
func Run(core *app.App) error {
	p := tea.NewProgram(NewApp(core), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(a.core.Config.Tick()),
		a.insights.refresh(),
		a.journal.refresh(),
	)
}

// Update routes msg and then reacts to whatever the timer emitted meanwhile.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.update(msg)
	next, evCmd := next.drainEvents()
	return next, tea.Batch(cmd, evCmd)
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.stopwatch.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.journal.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.FocusMsg:
		a.core.Recovery.Resume()
		return a, dataChanged

	case tickMsg:
		a.core.Recovery.Beat()
		a.core.Timer.Tick()
		a.core.Stopwatch.Tick()
		return a, tickCmd(a.core.Config.Tick())

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		return a, nil

	case importDoneMsg:
		a.status = msg.text
		a.statusErr = false
		return a, dataChanged

	case dataChangedMsg:
		return a, tea.Batch(a.insights.refresh(), a.journal.refresh())

	case tea.KeyMsg:
		if a.transfer.active {
			var cmd tea.Cmd
			a.transfer, cmd = a.transfer.update(msg)
			return a, cmd
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Transfer):
			a.transfer = a.transfer.open()
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewTimer)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewStopwatch)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewInsights)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewJournal)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (App, tea.Cmd) {
	a.activeView = v
	if err := a.core.Store.Save(store.KeyMode, viewModes[v]); err != nil {
		a.core.Log.Warn("save active view", "err", err)
	}
	switch v {
	case viewInsights:
		return a, a.insights.refresh()
	case viewJournal:
		return a, a.journal.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewStopwatch:
		a.stopwatch, cmd = a.stopwatch.update(msg)
	case viewInsights:
		a.insights, cmd = a.insights.update(msg)
	case viewJournal:
		a.journal, cmd = a.journal.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}

	// Data messages belong to their view whichever one is showing.
	switch msg.(type) {
	case insightsDataMsg:
		if a.activeView != viewInsights {
			a.insights, _ = a.insights.update(msg)
		}
	case journalDataMsg:
		if a.activeView != viewJournal {
			a.journal, _ = a.journal.update(msg)
		}
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTimer:
		return a.timer.capturing()
	case viewStopwatch:
		return a.stopwatch.editing
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// drainEvents surfaces the timer's pending events: alarms ring the bell,
// prompts open in the timer view and saves refresh the data views.
func (a App) drainEvents() (App, tea.Cmd) {
	events := a.core.Timer.Events()
	if len(events) == 0 {
		return a, nil
	}

	var cmds []tea.Cmd
	saved := false
	for _, e := range events {
		switch e.Kind {
		case timer.EventAlarm:
			cmds = append(cmds, bellCmd(a.bell))
		case timer.EventRatingPrompt, timer.EventMomentumChoice, timer.EventFlowSummary:
			var cmd tea.Cmd
			a.timer, cmd = a.timer.prompt(e)
			a.activeView = viewTimer
			cmds = append(cmds, cmd)
		case timer.EventSessionSaved:
			saved = true
		}
		if text := describeEvent(e); text != "" {
			a.status = text
			a.statusErr = false
		}
	}

	if saved {
		if level, ok := a.core.Stats.Celebrate(); ok {
			a.status = fmt.Sprintf("Daily goal: %s ring closed", ringName(level))
			a.statusErr = false
		}
		cmds = append(cmds, dataChanged)
	}
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewStopwatch:
		content = a.stopwatch.view()
	case viewInsights:
		content = a.insights.view()
	case viewJournal:
		content = a.journal.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.transfer.active {
		content = a.transfer.view(a.width)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("blok")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Running engines in the footer
	indicator := ""
	snap := a.core.Timer.Snapshot()
	switch snap.State {
	case timer.Running:
		indicator = successStyle.Render(" ● " + timer.FormatClock(a.core.Timer.Display()))
	case timer.Paused:
		indicator = warningStyle.Render(" ⏸ " + timer.FormatClock(a.core.Timer.Display()))
	}
	if a.core.Stopwatch.State() == stopwatch.Running {
		indicator += successStyle.Render(" ◷ " + stopwatch.Format(a.core.Stopwatch.Elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := indicator + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
