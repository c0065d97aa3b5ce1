package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stats"
)

type insightsModel struct {
	core   *app.App
	width  int
	height int

	rng    stats.Range
	report stats.Report
	week   stats.Week
	chart  barchart.Model

	green  progress.Model
	purple progress.Model
	gold   progress.Model
	share  progress.Model
}

func newInsightsModel(core *app.App) insightsModel {
	bar := func(color string) progress.Model {
		return progress.New(progress.WithSolidFill(color), progress.WithoutPercentage(), progress.WithWidth(30))
	}
	return insightsModel{
		core:   core,
		chart:  barchart.New(60, 12),
		green:  bar(colorRingGreen),
		purple: bar(colorRingPurple),
		gold:   bar(colorRingGold),
		share:  bar(string(colorHighlight)),
	}
}

func (r *insightsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	pw := clampInt(w/3, 10, 40)
	r.green.Width = pw
	r.purple.Width = pw
	r.gold.Width = pw
	r.share.Width = clampInt(w/4, 10, 30)
	r.buildChart()
}

type insightsDataMsg struct {
	report stats.Report
	week   stats.Week
}

func (r insightsModel) refresh() tea.Cmd {
	core, rng := r.core, r.rng
	return func() tea.Msg {
		rep := stats.Insights(core.Journal.AllLogs(), rng, core.Stats.Goal(), core.Clock.Now())
		return insightsDataMsg{report: rep, week: core.Stats.Week()}
	}
}

func (r insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsDataMsg:
		r.report = msg.report
		r.week = msg.week
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
			if r.rng == stats.Today {
				r.rng = stats.ThisWeek
			} else {
				r.rng = stats.Today
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *insightsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if r.height > 40 {
		chartHeight = 12
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range r.week.Days {
		style := lipgloss.NewStyle().Foreground(colorSecondary)
		if d.Today {
			style = lipgloss.NewStyle().Foreground(colorPrimary)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format("Mon"),
			Values: []barchart.BarValue{{
				Name:  d.Label,
				Value: float64(d.Seconds) / 3600.0,
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r insightsModel) view() string {
	w := r.width - 4
	rep := r.report

	todayTab := inactiveTabStyle.Render("Today")
	weekTab := inactiveTabStyle.Render("Week")
	if r.rng == stats.Today {
		todayTab = activeTabStyle.Render("Today")
	} else {
		weekTab = activeTabStyle.Render("Week")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Insights"), "  ", todayTab, weekTab,
		"  ", mutedStyle.Render("←/→ switch range"),
	)

	var rows []string
	rows = append(rows, header, "")
	rows = append(rows, fmt.Sprintf("%s focus  ·  %s recovery",
		highlightStyle.Render(stats.FormatDuration(rep.Focus)), stats.FormatDuration(rep.Recovery)))
	if r.rng == stats.Today {
		rows = append(rows, mutedStyle.Render(deltaLine(rep.Delta)))
	}
	rows = append(rows, fmt.Sprintf("Goal %d%% of %s  ·  streak %d day(s)",
		rep.GoalPct, stats.FormatDuration(rep.GoalTarget), r.core.Stats.Streak()))

	ring := r.core.Stats.Ring()
	rows = append(rows, "",
		"1x "+r.green.ViewAs(ring.Green),
		"2x "+r.purple.ViewAs(ring.Purple),
		"3x "+r.gold.ViewAs(ring.Gold),
		"")

	if rep.Quality.Pending {
		rows = append(rows, "Quality: "+mutedStyle.Render("pending"))
	} else {
		rows = append(rows, fmt.Sprintf("Quality: %d%% %s", rep.Quality.Percent, qualityStyle(rep.Quality.Percent).Render(rep.Quality.Label())))
	}
	rows = append(rows, "Most time: "+highlightStyle.Render(rep.Highlight), "")

	rows = append(rows, titleStyle.Render("Categories"))
	rows = append(rows, r.renderBars(rep.Macros)...)
	if len(rep.Micros) > 0 {
		rows = append(rows, "", titleStyle.Render("Subjects"))
		rows = append(rows, r.renderBars(rep.Micros)...)
	}
	rows = append(rows, "", titleStyle.Render("Efficiency"))
	rows = append(rows, r.renderBars(rep.Efficiency)...)

	rows = append(rows, "", titleStyle.Render("Last 7 days"), r.chart.View())
	var labels []string
	for _, d := range r.week.Days {
		labels = append(labels, fit(d.Date.Format("Mon")+" "+d.Label, 10))
	}
	rows = append(rows, mutedStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, labels...)))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (r insightsModel) renderBars(bars []stats.Bar) []string {
	var rows []string
	for _, b := range bars {
		rows = append(rows, fmt.Sprintf("  %s %s %3d%%  %s",
			fit(b.Name, 18), r.share.ViewAs(float64(b.Percent)/100), b.Percent, mutedStyle.Render(stats.FormatDuration(b.Seconds))))
	}
	return rows
}

func deltaLine(delta int64) string {
	switch {
	case delta > 0:
		return "+" + stats.FormatDuration(delta) + " vs yesterday"
	case delta < 0:
		return "-" + stats.FormatDuration(-delta) + " vs yesterday"
	}
	return "same as yesterday"
}

func qualityStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 80:
		return successStyle
	case pct >= 60:
		return warningStyle
	}
	return errorStyle
}
