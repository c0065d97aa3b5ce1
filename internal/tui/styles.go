package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary   = lipgloss.Color("#E07A5F") // terracotta
	colorSecondary = lipgloss.Color("#81B29A") // sage
	colorMuted     = lipgloss.Color("#7A7A85")
	colorSuccess   = lipgloss.Color("#6BCB77")
	colorWarning   = lipgloss.Color("#F2CC8F")
	colorError     = lipgloss.Color("#D1495B")
	colorFg        = lipgloss.Color("#EDEDF2")
	colorSubtle    = lipgloss.Color("#3D405B")
	colorHighlight = lipgloss.Color("#8FB8DE")

	colorRingGreen  = "#2ECC71"
	colorRingPurple = "#9B59B6"
	colorRingGold   = "#F1C40F"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Underline(true).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)

	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Padding(1, 2)
	activePanelStyle = panelStyle.BorderForeground(colorPrimary)

	// Clock faces by engine state
	clockIdleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	clockRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	clockPausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	clockBreakStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
)
