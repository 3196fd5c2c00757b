package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPremium = lipgloss.Color("#d4af37")
	colorFree    = lipgloss.Color("#3f9cff")
	colorMuted   = lipgloss.Color("#a9a9b3")
	colorBad     = lipgloss.Color("#ff6b6b")
	colorGood    = lipgloss.Color("#4ee38a")
	colorAccent  = lipgloss.Color("#c46bff")
	colorBorder  = lipgloss.Color("#444444")

	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	dirtyStyle     = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	cleanStyle     = lipgloss.NewStyle().Foreground(colorGood)
	labelStyle     = lipgloss.NewStyle().Bold(true).Width(18)
	focusLabel     = labelStyle.Foreground(colorAccent)
	hintStyle      = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	premiumTile    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPremium).Width(12).Align(lipgloss.Center)
	freeTile       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFree).Width(12).Align(lipgloss.Center)
	selectedTile   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)
