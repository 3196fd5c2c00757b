package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/battlepass-studio/internal/studio"
)

const tileWidth = 16

// renderPreview draws the tier ladder: one column per tier id with the
// premium tile above the free tile, then the selected column's rewards and
// the quest list.
func (a *App) renderPreview(width int) string {
	cols := a.studio.Preview()
	if len(cols) == 0 {
		return mutedStyle.Render("No tiers yet. Add tiers on the Free or Premium tab.")
	}
	visible := max(1, width/tileWidth)
	start := 0
	if a.previewIndex >= visible {
		start = a.previewIndex - visible + 1
	}
	end := min(len(cols), start+visible)

	var rendered []string
	for i := start; i < end; i++ {
		rendered = append(rendered, renderColumn(cols[i], i == a.previewIndex))
	}
	ladder := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	sel := cols[a.previewIndex]
	details := lipgloss.JoinHorizontal(lipgloss.Top,
		renderTooltip(sel.Premium, colorPremium),
		"  ",
		renderTooltip(sel.Free, colorFree),
	)
	sections := []string{ladder, "", details}
	if quests := a.studio.QuestLines(); len(quests) > 0 {
		sections = append(sections, "", headerStyle.Render(fmt.Sprintf("Quests · %s", a.studio.QuestFile())))
		sections = append(sections, mutedStyle.Render(strings.Join(quests, "\n")))
	}
	return strings.Join(sections, "\n")
}

func renderColumn(col studio.Column, selected bool) string {
	label := mutedStyle.Render(fmt.Sprintf("Tier %s", col.TierID))
	if selected {
		label = selectedTile.Render(fmt.Sprintf("› Tier %s", col.TierID))
	}
	return lipgloss.NewStyle().Width(tileWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
		label,
		premiumTile.Render(col.Premium.Glyphs),
		freeTile.Render(col.Free.Glyphs),
	))
}

func renderTooltip(c studio.Cell, color lipgloss.Color) string {
	if len(c.Tooltip) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.Join(c.Tooltip[:2], " · "))
	body := strings.Join(c.Tooltip[3:], "\n")
	return lipgloss.NewStyle().Width(30).Render(head + "\n" + body)
}
