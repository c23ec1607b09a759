package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/screens/welcome"
	"github.com/abhisek/dongwha/internal/ui/theme"
)

func renderTitle(cw int, compact bool) string {
	title := welcome.RenderBanner(cw)
	if compact {
		title = welcome.RenderBanner(0)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title)
}

// renderStatsBar shows the learner's answer totals in a double box.
func renderStatsBar(total, correct, bestAge, cw int, compact bool) string {
	answered := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	level := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	levelText := dim.Render("- 세")
	if bestAge > 0 {
		levelText = level.Render(fmt.Sprintf("%d세", bestAge))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			answered.Render(fmt.Sprintf("✎%d", total)),
			right.Render(fmt.Sprintf("★%d", correct)),
			levelText,
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			answered.Render(fmt.Sprintf("✎ %d문제", total)),
			right.Render(fmt.Sprintf("★ %d개 정답", correct)),
			level.Render("최고 ")+levelText,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderCorpusBanner warns that the corpus-backed activities are off.
func renderCorpusBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ 동화 말뭉치가 없어요 (dongwha prepare 참고)")
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}
