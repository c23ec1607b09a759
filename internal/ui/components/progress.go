package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/ui/theme"
)

// ProgressBar shows how far through an activity the learner is, drawn as
// filled and empty page marks.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(max(0, min(1, p.Percent))*100))
	}

	marks := max(4, p.Width-lipgloss.Width(b.String())-lipgloss.Width(suffix))
	filled := max(0, min(marks, int(float64(marks)*p.Percent)))

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat("▰", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("▱", marks-filled)))
	if suffix != "" {
		b.WriteString(theme.Hint.Render(suffix))
	}
	return b.String()
}
