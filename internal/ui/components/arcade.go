package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/ui/theme"
)

// ButtonWidth is the width of storybook menu buttons.
const ButtonWidth = 26

// ContentWidth is the inner width shared by every box on a storybook
// page so that they line up.
func ContentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 60))
}

// BookFrame wraps content in a double border centred in the area.
func BookFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box cw wide.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(content)
}

// MenuButton renders one menu entry as a bordered button.
func MenuButton(label string, selected, disabled bool) string {
	style := lipgloss.NewStyle().
		Width(ButtonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	switch {
	case disabled:
		return style.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	case selected:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}

// ButtonMenu renders a menu as a column of buttons, or as plain lines when
// compact.
func ButtonMenu(m Menu, cw int, compact bool) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		if !compact {
			lines = append(lines, MenuButton(item.Label, i == m.Selected, item.Disabled))
			continue
		}
		switch {
		case item.Disabled:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+item.Label))
		case i == m.Selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).
				Render(" ▸ "+item.Label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+item.Label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
