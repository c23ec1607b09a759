package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/abhisek/dongwha/internal/ui/theme"
)

// bannerText is the ASCII-art app name.
var bannerText = strings.TrimRight(figure.NewFigure("DONGWHA", "", true).String(), "\n")

const bannerCompact = "동 · 화"

// RenderBanner returns the styled app name, falling back to a short form
// when the banner does not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < lipgloss.Width(bannerText)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerText)
}
