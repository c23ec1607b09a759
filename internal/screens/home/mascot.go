package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/ui/theme"
)

// MascotVariant selects which bookworm art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // high recent accuracy
	MascotNew                       // nothing played yet
)

const mascotIdle = ` ╭───╮
 │ ◉ ◉│
 │  ▽ │
╭┴────┴╮
│ 가나다 │
╰──────╯`

const mascotCelebrating = ` ╭───╮ ★
 │ ★ ★│
 │  ◡ │
╭┴────┴╮
│ 가나다 │
╰╥════╥╯
 ╚════╝`

const mascotNew = ` ╭───╮
 │ ◕ ◕│ ?
 │  o │
╭┴────┴╮
│ 가나다 │
╰──────╯`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotNew:
		art, fg = mascotNew, theme.Secondary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

// mascotFor picks the variant from the learner's totals.
func mascotFor(total, correct int) MascotVariant {
	switch {
	case total == 0:
		return MascotNew
	case total >= 10 && float64(correct)/float64(total) >= 0.8:
		return MascotCelebrating
	}
	return MascotIdle
}
