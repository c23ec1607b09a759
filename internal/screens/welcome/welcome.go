// Package welcome is the splash screen shown before the home menu.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bookOpen     = 500 * time.Millisecond
	bannerShown  = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bookClosed = `   ┌───────────┐
   │  ★ 동화 ★  │
   │           │
   │   ╭───╮   │
   │   │ ◕ │   │
   │   ╰───╯   │
   └───────────┘`

const bookOpened = `┌───────────┬───────────┐
│  옛날 옛적에 │ 토끼가     │
│  깊은 숲   │  살았어요.  │
│  속에      │           │
│      ✿    │    ✿      │
└───────────┴───────────┘`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen animates an opening storybook and hands over to the
// screen built by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Swap(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	art := bookClosed
	if w.elapsed >= bookOpen {
		art = bookOpened
	}
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(art)

	if w.elapsed >= bookOpen {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)
		lines := strings.Split(rendered, "\n")
		lines[0] = s1 + "  " + lines[0] + "  " + s2
		lines[len(lines)-1] = s2 + "  " + lines[len(lines)-1] + "  " + s1
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}
	if w.elapsed >= bannerShown {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("동화 속 문장으로 놀아요!"),
			"",
			theme.Hint.Render("아무 키나 누르세요"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
