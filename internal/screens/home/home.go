// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/screens/adaptive"
	"github.com/abhisek/dongwha/internal/screens/game"
	"github.com/abhisek/dongwha/internal/screens/history"
	"github.com/abhisek/dongwha/internal/store"
	"github.com/abhisek/dongwha/internal/ui/components"
	"github.com/abhisek/dongwha/internal/ui/layout"
)

// Options holds the services behind the menu. A nil service disables its
// menu entry.
type Options struct {
	Puzzles       game.Puzzles
	Vocabulary    adaptive.Runner
	Comprehension adaptive.Runner
	Events        store.EventRepo
	UserID        string

	Game              puzzle.GameConfig
	Threshold         float64
	VocabularyTest    assessment.AdaptiveConfig
	ComprehensionTest assessment.AdaptiveConfig
}

const (
	itemPuzzle = iota
	itemVocabulary
	itemComprehension
	itemHistory
	itemExit
)

// HomeScreen is the main menu with the learner's totals.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	total   int
	correct int
	bestAge int
	mascot  MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}
	h.loadTotals()
	h.mascot = mascotFor(h.total, h.correct)

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Open(build()) }
	}

	items := make([]components.MenuItem, itemExit+1)
	items[itemPuzzle] = components.MenuItem{
		Label:    "문장 퍼즐",
		Disabled: opts.Puzzles == nil,
		Action: push(func() screen.Screen {
			return game.New(game.Options{
				Puzzles:   opts.Puzzles,
				Game:      opts.Game,
				Threshold: opts.Threshold,
				Events:    opts.Events,
				UserID:    opts.UserID,
			})
		}),
	}
	items[itemVocabulary] = components.MenuItem{
		Label:    "어휘 테스트",
		Disabled: opts.Vocabulary == nil,
		Action:   push(func() screen.Screen { return h.testScreen("어휘 테스트", store.KindVocabulary, opts.Vocabulary, opts.VocabularyTest) }),
	}
	items[itemComprehension] = components.MenuItem{
		Label:    "읽기 이해 테스트",
		Disabled: opts.Comprehension == nil,
		Action:   push(func() screen.Screen { return h.testScreen("읽기 이해 테스트", store.KindComprehension, opts.Comprehension, opts.ComprehensionTest) }),
	}
	items[itemHistory] = components.MenuItem{
		Label:    "나의 기록",
		Disabled: opts.Events == nil,
		Action:   push(func() screen.Screen { return history.New(opts.Events, opts.UserID) }),
	}
	items[itemExit] = components.MenuItem{
		Label:  "끝내기",
		Action: func() tea.Cmd { return tea.Quit },
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) testScreen(title, kind string, run adaptive.Runner, cfg assessment.AdaptiveConfig) screen.Screen {
	return adaptive.New(adaptive.Options{
		Title:  title,
		Kind:   kind,
		Run:    run,
		Config: cfg,
		Events: h.opts.Events,
		UserID: h.opts.UserID,
	})
}

func (h *HomeScreen) loadTotals() {
	if h.opts.Events == nil {
		return
	}
	tallies, err := h.opts.Events.AnswerTallies(context.Background(), store.AnswerFilter{UserID: h.opts.UserID})
	if err != nil {
		return
	}
	for _, t := range tallies {
		h.total += t.Total
		h.correct += t.Correct
		if t.Correct > 0 && t.AgeGroup > h.bestAge {
			h.bestAge = t.AgeGroup
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "처음 화면"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "고르기"},
		{Key: "enter", Description: "시작"},
		{Key: "ctrl+c", Description: "끝내기"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes the header and footer.
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	if h.opts.Puzzles == nil && h.opts.Vocabulary == nil && h.opts.Comprehension == nil {
		sections = append(sections, renderCorpusBanner(cw))
	}
	sections = append(sections,
		renderStatsBar(h.total, h.correct, h.bestAge, cw, compact),
		components.ButtonMenu(h.menu, cw, compact),
	)
	return components.BookFrame(strings.Join(sections, "\n\n"), width, height)
}
