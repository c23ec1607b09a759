package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/store"
	"github.com/abhisek/dongwha/internal/ui/layout"
	"github.com/abhisek/dongwha/internal/ui/theme"
)

const pageSize = 50

var kindLabels = map[string]string{
	store.KindPuzzle:        "퍼즐",
	store.KindVocabulary:    "어휘",
	store.KindComprehension: "읽기",
	store.KindQuiz:          "퀴즈",
}

type historyLoadedMsg struct {
	Answers []store.AnswerEvent
	Tallies []store.AgeTally
	Err     error
}

// HistoryScreen lists a learner's recent answers with per-age accuracy.
type HistoryScreen struct {
	events   store.EventRepo
	userID   string
	answers  []store.AnswerEvent
	tallies  []store.AgeTally
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(events store.EventRepo, userID string) *HistoryScreen {
	return &HistoryScreen{events: events, userID: userID, expanded: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		f := store.AnswerFilter{UserID: s.userID}
		answers, err := s.events.QueryAnswers(ctx, f, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		tallies, err := s.events.AnswerTallies(ctx, f)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Answers: answers, Tallies: tallies}
	}
}

func (s *HistoryScreen) Title() string {
	return "나의 기록"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "자세히"},
		{Key: "↑↓", Description: "이동"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.answers, s.tallies = msg.Answers, msg.Tallies
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.answers)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n기록을 불러오지 못했어요: " + s.errMsg)
	case !s.loaded:
		return dim.Render("\n\n기록을 불러오고 있어요...")
	case len(s.answers) == 0:
		return dim.Italic(true).Render("\n\n아직 기록이 없어요. 퍼즐이나 테스트를 해 보세요!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, s.renderTallies()))
	b.WriteString("\n\n")

	for i, a := range s.answers {
		mark, markStyle := "✓", theme.Correct
		if !a.Correct {
			mark, markStyle = "✗", theme.Incorrect
		}
		kind := kindLabels[a.Kind]
		if kind == "" {
			kind = a.Kind
		}
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-4s %2d세  %s",
			prefix, a.Timestamp.Format("01/02 15:04"), kind, a.AgeGroup, truncate(a.CorrectAnswer, 30))
		b.WriteString(layout.Centered(width, style.Render(line)+" "+markStyle.Render(mark)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := "    내 답: " + a.UserAnswer
			if a.Kind == store.KindPuzzle {
				detail += fmt.Sprintf("  (유사도 %.0f%%)", a.Similarity*100)
			}
			b.WriteString(layout.Centered(width, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderTallies() string {
	parts := make([]string, 0, len(s.tallies))
	for _, t := range s.tallies {
		pct := 0.0
		if t.Total > 0 {
			pct = float64(t.Correct) / float64(t.Total) * 100
		}
		parts = append(parts, fmt.Sprintf("%d세 %d/%d (%.0f%%)", t.AgeGroup, t.Correct, t.Total, pct))
	}
	return lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(strings.Join(parts, "   "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
