package home

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screens/adaptive"
	"github.com/abhisek/dongwha/internal/screens/game"
	"github.com/abhisek/dongwha/internal/screens/history"
	"github.com/abhisek/dongwha/internal/store"
)

type nopPuzzles struct{}

func (nopPuzzles) Generate(context.Context, puzzle.GenerateInput) (*puzzle.Puzzle, error) {
	return nil, nil
}

func (nopPuzzles) Verify(context.Context, string, string, float64) (*puzzle.Verification, error) {
	return nil, nil
}

func nopRunner(context.Context, assessment.AnswerProvider, assessment.AdaptiveConfig) (*assessment.TestResult, error) {
	return &assessment.TestResult{}, nil
}

func openStore(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func enter(h *HomeScreen) tea.Msg {
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestMenuDisablesMissingServices(t *testing.T) {
	h := New(Options{Events: openStore(t), UserID: "kid"})

	assert.True(t, h.menu.Items[itemPuzzle].Disabled)
	assert.True(t, h.menu.Items[itemVocabulary].Disabled)
	assert.True(t, h.menu.Items[itemComprehension].Disabled)
	assert.Equal(t, itemHistory, h.menu.Selected)

	msg, ok := enter(h).(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &history.HistoryScreen{}, msg.Screen)

	assert.Contains(t, h.View(100, 30), "동화 말뭉치가 없어요")
}

func TestMenuPushesActivities(t *testing.T) {
	h := New(Options{
		Puzzles:       nopPuzzles{},
		Vocabulary:    nopRunner,
		Comprehension: nopRunner,
		Events:        openStore(t),
		Game:          puzzle.DefaultGameConfig(),
	})
	assert.Equal(t, itemPuzzle, h.menu.Selected)

	msg, ok := enter(h).(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &game.GameScreen{}, msg.Screen)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	msg, ok = enter(h).(router.PushScreenMsg)
	require.True(t, ok)
	require.IsType(t, &adaptive.TestScreen{}, msg.Screen)
	assert.Equal(t, "어휘 테스트", msg.Screen.Title())

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	msg, ok = enter(h).(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "읽기 이해 테스트", msg.Screen.Title())

	assert.NotContains(t, h.View(100, 30), "동화 말뭉치가 없어요")
}

func TestTotalsFromAnswers(t *testing.T) {
	repo := openStore(t)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, repo.AppendAnswer(ctx, store.AnswerEventData{
			UserID: "kid", Kind: store.KindVocabulary, AgeGroup: 6 + i%2,
			CorrectAnswer: "사과", UserAnswer: "사과", Correct: true,
		}))
	}
	require.NoError(t, repo.AppendAnswer(ctx, store.AnswerEventData{
		UserID: "other", Kind: store.KindQuiz, AgeGroup: 12, CorrectAnswer: "포도", Correct: true,
	}))

	h := New(Options{Events: repo, UserID: "kid"})
	assert.Equal(t, 10, h.total)
	assert.Equal(t, 10, h.correct)
	assert.Equal(t, 7, h.bestAge)
	assert.Equal(t, MascotCelebrating, h.mascot)

	view := h.View(120, 40)
	assert.True(t, strings.Contains(view, "10문제"), "stats bar should show totals")
}

func TestMascotFor(t *testing.T) {
	assert.Equal(t, MascotNew, mascotFor(0, 0))
	assert.Equal(t, MascotIdle, mascotFor(5, 5))
	assert.Equal(t, MascotIdle, mascotFor(10, 7))
	assert.Equal(t, MascotCelebrating, mascotFor(10, 8))
}

func TestExitQuits(t *testing.T) {
	h := New(Options{})
	assert.Equal(t, itemExit, h.menu.Selected)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
