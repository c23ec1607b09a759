package adaptive

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/screens/summary"
	"github.com/abhisek/dongwha/internal/store"
)

// fakeEvents records answers and ignores everything else.
type fakeEvents struct {
	store.EventRepo
	answers []store.AnswerEventData
}

func (f *fakeEvents) AppendAnswer(_ context.Context, d store.AnswerEventData) error {
	f.answers = append(f.answers, d)
	return nil
}

func fixedQuestion(_ context.Context, age int) (*assessment.Question, error) {
	return &assessment.Question{
		Kind:          assessment.KindVocabulary,
		QuestionType:  assessment.TypeContext,
		AgeLevel:      age,
		Prompt:        "빈칸에 들어갈 말은?",
		Choices:       []string{"사과", "포도", "바나나", "딸기"},
		CorrectAnswer: "사과",
		CorrectIndex:  0,
	}, nil
}

func runFixed(ctx context.Context, answers assessment.AnswerProvider, cfg assessment.AdaptiveConfig) (*assessment.TestResult, error) {
	return assessment.RunAdaptive(ctx, fixedQuestion, answers, cfg)
}

func newTestScreen(events store.EventRepo, run Runner) *TestScreen {
	return New(Options{
		Title:  "어휘 테스트",
		Kind:   store.KindVocabulary,
		Run:    run,
		Config: assessment.AdaptiveConfig{InitialAge: 7, NumQuestions: 2, Staircase: assessment.DefaultStaircase()},
		Events: events,
		UserID: "tester",
	})
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestTestScreen_FullRun(t *testing.T) {
	events := &fakeEvents{}
	s := newTestScreen(events, runFixed)
	t.Cleanup(s.Close)

	msg := s.Init()()
	q, ok := msg.(questionMsg)
	require.True(t, ok, "expected first question, got %T", msg)
	assert.Equal(t, 7, q.Question.AgeLevel)

	var sc screen.Screen = s
	sc, _ = sc.Update(msg)
	assert.Equal(t, "7세 · 1/2", s.Status())
	assert.Contains(t, s.View(80, 24), "사과")

	// Correct answer by number key.
	sc, cmd := sc.Update(key('1'))
	assert.Nil(t, cmd)
	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.Correct)
	assert.Contains(t, s.View(80, 24), "정답이에요!")

	// Any key sends the answer and waits for the next question.
	sc, cmd = sc.Update(key(' '))
	require.NotNil(t, cmd)
	msg = cmd()
	q, ok = msg.(questionMsg)
	require.True(t, ok, "expected second question, got %T", msg)
	assert.Equal(t, 8, q.Question.AgeLevel, "correct answer moves the level up")
	sc, _ = sc.Update(msg)

	// Wrong answer.
	sc, _ = sc.Update(key('3'))
	require.NotNil(t, s.feedback)
	assert.False(t, s.feedback.Correct)

	_, cmd = sc.Update(key(' '))
	msg = cmd()
	fin, ok := msg.(finishedMsg)
	require.True(t, ok, "expected result, got %T", msg)
	require.NoError(t, fin.Err)
	assert.Equal(t, 7, fin.Result.EstimatedLevel)
	assert.Equal(t, []int{7, 8, 7}, fin.Result.Path)

	_, cmd = s.Update(msg)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	_, ok = replace.Screen.(*summary.SummaryScreen)
	assert.True(t, ok)

	require.Len(t, events.answers, 2)
	assert.Equal(t, "tester", events.answers[0].UserID)
	assert.Equal(t, store.KindVocabulary, events.answers[0].Kind)
	assert.True(t, events.answers[0].Correct)
	assert.Equal(t, "바나나", events.answers[1].UserAnswer)
	assert.False(t, events.answers[1].Correct)
}

func TestTestScreen_GenerationError(t *testing.T) {
	boom := func(context.Context, assessment.AnswerProvider, assessment.AdaptiveConfig) (*assessment.TestResult, error) {
		return nil, errors.New("no sentences for age 7")
	}
	s := newTestScreen(nil, boom)
	t.Cleanup(s.Close)

	msg := s.Init()()
	s.Update(msg)
	assert.Contains(t, s.View(80, 24), "no sentences for age 7")

	_, cmd := s.Update(key('x'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestTestScreen_CloseStopsRunner(t *testing.T) {
	s := newTestScreen(nil, runFixed)
	msg := s.Init()()
	s.Update(msg)

	s.Close()
	fin, ok := s.bridge.wait().(finishedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, fin.Err, context.Canceled)

	_, cmd := s.Update(fin)
	assert.Nil(t, cmd, "a cancelled test ends quietly")
}
