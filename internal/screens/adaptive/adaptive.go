// Package adaptive drives a staircase test in the terminal. The test runs
// in its own goroutine and blocks on the learner's answers, which the
// screen feeds it one key press at a time.
package adaptive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/screens/summary"
	"github.com/abhisek/dongwha/internal/store"
	"github.com/abhisek/dongwha/internal/ui/components"
	"github.com/abhisek/dongwha/internal/ui/layout"
	"github.com/abhisek/dongwha/internal/ui/theme"
)

// Runner runs a whole adaptive test, e.g. (*assessment.Vocabulary).AdaptiveTest.
type Runner func(ctx context.Context, answers assessment.AnswerProvider, cfg assessment.AdaptiveConfig) (*assessment.TestResult, error)

// Options configures a test screen.
type Options struct {
	Title  string
	Kind   string
	Run    Runner
	Config assessment.AdaptiveConfig
	Events store.EventRepo
	UserID string
}

type questionMsg struct {
	Question *assessment.Question
}

type finishedMsg struct {
	Result *assessment.TestResult
	Err    error
}

// bridge is the AnswerProvider handed to the test goroutine.
type bridge struct {
	questions chan *assessment.Question
	answers   chan int
	done      chan finishedMsg
}

func newBridge() *bridge {
	return &bridge{
		questions: make(chan *assessment.Question),
		answers:   make(chan int, 1),
		done:      make(chan finishedMsg, 1),
	}
}

func (b *bridge) Answer(ctx context.Context, q *assessment.Question) (int, error) {
	select {
	case b.questions <- q:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case choice := <-b.answers:
		return choice, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// wait is the command that delivers the next question or the result.
func (b *bridge) wait() tea.Msg {
	select {
	case q := <-b.questions:
		return questionMsg{Question: q}
	case f := <-b.done:
		return f
	}
}

// TestScreen shows one question at a time and reports the result.
type TestScreen struct {
	opts   Options
	bridge *bridge
	cancel context.CancelFunc

	question *assessment.Question
	choice   components.MultiChoice
	feedback *assessment.Result
	number   int
	errMsg   string
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)
var _ screen.StatusProvider = (*TestScreen)(nil)
var _ screen.Closer = (*TestScreen)(nil)

func New(opts Options) *TestScreen {
	return &TestScreen{opts: opts, bridge: newBridge()}
}

// Init starts the test.
func (s *TestScreen) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		res, err := s.opts.Run(ctx, s.bridge, s.opts.Config)
		s.bridge.done <- finishedMsg{Result: res, Err: err}
	}()
	return s.bridge.wait
}

// Close stops the test goroutine.
func (s *TestScreen) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *TestScreen) Title() string {
	return s.opts.Title
}

func (s *TestScreen) Status() string {
	if s.question == nil {
		return ""
	}
	return fmt.Sprintf("%d세 · %d/%d", s.question.AgeLevel, s.number, s.opts.Config.NumQuestions)
}

func (s *TestScreen) KeyHints() []layout.KeyHint {
	if s.feedback != nil {
		return []layout.KeyHint{{Key: "아무 키", Description: "다음 문제"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "답 고르기"},
		{Key: "↑↓ Enter", Description: "선택"},
		{Key: "Esc", Description: "그만하기"},
	}
}

func (s *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		s.question = msg.Question
		s.choice = components.NewMultiChoice(msg.Question.Choices, msg.Question.CorrectIndex)
		s.feedback = nil
		s.number++
		return s, nil

	case finishedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return s, nil
			}
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		report := summary.FromTest(s.opts.Title+" 완료!", msg.Result)
		return s, router.Swap(summary.New(report))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Back
	}
	if s.question == nil {
		return s, nil
	}
	if s.feedback != nil {
		s.bridge.answers <- s.choice.ChosenIndex
		s.question, s.feedback = nil, nil
		return s, s.bridge.wait
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return s, nil
	}
	res, err := s.question.Check(s.choice.ChosenIndex)
	if err != nil {
		res = assessment.Result{AgeLevel: s.question.AgeLevel, CorrectAnswer: s.question.CorrectAnswer}
	}
	s.feedback = &res
	s.record(res)
	return s, nil
}

func (s *TestScreen) record(res assessment.Result) {
	if s.opts.Events == nil {
		return
	}
	_ = s.opts.Events.AppendAnswer(context.Background(), store.AnswerEventData{
		UserID:        s.opts.UserID,
		Kind:          s.opts.Kind,
		AgeGroup:      res.AgeLevel,
		Word:          res.CorrectAnswer,
		Sentence:      s.question.Prompt,
		CorrectAnswer: res.CorrectAnswer,
		UserAnswer:    res.UserAnswer,
		Correct:       res.Correct,
	})
}

func (s *TestScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("문제를 만들 수 없어요.\n\n" + s.errMsg + "\n\n아무 키나 누르면 돌아갑니다.")
	}
	if s.question == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("문제를 준비하고 있어요..."))
	}

	cw := components.ContentWidth(width)
	var sections []string

	progress := components.NewProgressBar(
		fmt.Sprintf("%d번", s.number),
		float64(s.number-1)/float64(max(s.opts.Config.NumQuestions, 1)),
		false, cw)
	sections = append(sections, progress.View())

	if s.question.Passage != "" {
		sections = append(sections, components.Card(theme.Body.Render(s.question.Passage), cw))
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(s.question.Prompt),
		s.choice.View())

	if s.feedback != nil {
		if s.feedback.Correct {
			sections = append(sections, theme.Correct.Render("정답이에요!"))
		} else {
			sections = append(sections, theme.Incorrect.Render("아쉬워요. 정답은 '"+s.feedback.CorrectAnswer+"'예요."))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
