// Package game is the terminal sentence-puzzle game: the learner types the
// shuffled words back in order.
package game

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/screens/summary"
	"github.com/abhisek/dongwha/internal/store"
	"github.com/abhisek/dongwha/internal/ui/components"
	"github.com/abhisek/dongwha/internal/ui/layout"
	"github.com/abhisek/dongwha/internal/ui/theme"
)

// Puzzles generates and checks puzzles. *puzzle.Generator implements it.
type Puzzles interface {
	Generate(ctx context.Context, in puzzle.GenerateInput) (*puzzle.Puzzle, error)
	Verify(ctx context.Context, original, answer string, threshold float64) (*puzzle.Verification, error)
}

// Options configures a game.
type Options struct {
	Puzzles   Puzzles
	Game      puzzle.GameConfig
	Threshold float64
	Events    store.EventRepo
	UserID    string
}

type puzzleReadyMsg struct {
	Puzzle *puzzle.Puzzle
	Err    error
}

type verifiedMsg struct {
	Verification *puzzle.Verification
	Err          error
}

// GameScreen plays one puzzle.Game.
type GameScreen struct {
	opts  Options
	game  *puzzle.Game
	input components.TextInput

	current  *puzzle.Puzzle
	hints    []puzzle.Hint
	result   *puzzle.Verification
	retry    bool
	finished bool // current puzzle is over
	checking bool
	errMsg   string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

func New(opts Options) *GameScreen {
	return &GameScreen{
		opts:  opts,
		game:  puzzle.NewGame(opts.Game),
		input: components.NewTextInput("문장을 순서대로 입력하세요", 200),
	}
}

func (s *GameScreen) Init() tea.Cmd {
	return tea.Batch(s.generate(), s.input.Init())
}

func (s *GameScreen) Title() string {
	return "문장 퍼즐"
}

func (s *GameScreen) Status() string {
	return fmt.Sprintf("%s · %d/%d", s.game.Level().Describe(), s.game.Round(), s.game.Rounds())
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.finished {
		return []layout.KeyHint{{Key: "Enter", Description: "다음"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "확인"},
		{Key: s.hintKey(), Description: "힌트"},
		{Key: "Tab", Description: "다음 단어"},
		{Key: "Esc", Description: "그만하기"},
	}
}

// hintKey is "?" unless the sentence itself needs a question mark.
func (s *GameScreen) hintKey() string {
	if s.current != nil && strings.Contains(s.current.OriginalSentence, "?") {
		return "Ctrl+H"
	}
	return "?"
}

func (s *GameScreen) generate() tea.Cmd {
	level := s.game.Level()
	gen := s.opts.Puzzles
	return func() tea.Msg {
		p, err := gen.Generate(context.Background(), puzzle.GenerateInput{Age: level.Age, Difficulty: level.Difficulty})
		return puzzleReadyMsg{Puzzle: p, Err: err}
	}
}

func (s *GameScreen) verify(answer string) tea.Cmd {
	original := s.current.OriginalSentence
	gen, threshold := s.opts.Puzzles, s.opts.Threshold
	return func() tea.Msg {
		v, err := gen.Verify(context.Background(), original, answer, threshold)
		return verifiedMsg{Verification: v, Err: err}
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case puzzleReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.current = msg.Puzzle
		s.hints, s.result = nil, nil
		s.retry, s.finished = false, false
		s.input.Reset()
		return s, s.input.Init()

	case verifiedMsg:
		return s.handleVerified(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GameScreen) handleVerified(msg verifiedMsg) (screen.Screen, tea.Cmd) {
	s.checking = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	v := msg.Verification
	s.result = v
	s.input.Mark(v.Passed)
	s.record(v)

	if !s.game.Answer(v.Passed) {
		s.retry = true
		return s, nil
	}
	s.finished = true
	s.retry = false
	return s, nil
}

func (s *GameScreen) record(v *puzzle.Verification) {
	if s.opts.Events == nil {
		return
	}
	_ = s.opts.Events.AppendAnswer(context.Background(), store.AnswerEventData{
		UserID:        s.opts.UserID,
		Kind:          store.KindPuzzle,
		AgeGroup:      s.current.Age,
		Sentence:      v.Original,
		CorrectAnswer: v.Original,
		UserAnswer:    v.UserAnswer,
		Correct:       v.Passed,
		Similarity:    v.Similarity,
	})
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Back
	}
	if s.current == nil || s.checking {
		return s, nil
	}

	key := msg.String()
	if s.finished {
		if key != "enter" {
			return s, nil
		}
		if s.game.Finished() {
			report := summary.FromGame(s.game)
			return s, router.Swap(summary.New(report))
		}
		s.current = nil
		return s, s.generate()
	}

	switch {
	case key == "enter":
		answer := strings.TrimSpace(s.input.Value())
		if answer == "" {
			return s, nil
		}
		s.checking = true
		return s, s.verify(answer)
	case key == "ctrl+h", key == "?" && s.hintKey() == "?":
		s.hints = puzzle.GetHint(s.current.OriginalSentence, s.input.Value()).Hints
		return s, nil
	case key == "tab":
		if w, ok := s.nextPiece(); ok {
			s.input.AppendWord(w)
		}
		return s, nil
	}

	if s.retry {
		s.retry = false
		s.result = nil
		s.input.Unmark()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// nextPiece is the first shuffled piece not yet typed.
func (s *GameScreen) nextPiece() (string, bool) {
	used := usedPieces(s.current.Shuffled, s.input.Words())
	for i, p := range s.current.Shuffled {
		if !used[i] {
			return p.Word, true
		}
	}
	return "", false
}

// usedPieces marks one shuffled piece per typed word.
func usedPieces(pieces []puzzle.Piece, typed []string) map[int]bool {
	used := make(map[int]bool, len(typed))
	for _, w := range typed {
		for i, p := range pieces {
			if !used[i] && p.Word == w {
				used[i] = true
				break
			}
		}
	}
	return used
}

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("퍼즐을 만들 수 없어요.\n\n" + s.errMsg + "\n\n아무 키나 누르면 돌아갑니다.")
	}
	if s.current == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("퍼즐을 준비하고 있어요..."))
	}

	cw := components.ContentWidth(width)
	var sections []string

	progress := components.NewProgressBar(
		fmt.Sprintf("%d번", s.game.Round()),
		float64(s.game.Round()-1)/float64(s.game.Rounds()),
		false, cw)
	sections = append(sections, progress.View())

	if s.current.Title != "" {
		sections = append(sections, theme.Subtitle.Width(cw).Render("《"+s.current.Title+"》"))
	}
	sections = append(sections, components.Card(s.renderPieces(cw), cw))
	sections = append(sections, s.input.View())

	if len(s.hints) > 0 {
		var lines []string
		for _, h := range s.hints {
			lines = append(lines, "· "+h.Message)
		}
		sections = append(sections, theme.Hint.Render(strings.Join(lines, "\n")))
	}
	if s.checking {
		sections = append(sections, theme.Hint.Render("확인하고 있어요..."))
	}
	if s.result != nil {
		sections = append(sections, s.renderResult())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (s *GameScreen) renderPieces(cw int) string {
	used := usedPieces(s.current.Shuffled, s.input.Words())
	pieces := make([]string, len(s.current.Shuffled))
	for i, p := range s.current.Shuffled {
		if used[i] {
			pieces[i] = theme.PieceUsed.Render(p.Word)
		} else {
			pieces[i] = theme.Piece.Render(p.Word)
		}
	}
	return lipgloss.NewStyle().Width(cw - 6).Render(strings.Join(pieces, " "))
}

func (s *GameScreen) renderResult() string {
	r := s.result
	sim := fmt.Sprintf("유사도 %.0f%%", r.Similarity*100)
	switch {
	case r.Passed:
		return theme.Correct.Render("정답이에요! ("+sim+")") + "\n" +
			theme.Body.Render(r.Original)
	case s.retry:
		return theme.Incorrect.Render(fmt.Sprintf("아쉬워요. 다시 해 보세요! (%s, 남은 기회 %d번)", sim, s.game.TriesLeft()))
	}
	return theme.Incorrect.Render("아쉬워요. ("+sim+")") + "\n" +
		theme.Body.Render("정답: "+r.Original)
}
