package assessment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/dongwha/internal/corpus"
)

// ErrNoMoreAnswers is returned by ScriptedAnswers when the script runs out.
var ErrNoMoreAnswers = errors.New("no more scripted answers")

// Staircase moves the age level one step per answer within [Min, Max].
type Staircase struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DefaultStaircase spans the corpus ages.
func DefaultStaircase() Staircase {
	return Staircase{Min: corpus.MinAge, Max: corpus.MaxAge}
}

// Next returns the level after an answer at age.
func (s Staircase) Next(age int, correct bool) int {
	if correct {
		age++
	} else {
		age--
	}
	return s.Clamp(age)
}

// Clamp limits age to the staircase bounds.
func (s Staircase) Clamp(age int) int {
	return max(s.Min, min(s.Max, age))
}

// AnswerProvider supplies the learner's choice for a question. Interactive
// front ends implement it by waiting for input.
type AnswerProvider interface {
	Answer(ctx context.Context, q *Question) (int, error)
}

// AnswerFunc adapts a function to AnswerProvider.
type AnswerFunc func(ctx context.Context, q *Question) (int, error)

func (f AnswerFunc) Answer(ctx context.Context, q *Question) (int, error) { return f(ctx, q) }

// ScriptedAnswers answers from a fixed correctness script: true picks the
// correct choice, false picks a wrong one.
type ScriptedAnswers struct {
	Script []bool
	next   int
}

func (s *ScriptedAnswers) Answer(_ context.Context, q *Question) (int, error) {
	if s.next >= len(s.Script) {
		return 0, ErrNoMoreAnswers
	}
	ok := s.Script[s.next]
	s.next++
	if ok {
		return q.CorrectIndex, nil
	}
	return (q.CorrectIndex + 1) % len(q.Choices), nil
}

// AdaptiveConfig controls a staircase test.
type AdaptiveConfig struct {
	InitialAge   int       `yaml:"initial_age"`
	NumQuestions int       `yaml:"num_questions"`
	Staircase    Staircase `yaml:"staircase"`
}

// DefaultAdaptiveConfig starts at age 7 with ten questions.
func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{InitialAge: 7, NumQuestions: 10, Staircase: DefaultStaircase()}
}

// TestResult summarises an adaptive test.
type TestResult struct {
	EstimatedLevel int      `json:"estimated_level"`
	Accuracy       float64  `json:"accuracy"`
	CorrectCount   int      `json:"correct_count"`
	TotalQuestions int      `json:"total_questions"`
	Results        []Result `json:"results"`
	Path           []int    `json:"level_path"`
}

// QuestionSource produces a question at the given age.
type QuestionSource func(ctx context.Context, age int) (*Question, error)

// RunAdaptive asks exactly cfg.NumQuestions questions, moving the level up
// after a correct answer and down after a wrong one. An out-of-range
// choice counts as wrong.
func RunAdaptive(ctx context.Context, next QuestionSource, answers AnswerProvider, cfg AdaptiveConfig) (*TestResult, error) {
	if cfg.NumQuestions <= 0 {
		return nil, fmt.Errorf("num_questions must be positive, got %d", cfg.NumQuestions)
	}
	age := cfg.Staircase.Clamp(cfg.InitialAge)
	res := &TestResult{TotalQuestions: cfg.NumQuestions, Path: []int{age}}

	for i := range cfg.NumQuestions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := next(ctx, age)
		if err != nil {
			return nil, fmt.Errorf("question %d at age %d: %w", i+1, age, err)
		}
		choice, err := answers.Answer(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
		r, err := q.Check(choice)
		if err != nil {
			r = Result{AgeLevel: q.AgeLevel, CorrectAnswer: q.CorrectAnswer, QuestionType: q.QuestionType}
		}
		res.Results = append(res.Results, r)
		if r.Correct {
			res.CorrectCount++
		}
		age = cfg.Staircase.Next(age, r.Correct)
		res.Path = append(res.Path, age)
	}

	res.EstimatedLevel = age
	res.Accuracy = math.Round(float64(res.CorrectCount)/float64(cfg.NumQuestions)*1000) / 10
	return res, nil
}
