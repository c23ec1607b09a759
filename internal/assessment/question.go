// Package assessment generates multiple-choice vocabulary and reading
// comprehension questions from the story corpus and runs staircase
// adaptive tests over them.
package assessment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/sampling"
)

// NumChoices is the number of options in every question.
const NumChoices = 4

// Kind separates the two assessments.
type Kind string

const (
	KindVocabulary    Kind = "vocabulary"
	KindComprehension Kind = "comprehension"
)

// QuestionType is the prompt style of a question.
type QuestionType string

const (
	TypeContext    QuestionType = "context"
	TypeDefinition QuestionType = "definition"
	TypeSynonym    QuestionType = "synonym"

	TypeWho   QuestionType = "who"
	TypeWhat  QuestionType = "what"
	TypeWhere QuestionType = "where"
	TypeWhy   QuestionType = "why"
	TypeHow   QuestionType = "how"
	TypeAuto  QuestionType = "auto"
)

// Question is a four-option multiple-choice item.
type Question struct {
	ID               string       `json:"id"`
	Kind             Kind         `json:"kind"`
	QuestionType     QuestionType `json:"question_type"`
	AgeLevel         int          `json:"age_level"`
	Prompt           string       `json:"question"`
	Passage          string       `json:"passage,omitempty"`
	BlankSentence    string       `json:"blank_sentence,omitempty"`
	OriginalSentence string       `json:"original_sentence,omitempty"`
	Choices          []string     `json:"choices"`
	CorrectAnswer    string       `json:"correct_answer"`
	CorrectIndex     int          `json:"correct_index"`
	Title            string       `json:"title,omitempty"`
}

// newQuestion shuffles the answer in among three distractors.
func newQuestion(src sampling.Source, kind Kind, qt QuestionType, age int, answer string, distractors []string) (*Question, error) {
	if len(distractors) < NumChoices-1 {
		return nil, corpus.ErrInsufficientDistractors
	}
	choices := sampling.Shuffled(src, append([]string{answer}, distractors[:NumChoices-1]...))
	q := &Question{
		ID:            uuid.NewString(),
		Kind:          kind,
		QuestionType:  qt,
		AgeLevel:      age,
		Choices:       choices,
		CorrectAnswer: answer,
		CorrectIndex:  slices.Index(choices, answer),
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks that the choices are four distinct strings and that the
// correct index points at the correct answer.
func (q *Question) Validate() error {
	if len(q.Choices) != NumChoices {
		return fmt.Errorf("question has %d choices, want %d", len(q.Choices), NumChoices)
	}
	seen := make(map[string]bool, NumChoices)
	for _, c := range q.Choices {
		if c == "" {
			return errors.New("empty choice")
		}
		if seen[c] {
			return fmt.Errorf("duplicate choice %q", c)
		}
		seen[c] = true
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	if q.Choices[q.CorrectIndex] != q.CorrectAnswer {
		return fmt.Errorf("choice %d is %q, not the correct answer %q", q.CorrectIndex, q.Choices[q.CorrectIndex], q.CorrectAnswer)
	}
	return nil
}

// Result is the outcome of answering one question.
type Result struct {
	Correct       bool         `json:"correct"`
	AgeLevel      int          `json:"age_level"`
	CorrectAnswer string       `json:"correct_answer"`
	UserAnswer    string       `json:"user_answer"`
	QuestionType  QuestionType `json:"question_type,omitempty"`
}

// Check grades a choice. An out-of-range choice is an error.
func (q *Question) Check(choice int) (Result, error) {
	if choice < 0 || choice >= len(q.Choices) {
		return Result{}, fmt.Errorf("choice %d out of range 0..%d", choice, len(q.Choices)-1)
	}
	return Result{
		Correct:       choice == q.CorrectIndex,
		AgeLevel:      q.AgeLevel,
		CorrectAnswer: q.CorrectAnswer,
		UserAnswer:    q.Choices[choice],
		QuestionType:  q.QuestionType,
	}, nil
}

// dedupe keeps the first occurrence of each string, dropping exclude.
func dedupe(items []string, exclude string) []string {
	seen := map[string]bool{exclude: true}
	out := items[:0:0]
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
