package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/sampling"
)

func TestNewQuestion(t *testing.T) {
	q, err := newQuestion(sampling.Seeded(1), KindVocabulary, TypeContext, 6, "나무", []string{"꽃", "하늘", "바람"})
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, "나무", q.Choices[q.CorrectIndex])
	assert.NotEmpty(t, q.ID)

	_, err = newQuestion(sampling.Seeded(1), KindVocabulary, TypeContext, 6, "나무", []string{"꽃", "하늘"})
	assert.ErrorIs(t, err, corpus.ErrInsufficientDistractors)

	_, err = newQuestion(sampling.Seeded(1), KindVocabulary, TypeContext, 6, "나무", []string{"꽃", "꽃", "하늘"})
	assert.Error(t, err)
}

func TestQuestion_Check(t *testing.T) {
	q := &Question{AgeLevel: 8, Choices: []string{"a", "b", "c", "d"}, CorrectAnswer: "c", CorrectIndex: 2, QuestionType: TypeWho}

	r, err := q.Check(2)
	require.NoError(t, err)
	assert.True(t, r.Correct)
	assert.Equal(t, 8, r.AgeLevel)

	r, err = q.Check(0)
	require.NoError(t, err)
	assert.False(t, r.Correct)
	assert.Equal(t, "a", r.UserAnswer)
	assert.Equal(t, "c", r.CorrectAnswer)

	_, err = q.Check(4)
	assert.Error(t, err)
}

func TestStaircase(t *testing.T) {
	s := DefaultStaircase()
	assert.Equal(t, 8, s.Next(7, true))
	assert.Equal(t, 6, s.Next(7, false))
	assert.Equal(t, 13, s.Next(13, true))
	assert.Equal(t, 4, s.Next(4, false))
	assert.Equal(t, 13, s.Clamp(20))
}

func fixedSource(ctx context.Context, age int) (*Question, error) {
	return &Question{AgeLevel: age, Choices: []string{"가", "나", "다", "라"}, CorrectAnswer: "다", CorrectIndex: 2}, nil
}

func TestRunAdaptive(t *testing.T) {
	tests := []struct {
		name      string
		script    []bool
		wantLevel int
		wantAcc   float64
	}{
		{"all correct clamps high", []bool{true, true, true, true, true, true, true, true, true, true}, 13, 100},
		{"all wrong clamps low", []bool{false, false, false, false, false, false, false, false, false, false}, 4, 0},
		{"alternating", []bool{true, false, true, false, true, false, true, false, true, false}, 7, 50},
		{"mostly right", []bool{true, true, true, false, true, true, false, true, true, true}, 13, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := RunAdaptive(context.Background(), fixedSource, &ScriptedAnswers{Script: tt.script}, DefaultAdaptiveConfig())
			require.NoError(t, err)
			assert.Len(t, res.Results, 10)
			assert.Equal(t, 10, res.TotalQuestions)
			assert.Equal(t, tt.wantLevel, res.EstimatedLevel)
			assert.Equal(t, tt.wantAcc, res.Accuracy)
			assert.Len(t, res.Path, 11)
			for _, lvl := range res.Path {
				assert.GreaterOrEqual(t, lvl, 4)
				assert.LessOrEqual(t, lvl, 13)
			}
		})
	}
}

func TestRunAdaptive_OutOfRangeChoiceIsWrong(t *testing.T) {
	answers := AnswerFunc(func(context.Context, *Question) (int, error) { return 9, nil })
	cfg := AdaptiveConfig{InitialAge: 7, NumQuestions: 3, Staircase: DefaultStaircase()}

	res, err := RunAdaptive(context.Background(), fixedSource, answers, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Results, 3)
	assert.Equal(t, 0, res.CorrectCount)
	assert.Equal(t, 4, res.EstimatedLevel)
}

func TestRunAdaptive_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := RunAdaptive(ctx, fixedSource, &ScriptedAnswers{Script: []bool{true}}, AdaptiveConfig{InitialAge: 7, NumQuestions: 2, Staircase: DefaultStaircase()})
	assert.ErrorIs(t, err, ErrNoMoreAnswers)

	boom := errors.New("boom")
	_, err = RunAdaptive(ctx, func(context.Context, int) (*Question, error) { return nil, boom },
		&ScriptedAnswers{Script: []bool{true}}, DefaultAdaptiveConfig())
	assert.ErrorIs(t, err, boom)

	_, err = RunAdaptive(ctx, fixedSource, &ScriptedAnswers{}, AdaptiveConfig{})
	assert.Error(t, err)
}
