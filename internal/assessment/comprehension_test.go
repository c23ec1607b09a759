package assessment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/postag"
	"github.com/abhisek/dongwha/internal/sampling"
)

func testExtractor() *RoleExtractor {
	rules := DefaultRules()
	return NewRoleExtractor(postag.NewRuleTagger(rules.Lexicon()...), rules)
}

func TestRoleExtractor_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		check    func(t *testing.T, r *Roles)
	}{
		{
			name:     "subject with verb phrase",
			sentence: "토끼가 숲에서 당근을 먹었다.",
			check: func(t *testing.T, r *Roles) {
				assert.Equal(t, "토끼", r.Subject)
				assert.Equal(t, "당근을 먹었다", r.Object)
				assert.Equal(t, "당근을 먹었다", r.Action)
				assert.Equal(t, []string{"토끼"}, r.Persons)
				assert.False(t, r.HasFirstPerson)
			},
		},
		{
			name:     "narrator with friend and compound place",
			sentence: "나는 친구와 학교 체육관에서 공을 찼다.",
			check: func(t *testing.T, r *Roles) {
				assert.True(t, r.HasFirstPerson)
				assert.Equal(t, []string{"화자", "친구"}, r.Persons)
				assert.Equal(t, "화자", r.Subject)
				assert.Equal(t, "체육관", r.Location)
				assert.Equal(t, "찼다", r.Action)
				assert.Equal(t, "학교", r.Object)
				assert.NotContains(t, r.Nouns, "체육관")
			},
		},
		{
			name:     "country beats place",
			sentence: "마을 사람들은 신라 땅에서 살았다.",
			check: func(t *testing.T, r *Roles) {
				assert.Equal(t, "신라", r.Location)
			},
		},
		{
			name:     "sea inside sea of fire is not a place",
			sentence: "불바다 때문에 바다에서 도망쳤다.",
			check: func(t *testing.T, r *Roles) {
				assert.Empty(t, r.Location)
			},
		},
		{
			name:     "marked person keyword comes first",
			sentence: "왕자는 여우가 숨은 곳을 찾았다.",
			check: func(t *testing.T, r *Roles) {
				assert.Equal(t, "왕자", r.Subject)
				assert.Equal(t, []string{"왕자", "여우"}, r.Persons)
			},
		},
		{
			name:     "topic-marked elder before subject-marked animal",
			sentence: "할머니는 토끼가 우는 소리를 들었다.",
			check: func(t *testing.T, r *Roles) {
				assert.Equal(t, "할머니", r.Subject)
				assert.Equal(t, []string{"할머니", "토끼"}, r.Persons)
			},
		},
		{
			name:     "sea is a place",
			sentence: "어부가 바다에서 그물을 던졌다.",
			check: func(t *testing.T, r *Roles) {
				assert.Equal(t, "바다", r.Location)
				assert.Equal(t, "어부", r.Subject)
				assert.Equal(t, "그물을 던졌다", r.Action)
			},
		},
		{
			name:     "honorific suffix marks a person",
			sentence: "임금님은 잔치를 열었다.",
			check: func(t *testing.T, r *Roles) {
				assert.Equal(t, []string{"임금님"}, r.Persons)
			},
		},
		{
			name:     "abstract object yields no phrase",
			sentence: "그것을 보았다.",
			check: func(t *testing.T, r *Roles) {
				assert.Empty(t, r.VerbPhrases)
				assert.Equal(t, "보았다", r.Action)
			},
		},
	}
	x := testExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := x.Analyze(context.Background(), tt.sentence)
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func comprehensionCorpus(t *testing.T, texts ...string) *corpus.Store {
	t.Helper()
	var recs []corpus.SentenceRecord
	for _, s := range texts {
		recs = append(recs, corpus.SentenceRecord{Text: s, Age: 8, Difficulty: "8_10"})
	}
	store, err := corpus.New(recs)
	require.NoError(t, err)
	return store
}

func newTestComprehension(store *corpus.Store) *Comprehension {
	cfg := DefaultComprehensionConfig()
	cfg.Rand = sampling.Seeded(3)
	return NewComprehension(store, testExtractor(), cfg)
}

var storySentences = []string{
	"토끼가 숲에서 당근을 먹었다.",
	"왕자가 성에서 공주를 만났다.",
	"할머니가 마을에서 떡을 만들었다.",
	"어부가 바다에서 물고기를 잡았다.",
	"소녀가 호수에서 오리를 보았다.",
}

func TestComprehension_Generate(t *testing.T) {
	c := newTestComprehension(comprehensionCorpus(t, storySentences...))
	ctx := context.Background()

	for _, qt := range []QuestionType{TypeWho, TypeWhat, TypeWhere, TypeWhy, TypeHow, TypeAuto} {
		t.Run(string(qt), func(t *testing.T) {
			q, err := c.Generate(ctx, 8, qt)
			require.NoError(t, err)
			require.NoError(t, q.Validate())
			assert.Equal(t, KindComprehension, q.Kind)
			assert.Contains(t, storySentences, q.Passage)
			assert.GreaterOrEqual(t, len([]rune(q.CorrectAnswer)), 2)
			if qt != TypeAuto {
				assert.Equal(t, qt, q.QuestionType)
			}
		})
	}

	q, err := c.Generate(ctx, 8, TypeWhere)
	require.NoError(t, err)
	assert.Contains(t, []string{"마을", "바다", "호수"}, q.CorrectAnswer)
	assert.Equal(t, "이 일이 어디에서 일어났나요?", q.Prompt)

	q, err = c.Generate(ctx, 8, TypeWhat)
	require.NoError(t, err)
	assert.Contains(t, q.Prompt, "무엇을 했나요?")
}

func TestComprehension_WhoFollowsSentenceOrder(t *testing.T) {
	want := map[string]string{
		"왕자는 여우가 숨은 곳을 찾았다.":   "왕자",
		"할머니는 토끼가 우는 소리를 들었다.": "할머니",
	}
	texts := append([]string{}, storySentences...)
	for s := range want {
		texts = append(texts, s)
	}
	c := newTestComprehension(comprehensionCorpus(t, texts...))

	seen := 0
	for range 40 {
		q, err := c.Generate(context.Background(), 8, TypeWho)
		require.NoError(t, err)
		if answer, ok := want[q.Passage]; ok {
			assert.Equal(t, answer, q.CorrectAnswer, q.Passage)
			seen++
		}
	}
	assert.Positive(t, seen)
}

func TestComprehension_NarratorOnlyRejectedForWho(t *testing.T) {
	c := newTestComprehension(comprehensionCorpus(t,
		"나는 오늘 아침 일찍 일어나 운동장을 달렸다.",
		"나는 사과를 먹었다.",
	))
	_, err := c.Generate(context.Background(), 8, TypeWho)
	assert.ErrorIs(t, err, corpus.ErrUnsatisfiable)
}

func TestComprehension_Filters(t *testing.T) {
	c := newTestComprehension(comprehensionCorpus(t,
		`"어디 가니?" "학교 가요." "왜?" 토끼가 물었다.`,
		"토끼가 내일 당근을 먹을 것이다.",
	))
	_, err := c.Generate(context.Background(), 8, TypeWhat)
	assert.ErrorIs(t, err, corpus.ErrUnsatisfiable)
}

func TestComprehension_Errors(t *testing.T) {
	c := newTestComprehension(comprehensionCorpus(t, storySentences...))
	_, err := c.Generate(context.Background(), 5, TypeAuto)
	assert.ErrorIs(t, err, corpus.ErrNoData)

	_, err = c.Generate(context.Background(), 8, TypeSynonym)
	assert.Error(t, err)
}

func TestComprehension_AdaptiveTest(t *testing.T) {
	c := newTestComprehension(comprehensionCorpus(t, storySentences...))
	cfg := AdaptiveConfig{InitialAge: 8, NumQuestions: 3, Staircase: Staircase{Min: 8, Max: 8}}

	res, err := c.AdaptiveTest(context.Background(), &ScriptedAnswers{Script: []bool{true, false, true}}, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Results, 3)
	assert.Equal(t, 8, res.EstimatedLevel)
	assert.InDelta(t, 66.7, res.Accuracy, 0.01)
}
