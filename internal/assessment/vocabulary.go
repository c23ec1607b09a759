package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/sampling"
)

// BlankMarker replaces the target word in context questions.
const BlankMarker = "_______"

// VocabularyConfig controls vocabulary question generation.
type VocabularyConfig struct {
	MinWords    int `yaml:"min_words"`
	MaxWords    int `yaml:"max_words"`
	MaxAttempts int `yaml:"max_attempts"`

	// LevelGap is the age distance of the easier and harder distractors.
	LevelGap int `yaml:"level_gap"`

	Adaptive AdaptiveConfig `yaml:"adaptive"`

	Rand sampling.Source `yaml:"-"`
}

// DefaultVocabularyConfig returns the tuned settings.
func DefaultVocabularyConfig() VocabularyConfig {
	return VocabularyConfig{
		MinWords:    5,
		MaxWords:    15,
		MaxAttempts: 20,
		LevelGap:    2,
		Adaptive:    DefaultAdaptiveConfig(),
	}
}

// Vocabulary generates fill-in-the-blank word questions.
type Vocabulary struct {
	corpus *corpus.Store
	config VocabularyConfig
	rand   sampling.Source

	byAge map[int][]string
	all   []string
}

// NewVocabulary indexes the content words of every corpus sentence by age.
func NewVocabulary(store *corpus.Store, cfg VocabularyConfig) *Vocabulary {
	v := &Vocabulary{
		corpus: store,
		config: cfg,
		rand:   sampling.Or(cfg.Rand),
		byAge:  make(map[int][]string),
	}
	seenAll := make(map[string]bool)
	for _, age := range store.Ages() {
		seen := make(map[string]bool)
		for _, rec := range store.ForAge(age) {
			for _, w := range corpus.ContentWords(rec.Text) {
				if !seen[w] {
					seen[w] = true
					v.byAge[age] = append(v.byAge[age], w)
				}
				if !seenAll[w] {
					seenAll[w] = true
					v.all = append(v.all, w)
				}
			}
		}
	}
	return v
}

// WordsForAge returns the content words seen at age.
func (v *Vocabulary) WordsForAge(age int) []string {
	return v.byAge[age]
}

// Generate dispatches on question type. An empty type means context.
func (v *Vocabulary) Generate(ctx context.Context, age int, qt QuestionType) (*Question, error) {
	switch qt {
	case "", TypeContext:
		return v.GenerateContextQuestion(ctx, age)
	case TypeDefinition:
		return v.GenerateDefinitionQuestion(ctx, age)
	case TypeSynonym:
		return v.GenerateSynonymQuestion(ctx, age)
	}
	return nil, fmt.Errorf("unknown vocabulary question type %q", qt)
}

// GenerateContextQuestion blanks a content word in a sentence and asks for
// the missing word.
func (v *Vocabulary) GenerateContextQuestion(ctx context.Context, age int) (*Question, error) {
	q, err := v.generate(ctx, age)
	if err != nil {
		return nil, err
	}
	q.QuestionType = TypeContext
	q.Prompt = "다음 문장의 빈칸에 들어갈 알맞은 단어를 고르세요.\n\n" + q.BlankSentence
	return q, nil
}

// GenerateDefinitionQuestion asks for the meaning of the target word. The
// choices are built exactly like a context question.
func (v *Vocabulary) GenerateDefinitionQuestion(ctx context.Context, age int) (*Question, error) {
	q, err := v.generate(ctx, age)
	if err != nil {
		return nil, err
	}
	q.QuestionType = TypeDefinition
	q.Prompt = fmt.Sprintf(`"%s"의 의미로 가장 적절한 것은?`, q.CorrectAnswer)
	return q, nil
}

// GenerateSynonymQuestion asks for a word similar to the target word.
func (v *Vocabulary) GenerateSynonymQuestion(ctx context.Context, age int) (*Question, error) {
	q, err := v.generate(ctx, age)
	if err != nil {
		return nil, err
	}
	q.QuestionType = TypeSynonym
	q.Prompt = fmt.Sprintf(`다음 문장에서 "%s"와 비슷한 의미의 단어는?`, q.CorrectAnswer)
	return q, nil
}

// AdaptiveTest runs the staircase over context questions.
func (v *Vocabulary) AdaptiveTest(ctx context.Context, answers AnswerProvider, cfg AdaptiveConfig) (*TestResult, error) {
	return RunAdaptive(ctx, v.GenerateContextQuestion, answers, cfg)
}

func (v *Vocabulary) generate(ctx context.Context, age int) (*Question, error) {
	records := v.corpus.ForAge(age)
	if len(records) == 0 {
		return nil, &corpus.NoDataError{Source: "corpus", Age: age}
	}
	pool := v.corpus.WithWordCount(age, v.config.MinWords, v.config.MaxWords)
	if len(pool) == 0 {
		pool = records
	}

	var lastErr error
	for range v.config.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, _ := sampling.Choice(v.rand, pool)
		target, ok := sampling.Choice(v.rand, corpus.ContentWords(rec.Text))
		if !ok {
			continue
		}
		distractors := v.distractors(age, target)
		q, err := newQuestion(v.rand, KindVocabulary, TypeContext, age, target, distractors)
		if err != nil {
			lastErr = err
			continue
		}
		q.BlankSentence = blankWord(rec.Text, target)
		q.OriginalSentence = rec.Text
		q.Title = rec.Title
		return q, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no content words in sampled sentences")
	}
	return nil, &corpus.UnsatisfiableError{Kind: "vocabulary question", Age: age, Attempts: v.config.MaxAttempts, Err: lastErr}
}

// distractors draws one easier, one harder and one same-level word, then
// fills from the whole vocabulary until three distinct wrong words exist.
func (v *Vocabulary) distractors(age int, target string) []string {
	var out []string
	taken := func(w string) bool {
		if w == target {
			return true
		}
		for _, o := range out {
			if o == w {
				return true
			}
		}
		return false
	}
	pickFrom := func(words []string) {
		var ok []string
		for _, w := range words {
			if !taken(w) {
				ok = append(ok, w)
			}
		}
		if w, found := sampling.Choice(v.rand, ok); found {
			out = append(out, w)
		}
	}

	gap := v.config.LevelGap
	if age > corpus.MinAge {
		pickFrom(v.byAge[age-gap])
	}
	if age < corpus.MaxAge {
		pickFrom(v.byAge[age+gap])
	}
	pickFrom(v.byAge[age])

	if need := NumChoices - 1 - len(out); need > 0 {
		var rest []string
		for _, w := range v.all {
			if !taken(w) {
				rest = append(rest, w)
			}
		}
		out = append(out, sampling.Sample(v.rand, rest, need)...)
	}
	return out
}

// blankWord replaces the first whitespace-delimited occurrence of word in
// text, so that 나무 inside 나무꾼 is left alone.
func blankWord(text, word string) string {
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			break
		}
		start, end := from+i, from+i+len(word)
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || unicode.IsSpace(before)) && (end == len(text) || unicode.IsSpace(after)) {
			return text[:start] + BlankMarker + text[end:]
		}
		from = start + 1
	}
	return strings.Replace(text, word, BlankMarker, 1)
}
