package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/sampling"
)

var (
	errRoleMissing    = errors.New("required role missing")
	errNarratorOnly   = errors.New("only the narrator is present")
	errUnsuitable     = errors.New("sentence unsuitable")
	errAnswerTooShort = errors.New("answer too short")
)

// ComprehensionConfig controls reading comprehension generation.
type ComprehensionConfig struct {
	MinWords          int `yaml:"min_words"`
	MaxWords          int `yaml:"max_words"`
	MaxAttempts       int `yaml:"max_attempts"`
	MaxQuotes         int `yaml:"max_quotes"`
	MaxQuestionMarks  int `yaml:"max_question_marks"`
	SameSentenceNouns int `yaml:"same_sentence_nouns"`
	DistractorSamples int `yaml:"distractor_samples"`
	MinAnswerRunes    int `yaml:"min_answer_runes"`

	Rules    Rules          `yaml:"rules"`
	Adaptive AdaptiveConfig `yaml:"adaptive"`

	Rand sampling.Source `yaml:"-"`
}

// DefaultComprehensionConfig returns the tuned settings.
func DefaultComprehensionConfig() ComprehensionConfig {
	return ComprehensionConfig{
		MinWords:          10,
		MaxWords:          20,
		MaxAttempts:       50,
		MaxQuotes:         2,
		MaxQuestionMarks:  1,
		SameSentenceNouns: 2,
		DistractorSamples: 5,
		MinAnswerRunes:    2,
		Rules:             DefaultRules(),
		Adaptive:          DefaultAdaptiveConfig(),
	}
}

var questionTexts = map[QuestionType]string{
	TypeWho:   "이 글의 주인공(주요 인물)은 누구인가요?",
	TypeWhat:  "이 글에서 일어난 일은 무엇인가요?",
	TypeWhere: "이 일이 어디에서 일어났나요?",
	TypeWhy:   "왜 이런 일이 일어났나요?",
	TypeHow:   "어떻게 이 일이 일어났나요?",
}

// Comprehension generates who/what/where/why/how questions about a single
// corpus sentence.
type Comprehension struct {
	corpus    *corpus.Store
	extractor *RoleExtractor
	config    ComprehensionConfig
	rand      sampling.Source
}

// NewComprehension creates a generator using extractor for role analysis.
func NewComprehension(store *corpus.Store, extractor *RoleExtractor, cfg ComprehensionConfig) *Comprehension {
	return &Comprehension{corpus: store, extractor: extractor, config: cfg, rand: sampling.Or(cfg.Rand)}
}

// AdaptiveTest runs the staircase over auto-typed questions.
func (c *Comprehension) AdaptiveTest(ctx context.Context, answers AnswerProvider, cfg AdaptiveConfig) (*TestResult, error) {
	return RunAdaptive(ctx, func(ctx context.Context, age int) (*Question, error) {
		return c.Generate(ctx, age, TypeAuto)
	}, answers, cfg)
}

// Generate builds a comprehension question of type qt for age. TypeAuto
// picks among who, what and where, whichever the sampled sentence
// supports.
func (c *Comprehension) Generate(ctx context.Context, age int, qt QuestionType) (*Question, error) {
	if qt == "" {
		qt = TypeAuto
	}
	if _, ok := questionTexts[qt]; !ok && qt != TypeAuto {
		return nil, fmt.Errorf("unknown comprehension question type %q", qt)
	}

	all := c.corpus.ForAge(age)
	if len(all) == 0 {
		return nil, &corpus.NoDataError{Source: "corpus", Age: age}
	}
	pool := c.corpus.WithWordCount(age, c.config.MinWords, c.config.MaxWords)
	if len(pool) == 0 {
		pool = all
	}

	var lastErr error
	for range c.config.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, _ := sampling.Choice(c.rand, pool)
		q, err := c.attempt(ctx, rec, all, age, qt)
		if err == nil {
			return q, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, &corpus.UnsatisfiableError{
		Kind:     fmt.Sprintf("%s comprehension question", qt),
		Age:      age,
		Attempts: c.config.MaxAttempts,
		Err:      lastErr,
	}
}

func isRetryable(err error) bool {
	for _, e := range []error{errRoleMissing, errNarratorOnly, errUnsuitable, errAnswerTooShort, corpus.ErrInsufficientDistractors} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func (c *Comprehension) attempt(ctx context.Context, rec corpus.SentenceRecord, all []corpus.SentenceRecord, age int, qt QuestionType) (*Question, error) {
	text := rec.Text
	quotes := strings.Count(text, `"`) + strings.Count(text, "'")
	marks := strings.Count(text, "?")
	if quotes > c.config.MaxQuotes || marks > c.config.MaxQuestionMarks {
		return nil, errUnsuitable
	}

	roles, err := c.extractor.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	whatOK := roles.Action != "" && marks == 0 && !c.hasFuture(text)
	if qt == TypeAuto {
		var avail []QuestionType
		if _, err := c.who(roles); err == nil {
			avail = append(avail, TypeWho)
		}
		if whatOK {
			avail = append(avail, TypeWhat)
		}
		if roles.Location != "" {
			avail = append(avail, TypeWhere)
		}
		t, ok := sampling.Choice(c.rand, avail)
		if !ok {
			return nil, errRoleMissing
		}
		qt = t
	} else if qt == TypeWhat && !whatOK {
		return nil, errUnsuitable
	}

	prompt := questionTexts[qt]
	var answer string
	switch qt {
	case TypeWho:
		answer, err = c.who(roles)
	case TypeWhat:
		answer = roles.Object
		if answer == "" {
			answer = roles.Action
		}
		if roles.Subject != "" && roles.Subject != c.config.Rules.Narrator && contains(roles.Persons, roles.Subject) {
			prompt = roles.Subject + "이(가) 무엇을 했나요?"
		}
	case TypeWhere:
		answer = roles.Location
	case TypeWhy, TypeHow:
		answer = roles.Action
	}
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, errRoleMissing
	}
	if utf8.RuneCountInString(answer) < c.config.MinAnswerRunes {
		return nil, errAnswerTooShort
	}

	distractors, err := c.distractors(ctx, answer, roles, all)
	if err != nil {
		return nil, err
	}
	q, err := newQuestion(c.rand, KindComprehension, qt, age, answer, distractors)
	if err != nil {
		return nil, err
	}
	q.Prompt = prompt
	q.Passage = text
	q.Title = rec.Title
	return q, nil
}

// who picks the main character. A narrator alongside another person yields
// the other person; a narrator alone is unsuitable.
func (c *Comprehension) who(r *Roles) (string, error) {
	if len(r.Persons) == 0 {
		return "", errRoleMissing
	}
	if r.Persons[0] == c.config.Rules.Narrator {
		if len(r.Persons) == 1 {
			return "", errNarratorOnly
		}
		return r.Persons[1], nil
	}
	return r.Persons[0], nil
}

func (c *Comprehension) hasFuture(text string) bool {
	for _, m := range c.config.Rules.FutureMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// distractors takes nouns from the same sentence first, then samples nouns
// from other sentences of the same age.
func (c *Comprehension) distractors(ctx context.Context, answer string, roles *Roles, all []corpus.SentenceRecord) ([]string, error) {
	usable := func(n string) bool {
		return n != answer && utf8.RuneCountInString(n) >= c.config.MinAnswerRunes
	}

	var out []string
	for _, n := range roles.Nouns {
		if len(out) == c.config.SameSentenceNouns {
			break
		}
		if usable(n) {
			out = append(out, n)
		}
	}

	for i := 0; i < c.config.DistractorSamples && len(out) < NumChoices-1; i++ {
		rec, _ := sampling.Choice(c.rand, all)
		other, err := c.extractor.Analyze(ctx, rec.Text)
		if err != nil {
			return nil, err
		}
		var cands []string
		for _, n := range other.Nouns {
			if usable(n) {
				cands = append(cands, n)
			}
		}
		if n, ok := sampling.Choice(c.rand, cands); ok {
			out = append(out, n)
		}
	}

	out = dedupe(out, answer)
	if len(out) < NumChoices-1 {
		return nil, corpus.ErrInsufficientDistractors
	}
	return out[:NumChoices-1], nil
}
