// Package quiz serves fill-in-the-blank vocabulary quizzes built from the
// frequency-ranked vocabulary table and records learners' answers.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/sampling"
	"github.com/abhisek/dongwha/internal/store"
	"github.com/abhisek/dongwha/internal/vocab"
	"github.com/abhisek/dongwha/internal/wordvec"
)

// ErrNoHistory is returned when a user has no recorded answers.
var ErrNoHistory = errors.New("no answer history")

// NeighborModel finds words similar to a given word.
type NeighborModel interface {
	NearestNeighbors(word string, topN int) ([]wordvec.Neighbor, error)
}

// Config controls quiz generation.
type Config struct {
	PoolSize         int    `yaml:"pool_size"`
	NeighborTopN     int    `yaml:"neighbor_top_n"`
	DefaultQuestions int    `yaml:"default_questions"`
	MaxQuestions     int    `yaml:"max_questions"`
	Blank            string `yaml:"blank"`

	Rand sampling.Source `yaml:"-"`
}

// DefaultConfig returns the standard quiz settings.
func DefaultConfig() Config {
	return Config{
		PoolSize:         100,
		NeighborTopN:     20,
		DefaultQuestions: 5,
		MaxQuestions:     20,
		Blank:            "___",
	}
}

// Service builds quizzes and keeps the answer history.
type Service struct {
	vocab     *vocab.Table
	sentences vocab.SentenceIndex
	neighbors NeighborModel
	events    store.EventRepo
	config    Config
	rand      sampling.Source
}

// NewService wires a quiz service. sentences and neighbors may be nil, in
// which case templates and vocabulary-only distractors are used.
func NewService(table *vocab.Table, sentences vocab.SentenceIndex, neighbors NeighborModel, events store.EventRepo, cfg Config) *Service {
	return &Service{
		vocab:     table,
		sentences: sentences,
		neighbors: neighbors,
		events:    events,
		config:    cfg,
		rand:      sampling.Or(cfg.Rand),
	}
}

// Validate normalises defaults and checks ranges.
func (s *Service) Validate(req *Request) error {
	if req.NumQuestions == 0 {
		req.NumQuestions = s.config.DefaultQuestions
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}
	if req.AgeGroup < vocab.MinAge || req.AgeGroup > vocab.MaxAge {
		return &ValidationError{Field: "age_group", Message: fmt.Sprintf("must be between %d and %d", vocab.MinAge, vocab.MaxAge)}
	}
	if req.NumQuestions < 1 || req.NumQuestions > s.config.MaxQuestions {
		return &ValidationError{Field: "num_questions", Message: fmt.Sprintf("must be between 1 and %d", s.config.MaxQuestions)}
	}
	return nil
}

// BuildQuiz samples distinct words from the most frequent words of the age
// group and builds a question for each.
func (s *Service) BuildQuiz(ctx context.Context, req Request) (*Quiz, error) {
	if err := s.Validate(&req); err != nil {
		return nil, err
	}
	pool := s.vocab.TopByFrequency(req.AgeGroup, s.config.PoolSize)
	if len(pool) < req.NumQuestions {
		return nil, fmt.Errorf("%w: need %d words, have %d",
			&corpus.NoDataError{Source: "vocabulary", Age: req.AgeGroup}, req.NumQuestions, len(pool))
	}

	quiz := &Quiz{Questions: make([]Question, 0, req.NumQuestions)}
	for i, e := range sampling.Sample(s.rand, pool, req.NumQuestions) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wrong, err := s.distractors(e, pool)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, Question{
			QuestionID:    i + 1,
			Sentence:      s.blankSentence(e, req.AgeGroup),
			BlankPosition: 0,
			Options:       sampling.Shuffled(s.rand, append([]string{e.Word}, wrong...)),
			CorrectAnswer: e.Word,
			WordInfo:      wordInfo(e),
		})
	}
	return quiz, nil
}

func (s *Service) blankSentence(e vocab.Entry, age int) string {
	if sent, ok := s.sentences.Blank(s.rand, e.Word, s.config.Blank); ok {
		return sent
	}
	t, _ := sampling.Choice(s.rand, templatesFor(e.POS, age, vocab.POSNoun))
	return t
}

// distractors returns exactly three wrong options, preferring word-vector
// neighbours of the same part of speech within the pool, then the pool,
// then the whole vocabulary.
func (s *Service) distractors(e vocab.Entry, pool []vocab.Entry) ([]string, error) {
	inPool := make(map[string]string, len(pool))
	for _, p := range pool {
		inPool[p.Word] = p.POS
	}

	var tiers [4][]string
	if s.neighbors != nil {
		if ns, err := s.neighbors.NearestNeighbors(e.Word, s.config.NeighborTopN); err == nil {
			for _, n := range ns {
				if pos, ok := inPool[n.Word]; ok && pos == e.POS {
					tiers[0] = append(tiers[0], n.Word)
				}
			}
		}
	}
	for _, p := range pool {
		if p.POS == e.POS {
			tiers[1] = append(tiers[1], p.Word)
		}
	}
	for _, v := range s.vocab.All() {
		if v.POS == e.POS {
			tiers[2] = append(tiers[2], v.Word)
		}
		tiers[3] = append(tiers[3], v.Word)
	}

	seen := map[string]bool{e.Word: true}
	var out []string
	for _, tier := range tiers {
		for _, w := range sampling.Shuffled(s.rand, tier) {
			if len(out) == 3 {
				return out, nil
			}
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	if len(out) < 3 {
		return nil, fmt.Errorf("word %q: %w", e.Word, corpus.ErrInsufficientDistractors)
	}
	return out, nil
}

// Submit grades an answer by exact string equality and records it.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if sub.UserID == "" {
		sub.UserID = "anonymous"
	}
	correct := sub.UserAnswer == sub.CorrectAnswer

	err := s.events.AppendAnswer(ctx, store.AnswerEventData{
		UserID:        sub.UserID,
		Kind:          store.KindQuiz,
		AgeGroup:      sub.AgeGroup,
		Word:          sub.Word,
		Sentence:      sub.Sentence,
		CorrectAnswer: sub.CorrectAnswer,
		UserAnswer:    sub.UserAnswer,
		Correct:       correct,
	})
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	res := &Result{IsCorrect: correct, CorrectAnswer: sub.CorrectAnswer}
	if correct {
		res.Explanation = "정확합니다! 잘했어요! 🎉"
	} else {
		res.Explanation = fmt.Sprintf("정답은 '%s'입니다. 다시 한번 생각해보세요!", sub.CorrectAnswer)
	}
	return res, nil
}

// UserStats summarises a user's answers of the given kind ("" for all).
func (s *Service) UserStats(ctx context.Context, userID, kind string) (*UserStats, error) {
	tallies, err := s.events.AnswerTallies(ctx, store.AnswerFilter{UserID: userID, Kind: kind})
	if err != nil {
		return nil, err
	}
	stats := &UserStats{ByAgeGroup: make(map[string]AgeAccuracy)}
	for _, t := range tallies {
		stats.TotalQuestions += t.Total
		stats.CorrectCount += t.Correct
		stats.ByAgeGroup[strconv.Itoa(t.AgeGroup)] = AgeAccuracy{
			Total:    t.Total,
			Correct:  t.Correct,
			Accuracy: percent(t.Correct, t.Total),
		}
	}
	if stats.TotalQuestions == 0 {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNoHistory)
	}
	stats.Accuracy = percent(stats.CorrectCount, stats.TotalQuestions)
	return stats, nil
}

// AllStats summarises every recorded answer. TotalSubmissions is zero when
// nothing has been recorded.
func (s *Service) AllStats(ctx context.Context) (*AllStats, error) {
	tallies, err := s.events.AnswerTallies(ctx, store.AnswerFilter{})
	if err != nil {
		return nil, err
	}
	stats := &AllStats{}
	for _, t := range tallies {
		stats.TotalSubmissions += t.Total
		stats.CorrectAnswers += t.Correct
	}
	if stats.TotalSubmissions == 0 {
		return stats, nil
	}
	stats.OverallAccuracy = percent(stats.CorrectAnswers, stats.TotalSubmissions)
	stats.UniqueUsers, err = s.events.DistinctUsers(ctx, store.AnswerFilter{})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Reset deletes the whole answer history.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	return s.events.ResetAnswers(ctx, store.AnswerFilter{})
}

// Words lists vocabulary entries. With an age group they are ranked by
// frequency; otherwise they are in table order.
func (s *Service) Words(ageGroup, limit int) []WordInfo {
	if limit <= 0 {
		limit = s.config.PoolSize
	}
	var entries []vocab.Entry
	if ageGroup != 0 {
		entries = s.vocab.TopByFrequency(ageGroup, limit)
	} else {
		entries = s.vocab.All()
		if len(entries) > limit {
			entries = entries[:limit]
		}
	}
	out := make([]WordInfo, len(entries))
	for i, e := range entries {
		out[i] = wordInfo(e)
	}
	return out
}

// AgeStats summarises the vocabulary per age group.
func (s *Service) AgeStats() AgeStats {
	return AgeStats{AgeStatistics: s.vocab.AgeStats(), TotalVocabulary: s.vocab.Len()}
}

// Status reports which artifacts the service was built with.
func (s *Service) Status() Status {
	return Status{
		VocabularyLoaded: s.vocab.Len() > 0,
		ModelLoaded:      s.neighbors != nil,
		SentencesLoaded:  s.sentences.Len() > 0,
		TotalWords:       s.vocab.Len(),
	}
}

// Submissions counts all recorded answers.
func (s *Service) Submissions(ctx context.Context) (int, error) {
	stats, err := s.AllStats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.TotalSubmissions, nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 10
}
