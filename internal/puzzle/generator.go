// Package puzzle builds word-order puzzles from story sentences and checks
// learners' reassembled answers.
package puzzle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/embedding"
	"github.com/abhisek/dongwha/internal/sampling"
)

// GenerateInput selects the puzzle target. Age 0 picks a random age
// present in the corpus.
type GenerateInput struct {
	Age        int
	Difficulty Difficulty
}

// Generator produces puzzles from a corpus and verifies answers with an
// embedding oracle.
type Generator struct {
	corpus *corpus.Store
	oracle embedding.Oracle
	config Config
	rand   sampling.Source
}

// New creates a Generator.
func New(store *corpus.Store, oracle embedding.Oracle, cfg Config) *Generator {
	return &Generator{corpus: store, oracle: oracle, config: cfg, rand: sampling.Or(cfg.Rand)}
}

// Generate picks a sentence whose word count fits the age and difficulty
// and returns it as a shuffled puzzle.
func (g *Generator) Generate(_ context.Context, in GenerateInput) (*Puzzle, error) {
	if in.Difficulty == "" {
		in.Difficulty = Medium
	}
	if in.Difficulty.index() < 0 {
		return nil, fmt.Errorf("unknown difficulty %q", in.Difficulty)
	}

	age := in.Age
	if age == 0 {
		a, ok := sampling.Choice(g.rand, g.corpus.Ages())
		if !ok {
			return nil, &corpus.NoDataError{Source: "corpus", Age: 0}
		}
		age = a
	}
	records := g.corpus.ForAge(age)
	if len(records) == 0 {
		return nil, &corpus.NoDataError{Source: "corpus", Age: age}
	}

	wr := g.config.RangeFor(age, in.Difficulty)
	for range g.config.MaxAttempts {
		rec, _ := sampling.Choice(g.rand, records)
		for _, sent := range corpus.SplitSentences(rec.Text) {
			if wr.Contains(len(corpus.Words(sent))) {
				return g.build(sent, age, in.Difficulty, rec), nil
			}
		}
	}

	rec, ok := sampling.Choice(g.rand, g.corpus.Summaries(age))
	if !ok {
		return nil, &corpus.UnsatisfiableError{Kind: "puzzle", Age: age, Attempts: g.config.MaxAttempts}
	}
	return g.build(corpus.EnsureTerminal(strings.TrimSpace(rec.Text)), age, in.Difficulty, rec), nil
}

func (g *Generator) build(sentence string, age int, d Difficulty, rec corpus.SentenceRecord) *Puzzle {
	words := corpus.Words(sentence)
	pieces := make([]Piece, len(words))
	for i, w := range words {
		pieces[i] = Piece{ID: i, Word: w, Position: i}
	}
	sum := sha256.Sum256([]byte(sentence))
	return &Puzzle{
		ID:               hex.EncodeToString(sum[:8]),
		Age:              age,
		Difficulty:       d,
		OriginalSentence: sentence,
		Pieces:           pieces,
		Shuffled:         sampling.Shuffled(g.rand, pieces),
		WordCount:        len(words),
		Title:            rec.Title,
		Metadata: Metadata{
			Type:            string(rec.Type),
			Form:            rec.Form,
			DifficultyRange: rec.Difficulty,
		},
	}
}

// Verify checks answer against original. A trimmed exact match always
// passes; otherwise the embedding similarity must reach threshold. A
// threshold of zero uses the configured default.
func (g *Generator) Verify(ctx context.Context, original, answer string, threshold float64) (*Verification, error) {
	if strings.TrimSpace(original) == "" {
		return nil, errors.New("original sentence is empty")
	}
	if threshold <= 0 {
		threshold = g.config.Threshold
	}
	exact := strings.TrimSpace(original) == strings.TrimSpace(answer)

	sim, err := embedding.Similarity(ctx, g.oracle, original, answer)
	if err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}
	return &Verification{
		Passed:     exact || sim >= threshold,
		Similarity: sim,
		ExactMatch: exact,
		Original:   original,
		UserAnswer: answer,
		Threshold:  threshold,
	}, nil
}
