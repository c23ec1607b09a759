// Package app loads the prepared artifacts once and wires the services
// that the CLI, the terminal front end and the HTTP server share.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/embedding"
	"github.com/abhisek/dongwha/internal/llm"
	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/postag"
	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/quiz"
	"github.com/abhisek/dongwha/internal/server"
	"github.com/abhisek/dongwha/internal/store"
	"github.com/abhisek/dongwha/internal/vocab"
	"github.com/abhisek/dongwha/internal/wordvec"
)

// App holds the loaded artifacts and the services built on them. Corpus
// services are nil when no corpus is configured.
type App struct {
	Config Config
	Log    *logger.Logger

	Corpus    *corpus.Store
	Vocab     *vocab.Table
	Sentences vocab.SentenceIndex
	WordVec   *wordvec.Model
	Store     *store.Store

	Oracle embedding.Oracle
	Tagger postag.Tagger

	Puzzles       *puzzle.Generator
	Vocabulary    *assessment.Vocabulary
	Comprehension *assessment.Comprehension
	Quiz          *quiz.Service

	closers []io.Closer
}

// Options supplies pre-built dependencies, mainly for tests. Zero fields
// are built from Config.
type Options struct {
	Log      *logger.Logger
	Store    *store.Store
	LLM      llm.Provider
	Embedder llm.Embedder
}

type artifacts struct {
	corpus    *corpus.Store
	table     *vocab.Table
	sentences vocab.SentenceIndex
	model     *wordvec.Model
}

// loadArtifacts reads the configured files in parallel.
func loadArtifacts(ctx context.Context, p Paths) (*artifacts, error) {
	var a artifacts
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		if p.Corpus == "" {
			return nil
		}
		ds, err := corpus.LoadFile(p.Corpus)
		if err != nil {
			return err
		}
		a.corpus, err = corpus.New(ds.Train)
		if err != nil {
			return fmt.Errorf("index corpus: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var entries []vocab.Entry
		if p.Vocab != "" {
			var err error
			if entries, err = vocab.LoadCSV(p.Vocab); err != nil {
				return err
			}
		}
		t, err := vocab.NewTable(entries)
		if err != nil {
			return fmt.Errorf("index vocabulary: %w", err)
		}
		a.table = t
		return nil
	})
	g.Go(func() error {
		if p.Sentences == "" {
			return nil
		}
		var err error
		a.sentences, err = vocab.LoadSentenceIndex(p.Sentences)
		return err
	})
	g.Go(func() error {
		if p.Word2Vec == "" {
			return nil
		}
		var err error
		a.model, err = wordvec.LoadFile(p.Word2Vec)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Load builds an App from cfg.
func Load(ctx context.Context, cfg Config, opts Options) (*App, error) {
	a := &App{Config: cfg, Log: opts.Log}
	if a.Log == nil {
		a.Log = logger.Nop()
	}

	arts, err := loadArtifacts(ctx, cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	a.Corpus, a.Vocab, a.Sentences, a.WordVec = arts.corpus, arts.table, arts.sentences, arts.model

	a.Store = opts.Store
	if a.Store == nil {
		path := cfg.Paths.DB
		if path == "" {
			if path, err = store.DefaultDBPath(); err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
		} else if err := store.EnsureDir(path); err != nil {
			return nil, err
		}
		if a.Store, err = store.Open(path); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.closers = append(a.closers, a.Store)
	}
	events := a.Store.EventRepo()

	if err := a.buildLanguage(ctx, cfg, opts, events); err != nil {
		a.Close()
		return nil, err
	}

	// A nil *wordvec.Model must not become a non-nil interface.
	var neighbors quiz.NeighborModel
	if a.WordVec != nil {
		neighbors = a.WordVec
	}
	a.Quiz = quiz.NewService(a.Vocab, a.Sentences, neighbors, events, cfg.Quiz)

	if a.Corpus != nil && a.Corpus.Len() > 0 {
		a.Puzzles = puzzle.New(a.Corpus, a.Oracle, cfg.Puzzle)
		a.Vocabulary = assessment.NewVocabulary(a.Corpus, cfg.Vocabulary)
		rules := cfg.Comprehension.Rules
		a.Comprehension = assessment.NewComprehension(a.Corpus, assessment.NewRoleExtractor(a.Tagger, rules), cfg.Comprehension)
	}

	a.Log.Info("artifacts loaded",
		"records", a.corpusLen(),
		"words", a.Vocab.Len(),
		"sentence_words", a.Sentences.Len(),
		"word2vec", a.WordVec != nil,
	)
	return a, nil
}

// buildLanguage picks the sentence encoder and the tagger.
func (a *App) buildLanguage(ctx context.Context, cfg Config, opts Options, events store.EventRepo) error {
	var oracle embedding.Oracle
	switch cfg.Embedding.Backend {
	case "", "ngram":
		oracle = embedding.NewNGram(cfg.Embedding.Dim)
	case "remote":
		emb := opts.Embedder
		if emb == nil {
			var err error
			if emb, err = newEmbedder(ctx, events, a.Log); err != nil {
				a.Log.Warn("remote embeddings unavailable, using n-gram encoder", "error", err)
				oracle = embedding.NewNGram(cfg.Embedding.Dim)
				break
			}
		}
		oracle = embedding.NewRemote(emb)
		if cfg.Embedding.RateLimit > 0 {
			oracle = embedding.WithRateLimit(oracle, cfg.Embedding.RateLimit, cfg.Embedding.Burst)
		}
	default:
		return fmt.Errorf("unknown embedding backend %q", cfg.Embedding.Backend)
	}

	var cache embedding.Cache = embedding.NewMemoryCache(cfg.Embedding.CacheSize)
	if cfg.Embedding.RedisAddr != "" {
		rc, err := embedding.NewRedisCache(ctx, cfg.Embedding.RedisAddr, cfg.Embedding.RedisPrefix, cfg.Embedding.RedisTTL)
		if err != nil {
			a.Log.Warn("redis cache unavailable, using memory cache", "addr", cfg.Embedding.RedisAddr, "error", err)
		} else {
			cache = rc
			a.closers = append(a.closers, rc)
		}
	}
	a.Oracle = embedding.WithCache(oracle, cache)

	rules := cfg.Comprehension.Rules
	rule := postag.NewRuleTagger(rules.Lexicon()...)
	a.Tagger = rule
	if cfg.Tagger.LLM {
		provider := opts.LLM
		if provider == nil {
			var err error
			if provider, err = newProvider(ctx, events, a.Log); err != nil {
				a.Log.Warn("LLM tagger unavailable, using rule tagger", "error", err)
				return nil
			}
		}
		a.Tagger = postag.Fallback{
			Primary:   postag.NewLLMTagger(provider, postag.DefaultLLMConfig()),
			Secondary: rule,
		}
	}
	return nil
}

// llmConfig reads DONGWHA_* provider settings, falling back to the
// standard vendor API key variables.
func llmConfig() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if d, ok := llm.DiscoverConfig(); ok {
		return d, nil
	}
	return cfg, fmt.Errorf("LLM provider not configured: %w", err)
}

func newEmbedder(ctx context.Context, events store.EventRepo, log *logger.Logger) (llm.Embedder, error) {
	lc, err := llmConfig()
	if err != nil {
		return nil, err
	}
	return llm.NewEmbedder(ctx, lc, events, log)
}

func newProvider(ctx context.Context, events store.EventRepo, log *logger.Logger) (llm.Provider, error) {
	lc, err := llmConfig()
	if err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, lc, events, log)
}

func (a *App) corpusLen() int {
	if a.Corpus == nil {
		return 0
	}
	return a.Corpus.Len()
}

// ServerDeps returns the HTTP server dependencies.
func (a *App) ServerDeps() server.Deps {
	return server.Deps{
		Puzzles:       a.Puzzles,
		Vocabulary:    a.Vocabulary,
		Comprehension: a.Comprehension,
		Quiz:          a.Quiz,
		Events:        a.Store.EventRepo(),
		Staircase:     a.Config.Comprehension.Adaptive.Staircase,
		Log:           a.Log,
	}
}

// Close releases the store and the cache connection.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
