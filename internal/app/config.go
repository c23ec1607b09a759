package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/quiz"
	"github.com/abhisek/dongwha/internal/server"
	"github.com/abhisek/dongwha/internal/vocab"
)

// Paths locates the prepared artifacts. Empty paths are skipped.
type Paths struct {
	Corpus    string `yaml:"corpus"`
	Vocab     string `yaml:"vocab"`
	Sentences string `yaml:"sentences"`
	Word2Vec  string `yaml:"word2vec"`
	DB        string `yaml:"db"`
}

// EmbeddingConfig selects the sentence encoder used for puzzle
// verification.
type EmbeddingConfig struct {
	// Backend is "ngram" (local, default) or "remote" (the configured
	// embedding provider).
	Backend string `yaml:"backend"`
	Dim     int    `yaml:"dim"`

	CacheSize   int           `yaml:"cache_size"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisPrefix string        `yaml:"redis_prefix"`
	RedisTTL    time.Duration `yaml:"redis_ttl"`

	// RateLimit caps remote encodes per second. Zero disables it.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// TaggerConfig selects the part-of-speech tagger.
type TaggerConfig struct {
	// LLM tags with the configured chat provider and falls back to the
	// rule tagger on failure.
	LLM bool `yaml:"llm"`
}

// Config is the whole application configuration.
type Config struct {
	Paths         Paths                          `yaml:"paths"`
	Server        server.Config                  `yaml:"server"`
	Log           logger.Config                  `yaml:"log"`
	Embedding     EmbeddingConfig                `yaml:"embedding"`
	Tagger        TaggerConfig                   `yaml:"tagger"`
	Puzzle        puzzle.Config                  `yaml:"puzzle"`
	Game          puzzle.GameConfig              `yaml:"game"`
	Vocabulary    assessment.VocabularyConfig    `yaml:"vocabulary"`
	Comprehension assessment.ComprehensionConfig `yaml:"comprehension"`
	Quiz          quiz.Config                    `yaml:"quiz"`
	Classifier    vocab.Classifier               `yaml:"classifier"`
}

func DefaultConfig() Config {
	return Config{
		Server: server.DefaultConfig(),
		Log:    logger.DefaultConfig(),
		Embedding: EmbeddingConfig{
			Backend:   "ngram",
			CacheSize: 10000,
			RedisTTL:  24 * time.Hour,
			RateLimit: 5,
			Burst:     5,
		},
		Puzzle:        puzzle.DefaultConfig(),
		Game:          puzzle.DefaultGameConfig(),
		Vocabulary:    assessment.DefaultVocabularyConfig(),
		Comprehension: assessment.DefaultComprehensionConfig(),
		Quiz:          quiz.DefaultConfig(),
		Classifier:    vocab.DefaultClassifier(),
	}
}

// LoadDotEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadConfig returns the defaults overlaid with the YAML tuning file at
// path (if any) and then with DONGWHA_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("DONGWHA_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Paths.Corpus, "DONGWHA_CORPUS")
	set(&cfg.Paths.Vocab, "DONGWHA_VOCAB")
	set(&cfg.Paths.Sentences, "DONGWHA_SENTENCES")
	set(&cfg.Paths.Word2Vec, "DONGWHA_WORD2VEC")
	set(&cfg.Paths.DB, "DONGWHA_DB")
	set(&cfg.Server.Addr, "DONGWHA_ADDR")
	set(&cfg.Embedding.Backend, "DONGWHA_EMBEDDING_BACKEND")
	set(&cfg.Embedding.RedisAddr, "DONGWHA_REDIS_ADDR")
	set(&cfg.Log.Mode, "DONGWHA_LOG_MODE")
	set(&cfg.Log.Level, "DONGWHA_LOG_LEVEL")
	set(&cfg.Log.File, "DONGWHA_LOG_FILE")
	cfg.Log.HashSalt = strings.TrimSpace(os.Getenv("DONGWHA_LOG_HASH_SALT"))
	if v := os.Getenv("DONGWHA_LLM_TAGGER"); v == "1" || strings.EqualFold(v, "true") {
		cfg.Tagger.LLM = true
	}
	if v := os.Getenv("DONGWHA_CORS_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = strings.Split(v, ",")
	}
}
