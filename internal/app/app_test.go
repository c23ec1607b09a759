package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/embedding"
	"github.com/abhisek/dongwha/internal/llm"
	"github.com/abhisek/dongwha/internal/postag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testPaths(t *testing.T) Paths {
	dir := t.TempDir()
	return Paths{
		Corpus: writeFile(t, dir, "corpus.json", `{"train":[
			{"text":"토끼가 숲에서 당근을 먹었다.","age":5,"difficulty":"4_7","title":"토끼"},
			{"text":"거북이가 바다에서 천천히 헤엄쳤다.","age":6,"difficulty":"4_7"}
		]}`),
		Vocab: writeFile(t, dir, "vocab.csv", "id,word,pos,frequency,age_group\n"+
			"1,사과,Noun,500,4\n2,포도,Noun,450,4\n3,바나나,Noun,420,4\n4,딸기,Noun,410,4\n"),
		Sentences: writeFile(t, dir, "sentences.json", `{"사과":["할머니가 빨간 사과를 바구니에 담았어요."]}`),
		Word2Vec:  writeFile(t, dir, "w2v.txt", "2 3\n사과 1 0 0\n포도 0.9 0.1 0\n"),
		DB:        filepath.Join(dir, "db", "dongwha.db"),
	}
}

func TestLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = testPaths(t)

	a, err := Load(context.Background(), cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.Equal(t, 2, a.Corpus.Len())
	assert.Equal(t, 4, a.Vocab.Len())
	assert.Equal(t, 1, a.Sentences.Len())
	require.NotNil(t, a.WordVec)
	assert.Equal(t, 2, a.WordVec.Len())

	require.NotNil(t, a.Puzzles)
	require.NotNil(t, a.Vocabulary)
	require.NotNil(t, a.Comprehension)

	st := a.Quiz.Status()
	assert.True(t, st.ModelLoaded)
	assert.True(t, st.SentencesLoaded)

	_, ok := a.Tagger.(*postag.RuleTagger)
	assert.True(t, ok)

	deps := a.ServerDeps()
	assert.Equal(t, a.Quiz, deps.Quiz)
	assert.Equal(t, 4, deps.Staircase.Min)
}

func TestLoad_WithoutArtifacts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = Paths{DB: filepath.Join(t.TempDir(), "dongwha.db")}

	a, err := Load(context.Background(), cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.Nil(t, a.Corpus)
	assert.Nil(t, a.Puzzles)
	assert.Equal(t, 0, a.Vocab.Len())
	assert.False(t, a.Quiz.Status().ModelLoaded)
}

func TestLoad_BadArtifact(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = Paths{
		Vocab: writeFile(t, t.TempDir(), "vocab.csv", "word,frequency\n사과,3\n"),
		DB:    filepath.Join(t.TempDir(), "dongwha.db"),
	}
	_, err := Load(context.Background(), cfg, Options{})
	assert.Error(t, err)
}

func TestLoad_UnknownEmbeddingBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = Paths{DB: filepath.Join(t.TempDir(), "dongwha.db")}
	cfg.Embedding.Backend = "glove"
	_, err := Load(context.Background(), cfg, Options{})
	assert.Error(t, err)
}

func TestLoad_RemoteEmbeddingsAndLLMTagger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = testPaths(t)
	cfg.Embedding.Backend = "remote"
	cfg.Embedding.RateLimit = 0
	cfg.Tagger.LLM = true

	mock := llm.NewMockProvider(llm.MockResponse{Vectors: [][]float32{{1, 0}}})
	a, err := Load(context.Background(), cfg, Options{LLM: mock, Embedder: mock})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	_, ok := a.Tagger.(postag.Fallback)
	assert.True(t, ok)

	v, err := a.Oracle.Encode(context.Background(), "토끼가 웃었다.")
	require.NoError(t, err)
	assert.Equal(t, embedding.Vector{1, 0}, v)
	assert.Len(t, mock.EmbedCalls, 1)

	_, err = a.Oracle.Encode(context.Background(), "토끼가 웃었다.")
	require.NoError(t, err)
	assert.Len(t, mock.EmbedCalls, 1, "second encode should hit the cache")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DONGWHA_CONFIG", "")
	t.Setenv("DONGWHA_ADDR", ":9090")
	t.Setenv("DONGWHA_CORPUS", "/data/corpus.json")

	path := writeFile(t, t.TempDir(), "dongwha.yaml", `
puzzle:
  similarity_threshold: 0.9
  max_attempts: 10
quiz:
  max_questions: 8
embedding:
  backend: remote
  rate_limit: 2
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Puzzle.Threshold)
	assert.Equal(t, 10, cfg.Puzzle.MaxAttempts)
	assert.NotEmpty(t, cfg.Puzzle.Bands, "unset keys keep their defaults")
	assert.Equal(t, 8, cfg.Quiz.MaxQuestions)
	assert.Equal(t, 5, cfg.Quiz.DefaultQuestions)
	assert.Equal(t, "remote", cfg.Embedding.Backend)
	assert.Equal(t, 2.0, cfg.Embedding.RateLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/data/corpus.json", cfg.Paths.Corpus)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "DONGWHA_TEST_DOTENV=loaded\n")
	t.Setenv("DONGWHA_TEST_DOTENV", "")
	os.Unsetenv("DONGWHA_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(env, filepath.Join(dir, "absent.env")))
	assert.Equal(t, "loaded", os.Getenv("DONGWHA_TEST_DOTENV"))
}
