package vocab

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/sampling"
)

func TestClassifierAgeFor(t *testing.T) {
	c := DefaultClassifier()
	tests := []struct {
		freq int
		age  int
		ok   bool
	}{
		{1000, 4, true},
		{400, 4, true},
		{399, 5, true},
		{100, 6, true},
		{50, 7, true},
		{25, 8, true},
		{12, 9, true},
		{5, 10, true},
		{4, 0, false},
	}
	for _, tt := range tests {
		age, ok := c.AgeFor(tt.freq)
		assert.Equal(t, tt.ok, ok, "freq %d", tt.freq)
		assert.Equal(t, tt.age, age, "freq %d", tt.freq)
	}
}

func TestClassifierBuild(t *testing.T) {
	texts := []string{
		strings.Repeat("토끼 ", 12) + "거북이 a 나",
		strings.Repeat("거북이 ", 5),
	}
	entries := DefaultClassifier().Build(texts, func(w string) string {
		if w == "토끼" {
			return "Noun"
		}
		return ""
	})
	require.Len(t, entries, 2)
	assert.Equal(t, "토끼", entries[0].Word)
	assert.Equal(t, 12, entries[0].Frequency)
	assert.Equal(t, 9, entries[0].AgeGroup)
	assert.Equal(t, "거북이", entries[1].Word)
	assert.Equal(t, 6, entries[1].Frequency)
	assert.Equal(t, 10, entries[1].AgeGroup)
	assert.Equal(t, POSNoun, entries[1].POS)
	assert.Equal(t, 3, entries[1].Length)
}

func TestSentenceIndexBlank(t *testing.T) {
	idx := BuildSentenceIndex([]string{
		"나무",
		"숲 속에는 큰 나무가 한 그루 있었어요.",
		"나무 아래에서 토끼가 나무를 바라보았어요.",
	}, []string{"나무", "바다"}, 5)

	assert.Len(t, idx["나무"], 2)
	assert.Empty(t, idx["바다"])
	assert.Equal(t, 2, idx.Len())

	src := sampling.Seeded(3)
	for range 10 {
		s, ok := idx.Blank(src, "나무", "___")
		require.True(t, ok)
		assert.Equal(t, 1, strings.Count(s, "___"))
	}

	_, ok := idx.Blank(src, "바다", "___")
	assert.False(t, ok)
}

func TestSentenceIndexWriteFile(t *testing.T) {
	idx := SentenceIndex{"사과": {"할머니가 빨간 사과를 바구니에 담았어요."}}
	path := filepath.Join(t.TempDir(), "out", "sentences.json")
	require.NoError(t, idx.WriteFile(path))

	got, err := LoadSentenceIndex(path)
	require.NoError(t, err)
	assert.Equal(t, idx, got)
}
