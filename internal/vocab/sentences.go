package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/dongwha/internal/sampling"
)

// Bounds on the length, in characters, of a real sentence used as a quiz
// prompt.
const (
	MinSentenceRunes = 10
	MaxSentenceRunes = 80
)

// SentenceIndex maps a word to real fairy-tale sentences containing it.
type SentenceIndex map[string][]string

// LoadSentenceIndex reads a JSON object of word to sentence list.
func LoadSentenceIndex(path string) (SentenceIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sentence index: %w", err)
	}
	var idx SentenceIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parse sentence index: %w", err)
	}
	return idx, nil
}

// WriteFile writes idx as a JSON object.
func (idx SentenceIndex) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	b, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sentence index: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// BuildSentenceIndex collects, for each word, up to maxPerWord sentences
// that contain it and fall within the prompt length bounds.
func BuildSentenceIndex(sentences []string, words []string, maxPerWord int) SentenceIndex {
	idx := make(SentenceIndex)
	for _, w := range words {
		for _, s := range sentences {
			if maxPerWord > 0 && len(idx[w]) >= maxPerWord {
				break
			}
			if suitable(s, w) {
				idx[w] = append(idx[w], s)
			}
		}
	}
	return idx
}

// Len returns the total number of sentences across all words.
func (idx SentenceIndex) Len() int {
	n := 0
	for _, s := range idx {
		n += len(s)
	}
	return n
}

// Blank picks a suitable sentence for word and replaces the first
// occurrence of the word with marker.
func (idx SentenceIndex) Blank(src sampling.Source, word, marker string) (string, bool) {
	var ok []string
	for _, s := range idx[word] {
		if suitable(s, word) {
			ok = append(ok, s)
		}
	}
	s, found := sampling.Choice(src, ok)
	if !found {
		return "", false
	}
	return strings.Replace(s, word, marker, 1), true
}

func suitable(sentence, word string) bool {
	n := utf8.RuneCountInString(sentence)
	return n >= MinSentenceRunes && n <= MaxSentenceRunes && strings.Contains(sentence, word)
}
