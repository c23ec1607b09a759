package corpus

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Particles is the closed set of grammatical particles that disqualify a
// token from being a content word when it ends with one of them.
var Particles = []string{"은", "는", "이", "가", "을", "를", "에", "와", "과", "의", "도", "만", "에서", "으로"}

const terminalPunct = `.!?"`

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// IsContentWord reports whether w has at least two characters and does not
// end with a particle.
func IsContentWord(w string) bool {
	if utf8.RuneCountInString(w) < 2 {
		return false
	}
	for _, p := range Particles {
		if strings.HasSuffix(w, p) {
			return false
		}
	}
	return true
}

// ContentWords returns the content words of text in order, duplicates kept.
func ContentWords(text string) []string {
	var out []string
	for _, w := range Words(text) {
		if IsContentWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// EnsureTerminal appends a period when s does not end in terminal
// punctuation.
func EnsureTerminal(s string) string {
	if s == "" {
		return s
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	if strings.ContainsRune(terminalPunct, last) {
		return s
	}
	return s + "."
}

// SplitSentences splits a multi-sentence paragraph into single sentences.
// A boundary is terminal punctuation (. ! ? or a closing double quote)
// followed by whitespace and then a Latin capital, a Hangul syllable, or a
// quote. Pieces are trimmed and given terminal punctuation when missing.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var pieces []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(terminalPunct, runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !opensSentence(runes[j]) {
			continue
		}
		pieces = append(pieces, string(runes[start:i+1]))
		start = j
		i = j - 1
	}
	pieces = append(pieces, string(runes[start:]))

	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, EnsureTerminal(p))
	}
	return out
}

func opensSentence(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '가' && r <= '힣':
		return true
	case r == '"' || r == '\'':
		return true
	}
	return false
}
