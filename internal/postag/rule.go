package postag

import (
	"context"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Josa lists the particles the rule tagger splits off noun stems, longest
// first so that 에서 wins over 서.
var Josa = []string{
	"에게서", "으로서", "한테서",
	"에서", "에게", "한테", "으로", "까지", "부터", "처럼", "보다", "이랑", "하고",
	"은", "는", "이", "가", "을", "를", "에", "와", "과", "의", "도", "만", "로", "랑",
}

// VerbEndings are sentence-final and connective endings that mark a word as
// a predicate.
var VerbEndings = []string{
	"습니다", "었어요", "았어요", "였어요", "했어요",
	"었다", "았다", "였다", "했다", "한다", "는다", "니다",
	"어요", "아요", "면서", "어서", "아서", "는데", "지만",
	"다", "고", "며", "요",
}

// AdjectiveEndings mark descriptive predicates (예쁜, 작은 are left as nouns).
var AdjectiveEndings = []string{"스럽다", "답다", "롭다"}

// RuleTagger is an offline, suffix-based tagger. It splits each whitespace
// word into at most a stem and a particle.
type RuleTagger struct {
	// Nouns are always tagged as nouns even when they end like a verb
	// (바다, 보고).
	Nouns map[string]bool
}

// NewRuleTagger returns a tagger with the given noun lexicon.
func NewRuleTagger(nouns ...string) *RuleTagger {
	lex := make(map[string]bool, len(nouns)+len(defaultNouns))
	for _, n := range defaultNouns {
		lex[n] = true
	}
	for _, n := range nouns {
		lex[n] = true
	}
	return &RuleTagger{Nouns: lex}
}

var defaultNouns = []string{"바다", "불바다", "나라", "하나", "우리", "고구려", "신라", "가야", "고려", "창고"}

func (r *RuleTagger) Tag(_ context.Context, text string) ([]Token, error) {
	var out []Token
	for _, word := range strings.Fields(text) {
		lead, core, trail := splitPunct(word)
		if lead != "" {
			out = append(out, Token{Surface: lead, Tag: TagPunctuation})
		}
		if core != "" {
			out = append(out, r.tagWord(core)...)
		}
		if trail != "" {
			out = append(out, Token{Surface: trail, Tag: TagPunctuation})
		}
	}
	return out, nil
}

func (r *RuleTagger) tagWord(w string) []Token {
	if !isHangul(w) {
		if isLatin(w) {
			return []Token{{Surface: w, Tag: TagForeign}}
		}
		return []Token{{Surface: w, Tag: TagOther}}
	}
	if r.Nouns[w] {
		return []Token{{Surface: w, Tag: TagNoun}}
	}

	// A known noun followed by a particle.
	for _, j := range Josa {
		if stem, ok := strings.CutSuffix(w, j); ok && r.Nouns[stem] {
			return []Token{{Surface: stem, Tag: TagNoun}, {Surface: j, Tag: TagJosa}}
		}
	}

	if hasAnySuffix(w, AdjectiveEndings) {
		return []Token{{Surface: w, Tag: TagAdjective}}
	}
	if hasAnySuffix(w, VerbEndings) && utf8.RuneCountInString(w) >= 2 {
		return []Token{{Surface: w, Tag: TagVerb}}
	}

	for _, j := range Josa {
		if stem, ok := strings.CutSuffix(w, j); ok && stem != "" {
			return []Token{{Surface: stem, Tag: TagNoun}, {Surface: j, Tag: TagJosa}}
		}
	}
	return []Token{{Surface: w, Tag: TagNoun}}
}

func hasAnySuffix(w string, suffixes []string) bool {
	return slices.ContainsFunc(suffixes, func(s string) bool { return strings.HasSuffix(w, s) })
}

func splitPunct(w string) (lead, core, trail string) {
	isP := func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }
	core = strings.TrimLeftFunc(w, isP)
	lead = w[:len(w)-len(core)]
	trimmed := strings.TrimRightFunc(core, isP)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}

func isHangul(w string) bool {
	for _, r := range w {
		if !unicode.Is(unicode.Hangul, r) {
			return false
		}
	}
	return w != ""
}

func isLatin(w string) bool {
	for _, r := range w {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return w != ""
}
