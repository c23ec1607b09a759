package assessment

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/dongwha/internal/postag"
)

// Roles is the shallow parse of one sentence.
type Roles struct {
	Sentence       string   `json:"sentence"`
	Subject        string   `json:"subject,omitempty"`
	Object         string   `json:"object,omitempty"`
	Location       string   `json:"location,omitempty"`
	Action         string   `json:"action,omitempty"`
	VerbPhrases    []string `json:"verb_phrases,omitempty"`
	Nouns          []string `json:"nouns,omitempty"`
	Persons        []string `json:"persons,omitempty"`
	Locations      []string `json:"locations,omitempty"`
	Verbs          []string `json:"verbs,omitempty"`
	HasFirstPerson bool     `json:"has_first_person"`
}

// scan accumulates evidence while walking the tagged tokens. The role
// chains below read from it in priority order.
type scan struct {
	rules       Rules
	narrator    bool
	proper      []string
	keywords    []string
	nouns       []string
	objects     []string
	verbPhrases []string
	verbs       []string
	locations   [][]string // by tier; index 0 is the compound tier
}

// roleRule yields a candidate for a role, or "" when it does not apply.
type roleRule struct {
	name string
	pick func(s *scan, persons []string) string
}

var subjectChain = []roleRule{
	{"first-person", func(s *scan, _ []string) string {
		if s.narrator {
			return s.rules.Narrator
		}
		return ""
	}},
	{"proper-noun", func(s *scan, _ []string) string { return first(s.proper) }},
	{"person-keyword", func(s *scan, _ []string) string { return first(s.keywords) }},
	{"first-noun", func(s *scan, _ []string) string { return first(s.nouns) }},
}

var objectChain = []roleRule{
	{"verb-phrase", func(s *scan, _ []string) string { return first(s.verbPhrases) }},
	{"object-particle", func(s *scan, _ []string) string { return first(s.objects) }},
	{"other-noun", func(s *scan, persons []string) string {
		for _, n := range s.nouns {
			if !contains(persons, n) {
				return n
			}
		}
		return ""
	}},
}

var actionChain = []roleRule{
	{"verb-phrase", func(s *scan, _ []string) string { return first(s.verbPhrases) }},
	{"first-verb", func(s *scan, _ []string) string { return first(s.verbs) }},
}

func runChain(chain []roleRule, s *scan, persons []string) string {
	for _, r := range chain {
		if v := r.pick(s, persons); v != "" {
			return v
		}
	}
	return ""
}

// RoleExtractor finds subject, object, location and action in a sentence.
type RoleExtractor struct {
	tagger postag.Tagger
	rules  Rules
}

// NewRoleExtractor creates an extractor over tagger.
func NewRoleExtractor(tagger postag.Tagger, rules Rules) *RoleExtractor {
	return &RoleExtractor{tagger: tagger, rules: rules}
}

// Analyze tags sentence and applies the role chains.
func (x *RoleExtractor) Analyze(ctx context.Context, sentence string) (*Roles, error) {
	clean := strings.NewReplacer(`"`, "", "'", "", "!", "", "?", "").Replace(sentence)
	toks, err := x.tagger.Tag(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("tag sentence: %w", err)
	}

	s := &scan{
		rules:     x.rules,
		narrator:  x.hasFirstPerson(clean),
		locations: make([][]string, len(x.rules.Locations)+1),
	}
	x.walk(s, toks, sentence)

	var persons []string
	if s.narrator {
		persons = append(persons, x.rules.Narrator)
	}
	for _, p := range append(append([]string{}, s.proper...), s.keywords...) {
		if !contains(persons, p) {
			persons = append(persons, p)
		}
	}

	roles := &Roles{
		Sentence:       sentence,
		Subject:        runChain(subjectChain, s, persons),
		Action:         runChain(actionChain, s, persons),
		VerbPhrases:    s.verbPhrases,
		Nouns:          s.nouns,
		Persons:        persons,
		Verbs:          s.verbs,
		HasFirstPerson: s.narrator,
	}
	roles.Object = runChain(objectChain, s, append(slices.Clone(persons), roles.Subject))
	for _, tier := range s.locations {
		roles.Locations = append(roles.Locations, tier...)
		if roles.Location == "" && len(tier) > 0 {
			roles.Location = tier[0]
		}
	}
	return roles, nil
}

func (x *RoleExtractor) walk(s *scan, toks []postag.Token, sentence string) {
	r := x.rules
	at := func(i int, tag postag.Tag) (string, bool) {
		if i < len(toks) && toks[i].Tag == tag {
			return toks[i].Surface, true
		}
		return "", false
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Tag {
		case postag.TagForeign:
			if r0, _ := utf8.DecodeRuneInString(tok.Surface); unicode.IsUpper(r0) {
				s.proper = appendUnique(s.proper, tok.Surface)
			}
			continue
		case postag.TagVerb:
			if utf8.RuneCountInString(tok.Surface) >= 2 {
				s.verbs = append(s.verbs, tok.Surface)
			}
			continue
		case postag.TagNoun:
		default:
			continue
		}

		word := tok.Surface
		if utf8.RuneCountInString(word) < r.MinNounRunes {
			continue
		}
		s.nouns = append(s.nouns, word)

		// Two adjacent place nouns resolve to the second, more specific one.
		if next, ok := at(i+1, postag.TagNoun); ok && r.inTier(r.CompoundTier, word) && r.inTier(r.CompoundTier, next) {
			s.locations[0] = append(s.locations[0], next)
			i++
			continue
		}

		josa, hasJosa := at(i+1, postag.TagJosa)
		if hasJosa && contains(r.ObjectParticles, josa) {
			if verb, ok := at(i+2, postag.TagVerb); ok {
				if !contains(r.AbstractObjects, word) {
					s.verbPhrases = append(s.verbPhrases, word+josa+" "+verbStem(verb))
					s.objects = append(s.objects, word)
				}
				if utf8.RuneCountInString(verb) >= 2 {
					s.verbs = append(s.verbs, verb)
				}
				i += 2
				continue
			}
			s.objects = append(s.objects, word)
		}

		tier := r.locationTier(word)
		isPerson := contains(r.PersonKeywords, word) || (r.PersonSuffix != "" && strings.HasSuffix(word, r.PersonSuffix))
		// A marked subject keeps its place in the sentence even when it is
		// also a person keyword.
		switch {
		case hasJosa && tier < 0 && contains(r.SubjectParticles, josa) &&
			!contains(r.AbstractObjects, word) && !contains(r.FirstPerson, word):
			s.proper = appendUnique(s.proper, word)
		case isPerson:
			s.keywords = appendUnique(s.keywords, word)
		}

		if tier >= 0 && !x.excluded(word, sentence) {
			s.locations[tier+1] = append(s.locations[tier+1], word)
		}
	}
}

func (x *RoleExtractor) excluded(word, sentence string) bool {
	for _, e := range x.rules.Exclusions {
		if e.Word == word && strings.Contains(sentence, e.Context) {
			return true
		}
	}
	return false
}

// hasFirstPerson reports whether any word is a first-person pronoun, bare
// or followed by a particle.
func (x *RoleExtractor) hasFirstPerson(text string) bool {
	for _, w := range strings.Fields(text) {
		w = strings.TrimRightFunc(w, unicode.IsPunct)
		if contains(x.rules.FirstPerson, w) {
			return true
		}
		for _, j := range postag.Josa {
			if stem, ok := strings.CutSuffix(w, j); ok && contains(x.rules.FirstPerson, stem) {
				return true
			}
		}
	}
	return false
}

// verbStem renders a verb in dictionary-like form: trailing 다 is
// normalised to a single 다 and other endings are kept.
func verbStem(verb string) string {
	if strings.HasSuffix(verb, "다") {
		return strings.TrimRight(verb, "다") + "다"
	}
	return verb
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func appendUnique(list []string, s string) []string {
	if contains(list, s) {
		return list
	}
	return append(list, s)
}
