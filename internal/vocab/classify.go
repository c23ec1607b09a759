package vocab

import (
	"cmp"
	"regexp"
	"slices"
	"unicode/utf8"
)

// FrequencyBand maps a minimum corpus frequency to an age group.
type FrequencyBand struct {
	MinFrequency int `yaml:"min_frequency"`
	AgeGroup     int `yaml:"age_group"`
}

// Classifier assigns age groups by corpus frequency: the more often a word
// appears in fairy tales, the younger the reader it is suited for.
type Classifier struct {
	// Bands are checked in order; the first band whose MinFrequency is met
	// wins. Words below every band are dropped.
	Bands []FrequencyBand `yaml:"bands"`
}

// DefaultClassifier returns the frequency bands used to build the shipped
// vocabulary table.
func DefaultClassifier() Classifier {
	return Classifier{Bands: []FrequencyBand{
		{400, 4},
		{200, 5},
		{100, 6},
		{50, 7},
		{25, 8},
		{12, 9},
		{5, 10},
	}}
}

// AgeFor returns the age group for a frequency, or false when the word is
// too rare to include.
func (c Classifier) AgeFor(freq int) (int, bool) {
	for _, b := range c.Bands {
		if freq >= b.MinFrequency {
			return b.AgeGroup, true
		}
	}
	return 0, false
}

var hangulWord = regexp.MustCompile(`[가-힣]{2,}`)

// ExtractWords returns the Hangul runs of two or more syllables in text.
func ExtractWords(text string) []string {
	return hangulWord.FindAllString(text, -1)
}

// Build counts words across texts and classifies them. posOf may be nil,
// in which case every word is tagged Noun. Entries are ordered by
// frequency, most frequent first, ties broken by first appearance.
func (c Classifier) Build(texts []string, posOf func(word string) string) []Entry {
	freq := make(map[string]int)
	var order []string
	for _, t := range texts {
		for _, w := range ExtractWords(t) {
			if freq[w] == 0 {
				order = append(order, w)
			}
			freq[w]++
		}
	}

	var out []Entry
	for _, w := range order {
		age, ok := c.AgeFor(freq[w])
		if !ok {
			continue
		}
		pos := POSNoun
		if posOf != nil {
			if p := posOf(w); p != "" {
				pos = p
			}
		}
		out = append(out, Entry{
			Word:            w,
			POS:             pos,
			Length:          utf8.RuneCountInString(w),
			Frequency:       freq[w],
			AgeGroup:        age,
			DifficultyScore: 1.0,
		})
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})
	return out
}
