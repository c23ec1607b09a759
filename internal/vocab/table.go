// Package vocab holds the frequency-ranked vocabulary table used by the
// quiz layer and the tools that build it from the corpus.
package vocab

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

// Age bounds for the vocabulary-driven quiz.
const (
	MinAge = 4
	MaxAge = 10
)

// POSNoun is the part of speech assumed when the table omits one.
const POSNoun = "Noun"

// Entry is one vocabulary word.
type Entry struct {
	ID              int     `json:"id"`
	Word            string  `json:"word"`
	POS             string  `json:"pos"`
	Length          int     `json:"length"`
	Frequency       int     `json:"frequency"`
	AgeGroup        int     `json:"age_group"`
	DifficultyScore float64 `json:"difficulty_score"`
}

// Table is the immutable vocabulary indexed by age group and by word.
type Table struct {
	entries []Entry
	byAge   map[int][]int
	byWord  map[string]int
}

// NewTable validates entries and builds the indexes. Missing IDs are
// assigned from the 1-based row position, missing parts of speech default
// to Noun, and missing lengths are derived from the word.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byAge:   make(map[int][]int),
		byWord:  make(map[string]int),
	}
	for i, e := range entries {
		if e.Word == "" {
			return nil, fmt.Errorf("row %d: empty word", i+1)
		}
		if e.AgeGroup < MinAge || e.AgeGroup > MaxAge {
			return nil, fmt.Errorf("row %d (%s): age group %d outside %d..%d", i+1, e.Word, e.AgeGroup, MinAge, MaxAge)
		}
		if e.ID == 0 {
			e.ID = i + 1
		}
		if e.POS == "" {
			e.POS = POSNoun
		}
		if e.Length == 0 {
			e.Length = utf8.RuneCountInString(e.Word)
		}
		idx := len(t.entries)
		t.entries = append(t.entries, e)
		t.byAge[e.AgeGroup] = append(t.byAge[e.AgeGroup], idx)
		if _, dup := t.byWord[e.Word]; !dup {
			t.byWord[e.Word] = idx
		}
	}
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// All returns every entry in table order.
func (t *Table) All() []Entry {
	return slices.Clone(t.entries)
}

// Lookup returns the entry for word.
func (t *Table) Lookup(word string) (Entry, bool) {
	idx, ok := t.byWord[word]
	if !ok {
		return Entry{}, false
	}
	return t.entries[idx], true
}

// ForAge returns the entries of an age group in table order.
func (t *Table) ForAge(age int) []Entry {
	idxs := t.byAge[age]
	out := make([]Entry, len(idxs))
	for i, idx := range idxs {
		out[i] = t.entries[idx]
	}
	return out
}

// TopByFrequency returns up to limit entries of an age group, most
// frequent first. Ties keep table order.
func (t *Table) TopByFrequency(age, limit int) []Entry {
	out := t.ForAge(age)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AgeStat summarizes one age group.
type AgeStat struct {
	TotalWords    int     `json:"total_words"`
	AvgLength     float64 `json:"avg_length"`
	AvgDifficulty float64 `json:"avg_difficulty"`
}

// AgeStats returns per-age statistics for every age in MinAge..MaxAge.
// Averages are rounded to 2 and 3 decimals respectively.
func (t *Table) AgeStats() map[int]AgeStat {
	out := make(map[int]AgeStat, MaxAge-MinAge+1)
	for age := MinAge; age <= MaxAge; age++ {
		words := t.ForAge(age)
		st := AgeStat{TotalWords: len(words)}
		if len(words) > 0 {
			var length, diff float64
			for _, w := range words {
				length += float64(w.Length)
				diff += w.DifficultyScore
			}
			st.AvgLength = round(length/float64(len(words)), 2)
			st.AvgDifficulty = round(diff/float64(len(words)), 3)
		}
		out[age] = st
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
