package corpus

import (
	"fmt"
	"slices"
)

// Store is the read-only corpus indexed by age. Insertion order is kept
// within each age so "first match" scans are reproducible.
type Store struct {
	byAge map[int][]SentenceRecord
	ages  []int
	total int
}

// New validates records and builds the age index. Records without an
// assigned age are skipped. A record whose age is outside 4..13 or outside
// its difficulty bucket is rejected.
func New(records []SentenceRecord) (*Store, error) {
	s := &Store{byAge: make(map[int][]SentenceRecord)}
	for i, r := range records {
		if r.Age == 0 {
			continue
		}
		if r.Age < MinAge || r.Age > MaxAge {
			return nil, fmt.Errorf("record %d: age %d outside %d..%d", i, r.Age, MinAge, MaxAge)
		}
		if r.Difficulty != "" {
			b, err := ParseBucket(r.Difficulty)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			if !b.Contains(r.Age) {
				return nil, fmt.Errorf("record %d: age %d not in bucket %s", i, r.Age, r.Difficulty)
			}
		}
		if r.WordCount == 0 {
			r.WordCount = len(Words(r.Text))
		}
		if r.Type == "" {
			r.Type = TypeOriginal
		}
		if _, ok := s.byAge[r.Age]; !ok {
			s.ages = append(s.ages, r.Age)
		}
		s.byAge[r.Age] = append(s.byAge[r.Age], r)
		s.total++
	}
	slices.Sort(s.ages)
	return s, nil
}

// Ages returns the ages that have at least one record, ascending.
func (s *Store) Ages() []int {
	return slices.Clone(s.ages)
}

// Len returns the number of indexed records.
func (s *Store) Len() int { return s.total }

// HasAge reports whether the age has any records.
func (s *Store) HasAge(age int) bool {
	return len(s.byAge[age]) > 0
}

// ForAge returns the records for age. The slice is shared and must not be
// modified.
func (s *Store) ForAge(age int) []SentenceRecord {
	return s.byAge[age]
}

// WithWordCount returns the records for age whose word count lies in
// [lo, hi].
func (s *Store) WithWordCount(age, lo, hi int) []SentenceRecord {
	var out []SentenceRecord
	for _, r := range s.byAge[age] {
		if r.WordCount >= lo && r.WordCount <= hi {
			out = append(out, r)
		}
	}
	return out
}

// Summaries returns the summary records for age.
func (s *Store) Summaries(age int) []SentenceRecord {
	var out []SentenceRecord
	for _, r := range s.byAge[age] {
		if r.Type == TypeSummary {
			out = append(out, r)
		}
	}
	return out
}

// CountByAge returns the number of records per age.
func (s *Store) CountByAge() map[int]int {
	out := make(map[int]int, len(s.byAge))
	for age, rs := range s.byAge {
		out[age] = len(rs)
	}
	return out
}
