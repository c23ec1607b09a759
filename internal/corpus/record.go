// Package corpus holds the age-indexed fairy-tale sentence corpus and the
// text helpers shared by the puzzle and assessment generators.
package corpus

import (
	"fmt"
	"regexp"
	"strconv"
)

// Age bounds for corpus-driven features.
const (
	MinAge = 4
	MaxAge = 13
)

// RecordType distinguishes original paragraphs from plot summaries.
type RecordType string

const (
	TypeOriginal RecordType = "original"
	TypeSummary  RecordType = "summary"
)

// SentenceRecord is one paragraph or summary from the prepared corpus.
// Records are immutable once loaded.
type SentenceRecord struct {
	Text       string     `json:"text"`
	WordCount  int        `json:"word_count"`
	Type       RecordType `json:"type"`
	Form       string     `json:"form,omitempty"`
	Difficulty string     `json:"difficulty"`
	Title      string     `json:"title"`
	Age        int        `json:"age"`
	SourceFile string     `json:"source_file,omitempty"`
}

// Bucket is the inclusive age range encoded by a difficulty label.
type Bucket struct {
	Label string
	Min   int
	Max   int
}

// Ages returns every age in the bucket in ascending order.
func (b Bucket) Ages() []int {
	out := make([]int, 0, b.Max-b.Min+1)
	for a := b.Min; a <= b.Max; a++ {
		out = append(out, a)
	}
	return out
}

// Contains reports whether age lies inside the bucket.
func (b Bucket) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

var bucketPattern = regexp.MustCompile(`^(\d+)_(\d+)`)

// ParseBucket parses a difficulty label such as "4_7".
func ParseBucket(label string) (Bucket, error) {
	m := bucketPattern.FindStringSubmatch(label)
	if m == nil {
		return Bucket{}, fmt.Errorf("invalid difficulty label %q", label)
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	if lo > hi {
		return Bucket{}, fmt.Errorf("invalid difficulty label %q: min %d > max %d", label, lo, hi)
	}
	return Bucket{Label: label, Min: lo, Max: hi}, nil
}
