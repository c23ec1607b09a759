package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty selects the word-count range of a puzzle within an age band.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the levels from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty validates s. An empty string means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return Medium, nil
	}
	d := Difficulty(strings.ToLower(s))
	for _, k := range Difficulties {
		if d == k {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

func (d Difficulty) index() int {
	for i, k := range Difficulties {
		if d == k {
			return i
		}
	}
	return -1
}

// Korean returns the label shown to learners.
func (d Difficulty) Korean() string {
	switch d {
	case Easy:
		return "쉬움"
	case Medium:
		return "보통"
	case Hard:
		return "어려움"
	}
	return string(d)
}

// Piece is one word of the original sentence.
type Piece struct {
	ID       int    `json:"id"`
	Word     string `json:"word"`
	Position int    `json:"position"`
}

// Metadata echoes provenance of the source record.
type Metadata struct {
	Type            string `json:"type"`
	Form            string `json:"form"`
	DifficultyRange string `json:"difficulty_range"`
}

// Puzzle is a sentence split into words and shuffled.
type Puzzle struct {
	ID               string     `json:"puzzle_id"`
	Age              int        `json:"age"`
	Difficulty       Difficulty `json:"difficulty"`
	OriginalSentence string     `json:"original_sentence"`
	Pieces           []Piece    `json:"pieces"`
	Shuffled         []Piece    `json:"shuffled_pieces"`
	WordCount        int        `json:"word_count"`
	Title            string     `json:"title"`
	Metadata         Metadata   `json:"metadata"`
}

// Reassemble joins the pieces in original order.
func (p *Puzzle) Reassemble() string {
	ordered := make([]Piece, len(p.Pieces))
	copy(ordered, p.Pieces)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	words := make([]string, len(ordered))
	for i, pc := range ordered {
		words[i] = pc.Word
	}
	return strings.Join(words, " ")
}

// Verification is the outcome of checking a reassembled sentence.
type Verification struct {
	Passed     bool    `json:"passed"`
	Similarity float64 `json:"similarity"`
	ExactMatch bool    `json:"exact_match"`
	Original   string  `json:"original"`
	UserAnswer string  `json:"user_answer"`
	Threshold  float64 `json:"threshold"`
}

// HintType names a hint.
type HintType string

const (
	HintFirstWord HintType = "first_word"
	HintLastWord  HintType = "last_word"
	HintWordCount HintType = "word_count"
)

// Hint is a single nudge toward the answer.
type Hint struct {
	Type    HintType `json:"type"`
	Message string   `json:"message"`
}

// HintResult lists the hints for the learner's current answer, most
// useful first.
type HintResult struct {
	Hints        []Hint `json:"hints"`
	FirstCorrect bool   `json:"first_correct"`
	LastCorrect  bool   `json:"last_correct"`
}
