package puzzle

import (
	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/sampling"
)

// WordRange bounds a puzzle's word count, inclusive.
type WordRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether n lies in the range.
func (r WordRange) Contains(n int) bool { return n >= r.Min && n <= r.Max }

// AgeBand maps difficulties to word ranges for ages up to MaxAge.
type AgeBand struct {
	MaxAge int                      `yaml:"max_age"`
	Ranges map[Difficulty]WordRange `yaml:"ranges"`
}

// Config controls puzzle generation and verification.
type Config struct {
	// Bands are checked in order; the first whose MaxAge is at least the
	// requested age applies. Ages past the last band use the last band.
	Bands []AgeBand `yaml:"bands"`

	// MaxAttempts is the number of records sampled before falling back to
	// a summary.
	MaxAttempts int `yaml:"max_attempts"`

	// Threshold is the default similarity needed to pass.
	Threshold float64 `yaml:"similarity_threshold"`

	Rand sampling.Source `yaml:"-"`
}

// DefaultConfig returns the tuned word ranges.
func DefaultConfig() Config {
	return Config{
		Bands: []AgeBand{
			{MaxAge: 6, Ranges: map[Difficulty]WordRange{Easy: {2, 4}, Medium: {4, 6}, Hard: {6, 8}}},
			{MaxAge: 10, Ranges: map[Difficulty]WordRange{Easy: {5, 8}, Medium: {8, 12}, Hard: {12, 15}}},
			{MaxAge: corpus.MaxAge, Ranges: map[Difficulty]WordRange{Easy: {8, 12}, Medium: {12, 15}, Hard: {15, 20}}},
		},
		MaxAttempts: 100,
		Threshold:   0.85,
	}
}

// RangeFor returns the word range for age and difficulty.
func (c Config) RangeFor(age int, d Difficulty) WordRange {
	if len(c.Bands) == 0 {
		return WordRange{10, 20}
	}
	band := c.Bands[len(c.Bands)-1]
	for _, b := range c.Bands {
		if age <= b.MaxAge {
			band = b
			break
		}
	}
	if r, ok := band.Ranges[d]; ok {
		return r
	}
	return WordRange{10, 20}
}
