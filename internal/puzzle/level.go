package puzzle

import (
	"fmt"

	"github.com/abhisek/dongwha/internal/corpus"
)

// Level is an (age, difficulty) pair.
type Level struct {
	Age        int        `json:"age"`
	Difficulty Difficulty `json:"difficulty"`
}

// Describe renders the level for display, e.g. "5세 쉬움 수준".
func (l Level) Describe() string {
	return fmt.Sprintf("%d세 %s 수준", l.Age, l.Difficulty.Korean())
}

// Attempt is one played puzzle.
type Attempt struct {
	Age        int        `json:"age"`
	Difficulty Difficulty `json:"difficulty"`
	Passed     bool       `json:"passed"`
}

// FinalLevel estimates a learner's level from their puzzle history: the
// most recent passed attempt, or one step below the first attempt when
// nothing was passed.
func FinalLevel(history []Attempt) Level {
	floor := Level{Age: corpus.MinAge, Difficulty: Easy}
	if len(history) == 0 {
		return floor
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Passed {
			return Level{Age: history[i].Age, Difficulty: history[i].Difficulty}
		}
	}

	first := history[0]
	if idx := first.Difficulty.index(); idx > 0 {
		return Level{Age: first.Age, Difficulty: Difficulties[idx-1]}
	}
	if first.Age > corpus.MinAge {
		return Level{Age: first.Age - 1, Difficulty: Hard}
	}
	return floor
}
