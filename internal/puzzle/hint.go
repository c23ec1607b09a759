package puzzle

import (
	"fmt"

	"github.com/abhisek/dongwha/internal/corpus"
)

// GetHint compares the learner's current answer with the original
// sentence. The last word only counts as correct when the answer also has
// the right number of words.
func GetHint(original, current string) HintResult {
	want := corpus.Words(original)
	got := corpus.Words(current)
	if len(want) == 0 {
		return HintResult{Hints: []Hint{}}
	}

	res := HintResult{
		Hints:        []Hint{},
		FirstCorrect: len(got) > 0 && got[0] == want[0],
		LastCorrect:  len(got) > 0 && len(got) == len(want) && got[len(got)-1] == want[len(want)-1],
	}
	if !res.FirstCorrect {
		res.Hints = append(res.Hints, Hint{HintFirstWord, fmt.Sprintf("첫 단어는 '%s'입니다.", want[0])})
	}
	if !res.LastCorrect && len(want) > 1 {
		res.Hints = append(res.Hints, Hint{HintLastWord, fmt.Sprintf("마지막 단어는 '%s'입니다.", want[len(want)-1])})
	}
	if len(got) != len(want) {
		res.Hints = append(res.Hints, Hint{HintWordCount, fmt.Sprintf("총 %d개의 단어가 필요합니다.", len(want))})
	}
	return res
}
