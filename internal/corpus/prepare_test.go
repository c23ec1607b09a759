package corpus

import (
	"slices"
	"testing"
)

func TestComputeThresholdsAndAssign(t *testing.T) {
	var recs []SentenceRecord
	for wc := 1; wc <= 100; wc++ {
		recs = append(recs, SentenceRecord{Text: "x", WordCount: wc, Difficulty: "4_7"})
	}
	th := ComputeThresholds(recs, DefaultPercentiles)
	if !slices.Equal(th["4_7"], []int{21, 51, 76}) {
		t.Fatalf("thresholds = %v, want [21 51 76]", th["4_7"])
	}

	b, _ := ParseBucket("4_7")
	tests := []struct {
		wc   int
		want int
	}{
		{5, 4}, {21, 5}, {50, 5}, {51, 6}, {75, 6}, {76, 7}, {99, 7},
	}
	for _, tt := range tests {
		if got := AssignAge(b, tt.wc, th["4_7"]); got != tt.want {
			t.Errorf("AssignAge(wc=%d) = %d, want %d", tt.wc, got, tt.want)
		}
	}
}

func TestComputeThresholdsEvenSplit(t *testing.T) {
	var recs []SentenceRecord
	for wc := 1; wc <= 10; wc++ {
		recs = append(recs, SentenceRecord{WordCount: wc, Difficulty: "1_2"})
	}
	th := ComputeThresholds(recs, DefaultPercentiles)
	if !slices.Equal(th["1_2"], []int{6}) {
		t.Fatalf("even split thresholds = %v, want [6]", th["1_2"])
	}
}

func TestAssignAgeWithoutThresholdsUsesMiddle(t *testing.T) {
	b, _ := ParseBucket("8_10")
	if got := AssignAge(b, 3, nil); got != 9 {
		t.Errorf("AssignAge = %d, want 9", got)
	}
}

func TestFilterWordCount(t *testing.T) {
	recs := []SentenceRecord{
		{Text: " 짧다 ", WordCount: 2},
		{Text: " 알맞은 길이 문장 ", WordCount: 3},
		{Text: "   ", WordCount: 4},
	}
	got := FilterWordCount(recs, 3, 50)
	if len(got) != 1 || got[0].Text != "알맞은 길이 문장" {
		t.Fatalf("FilterWordCount = %+v", got)
	}
}
